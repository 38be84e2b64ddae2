package domain

import "time"

// User is the identity record owned by the user directory. PasswordHash is
// the bcrypt encoding of the password, never the plaintext.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
