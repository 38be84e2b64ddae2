package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_NonDeterministic(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("s3cret!", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("s3cret!", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "salt must differ per call")
	assert.NotEqual(t, "s3cret!", first, "hash must not be the plaintext")
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret!", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "s3cret!"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw", -1)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "pw"))
}
