package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/credential-service/pkg/util/errorutil"
)

const claimsKey = "auth_claims"

// Middleware validates bearer tokens on protected routes.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware around the token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication. Verification failure kinds are collapsed
// into one response so callers cannot probe token structure.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := bearerToken(c.Get("Authorization"))
	if token == "" {
		return apperrors.NewForbidden("No token provided")
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return apperrors.NewForbidden("Invalid or expired token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the verified claims stored by Handle.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
