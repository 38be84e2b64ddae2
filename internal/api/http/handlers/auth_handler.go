package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/credential-service/internal/api/dto"
	"github.com/spec-kit/credential-service/internal/auth"
	"github.com/spec-kit/credential-service/internal/service"
	apperrors "github.com/spec-kit/credential-service/pkg/util/errorutil"
)

// AuthHandler exposes the register, login and protected endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	_, token, exp, err := h.auth.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Message:   "User registered successfully",
		Token:     token,
		ExpiresAt: exp,
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	_, token, exp, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: exp,
	})
}

// Protected handles GET /protected. The auth middleware has already verified
// the bearer token by the time this runs.
func (h *AuthHandler) Protected(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewForbidden("Invalid or expired token")
	}

	user := dto.ClaimsResponse{
		ID:       claims.UserID,
		Username: claims.Username,
	}
	if claims.IssuedAt != nil {
		user.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		user.ExpiresAt = claims.ExpiresAt.Time
	}

	return c.JSON(fiber.Map{
		"message": "Protected data accessed",
		"user":    user,
	})
}
