package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/painting-service/internal/api/dto"
	"github.com/spec-kit/painting-service/internal/auth"
	"github.com/spec-kit/painting-service/internal/domain"
	"github.com/spec-kit/painting-service/internal/service"
	apperrors "github.com/spec-kit/painting-service/pkg/util"
)

// AuthHandler exposes signup and login endpoints. It composes the
// authentication service with token issuance: the service resolves an
// identity, the handler mints the token for the response.
type AuthHandler struct {
	auth   *service.AuthService
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{auth: authService, tokens: tokens}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, err := h.auth.Signup(c.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			return apperrors.NewConflict("username already taken")
		case errors.Is(err, domain.ErrInvalidInput):
			return apperrors.NewValidationError("username and password required", nil)
		}
		return apperrors.MapError(err)
	}

	return h.respondWithToken(c, user.ID)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, err := h.auth.Login(c.Context(), req.Username, req.Password, c.IP())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return apperrors.NewUnauthorized("invalid credentials")
		case errors.Is(err, domain.ErrRateLimited):
			return apperrors.NewTooManyRequests("too many failed attempts")
		}
		return apperrors.MapError(err)
	}

	return h.respondWithToken(c, user.ID)
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, userID string) error {
	token, _, err := h.tokens.GenerateToken(userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.AuthResponse{
		Token:            token,
		ExpiresInSeconds: h.tokens.ExpirationSeconds(),
	})
}
