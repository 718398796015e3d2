package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/painting-service/internal/auth"
	"github.com/spec-kit/painting-service/internal/domain"
	"github.com/spec-kit/painting-service/internal/service"
	apperrors "github.com/spec-kit/painting-service/pkg/util"
)

// PaintingHandler serves the authenticated caller's painting. The auth
// middleware resolves the principal before these handlers run; the resolved
// identity is passed explicitly into the service.
type PaintingHandler struct {
	paintings *service.PaintingService
}

// NewPaintingHandler constructs the handler.
func NewPaintingHandler(paintings *service.PaintingService) *PaintingHandler {
	return &PaintingHandler{paintings: paintings}
}

// Get handles GET /painting, returning the raw painting bytes.
func (h *PaintingHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	painting, err := h.paintings.Get(c.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPaintingNotFound) {
			return apperrors.NewNotFound("painting")
		}
		return apperrors.MapError(err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(painting)
}

// Save handles POST /painting, overwriting the caller's painting with the
// raw request body.
func (h *PaintingHandler) Save(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.paintings.Save(c.Context(), user.ID, c.Body()); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return apperrors.NewValidationError("painting body required", nil)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"message": "painting saved"}})
}
