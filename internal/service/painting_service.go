package service

import (
	"context"

	"github.com/spec-kit/painting-service/internal/domain"
	"github.com/spec-kit/painting-service/internal/repository"
)

// PaintingService reads and writes the per-user painting. Callers pass the
// identity resolved from the bearer token; the service never consults any
// ambient authentication state, so access is scoped to the owner by
// construction.
type PaintingService struct {
	users repository.UserRepository
}

// NewPaintingService builds the service.
func NewPaintingService(users repository.UserRepository) *PaintingService {
	return &PaintingService{users: users}
}

// Get returns the identity's saved painting, ErrPaintingNotFound when none
// has been saved yet.
func (s *PaintingService) Get(ctx context.Context, userID string) ([]byte, error) {
	return s.users.GetPainting(ctx, userID)
}

// Save overwrites the identity's painting. Saving the same bytes twice
// leaves the stored state unchanged.
func (s *PaintingService) Save(ctx context.Context, userID string, painting []byte) error {
	if len(painting) == 0 {
		return domain.ErrInvalidInput
	}
	return s.users.SavePainting(ctx, userID, painting)
}
