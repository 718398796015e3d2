package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/painting-service/internal/domain"
)

// memoryUserRepository keeps user records in process memory. It backs the
// service when no Postgres DSN is configured and doubles as the test fake.
// A single RWMutex makes the exists-then-insert sequence in Create atomic
// and serializes painting writes to the same record.
type memoryUserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*domain.User
	byUsername map[string]string
}

// NewMemoryUserRepository returns an empty in-memory implementation.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:       make(map[string]*domain.User),
		byUsername: make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return domain.ErrUsernameTaken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := cloneUser(user)
	r.byID[stored.ID] = stored
	r.byUsername[stored.Username] = stored.ID
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *memoryUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byUsername[username]
	return ok, nil
}

func (r *memoryUserRepository) GetPainting(_ context.Context, userID string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if user.Painting == nil {
		return nil, domain.ErrPaintingNotFound
	}
	return append([]byte(nil), user.Painting...), nil
}

func (r *memoryUserRepository) SavePainting(_ context.Context, userID string, painting []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Painting = append([]byte(nil), painting...)
	user.UpdatedAt = time.Now()
	return nil
}

func cloneUser(user *domain.User) *domain.User {
	cpy := *user
	if user.Painting != nil {
		cpy.Painting = append([]byte(nil), user.Painting...)
	}
	return &cpy
}
