package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/painting-service/internal/auth"
	"github.com/spec-kit/painting-service/internal/config"
	"github.com/spec-kit/painting-service/internal/domain"
	"github.com/spec-kit/painting-service/internal/limiter"
	"github.com/spec-kit/painting-service/internal/repository"
)

// AuthService coordinates registration and login flows. Token issuance is
// composed at the handler layer; this service only resolves identities.
type AuthService struct {
	users      repository.UserRepository
	lim        limiter.Limiter
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, lim limiter.Limiter) *AuthService {
	return &AuthService{
		users:      users,
		lim:        lim,
		bcryptCost: cfg.BcryptCost,
	}
}

// Signup creates a new user account. The repository's unique constraint
// closes the race between the existence check and the insert, so a
// concurrent duplicate signup still fails with ErrUsernameTaken.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user. Unknown username and wrong password both
// return ErrInvalidCredentials so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password, ip string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	allowed, _, err := s.lim.Allow(ctx, username, ip)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrRateLimited
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || auth.ComparePassword(user.PasswordHash, password) != nil {
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if blocked, _, ferr := s.lim.Failure(ctx, username, ip); ferr == nil && blocked {
			return nil, domain.ErrRateLimited
		}
		return nil, domain.ErrInvalidCredentials
	}

	_ = s.lim.Success(ctx, username, ip)
	return user, nil
}
