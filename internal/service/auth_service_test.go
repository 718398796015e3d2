package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/painting-service/internal/config"
	"github.com/spec-kit/painting-service/internal/domain"
	"github.com/spec-kit/painting-service/internal/limiter"
	"github.com/spec-kit/painting-service/internal/repository"
)

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, string) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}

func (l *fakeLimiter) Failure(context.Context, string, string) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, nil
}

func (l *fakeLimiter) Success(context.Context, string, string) error {
	l.successCalls++
	return nil
}

func newAuthService(lim limiter.Limiter) *AuthService {
	cfg := config.AuthConfig{BcryptCost: bcrypt.MinCost}
	return NewAuthService(cfg, repository.NewMemoryUserRepository(), lim)
}

func TestSignup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newAuthService(&fakeLimiter{allowOK: true})

	user, err := s.Signup(ctx, "alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.NotEqual(t, "secret", user.PasswordHash)

	// Same username fails regardless of password, first record untouched.
	_, err = s.Signup(ctx, "alice", "other")
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	again, err := s.Login(ctx, "alice", "secret", "127.0.0.1")
	require.NoError(t, err)
	require.Equal(t, user.ID, again.ID)
}

func TestSignup_EmptyInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newAuthService(&fakeLimiter{allowOK: true})

	for _, tc := range []struct{ username, password string }{
		{"", "secret"},
		{"alice", ""},
		{"   ", "secret"},
		{"", ""},
	} {
		_, err := s.Signup(ctx, tc.username, tc.password)
		require.ErrorIs(t, err, domain.ErrInvalidInput, "username=%q password=%q", tc.username, tc.password)
	}
}

func TestLogin_InvalidCredentialsMerged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lim := &fakeLimiter{allowOK: true}
	s := newAuthService(lim)

	_, err := s.Signup(ctx, "alice", "secret")
	require.NoError(t, err)

	// Unknown user and wrong password are indistinguishable.
	_, err = s.Login(ctx, "bob", "secret", "127.0.0.1")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = s.Login(ctx, "alice", "wrong", "127.0.0.1")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.Equal(t, 2, lim.failureCalls)
}

func TestLogin_RateLimited(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newAuthService(&fakeLimiter{allowOK: false})
	_, err := s.Login(ctx, "alice", "secret", "127.0.0.1")
	require.ErrorIs(t, err, domain.ErrRateLimited)

	// Threshold reached on this failure.
	blocked := &fakeLimiter{allowOK: true, failBlocked: true}
	s = newAuthService(blocked)
	_, err = s.Signup(ctx, "alice", "secret")
	require.NoError(t, err)
	_, err = s.Login(ctx, "alice", "wrong", "127.0.0.1")
	require.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestLogin_SuccessResetsCounters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	lim := &fakeLimiter{allowOK: true}
	s := newAuthService(lim)

	_, err := s.Signup(ctx, "alice", "secret")
	require.NoError(t, err)

	_, err = s.Login(ctx, "alice", "secret", "127.0.0.1")
	require.NoError(t, err)
	require.Equal(t, 1, lim.successCalls)
	require.Zero(t, lim.failureCalls)
}

func TestLogin_LimiterError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	limErr := errors.New("redis down")
	s := newAuthService(&fakeLimiter{allowErr: limErr})

	_, err := s.Login(ctx, "alice", "secret", "127.0.0.1")
	require.ErrorIs(t, err, limErr)
}
