package domain

import "errors"

// Sentinel errors shared across repository and service layers so handlers
// can map them to stable HTTP statuses.
var (
	// ErrUsernameTaken indicates a unique-constraint violation on signup.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates the referenced user record does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPaintingNotFound indicates the user has not saved a painting yet.
	ErrPaintingNotFound = errors.New("painting not found")

	// ErrInvalidInput indicates a malformed request rejected before the store.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates temporary login lock due to repeated failures.
	ErrRateLimited = errors.New("rate limited")
)
