package domain

import "time"

// User is the domain model for registered painters. Painting holds the
// caller's saved artwork and is nil until the first save.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Painting     []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
