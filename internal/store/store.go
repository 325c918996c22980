package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when a unique constraint is violated.
	ErrAlreadyExists = errors.New("record already exists")
)

// User represents a registered user.
type User struct {
	ID        int64
	Name      string
	Token     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserStore handles user persistence.
type UserStore interface {
	// CreateUser creates a new user. Names are unique; a duplicate name
	// fails with ErrAlreadyExists.
	CreateUser(ctx context.Context, name, token string) (*User, error)

	// GetUserByID retrieves a user by ID; ErrNotFound if absent.
	GetUserByID(ctx context.Context, id int64) (*User, error)

	// GetUserByName retrieves a user by name; ErrNotFound if absent.
	GetUserByName(ctx context.Context, name string) (*User, error)

	// ListUsers retrieves all users ordered by ID.
	ListUsers(ctx context.Context) ([]*User, error)

	// UpdateUserToken replaces the stored API token for a user;
	// ErrNotFound if absent.
	UpdateUserToken(ctx context.Context, id int64, token string) error
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore

	// Close closes the underlying database connection.
	Close() error
}
