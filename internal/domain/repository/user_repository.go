package repository

import (
	"context"

	"github.com/finbook/finance-tracker/internal/domain/entity"
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	// Store saves a new user and returns its ID. Fails with
	// entity.ErrDuplicateUser if the name is already taken.
	Store(ctx context.Context, user *entity.User) (string, error)

	// FindByName retrieves a user by its unique name
	FindByName(ctx context.Context, name string) (*entity.User, error)

	// FindByID retrieves a user by its unique identifier
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
