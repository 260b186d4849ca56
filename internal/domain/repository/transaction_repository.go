package repository

import (
	"context"

	"github.com/finbook/finance-tracker/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction storage
type TransactionRepository interface {
	// Store saves a transaction and returns its ID
	Store(ctx context.Context, transaction *entity.Transaction) (string, error)

	// FindByID retrieves a transaction by its unique identifier
	FindByID(ctx context.Context, id string) (*entity.Transaction, error)

	// FindAll retrieves every stored transaction across all owners
	FindAll(ctx context.Context) ([]*entity.Transaction, error)

	// FindByOwner retrieves all transactions owned by the given user
	FindByOwner(ctx context.Context, userID string) ([]*entity.Transaction, error)

	// Update overwrites an existing transaction
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction by its unique identifier
	Delete(ctx context.Context, id string) error
}
