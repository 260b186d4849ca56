package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/finbook/finance-tracker/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock implementation of the transaction repository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Store(ctx context.Context, tx *entity.Transaction) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context) ([]*entity.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByOwner(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func makeTransactions(n int, userID string) []*entity.Transaction {
	txs := make([]*entity.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txs = append(txs, &entity.Transaction{
			ID:       fmt.Sprintf("tx-%03d", i),
			UserID:   userID,
			Type:     entity.TypeExpense,
			Category: "food",
			Amount:   float64(i + 1),
			Date:     time.Now(),
		})
	}
	return txs
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner is forced to the authenticated user", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		repo.On("Store", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.UserID == "alice-id" && tx.ID != "" && !tx.Date.IsZero()
		})).Return("some-id", nil).Once()

		// A client-supplied owner must be overwritten
		tx := &entity.Transaction{
			UserID:   "mallory-id",
			Type:     entity.TypeExpense,
			Category: "food",
			Amount:   20,
		}

		created, err := svc.Create(ctx, "alice-id", tx)
		assert.NoError(t, err)
		assert.Equal(t, "alice-id", created.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("Invalid type", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		tx := &entity.Transaction{Type: "transfer", Category: "food", Amount: 20}

		_, err := svc.Create(ctx, "alice-id", tx)
		assert.ErrorIs(t, err, entity.ErrValidation)
		repo.AssertNotCalled(t, "Store")
	})

	t.Run("Repository error", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		repo.On("Store", ctx, mock.Anything).Return("", errors.New("repository error")).Once()

		tx := &entity.Transaction{Type: entity.TypeIncome, Category: "salary", Amount: 100}

		_, err := svc.Create(ctx, "alice-id", tx)
		assert.Error(t, err)
		repo.AssertExpectations(t)
	})
}

func TestGetTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner sees own record", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		stored := &entity.Transaction{ID: "tx-1", UserID: "alice-id", Type: entity.TypeExpense, Category: "food", Amount: 20}
		repo.On("FindByID", ctx, "tx-1").Return(stored, nil).Once()

		tx, err := svc.Get(ctx, "tx-1", "alice-id")
		assert.NoError(t, err)
		assert.Equal(t, stored, tx)
	})

	t.Run("Foreign record reported as not found", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		stored := &entity.Transaction{ID: "tx-1", UserID: "alice-id", Type: entity.TypeExpense, Category: "food", Amount: 20}
		repo.On("FindByID", ctx, "tx-1").Return(stored, nil).Once()

		_, err := svc.Get(ctx, "tx-1", "bob-id")
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("Missing record", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		repo.On("FindByID", ctx, "nope").Return(nil, entity.ErrNotFound).Once()

		_, err := svc.Get(ctx, "nope", "alice-id")
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()

	t.Run("25 records, limit 10, page 3", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		repo.On("FindAll", ctx).Return(makeTransactions(25, "alice-id"), nil).Once()

		page, err := svc.List(ctx, 3, 10)
		assert.NoError(t, err)
		assert.Len(t, page.Transactions, 5)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 3, page.CurrentPage)
	})

	t.Run("Page past the end is empty", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		repo.On("FindAll", ctx).Return(makeTransactions(5, "alice-id"), nil).Once()

		page, err := svc.List(ctx, 9, 10)
		assert.NoError(t, err)
		assert.Empty(t, page.Transactions)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("Defaults applied for non-positive values", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		repo.On("FindAll", ctx).Return(makeTransactions(15, "alice-id"), nil).Once()

		page, err := svc.List(ctx, 0, -1)
		assert.NoError(t, err)
		assert.Len(t, page.Transactions, 10)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, 1, page.CurrentPage)
	})
}

func TestListByOwnerScoping(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	svc := NewTransactionService(repo, nil)

	// The owner-scoped listing only ever sees the owner's records,
	// regardless of how many records other users have.
	repo.On("FindByOwner", ctx, "alice-id").Return(makeTransactions(3, "alice-id"), nil).Once()

	page, err := svc.ListByOwner(ctx, "alice-id", 1, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Transactions, 3)
	for _, tx := range page.Transactions {
		assert.Equal(t, "alice-id", tx.UserID)
	}
	assert.Equal(t, 1, page.TotalPages)
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Merge leaves absent fields untouched", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		stored := &entity.Transaction{
			ID:          "tx-1",
			UserID:      "alice-id",
			Type:        entity.TypeExpense,
			Category:    "food",
			Amount:      20,
			Date:        time.Now(),
			Description: "groceries",
		}
		repo.On("FindByID", ctx, "tx-1").Return(stored, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Amount == 35 && tx.Category == "food" && tx.Description == "groceries"
		})).Return(nil).Once()

		amount := 35.0
		updated, err := svc.Update(ctx, "tx-1", TransactionUpdate{Amount: &amount})
		assert.NoError(t, err)
		assert.Equal(t, 35.0, updated.Amount)
		assert.Equal(t, "food", updated.Category)
		repo.AssertExpectations(t)
	})

	t.Run("No ownership check on update", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		stored := &entity.Transaction{ID: "tx-1", UserID: "alice-id", Type: entity.TypeExpense, Category: "food", Amount: 20}
		repo.On("FindByID", ctx, "tx-1").Return(stored, nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil).Once()

		// Update carries no caller identity at all; lookup is by id only
		amount := 1.0
		_, err := svc.Update(ctx, "tx-1", TransactionUpdate{Amount: &amount})
		assert.NoError(t, err)
	})

	t.Run("Merge result must still validate", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		stored := &entity.Transaction{ID: "tx-1", UserID: "alice-id", Type: entity.TypeExpense, Category: "food", Amount: 20}
		repo.On("FindByID", ctx, "tx-1").Return(stored, nil).Once()

		badType := "transfer"
		_, err := svc.Update(ctx, "tx-1", TransactionUpdate{Type: &badType})
		assert.ErrorIs(t, err, entity.ErrValidation)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("Missing record", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		repo.On("FindByID", ctx, "nope").Return(nil, entity.ErrNotFound).Once()

		amount := 1.0
		_, err := svc.Update(ctx, "nope", TransactionUpdate{Amount: &amount})
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Delete by id", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		repo.On("Delete", ctx, "tx-1").Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, "tx-1"))
		repo.AssertExpectations(t)
	})

	t.Run("Missing record", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo, nil)

		repo.On("Delete", ctx, "nope").Return(entity.ErrNotFound).Once()

		assert.ErrorIs(t, svc.Delete(ctx, "nope"), entity.ErrNotFound)
	})
}
