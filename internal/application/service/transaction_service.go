package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finbook/finance-tracker/internal/domain/entity"
	"github.com/finbook/finance-tracker/internal/domain/repository"
	"github.com/finbook/finance-tracker/internal/infrastructure/cache"
	"github.com/google/uuid"
)

// Pagination defaults for list operations.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// TransactionPage is one page of a transaction listing
type TransactionPage struct {
	Transactions []*entity.Transaction
	TotalPages   int
	CurrentPage  int
}

// TransactionUpdate carries the fields of a partial update. Nil fields are
// left untouched on the stored record.
type TransactionUpdate struct {
	Type        *string
	Category    *string
	Amount      *float64
	Date        *time.Time
	Description *string
}

// TransactionService handles business logic for transactions, including the
// per-operation access scoping rules.
type TransactionService struct {
	repo  repository.TransactionRepository
	cache *cache.SummaryCache
}

// NewTransactionService creates a new transaction service. The cache may be
// nil; when present it is invalidated on every write.
func NewTransactionService(repo repository.TransactionRepository, summaryCache *cache.SummaryCache) *TransactionService {
	return &TransactionService{repo: repo, cache: summaryCache}
}

// Create stores a new transaction. The owner is always the authenticated
// user; a client-supplied owner is never trusted. The date defaults to the
// creation time.
func (s *TransactionService) Create(ctx context.Context, userID string, tx *entity.Transaction) (*entity.Transaction, error) {
	tx.ID = uuid.New().String()
	tx.UserID = userID

	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, err)
	}

	if _, err := s.repo.Store(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidate()
	return tx, nil
}

// List returns all transactions across all owners, paginated. A valid session
// is the only requirement; listing is intentionally not scoped to the caller.
func (s *TransactionService) List(ctx context.Context, page, limit int) (*TransactionPage, error) {
	txs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return paginate(txs, page, limit), nil
}

// ListByOwner returns the caller's own transactions, paginated.
func (s *TransactionService) ListByOwner(ctx context.Context, userID string, page, limit int) (*TransactionPage, error) {
	txs, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	return paginate(txs, page, limit), nil
}

// Get retrieves a transaction by id, visible only to its owner. A record
// owned by someone else is reported as missing, never as forbidden.
func (s *TransactionService) Get(ctx context.Context, id, userID string) (*entity.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tx.UserID != userID {
		return nil, fmt.Errorf("%w: transaction %s", entity.ErrNotFound, id)
	}

	return tx, nil
}

// Update merges the supplied fields into the record looked up by id.
// Ownership is deliberately not checked on update, unlike Get.
func (s *TransactionService) Update(ctx context.Context, id string, update TransactionUpdate) (*entity.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Type != nil {
		tx.Type = *update.Type
	}
	if update.Category != nil {
		tx.Category = *update.Category
	}
	if update.Amount != nil {
		tx.Amount = *update.Amount
	}
	if update.Date != nil {
		tx.Date = *update.Date
	}
	if update.Description != nil {
		tx.Description = *update.Description
	}

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, err)
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidate()
	return tx, nil
}

// Delete removes the record looked up by id. Ownership is deliberately not
// checked on delete, unlike Get.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate()
	return nil
}

func (s *TransactionService) invalidate() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// paginate applies skip/take over the full result set and computes the total
// page count as ceil(total/limit). Non-positive page or limit fall back to
// the defaults.
func paginate(txs []*entity.Transaction, page, limit int) *TransactionPage {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	totalPages := (len(txs) + limit - 1) / limit

	skip := (page - 1) * limit
	if skip > len(txs) {
		skip = len(txs)
	}

	take := skip + limit
	if take > len(txs) {
		take = len(txs)
	}

	return &TransactionPage{
		Transactions: txs[skip:take],
		TotalPages:   totalPages,
		CurrentPage:  page,
	}
}
