package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/finbook/finance-tracker/internal/domain/entity"
)

const txKeyPrefix = "tx:"

// BadgerTransactionRepository implements the transaction repository interface using BadgerDB
type BadgerTransactionRepository struct {
	db *badger.DB
}

// NewBadgerTransactionRepository creates a new BadgerDB transaction repository
func NewBadgerTransactionRepository(db *badger.DB) *BadgerTransactionRepository {
	return &BadgerTransactionRepository{db: db}
}

func txKey(id string) []byte {
	return []byte(txKeyPrefix + id)
}

// Store saves a transaction and returns its ID
func (r *BadgerTransactionRepository) Store(ctx context.Context, tx *entity.Transaction) (string, error) {
	data, err := json.Marshal(tx)
	if err != nil {
		return "", fmt.Errorf("failed to marshal transaction: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(txKey(tx.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store transaction: %w", err)
	}

	return tx.ID, nil
}

// FindByID retrieves a transaction by its unique identifier
func (r *BadgerTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var tx entity.Transaction

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(txKey(id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tx)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: transaction %s", entity.ErrNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transaction: %w", err)
	}

	return &tx, nil
}

// FindAll retrieves every stored transaction across all owners, in key order
func (r *BadgerTransactionRepository) FindAll(ctx context.Context) ([]*entity.Transaction, error) {
	var txs []*entity.Transaction

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(txKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var tx entity.Transaction
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tx)
			})
			if err != nil {
				return err
			}
			txs = append(txs, &tx)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return txs, nil
}

// FindByOwner retrieves all transactions owned by the given user, in key order
func (r *BadgerTransactionRepository) FindByOwner(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var txs []*entity.Transaction
	for _, tx := range all {
		if tx.UserID == userID {
			txs = append(txs, tx)
		}
	}

	return txs, nil
}

// Update overwrites an existing transaction. Fails with entity.ErrNotFound if
// the transaction does not exist.
func (r *BadgerTransactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(txKey(tx.ID)); err != nil {
			return err
		}
		return txn.Set(txKey(tx.ID), data)
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: transaction %s", entity.ErrNotFound, tx.ID)
	}

	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return nil
}

// Delete removes a transaction by its unique identifier. Fails with
// entity.ErrNotFound if the transaction does not exist.
func (r *BadgerTransactionRepository) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(txKey(id)); err != nil {
			return err
		}
		return txn.Delete(txKey(id))
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: transaction %s", entity.ErrNotFound, id)
	}

	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}
