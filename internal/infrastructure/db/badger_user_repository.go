// Package db internal/infrastructure/db/badger_user_repository.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/finbook/finance-tracker/internal/domain/entity"
)

const (
	userKeyPrefix     = "user:id:"
	userNameKeyPrefix = "user:name:"
)

// BadgerUserRepository implements the user repository interface using
// BadgerDB. A secondary key per user name enforces name uniqueness; both keys
// are written inside one update transaction.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerDB user repository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

func userKey(id string) []byte {
	return []byte(userKeyPrefix + id)
}

func userNameKey(name string) []byte {
	return []byte(userNameKeyPrefix + name)
}

// Store saves a new user and returns its ID. Fails with
// entity.ErrDuplicateUser if the name is already taken.
func (r *BadgerUserRepository) Store(ctx context.Context, user *entity.User) (string, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to marshal user: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(userNameKey(user.Name))
		if err == nil {
			return entity.ErrDuplicateUser
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set(userNameKey(user.Name), []byte(user.ID)); err != nil {
			return err
		}
		return txn.Set(userKey(user.ID), data)
	})

	if errors.Is(err, entity.ErrDuplicateUser) {
		return "", fmt.Errorf("%w: %s", entity.ErrDuplicateUser, user.Name)
	}

	if err != nil {
		return "", fmt.Errorf("failed to store user: %w", err)
	}

	return user.ID, nil
}

// FindByName retrieves a user by its unique name
func (r *BadgerUserRepository) FindByName(ctx context.Context, name string) (*entity.User, error) {
	var user entity.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userNameKey(name))
		if err != nil {
			return err
		}

		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}

		item, err = txn.Get(userKey(id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: user %s", entity.ErrNotFound, name)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return &user, nil
}

// FindByID retrieves a user by its unique identifier
func (r *BadgerUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: user %s", entity.ErrNotFound, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return &user, nil
}
