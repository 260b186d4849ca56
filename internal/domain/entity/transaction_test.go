package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		ID:       "tx-1",
		UserID:   "user-1",
		Type:     TypeExpense,
		Category: "food",
		Amount:   20,
		Date:     time.Now(),
	}

	t.Run("Valid transaction", func(t *testing.T) {
		tx := valid
		assert.NoError(t, tx.Validate())
	})

	t.Run("Unknown type", func(t *testing.T) {
		tx := valid
		tx.Type = "transfer"
		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "income or expense")
	})

	t.Run("Missing category", func(t *testing.T) {
		tx := valid
		tx.Category = ""
		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "category is required")
	})

	t.Run("Missing owner", func(t *testing.T) {
		tx := valid
		tx.UserID = ""
		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "owner")
	})

	t.Run("Negative amount allowed", func(t *testing.T) {
		// The type field carries the income/expense distinction; the sign
		// of the amount is not constrained.
		tx := valid
		tx.Amount = -5
		assert.NoError(t, tx.Validate())
	})
}

func TestUserValidate(t *testing.T) {
	t.Run("Valid user", func(t *testing.T) {
		u := User{ID: "u-1", Name: "alice", PasswordHash: "hash"}
		assert.NoError(t, u.Validate())
	})

	t.Run("Missing name", func(t *testing.T) {
		u := User{ID: "u-1", PasswordHash: "hash"}
		assert.Error(t, u.Validate())
	})

	t.Run("Missing password hash", func(t *testing.T) {
		u := User{ID: "u-1", Name: "alice"}
		assert.Error(t, u.Validate())
	})
}
