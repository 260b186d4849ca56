package entity

import (
	"errors"
	"time"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction represents a single income or expense record owned by a user
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
}

// Validate ensures the transaction meets all requirements
func (t *Transaction) Validate() error {
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return errors.New("type must be either income or expense")
	}

	if t.Category == "" {
		return errors.New("category is required")
	}

	if t.UserID == "" {
		return errors.New("transaction must have an owner")
	}

	return nil
}
