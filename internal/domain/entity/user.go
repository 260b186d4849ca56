package entity

import (
	"errors"
	"time"
)

// User represents a registered identity. Names are unique across all users.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate ensures the user meets all requirements
func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}

	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}

	return nil
}
