package entity

import "errors"

// Sentinel errors forming the application error taxonomy. Services wrap these
// with %w; handlers map them to HTTP statuses with errors.Is.
var (
	// ErrNotFound is returned when a record does not exist or is not visible
	// to the caller.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUser is returned when a registration name is already taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials is returned on login with an unknown name or a
	// wrong password. The two cases are not distinguished.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoToken is returned when a request carries no session token.
	ErrNoToken = errors.New("no token")

	// ErrInvalidToken is returned when a session token fails verification.
	// Expired and tampered tokens surface identically.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidDate is returned when a supplied date string does not parse.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrValidation is returned when a record fails entity validation.
	ErrValidation = errors.New("validation failed")
)
