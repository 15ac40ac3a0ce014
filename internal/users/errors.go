package users

import "errors"

var (
	// ErrNotFound indicates the user or username index entry doesn't exist.
	ErrNotFound = errors.New("user not found")

	// ErrInvalid indicates a record that cannot be stored.
	ErrInvalid = errors.New("invalid user")
)
