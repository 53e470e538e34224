package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a uniqueness constraint rejected a creation,
	// e.g. an identity already exists for the phone number.
	ErrConflict = errors.New("record already exists")
)
