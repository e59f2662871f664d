package store

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist,
	// or exists but belongs to a different user.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when a uniqueness constraint is
	// violated, such as registering a duplicate username.
	ErrAlreadyExists = errors.New("record already exists")
)
