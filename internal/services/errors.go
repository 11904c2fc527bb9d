package services

import (
	"errors"
)

var (
	// ErrMissingField is a validation failure reported before any
	// storage write.
	ErrMissingField = errors.New("missing required field")

	// ErrNotFound means the id (or type + id) does not resolve to a
	// record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken means the record exists but the presented
	// confirmation token does not match the stored one.
	ErrInvalidToken = errors.New("invalid confirmation token")
)
