package repository

import "errors"

var (
	// ErrNotFound is returned when a requested path or entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrPathEscape is returned when a path resolves outside the data root
	ErrPathEscape = errors.New("path escapes data root")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
