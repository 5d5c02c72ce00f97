package core

import "errors"

// Common errors.
var (
	ErrReadOnly     = errors.New("storage is in read-only mode")
	ErrSlotNotFound = errors.New("storage slot not found")
	ErrNotFound     = errors.New("note not found")
	ErrEmptyID      = errors.New("note ID cannot be empty")
	ErrUnsupported  = errors.New("operation not supported by storage")
)
