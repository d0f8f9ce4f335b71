package view

import "errors"

// Errors returned by the engine. Callers match them with errors.Is.
var (
	ErrKeyCollision    = errors.New("column labels derive the same key")
	ErrEmptyKey        = errors.New("column label derives an empty key")
	ErrUnknownColumn   = errors.New("unknown column key")
	ErrInvalidPageSize = errors.New("page size must be a positive integer")
	ErrRowOutOfRange   = errors.New("row is not on the visible page")
)
