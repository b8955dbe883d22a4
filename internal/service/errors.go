package service

import "errors"

// Error kinds returned by the ledger and aggregator operations.
// Callers classify with errors.Is; the wrapped message carries the detail.
var (
	ErrValidation = errors.New("validation failed")
	ErrState      = errors.New("invalid state transition")
	ErrAuth       = errors.New("unauthenticated")
	ErrNotFound   = errors.New("not found")
)
