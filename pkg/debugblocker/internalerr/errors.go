// Package internalerr defines the sentinel errors surfaced to callers of
// debugblocker.Run. Wrap one of these with fmt.Errorf's %w so callers can
// distinguish failure kinds with errors.Is.
package internalerr

import "errors"

// Sentinel errors, one per failure kind in the error taxonomy.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrSchemaMismatch   = errors.New("schema mismatch")
	ErrNoUsableFeatures = errors.New("no usable features")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrConfigEmpty      = errors.New("no configurations generated")
)
