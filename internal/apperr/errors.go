// Package apperr holds sentinel errors shared across the conversion pipeline.
package apperr

import "errors"

var (
	ErrMalformedHeader   = errors.New("malformed header")
	ErrInputNotFound     = errors.New("input not found")
	ErrNotDirectory      = errors.New("not a directory")
	ErrOutputInsideInput = errors.New("output directory is inside input directory")
)
