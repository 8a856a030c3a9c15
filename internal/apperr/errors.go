// Package apperr holds the sentinel errors shared across transports.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidQuery = errors.New("invalid query")
)
