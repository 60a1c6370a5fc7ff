package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrCartCorrupt indicates the persisted cart payload could not be decoded.
	ErrCartCorrupt = errors.New("cart storage corrupt")
)
