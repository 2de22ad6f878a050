// Package repository holds errors and helpers shared by the per-entity
// repository packages.
package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("record not found")

	// ErrOverlap is returned by conditional writes when the requested
	// interval is already occupied on the provider's timeline.
	ErrOverlap = errors.New("overlapping interval exists")

	// ErrStale is returned by status-guarded writes when the record exists
	// but is no longer in the status the transition started from.
	ErrStale = errors.New("record status changed concurrently")
)
