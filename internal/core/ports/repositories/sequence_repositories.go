package repositories

import "context"

// SequenceAllocator issues unique, monotonically increasing AP document
// numbers per fiscal year. Implementations must serialize concurrent
// allocations within a year; a read-then-increment without serialization is
// not a valid implementation.
type SequenceAllocator interface {
	// NextAPNumber returns the next number in "AP-<year>-NNNN" form.
	// Returns a validation-kind error once the 4-digit space for the year
	// is exhausted.
	NextAPNumber(ctx context.Context, year int) (string, error)
}
