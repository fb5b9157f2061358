package tensor

import (
	"errors"
	"fmt"
)

// ErrIndexing is matched (via errors.Is) by every indexing failure,
// including broadcast failures.
var ErrIndexing = errors.New("indexing error")

// Kinds of indexing failures.
var (
	ErrRankMismatch       = errors.New("index rank mismatch")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrNegativeIndex      = errors.New("negative index")
	ErrStrideMismatch     = errors.New("strides do not match shape")
	ErrInvalidPermutation = errors.New("invalid permutation")
	ErrStorageSize        = errors.New("storage size does not match shape")
	ErrBroadcast          = errors.New("broadcast failure")
)

// IndexingError provides detailed information about an indexing failure.
type IndexingError struct {
	Kind    error  // One of the ErrXxx kinds above
	Details string // Human readable description
}

func newIndexingError(kind error, format string, args ...any) *IndexingError {
	return &IndexingError{Kind: kind, Details: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *IndexingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Details)
}

// Unwrap exposes both ErrIndexing and the specific kind.
func (e *IndexingError) Unwrap() []error {
	return []error{ErrIndexing, e.Kind}
}

// IsBroadcastError reports whether err is a broadcast failure.
func IsBroadcastError(err error) bool {
	return errors.Is(err, ErrBroadcast)
}
