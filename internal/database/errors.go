package database

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound indicates an operation referenced a missing primary key.
var ErrNotFound = errors.New("record not found")

// ErrUnsupportedFormat indicates a document import whose format no renderer
// understands. No record is created.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrReferentialViolation indicates an attempt to attach a dependent record to
// a document id that does not exist in the catalog.
var ErrReferentialViolation = errors.New("referenced document does not exist")

// StoreError wraps a failure of the underlying storage medium together with
// the logical operation that hit it. Retryable by the caller; never swallowed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// WrapStore annotates a raw medium error with the logical operation, passing
// nil through unchanged.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// ClearError reports exactly which collections a bulk clear failed to wipe,
// never just "some failed".
type ClearError struct {
	Failed map[string]error
}

func (e *ClearError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for name := range e.Failed {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("clear failed for collections: %s", strings.Join(names, ", "))
}
