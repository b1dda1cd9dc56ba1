package store

import (
	"errors"
	"fmt"
)

// ErrNotFound covers operations on a label or template that no longer
// exists, e.g. a stale event arriving after a concurrent close. Callers
// in the interaction layer treat it as a silent no-op.
var ErrNotFound = errors.New("not found")

// ErrEmptyClipboard is returned by PasteInto when nothing was copied.
var ErrEmptyClipboard = errors.New("clipboard is empty")

// ValidationError aborts an operation before any state is mutated. It
// is surfaced to the user as a blocking prompt.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// NameConflictError reports a duplicate template name. The store never
// silently overwrites: the caller confirms, deletes the old template,
// and retries.
type NameConflictError struct {
	Name string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("template %q already exists", e.Name)
}

// StorageError wraps a persistence read or write failure. It is
// reported once via TakeStorageError; the in-memory collections remain
// authoritative for the rest of the session.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
