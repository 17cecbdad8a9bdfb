// Package errors defines the recoverable error taxonomy of the mutation
// engine. Everything here is expected to be relayed to the user as a
// clarifying message; only ErrStorage indicates a fault in the underlying
// store.
package errors

import (
	"errors"
	"fmt"

	"github.com/minhngoc/ringside/internal/models"
)

// ErrMissingOwner is returned when no owner id was supplied.
var ErrMissingOwner = errors.New("owner is required")

// ErrNoMatchingRecords is returned when a mutation request resolved to zero
// candidates. It is a normal outcome, not a fault.
var ErrNoMatchingRecords = errors.New("no matching records")

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// ErrInvalidOperation reports an unknown mutation operation.
type ErrInvalidOperation struct {
	Operation string
}

func (e *ErrInvalidOperation) Error() string {
	return fmt.Sprintf("invalid operation: %q", e.Operation)
}

// ErrInvalidSettleResult reports a settle target outside {win, loss, push}.
type ErrInvalidSettleResult struct {
	Result string
}

func (e *ErrInvalidSettleResult) Error() string {
	return fmt.Sprintf("invalid settle result: %q (want win, loss or push)", e.Result)
}

// ErrConfirmationRequired is returned by apply when the recomputed preview
// requires confirmation and none was given. It carries the preview so the
// caller can re-render what would happen.
type ErrConfirmationRequired struct {
	Preview *models.MutationPreview
}

func (e *ErrConfirmationRequired) Error() string {
	return "confirmation required before applying this mutation"
}

// ErrStorage wraps a failure of the underlying store. The transactional
// boundary guarantees no partial effects were committed.
type ErrStorage struct {
	Err error
}

func (e *ErrStorage) Error() string {
	return "storage failure: " + e.Err.Error()
}

func (e *ErrStorage) Unwrap() error {
	return e.Err
}
