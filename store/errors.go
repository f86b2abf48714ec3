package store

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	// ErrNotFound is returned when a requested item does not exist, or an
	// index query matches zero items.
	ErrNotFound = errors.New("dynamoninja: item not found")

	// ErrValidation is wrapped by errors reported for malformed arguments
	// (empty table or index names, missing keys). Validation happens before
	// any store call is issued.
	ErrValidation = errors.New("dynamoninja: invalid argument")
)

// ProviderError wraps any DynamoDB failure other than the recognized
// not-found signal. The original error is preserved and reachable through
// errors.As / errors.Unwrap.
type ProviderError struct {
	// Op is the logical operation that failed ("get", "batch write", ...).
	Op string

	// Table is the table the operation targeted.
	Table string

	// Err is the underlying store failure.
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("dynamoninja: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// normalize wraps a raw client error as a ProviderError, preserving its
// original detail. A nil error stays nil.
func normalize(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Op: op, Table: table, Err: err}
}

// isNotFoundSignal reports whether err is the store's distinguishable
// resource-not-found failure. Only the single-item fetch treats this as
// absence; every other operation passes it through as a provider failure.
func isNotFoundSignal(err error) bool {
	var nf *types.ResourceNotFoundException
	return errors.As(err, &nf)
}

// invalidf builds a validation error. The result matches ErrValidation
// under errors.Is.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
