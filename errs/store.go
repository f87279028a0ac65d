package errs

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// FromStore maps a raw store error onto one of this package's kinds. Errors
// that are already an ApiErr pass through untouched so repositories can
// return their own validation/duplicate/not-found results through a single
// exit path.
func FromStore(operation string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(operation)
	}

	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "UNIQUE constraint failed"),
		strings.Contains(errStr, "duplicate key"):
		return &ApiErr{
			StatusCode: 409,
			err:        ErrDuplicateKey,
			Details:    operation,
			Cause:      err,
		}
	}

	// Anything else means the backing medium failed us mid-operation.
	return NewStorageError(operation, err)
}
