package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the services wraps exactly one of these,
// and the HTTP layer maps them to status codes with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrStorage     = errors.New("storage error")
	ErrPersistence = errors.New("persistence error")
)

var (
	ErrInvalidCategory     = fmt.Errorf("%w: invalid category", ErrValidation)
	ErrUnsupportedFileType = fmt.Errorf("%w: only .jpg, .jpeg, .png files are allowed", ErrValidation)
	ErrMissingFile         = fmt.Errorf("%w: no file uploaded", ErrValidation)
	ErrInvalidFilename     = fmt.Errorf("%w: invalid filename", ErrValidation)
	ErrInvalidVideo        = fmt.Errorf("%w: link and description are required", ErrValidation)
	ErrDuplicateRecord     = fmt.Errorf("%w: record already exists", ErrPersistence)
)

// StorageError wraps a blob store failure for the given operation.
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// PersistenceError wraps a record index or video store failure for the given operation.
func PersistenceError(op string, err error) error {
	if errors.Is(err, ErrPersistence) || errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
