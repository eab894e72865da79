package report

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredField is matched by every *MissingFieldError.
	ErrMissingRequiredField = errors.New("missing required field")

	ErrNotFound           = errors.New("record not found")
	ErrUnsupportedVersion = errors.New("unsupported export version")
)

// MissingFieldError reports a blank required submission field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingRequiredField }

// InvalidDocumentError reports an export document that fails schema
// validation or cannot be decoded.
type InvalidDocumentError struct {
	Err error
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid export document: %v", e.Err)
}

func (e *InvalidDocumentError) Unwrap() error { return e.Err }
