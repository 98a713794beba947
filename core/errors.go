package core

import "github.com/pkg/errors"

var (
	ErrDocNotFound = errors.New("document not found")
	ErrDocExists   = errors.New("document already exists")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// StoreError wraps a failed write to the document store.
// Retryable errors are reported to clients so that they keep their draft and try again.
type StoreError struct {
	Err       error
	Retryable bool
}

func NewStoreError(err error, retryable bool) error {
	return &StoreError{Err: err, Retryable: retryable}
}

func (err StoreError) Error() string {
	if err.Err == nil {
		return "document store failure"
	}
	return err.Err.Error()
}

func (err StoreError) Unwrap() error { return err.Err }

func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
