package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes surfaced in the HTTP envelope.
const (
	CodeValidationFailed       = "validation_failed"
	CodeDuplicateLotCode       = "duplicate_lot_code"
	CodeDuplicateFichaCode     = "duplicate_ficha_code"
	CodeNotFound               = "not_found"
	CodeLoteNotFound           = "lote_not_found"
	CodeImmutableField         = "immutable_field"
	CodeStorageFailure         = "storage_failure"
	CodeExternalStorageFailure = "external_storage_failure"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(err error) *Error {
	return New(http.StatusBadRequest, CodeValidationFailed, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

// Storage wraps a persistence failure without leaking driver detail
// to the caller; the original error stays reachable via Unwrap for logs.
func Storage(err error) *Error {
	return New(http.StatusInternalServerError, CodeStorageFailure, err)
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
