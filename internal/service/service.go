package service

import (
	"errors"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("studynotes/internal/service")

var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("note not found")
	ErrReaderNil          = errors.New("reader is nil")
	ErrValidation         = errors.New("validation failed")
	ErrFileTooLarge       = errors.New("file too large")
	ErrForbidden          = errors.New("forbidden")
	ErrUnsupportedFormat  = errors.New("file type cannot be previewed securely")
	ErrIdentityRequired   = errors.New("identity required")
	ErrInvalidSignature   = errors.New("payment signature mismatch")
	ErrPaymentClaimed     = errors.New("payment already used by another account")
	ErrPaymentUnavailable = errors.New("payments are not configured")
	ErrOrderMismatch      = errors.New("payment does not match an issued order")
	ErrPaymentProvider    = errors.New("payment provider unavailable")
)
