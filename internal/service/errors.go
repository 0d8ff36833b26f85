package service

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"confidencevoice/internal/repository"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var (
	ErrNotFound          = repository.ErrNotFound
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrDuplicateCheckout = fmt.Errorf("checkout already submitted: %w", ErrConflict)
	ErrEmptyCart         = fmt.Errorf("your cart is empty: %w", ErrValidation)
	ErrInvalidStatus     = fmt.Errorf("invalid status value: %w", ErrValidation)
)

// ValidationError reports one message per offending request field.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Message: msg, Fields: map[string]string{field: msg}}
}

// DuplicateCheckoutError is returned when an idempotency key was already used. OrderID is
// set once the earlier attempt has completed.
type DuplicateCheckoutError struct {
	OrderID string
}

func (e *DuplicateCheckoutError) Error() string {
	if e.OrderID == "" {
		return "checkout already in progress"
	}
	return "checkout already completed as " + e.OrderID
}

func (e *DuplicateCheckoutError) Unwrap() error { return ErrDuplicateCheckout }

const (
	mysqlDuplicateEntry = 1062
	mysqlNoReferenced   = 1452
)

// translate maps driver level failures onto the service sentinels.
func translate(err error, what string) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return fmt.Errorf("%s already exists: %w", what, ErrConflict)
		case mysqlNoReferenced:
			return fmt.Errorf("%s refers to a missing record: %w", what, ErrNotFound)
		}
	}
	return err
}
