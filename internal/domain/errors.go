package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// AccountNotFoundError is returned when the account service cannot resolve an account
// or resolves it with no associated users. It matches ErrNotFound.
type AccountNotFoundError struct {
	AccountID int
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %d not found", e.AccountID)
}

func (e *AccountNotFoundError) StatusCode() int { return http.StatusNotFound }

// Is allows errors.Is() to match against ErrNotFound
func (e *AccountNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// QuotaExceededError is returned when an account cannot hold one more resource of a kind,
// either because the plan limit is reached or because the limit could not be fetched.
// It matches ErrForbidden.
type QuotaExceededError struct {
	AccountID int
	Resource  string
	Current   int
	Max       int
	Unknown   bool // plan limit lookup failed
}

func (e *QuotaExceededError) Error() string {
	if e.Unknown {
		return fmt.Sprintf("%s quota for account %d is unavailable", e.Resource, e.AccountID)
	}
	return fmt.Sprintf("%s quota exceeded for account %d (%d/%d)", e.Resource, e.AccountID, e.Current, e.Max)
}

func (e *QuotaExceededError) StatusCode() int { return http.StatusForbidden }

// Is allows errors.Is() to match against ErrForbidden
func (e *QuotaExceededError) Is(target error) bool {
	return target == ErrForbidden
}

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // asset or category
	ResourceID   int
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
