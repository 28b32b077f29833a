// Package storage provides the opaque string stores that sort preferences
// are persisted to. A store only knows keys and string values; what the
// strings mean is up to the caller.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoRequest is returned by request-bound stores when the context
	// carries no HTTP request.
	ErrNoRequest = errors.New("no http request bound to context")
)

// StringStore is a key-value store of strings scoped to a single visitor.
type StringStore interface {
	// Get returns the value stored under key. The boolean is false when
	// nothing has been stored yet.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Provider hands out the StringStore belonging to a visitor.
type Provider interface {
	ForVisitor(visitorID string) StringStore
}

// DatabaseError represents a failed store operation
type DatabaseError struct {
	Type    string
	Message string
	Err     error
}

func (e *DatabaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// Common database error types
const (
	ErrTypeConnection = "CONNECTION_ERROR"
	ErrTypeQuery      = "QUERY_ERROR"
	ErrTypeSchema     = "SCHEMA_ERROR"
)

// WrapDatabaseError wraps a database error with additional context
func WrapDatabaseError(errType, message string, err error) *DatabaseError {
	return &DatabaseError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}
