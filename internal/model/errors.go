package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConflict is returned when registering a username that is taken.
	ErrConflict = errors.New("username already exists")

	// ErrInvalidCredentials is returned for any failed login. Unknown users
	// and wrong passwords are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFormat matches every *StartTimeError.
	ErrInvalidFormat = errors.New("invalid format")
)

// NotFoundError reports a folder or todo id with no record.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StartTimeError reports an unparseable start time.
type StartTimeError struct {
	Value string
	Err   error
}

func (e *StartTimeError) Error() string {
	return "invalid startTime format: " + e.Value
}

func (e *StartTimeError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func (e *StartTimeError) Unwrap() error {
	return e.Err
}

// FieldError is one failed constraint on a request field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every failed field constraint of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return strings.Join(parts, ", ")
}
