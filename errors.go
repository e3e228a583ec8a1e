package schemamap

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for reverse-engineering operations.
var (
	// ErrUnknownEntity is returned when a requested entity has no
	// corresponding table in the classification snapshot.
	ErrUnknownEntity = errors.New("schemamap: unknown entity")

	// ErrIntrospection is returned when a single table could not be
	// described by the introspection layer.
	ErrIntrospection = errors.New("schemamap: introspection failed")

	// ErrUnsupportedType is returned when a column type cannot be
	// represented in the schema snapshot.
	ErrUnsupportedType = errors.New("schemamap: unsupported column type")
)

// UnknownEntityError represents a request for an entity name that is
// not part of the inferred entity set.
type UnknownEntityError struct {
	entity string
}

// Error returns the error string.
func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("schemamap: unknown entity %q", e.entity)
}

// Is reports whether the target error matches UnknownEntityError.
// This allows errors.Is(err, ErrUnknownEntity) to return true.
func (e *UnknownEntityError) Is(err error) bool {
	return err == ErrUnknownEntity
}

// Entity returns the requested entity name.
func (e *UnknownEntityError) Entity() string {
	return e.entity
}

// NewUnknownEntityError returns a new UnknownEntityError for the given entity name.
func NewUnknownEntityError(entity string) *UnknownEntityError {
	return &UnknownEntityError{entity: entity}
}

// IsUnknownEntity returns true if the error is an UnknownEntityError.
func IsUnknownEntity(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownEntityError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownEntity)
}

// IntrospectionError represents a failure to describe one table.
// It is never fatal to a whole reverse-engineering pass: the table
// is dropped from the snapshot instead.
type IntrospectionError struct {
	Table string
	Cause error
}

// Error implements the error interface.
func (e *IntrospectionError) Error() string {
	var b strings.Builder
	b.WriteString("schemamap: introspection failed")
	if e.Table != "" {
		b.WriteString(" for table ")
		b.WriteString(e.Table)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *IntrospectionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for IntrospectionError.
func (e *IntrospectionError) Is(target error) bool {
	return target == ErrIntrospection
}

// NewIntrospectionError creates a new IntrospectionError.
func NewIntrospectionError(table string, cause error) *IntrospectionError {
	return &IntrospectionError{Table: table, Cause: cause}
}

// IsIntrospectionError reports whether the error is an IntrospectionError.
func IsIntrospectionError(err error) bool {
	var e *IntrospectionError
	return errors.As(err, &e)
}

// UnsupportedTypeError is returned when a column type has no
// representation in the snapshot model.
type UnsupportedTypeError struct {
	Table  string
	Column string
	Type   string
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schemamap: unsupported type %q for column %s.%s", e.Type, e.Table, e.Column)
	}
	return fmt.Sprintf("schemamap: unsupported type for column %s.%s", e.Table, e.Column)
}

// Is reports whether the target matches the sentinel error for UnsupportedTypeError.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// NewUnsupportedTypeError creates a new UnsupportedTypeError.
func NewUnsupportedTypeError(table, column, typ string) *UnsupportedTypeError {
	return &UnsupportedTypeError{Table: table, Column: column, Type: typ}
}
