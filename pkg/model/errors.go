package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the operation error taxonomy.
var (
	ErrEmptyStructure = errors.New("structure is empty")
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicate      = errors.New("duplicate")
)

// OperationError describes a declined operation. The structure it refers to
// is left exactly as it was before the operation started.
type OperationError struct {
	Op        string // Operation that was declined (e.g., "pop", "deleteByKey")
	Structure Kind   // Structure family
	Key       string // Offending key, vertex or position (if applicable)
	Notice    string // User-facing message (e.g., "Stack Underflow")
	Cause     error  // One of the sentinel errors
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	msg := e.Notice
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Key != "" {
		return fmt.Sprintf("%s %s (%s): %s", e.Op, e.Structure, e.Key, msg)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Structure, msg)
}

// Unwrap returns the underlying cause for error chain support.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *OperationError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building OperationErrors.
type ErrorBuilder struct {
	err OperationError
}

// NewError creates a new error builder for the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: OperationError{Op: op}}
}

// On sets the structure family.
func (b *ErrorBuilder) On(kind Kind) *ErrorBuilder {
	b.err.Structure = kind
	return b
}

// Key sets the offending key.
func (b *ErrorBuilder) Key(key any) *ErrorBuilder {
	b.err.Key = fmt.Sprint(key)
	return b
}

// Notice sets the user-facing message.
func (b *ErrorBuilder) Notice(format string, args ...any) *ErrorBuilder {
	b.err.Notice = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying sentinel.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed OperationError.
func (b *ErrorBuilder) Build() *OperationError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// EmptyError creates an empty-structure error with the given notice.
func EmptyError(op string, kind Kind, notice string) error {
	return NewError(op).On(kind).Cause(ErrEmptyStructure).Notice("%s", notice).Err()
}

// NotFoundError creates a not-found error for key.
func NotFoundError(op string, kind Kind, key any, notice string) error {
	return NewError(op).On(kind).Key(key).Cause(ErrNotFound).Notice("%s", notice).Err()
}

// DuplicateError creates a duplicate notice for key.
func DuplicateError(op string, kind Kind, key any, notice string) error {
	return NewError(op).On(kind).Key(key).Cause(ErrDuplicate).Notice("%s", notice).Err()
}

// InvalidInputError creates an invalid-input error.
func InvalidInputError(op string, kind Kind, format string, args ...any) error {
	return NewError(op).On(kind).Cause(ErrInvalidInput).Notice(format, args...).Err()
}

// IsEmpty checks if an error is an empty-structure error.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmptyStructure)
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if an error is an invalid-input error.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsDuplicate checks if an error is a duplicate notice.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// NoticeOf returns the user-facing message carried by err.
func NoticeOf(err error) string {
	if err == nil {
		return ""
	}
	var opErr *OperationError
	if errors.As(err, &opErr) && opErr.Notice != "" {
		return opErr.Notice
	}
	return err.Error()
}
