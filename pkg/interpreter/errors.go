package interpreter

import (
	"errors"
	"fmt"

	"tinyc/interpreter-go/pkg/runtime"
)

// ErrorCategory classifies fatal evaluation errors.
type ErrorCategory string

const (
	CategoryDeclaration ErrorCategory = "declaration"
	CategoryResolution  ErrorCategory = "resolution"
	CategoryType        ErrorCategory = "type"
	CategoryRuntime     ErrorCategory = "runtime"
)

// RuntimeError is a fatal condition. Evaluation stops at the first one.
type RuntimeError struct {
	Category ErrorCategory
	Line     int
	Message  string
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[Runtime/Semantic Error at line %d]: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("[Runtime/Semantic Error]: %s", e.Message)
}

func newError(category ErrorCategory, line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Category: category, Line: line, Message: fmt.Sprintf(format, args...)}
}

func resolutionError(line int, format string, args ...any) *RuntimeError {
	return newError(CategoryResolution, line, format, args...)
}

func typeError(line int, format string, args ...any) *RuntimeError {
	return newError(CategoryType, line, format, args...)
}

func runtimeFailure(line int, format string, args ...any) *RuntimeError {
	return newError(CategoryRuntime, line, format, args...)
}

// DeclarationFailure converts a scope declaration error into a RuntimeError.
// Other errors are returned unchanged.
func DeclarationFailure(err error, line int) error {
	var decl *runtime.DeclarationError
	if errors.As(err, &decl) {
		return &RuntimeError{Category: CategoryDeclaration, Line: line, Message: decl.Error()}
	}
	return err
}

// AsRuntimeError extracts a *RuntimeError from err.
func AsRuntimeError(err error) (*RuntimeError, bool) {
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return rtErr, true
	}
	return nil, false
}

// returnSignal unwinds a function body up to its call boundary.
type returnSignal struct {
	value runtime.Value
	line  int
}

func (r returnSignal) Error() string {
	return "return"
}
