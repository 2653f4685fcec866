package interpreter

import (
	"strings"
	"testing"

	"tinyc/interpreter-go/pkg/runtime"
)

// newTestInterpreter returns an interpreter over a fresh global scope whose
// print output is captured in the returned builder.
func newTestInterpreter() (*Interpreter, *runtime.Scope, *strings.Builder) {
	global := runtime.NewGlobalScope()
	var out strings.Builder
	return NewWithOptions(global, Options{Stdout: &out}), global, &out
}

func declareVar(t *testing.T, scope *runtime.Scope, name, typeName string, value runtime.Value) *runtime.Binding {
	t.Helper()
	binding, err := scope.DeclareVar(name, typeName, value)
	if err != nil {
		t.Fatalf("declare %s: %v", name, err)
	}
	return binding
}

func childScope(t *testing.T, parent *runtime.Scope, kind runtime.ScopeKind, owner string) *runtime.Scope {
	t.Helper()
	child, err := parent.NewChild(kind, owner)
	if err != nil {
		t.Fatalf("child scope %s: %v", owner, err)
	}
	return child
}

func expectRuntimeError(t *testing.T, err error, category ErrorCategory, message string) *RuntimeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error %q, got nil", category, message)
	}
	rtErr, ok := AsRuntimeError(err)
	if !ok {
		t.Fatalf("expected RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Category != category {
		t.Fatalf("expected category %s, got %s (%s)", category, rtErr.Category, rtErr.Message)
	}
	if rtErr.Message != message {
		t.Fatalf("expected message %q, got %q", message, rtErr.Message)
	}
	return rtErr
}
