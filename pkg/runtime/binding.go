package runtime

import (
	"fmt"

	"tinyc/interpreter-go/pkg/ast"
)

// Category distinguishes variable bindings from function bindings.
type Category string

const (
	CategoryVar  Category = "var"
	CategoryFunc Category = "func"
)

// Binding is the per-name record held by a scope.
type Binding struct {
	Name     string
	Type     string // declared type; the return type for functions
	Category Category
	Value    Value // nil until the binding acquires a type

	ParamTypes []string
	ParamNames []string
	Body       *ast.BlockStatement
}

// IsFunction reports whether the binding names a function.
func (b *Binding) IsFunction() bool {
	return b != nil && b.Category == CategoryFunc
}

// ValueType is the type currently carried by the binding's value.
func (b *Binding) ValueType() string {
	return TypeOf(b.Value)
}

// Clone returns an independent copy; the function body is shared.
func (b *Binding) Clone() *Binding {
	if b == nil {
		return nil
	}
	out := *b
	if len(b.ParamTypes) > 0 {
		out.ParamTypes = append([]string(nil), b.ParamTypes...)
	}
	if len(b.ParamNames) > 0 {
		out.ParamNames = append([]string(nil), b.ParamNames...)
	}
	return &out
}

// DeclarationError reports a name declared twice in the same scope.
type DeclarationError struct {
	Kind  string // "variable", "function" or "scope"
	Name  string
	Scope string
}

func (e *DeclarationError) Error() string {
	switch e.Kind {
	case "function":
		return fmt.Sprintf("Function '%s' already declared.", e.Name)
	case "scope":
		return fmt.Sprintf("Scope '%s' already declared in scope '%s'.", e.Name, e.Scope)
	default:
		return fmt.Sprintf("Variable '%s' already declared in scope '%s'.", e.Name, e.Scope)
	}
}
