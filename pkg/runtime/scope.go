package runtime

import (
	"fmt"
	"sort"

	"tinyc/interpreter-go/pkg/ast"
)

// ScopeKind tags what a scope belongs to.
type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopeClass
	ScopeFunction
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeClass:
		return "class"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

type scopeKey struct {
	kind  ScopeKind
	owner string
}

// Scope owns a set of bindings and its child scopes. Frames are scopes
// instantiated from a template for a single activation; they are not
// registered as children of their parent.
type Scope struct {
	kind     ScopeKind
	owner    string
	bindings map[string]*Binding
	parent   *Scope
	children []*Scope
	index    map[scopeKey]*Scope
	template *Scope
}

// NewGlobalScope creates the root of a scope tree.
func NewGlobalScope() *Scope {
	return newScope(ScopeGlobal, "", nil)
}

func newScope(kind ScopeKind, owner string, parent *Scope) *Scope {
	return &Scope{
		kind:     kind,
		owner:    owner,
		bindings: make(map[string]*Binding),
		parent:   parent,
		index:    make(map[scopeKey]*Scope),
	}
}

// NewChild creates and registers a child scope. A second child with the same
// kind and owner is a declaration error.
func (s *Scope) NewChild(kind ScopeKind, owner string) (*Scope, error) {
	key := scopeKey{kind: kind, owner: owner}
	if _, exists := s.index[key]; exists {
		return nil, &DeclarationError{Kind: "scope", Name: scopeName(kind, owner), Scope: s.Name()}
	}
	child := newScope(kind, owner, s)
	s.children = append(s.children, child)
	s.index[key] = child
	return child, nil
}

func scopeName(kind ScopeKind, owner string) string {
	switch kind {
	case ScopeGlobal:
		return "global"
	case ScopeClass:
		return "class_" + owner
	case ScopeFunction:
		return "func_" + owner
	default:
		return owner
	}
}

// Name is the display name used in diagnostics and scope dumps.
func (s *Scope) Name() string { return scopeName(s.kind, s.owner) }

func (s *Scope) Kind() ScopeKind { return s.kind }

// Owner names the class, function or block the scope belongs to.
func (s *Scope) Owner() string { return s.owner }

// Parent exposes the lexical parent (nil when global).
func (s *Scope) Parent() *Scope { return s.parent }

// Children returns the registered child scopes in declaration order.
func (s *Scope) Children() []*Scope {
	return append([]*Scope(nil), s.children...)
}

// IsFrame reports whether the scope was instantiated for one activation.
func (s *Scope) IsFrame() bool { return s.template != nil }

// Template returns the scope a frame was instantiated from.
func (s *Scope) Template() *Scope { return s.template }

// Global walks to the root of the chain.
func (s *Scope) Global() *Scope {
	cur := s
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Lookup retrieves a binding, searching outward through the scope chain.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// LookupLocal retrieves a binding held directly by this scope.
func (s *Scope) LookupLocal(name string) (*Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Has reports whether name is bound here or in any ancestor.
func (s *Scope) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// HasLocal reports whether name is bound directly in this scope.
func (s *Scope) HasLocal(name string) bool {
	_, ok := s.bindings[name]
	return ok
}

// DeclareVar adds a variable. A nil value starts from the zero value of
// typeName; an empty typeName leaves the binding untyped until assigned.
func (s *Scope) DeclareVar(name, typeName string, value Value) (*Binding, error) {
	if _, exists := s.bindings[name]; exists {
		return nil, &DeclarationError{Kind: "variable", Name: name, Scope: s.Name()}
	}
	if value == nil {
		value = ZeroValue(typeName)
	}
	b := &Binding{Name: name, Type: typeName, Category: CategoryVar, Value: value}
	s.bindings[name] = b
	return b, nil
}

// DeclareFunc adds a function. body may be nil for a declaration without a
// definition. paramTypes and paramNames must pair up.
func (s *Scope) DeclareFunc(name, returnType string, paramTypes, paramNames []string, body *ast.BlockStatement) (*Binding, error) {
	if _, exists := s.bindings[name]; exists {
		return nil, &DeclarationError{Kind: "function", Name: name, Scope: s.Name()}
	}
	if len(paramTypes) != len(paramNames) {
		return nil, fmt.Errorf("Function '%s' declares %d parameter types for %d parameter names.", name, len(paramTypes), len(paramNames))
	}
	b := &Binding{
		Name:       name,
		Type:       returnType,
		Category:   CategoryFunc,
		ParamTypes: append([]string(nil), paramTypes...),
		ParamNames: append([]string(nil), paramNames...),
		Body:       body,
	}
	s.bindings[name] = b
	return b, nil
}

// Define inserts or overwrites a binding in this scope.
func (s *Scope) Define(b *Binding) {
	s.bindings[b.Name] = b
}

// Names returns the bound names in sorted order.
func (s *Scope) Names() []string {
	keys := make([]string, 0, len(s.bindings))
	for k := range s.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Child finds a registered child scope by kind and owner.
func (s *Scope) Child(kind ScopeKind, owner string) (*Scope, bool) {
	child, ok := s.index[scopeKey{kind: kind, owner: owner}]
	return child, ok
}

// Class finds the member scope of a class; classes live under the global scope.
func (s *Scope) Class(name string) (*Scope, bool) {
	return s.Global().Child(ScopeClass, name)
}

// FunctionTemplate finds the activation template of a function declared in
// this scope. Frames resolve through the scope they were instantiated from.
func (s *Scope) FunctionTemplate(name string) (*Scope, bool) {
	if s.template != nil {
		return s.template.Child(ScopeFunction, name)
	}
	return s.Child(ScopeFunction, name)
}

// EnterBlock resolves the block scope named owner for evaluation. Inside a
// frame the block is instantiated on first entry and the same instance is
// reused for the rest of the activation; elsewhere the tree scope is used.
func (s *Scope) EnterBlock(owner string) (*Scope, bool) {
	if s.template == nil {
		return s.Child(ScopeBlock, owner)
	}
	key := scopeKey{kind: ScopeBlock, owner: owner}
	if inner, ok := s.index[key]; ok {
		return inner, true
	}
	tmpl, ok := s.template.Child(ScopeBlock, owner)
	if !ok {
		return nil, false
	}
	inner := tmpl.Instantiate(s)
	s.index[key] = inner
	return inner, true
}

// Instantiate creates a frame holding a copy of this scope's bindings,
// linked to parent for outer-name resolution.
func (s *Scope) Instantiate(parent *Scope) *Scope {
	frame := &Scope{
		kind:     s.kind,
		owner:    s.owner,
		bindings: s.Snapshot(),
		parent:   parent,
		index:    make(map[scopeKey]*Scope),
		template: s,
	}
	return frame
}

// Snapshot returns a deep copy of the current bindings.
func (s *Scope) Snapshot() map[string]*Binding {
	out := make(map[string]*Binding, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v.Clone()
	}
	return out
}

// Restore replaces the bindings with a copy of a previous snapshot.
func (s *Scope) Restore(snapshot map[string]*Binding) {
	bindings := make(map[string]*Binding, len(snapshot))
	for k, v := range snapshot {
		bindings[k] = v.Clone()
	}
	s.bindings = bindings
}
