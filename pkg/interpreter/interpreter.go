package interpreter

import (
	"fmt"
	"io"
	"os"

	"tinyc/interpreter-go/pkg/ast"
	"tinyc/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested activations.
const DefaultMaxCallDepth = 10000

// Options configures an Interpreter.
type Options struct {
	// Stdout receives print output. Defaults to os.Stdout.
	Stdout io.Writer
	// MaxCallDepth bounds recursion. Zero selects DefaultMaxCallDepth.
	MaxCallDepth int
}

// Interpreter evaluates AST nodes against a scope tree.
type Interpreter struct {
	global   *runtime.Scope
	stdout   io.Writer
	maxDepth int
	depth    int
}

// New returns an interpreter bound to a global scope, printing to os.Stdout.
func New(global *runtime.Scope) *Interpreter {
	return NewWithOptions(global, Options{})
}

// NewWithOptions returns an interpreter with explicit options.
func NewWithOptions(global *runtime.Scope, opts Options) *Interpreter {
	if global == nil {
		global = runtime.NewGlobalScope()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	maxDepth := opts.MaxCallDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxCallDepth
	}
	return &Interpreter{global: global, stdout: stdout, maxDepth: maxDepth}
}

// GlobalScope returns the root of the scope tree.
func (i *Interpreter) GlobalScope() *runtime.Scope {
	return i.global
}

// EvaluateProgram runs the root block in the global scope.
func (i *Interpreter) EvaluateProgram(root *ast.BlockStatement) (runtime.Value, error) {
	if root == nil {
		return runtime.VoidValue{}, nil
	}
	return i.Evaluate(root, i.global)
}

// Evaluate runs a node in scope. A return reaching this boundary is an error.
func (i *Interpreter) Evaluate(node ast.Statement, scope *runtime.Scope) (runtime.Value, error) {
	val, err := i.evaluateStatement(node, scope)
	if err != nil {
		if sig, ok := err.(returnSignal); ok {
			return nil, runtimeFailure(sig.line, "return outside function")
		}
		return nil, err
	}
	return val, nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement, scope *runtime.Scope) (runtime.Value, error) {
	switch n := node.(type) {
	case ast.Expression:
		return i.evaluateExpression(n, scope)
	case *ast.BlockStatement:
		return i.evaluateBlock(n, scope)
	case *ast.PrintStatement:
		return i.evaluatePrintStatement(n, scope)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, scope)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, scope)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, scope)
	case nil:
		return runtime.VoidValue{}, nil
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateExpression(node ast.Expression, scope *runtime.Scope) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.Identifier:
		return i.evaluateIdentifier(n, scope)
	case *ast.MemberAccessExpression:
		return i.evaluateMemberAccess(n, scope)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, scope)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, scope)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n, scope)
	case nil:
		return nil, typeError(-1, "Missing expression.")
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}
