package interpreter

import (
	"fmt"

	"tinyc/interpreter-go/pkg/ast"
	"tinyc/interpreter-go/pkg/runtime"
)

// TypeOf reports the static type of a node without running it. Lookups of
// identifiers, members and functions still happen and fail like evaluation.
func (i *Interpreter) TypeOf(node ast.Node, scope *runtime.Scope) (string, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.TypeInt, nil
	case *ast.FloatLiteral:
		return runtime.TypeFloat, nil
	case *ast.BooleanLiteral:
		return runtime.TypeBool, nil
	case *ast.StringLiteral:
		return runtime.TypeString, nil
	case *ast.Identifier:
		binding, ok := scope.Lookup(n.Name)
		if !ok {
			return "", resolutionError(n.Line(), "Variable '%s' used but not declared.", n.Name)
		}
		return binding.Type, nil
	case *ast.MemberAccessExpression:
		member, err := memberBinding(n, scope)
		if err != nil {
			return "", err
		}
		return member.Type, nil
	case *ast.FunctionCall:
		fn, _, err := resolveFunction(n, scope)
		if err != nil {
			return "", err
		}
		return fn.Type, nil
	case *ast.BinaryExpression:
		return i.binaryType(n, scope)
	case *ast.AssignmentExpression:
		return i.TypeOf(n.Right, scope)
	case *ast.ReturnStatement:
		if n.Argument == nil {
			return runtime.TypeVoid, nil
		}
		return i.TypeOf(n.Argument, scope)
	case *ast.PrintStatement, *ast.BlockStatement, *ast.IfStatement, *ast.WhileLoop:
		return runtime.TypeVoid, nil
	case nil:
		return runtime.TypeVoid, nil
	default:
		return "", fmt.Errorf("unsupported node type: %s", n.NodeType())
	}
}

func (i *Interpreter) binaryType(expr *ast.BinaryExpression, scope *runtime.Scope) (string, error) {
	left, err := i.TypeOf(expr.Left, scope)
	if err != nil {
		return "", err
	}
	right, err := i.TypeOf(expr.Right, scope)
	if err != nil {
		return "", err
	}
	if left != right {
		return "", typeError(expr.Line(), "Type mismatch: %s %s %s", left, expr.Operator, right)
	}
	switch {
	case isComparisonOperator(expr.Operator):
		return runtime.TypeBool, nil
	case isArithmeticOperator(expr.Operator):
		return left, nil
	default:
		return "", typeError(expr.Line(), "Unknown operator '%s'.", expr.Operator)
	}
}

// Check type-queries every statement reachable from root without entering
// function bodies, stopping at the first error.
func (i *Interpreter) Check(root *ast.BlockStatement) error {
	if root == nil {
		return nil
	}
	return i.checkStatement(root, i.global)
}

func (i *Interpreter) checkStatement(node ast.Statement, scope *runtime.Scope) error {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.BlockStatement:
		if n == nil {
			return nil
		}
		if n.Scope != "" {
			inner, ok := scope.EnterBlock(n.Scope)
			if !ok {
				return resolutionError(n.Line(), "Block scope '%s' not found in scope '%s'.", n.Scope, scope.Name())
			}
			scope = inner
		}
		for _, stmt := range n.Body {
			if err := i.checkStatement(stmt, scope); err != nil {
				return err
			}
		}
		return nil
	case *ast.IfStatement:
		if _, err := i.TypeOf(n.Condition, scope); err != nil {
			return err
		}
		if err := i.checkStatement(n.Then, scope); err != nil {
			return err
		}
		return i.checkStatement(n.Else, scope)
	case *ast.WhileLoop:
		if _, err := i.TypeOf(n.Condition, scope); err != nil {
			return err
		}
		return i.checkStatement(n.Body, scope)
	case *ast.PrintStatement:
		_, err := i.TypeOf(n.Argument, scope)
		return err
	default:
		_, err := i.TypeOf(n, scope)
		return err
	}
}
