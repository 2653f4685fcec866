package interpreter

import (
	"fmt"

	"tinyc/interpreter-go/pkg/ast"
	"tinyc/interpreter-go/pkg/runtime"
)

const printPrefix = "[PRINT]: "

func (i *Interpreter) evaluateBlock(block *ast.BlockStatement, scope *runtime.Scope) (runtime.Value, error) {
	var result runtime.Value = runtime.VoidValue{}
	if block == nil {
		return result, nil
	}
	if block.Scope != "" {
		inner, ok := scope.EnterBlock(block.Scope)
		if !ok {
			return nil, resolutionError(block.Line(), "Block scope '%s' not found in scope '%s'.", block.Scope, scope.Name())
		}
		scope = inner
	}
	for _, stmt := range block.Body {
		val, err := i.evaluateStatement(stmt, scope)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement, scope *runtime.Scope) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Argument, scope)
	if err != nil {
		return nil, err
	}
	text, ok := runtime.Format(val)
	if !ok {
		return nil, typeError(stmt.Line(), "Unknown type in Print.")
	}
	if _, err := fmt.Fprintf(i.stdout, "%s%s\n", printPrefix, text); err != nil {
		return nil, runtimeFailure(stmt.Line(), "print failed: %v", err)
	}
	return val, nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, scope *runtime.Scope) (runtime.Value, error) {
	cond, err := i.evaluateExpression(stmt.Condition, scope)
	if err != nil {
		return nil, err
	}
	isTrue, ok := truthy(cond)
	if !ok {
		return nil, typeError(stmt.Line(), "Condition in IF must be bool or int.")
	}
	branch := stmt.Else
	if isTrue {
		branch = stmt.Then
	}
	if branch != nil {
		if _, err := i.evaluateStatement(branch, scope); err != nil {
			return nil, err
		}
	}
	return runtime.VoidValue{}, nil
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, scope *runtime.Scope) (runtime.Value, error) {
	for {
		cond, err := i.evaluateExpression(loop.Condition, scope)
		if err != nil {
			return nil, err
		}
		isTrue, ok := truthy(cond)
		if !ok {
			return nil, typeError(loop.Line(), "Condition in WHILE must be bool or int.")
		}
		if !isTrue {
			return runtime.VoidValue{}, nil
		}
		if loop.Body == nil {
			continue
		}
		if _, err := i.evaluateStatement(loop.Body, scope); err != nil {
			return nil, err
		}
	}
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, scope *runtime.Scope) (runtime.Value, error) {
	var result runtime.Value = runtime.VoidValue{}
	if stmt.Argument != nil {
		val, err := i.evaluateExpression(stmt.Argument, scope)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return nil, returnSignal{value: result, line: stmt.Line()}
}
