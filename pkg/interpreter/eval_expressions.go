package interpreter

import (
	"tinyc/interpreter-go/pkg/ast"
	"tinyc/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateIdentifier(id *ast.Identifier, scope *runtime.Scope) (runtime.Value, error) {
	binding, ok := scope.Lookup(id.Name)
	if !ok {
		return nil, resolutionError(id.Line(), "Variable '%s' not found in memory.", id.Name)
	}
	return binding.Value, nil
}

// classScopeFor resolves the member scope of the class obj is declared as.
func classScopeFor(obj *ast.Identifier, scope *runtime.Scope, line int) (*runtime.Scope, string, error) {
	objInfo, ok := scope.Lookup(obj.Name)
	if !ok {
		return nil, "", resolutionError(line, "Object '%s' not found.", obj.Name)
	}
	classScope, ok := scope.Class(objInfo.Type)
	if !ok {
		return nil, "", resolutionError(line, "Class definition for '%s' not found.", objInfo.Type)
	}
	return classScope, objInfo.Type, nil
}

// memberBinding resolves obj.member. The member must live directly in the
// class scope.
func memberBinding(expr *ast.MemberAccessExpression, scope *runtime.Scope) (*runtime.Binding, error) {
	classScope, className, err := classScopeFor(expr.Object, scope, expr.Line())
	if err != nil {
		return nil, err
	}
	member, ok := classScope.LookupLocal(expr.Member.Name)
	if !ok {
		return nil, resolutionError(expr.Line(), "Member '%s' not found in class '%s'.", expr.Member.Name, className)
	}
	return member, nil
}

func (i *Interpreter) evaluateMemberAccess(expr *ast.MemberAccessExpression, scope *runtime.Scope) (runtime.Value, error) {
	member, err := memberBinding(expr, scope)
	if err != nil {
		return nil, err
	}
	return member.Value, nil
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, scope *runtime.Scope) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, scope)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, scope)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(expr.Operator, left, right, expr.Line())
}

func (i *Interpreter) evaluateAssignment(expr *ast.AssignmentExpression, scope *runtime.Scope) (runtime.Value, error) {
	value, err := i.evaluateExpression(expr.Right, scope)
	if err != nil {
		return nil, err
	}
	var target *runtime.Binding
	switch left := expr.Left.(type) {
	case *ast.Identifier:
		binding, ok := scope.Lookup(left.Name)
		if !ok {
			return nil, resolutionError(expr.Line(), "Variable '%s' not found during assignment.", left.Name)
		}
		target = binding
	case *ast.MemberAccessExpression:
		binding, err := memberBinding(left, scope)
		if err != nil {
			return nil, err
		}
		target = binding
	default:
		return nil, typeError(expr.Line(), "Invalid assignment target.")
	}
	if target.IsFunction() {
		return nil, typeError(expr.Line(), "Cannot assign to function '%s'.", target.Name)
	}
	current := target.ValueType()
	if current != "" && current != runtime.TypeOf(value) {
		return nil, typeError(expr.Line(), "Cannot assign %s to variable '%s' of type %s", runtime.TypeOf(value), target.Name, current)
	}
	if target.Type == "" {
		target.Type = runtime.TypeOf(value)
	}
	target.Value = value
	return value, nil
}
