package interpreter

import (
	"tinyc/interpreter-go/pkg/ast"
	"tinyc/interpreter-go/pkg/runtime"
)

// resolveFunction finds the binding a call refers to together with the scope
// that holds it.
//
// A qualified call looks only in the object's class scope. An unqualified call
// walks outward and stops at the first scope holding the name at all; if that
// binding is not a function the call does not resolve.
func resolveFunction(call *ast.FunctionCall, scope *runtime.Scope) (*runtime.Binding, *runtime.Scope, error) {
	name := call.Callee.Name
	if call.Object != nil {
		objInfo, ok := scope.Lookup(call.Object.Name)
		if !ok {
			return nil, nil, resolutionError(call.Line(), "Object '%s' not found for method call.", call.Object.Name)
		}
		classScope, ok := scope.Class(objInfo.Type)
		if !ok {
			return nil, nil, resolutionError(call.Line(), "Class scope for object '%s' not found.", call.Object.Name)
		}
		if fn, ok := classScope.LookupLocal(name); ok && fn.IsFunction() {
			return fn, classScope, nil
		}
		return nil, nil, resolutionError(call.Line(), "Function '%s' not found.", name)
	}
	for cur := scope; cur != nil; cur = cur.Parent() {
		fn, ok := cur.LookupLocal(name)
		if !ok {
			continue
		}
		if fn.IsFunction() {
			return fn, cur, nil
		}
		return nil, nil, resolutionError(call.Line(), "Function '%s' not found; '%s' in scope '%s' is not a function.", name, name, cur.Name())
	}
	return nil, nil, resolutionError(call.Line(), "Function '%s' not found.", name)
}

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, scope *runtime.Scope) (runtime.Value, error) {
	fn, owner, err := resolveFunction(call, scope)
	if err != nil {
		return nil, err
	}
	name := call.Callee.Name
	if len(call.Arguments) != len(fn.ParamNames) {
		return nil, typeError(call.Line(), "Function '%s' expects %d arguments, but got %d.", name, len(fn.ParamNames), len(call.Arguments))
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluateExpression(argExpr, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	for idx, arg := range args {
		if runtime.TypeOf(arg) != fn.ParamTypes[idx] {
			return nil, typeError(call.Line(), "Argument %d of function '%s' mismatch. Expected %s, got %s", idx+1, name, fn.ParamTypes[idx], runtime.TypeOf(arg))
		}
	}
	if fn.Body == nil {
		return runtime.ZeroValue(fn.Type), nil
	}
	template, ok := owner.FunctionTemplate(name)
	if !ok {
		return nil, resolutionError(call.Line(), "Internal scope for function '%s' lost.", name)
	}
	return i.invokeFunction(fn, template, owner, args, call.Line())
}

// invokeFunction runs the body of fn in a fresh frame instantiated from template under
// owner. Writes to the frame are dropped with it; writes that resolve to
// scopes outside the frame stay visible to the caller.
func (i *Interpreter) invokeFunction(fn *runtime.Binding, template, owner *runtime.Scope, args []runtime.Value, line int) (runtime.Value, error) {
	if i.depth >= i.maxDepth {
		return nil, runtimeFailure(line, "Maximum call depth exceeded in function '%s'.", fn.Name)
	}

	frame := template.Instantiate(owner)
	for idx, paramName := range fn.ParamNames {
		frame.Define(&runtime.Binding{
			Name:     paramName,
			Type:     fn.ParamTypes[idx],
			Category: runtime.CategoryVar,
			Value:    args[idx],
		})
	}

	i.depth++
	_, err := i.evaluateStatement(fn.Body, frame)
	i.depth--

	var result runtime.Value
	if err != nil {
		ret, ok := err.(returnSignal)
		if !ok {
			return nil, err
		}
		result = ret.value
	}

	if fn.Type == runtime.TypeVoid {
		return runtime.VoidValue{}, nil
	}
	got := runtime.TypeOf(result)
	if got != fn.Type {
		if got == "" {
			return nil, typeError(line, "Function '%s' did not return a value.", fn.Name)
		}
		return nil, typeError(line, "Function '%s' returned '%s' but expected '%s'.", fn.Name, got, fn.Type)
	}
	return result, nil
}
