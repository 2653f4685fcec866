package driver

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"tinyc/interpreter-go/pkg/runtime"
)

var scopeKinds = map[string]runtime.ScopeKind{
	"class":    runtime.ScopeClass,
	"function": runtime.ScopeFunction,
	"block":    runtime.ScopeBlock,
}

// populateScope applies the vars, funcs and children of the global scope
// mapping. Structural problems are collected; a duplicate declaration aborts.
func (d *decoder) populateScope(scope *runtime.Scope, node *yaml.Node, context string) error {
	fields := d.mapping(node, context, "vars", "funcs", "children")
	if fields == nil {
		return nil
	}
	return d.applyScope(scope, fields, context)
}

func (d *decoder) applyScope(scope *runtime.Scope, fields map[string]*yaml.Node, context string) error {
	for idx, varNode := range d.sequence(fields["vars"], context+".vars") {
		if err := d.declareVar(scope, varNode, fmt.Sprintf("%s.vars[%d]", context, idx)); err != nil {
			return err
		}
	}
	for idx, fnNode := range d.sequence(fields["funcs"], context+".funcs") {
		if err := d.declareFunc(scope, fnNode, fmt.Sprintf("%s.funcs[%d]", context, idx)); err != nil {
			return err
		}
	}
	for idx, childNode := range d.sequence(fields["children"], context+".children") {
		childContext := fmt.Sprintf("%s.children[%d]", context, idx)
		childFields := d.mapping(childNode, childContext, "kind", "owner", "line", "vars", "funcs", "children")
		if childFields == nil {
			continue
		}
		kindName := d.str(childFields, "kind", childContext, true)
		owner := d.str(childFields, "owner", childContext, true)
		kind, ok := scopeKinds[kindName]
		if !ok {
			if kindName != "" {
				d.issuef(childFields["kind"], "%s: unknown scope kind %q", childContext, kindName)
			}
			continue
		}
		if owner == "" {
			continue
		}
		child, err := scope.NewChild(kind, owner)
		if err != nil {
			return &SourceError{Line: d.line(childNode, childFields, childContext), Err: err}
		}
		if err := d.applyScope(child, childFields, childContext); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) declareVar(scope *runtime.Scope, node *yaml.Node, context string) error {
	fields := d.mapping(node, context, "name", "type", "value", "line")
	if fields == nil {
		return nil
	}
	name := d.str(fields, "name", context, true)
	typeName := d.str(fields, "type", context, false)
	if name == "" {
		return nil
	}
	var value runtime.Value
	if valueNode, ok := fields["value"]; ok && !isNull(valueNode) {
		value = d.scalarValue(valueNode, typeName, context)
	}
	if _, err := scope.DeclareVar(name, typeName, value); err != nil {
		return &SourceError{Line: d.line(node, fields, context), Err: err}
	}
	return nil
}

func (d *decoder) declareFunc(scope *runtime.Scope, node *yaml.Node, context string) error {
	fields := d.mapping(node, context, "name", "returns", "params", "body", "line")
	if fields == nil {
		return nil
	}
	name := d.str(fields, "name", context, true)
	returnType := d.str(fields, "returns", context, false)
	if returnType == "" {
		returnType = runtime.TypeVoid
	}
	var paramTypes, paramNames []string
	for idx, paramNode := range d.sequence(fields["params"], context+".params") {
		paramContext := fmt.Sprintf("%s.params[%d]", context, idx)
		paramFields := d.mapping(paramNode, paramContext, "name", "type")
		if paramFields == nil {
			continue
		}
		paramNames = append(paramNames, d.str(paramFields, "name", paramContext, true))
		paramTypes = append(paramTypes, d.str(paramFields, "type", paramContext, true))
	}
	if name == "" {
		return nil
	}
	body := d.optionalBlock(fields["body"], context+".body")
	if _, err := scope.DeclareFunc(name, returnType, paramTypes, paramNames, body); err != nil {
		return &SourceError{Line: d.line(node, fields, context), Err: err}
	}
	return nil
}

// scalarValue decodes an initial value. A declared primitive type selects the
// decoding; an empty type infers it from the YAML tag.
func (d *decoder) scalarValue(node *yaml.Node, typeName, context string) runtime.Value {
	if node.Kind != yaml.ScalarNode {
		d.issuef(node, "%s: value must be a scalar", context)
		return nil
	}
	if typeName == "" {
		typeName = inferType(node)
	}
	switch typeName {
	case runtime.TypeInt:
		var v int64
		if err := node.Decode(&v); err != nil {
			d.issuef(node, "%s: %q is not an int", context, node.Value)
			return nil
		}
		return runtime.IntValue{Val: v}
	case runtime.TypeFloat:
		var v float64
		if err := node.Decode(&v); err != nil {
			d.issuef(node, "%s: %q is not a float", context, node.Value)
			return nil
		}
		return runtime.FloatValue{Val: v}
	case runtime.TypeBool:
		var v bool
		if err := node.Decode(&v); err != nil {
			d.issuef(node, "%s: %q is not a bool", context, node.Value)
			return nil
		}
		return runtime.BoolValue{Val: v}
	case runtime.TypeString:
		return runtime.StringValue{Val: node.Value}
	default:
		d.issuef(node, "%s: values of type %q cannot be initialised", context, typeName)
		return nil
	}
}

func inferType(node *yaml.Node) string {
	switch node.ShortTag() {
	case "!!int":
		return runtime.TypeInt
	case "!!float":
		return runtime.TypeFloat
	case "!!bool":
		return runtime.TypeBool
	default:
		return runtime.TypeString
	}
}
