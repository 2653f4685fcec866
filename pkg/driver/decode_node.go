package driver

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"tinyc/interpreter-go/pkg/ast"
	"tinyc/interpreter-go/pkg/runtime"
)

var nodeFields = map[string][]string{
	"Const":  {"value", "valueType"},
	"Id":     {"name"},
	"Member": {"object", "member"},
	"Call":   {"object", "name", "args"},
	"Binary": {"op", "left", "right"},
	"Assign": {"object", "name", "value"},
	"Print":  {"value"},
	"Block":  {"scope", "body"},
	"If":     {"cond", "then", "else"},
	"While":  {"cond", "body"},
	"Return": {"value"},
}

// block decodes a Block node, or a bare sequence of statements.
func (d *decoder) block(node *yaml.Node, context string) *ast.BlockStatement {
	node = resolveAlias(node)
	if node != nil && node.Kind == yaml.SequenceNode {
		block := ast.NewBlockStatement("", d.statements(node, context))
		ast.SetLine(block, node.Line)
		return block
	}
	stmt := d.statement(node, context)
	if stmt == nil {
		return ast.NewBlockStatement("", nil)
	}
	block, ok := stmt.(*ast.BlockStatement)
	if !ok {
		d.issuef(node, "%s must be a Block, got %s", context, stmt.NodeType())
		return ast.NewBlockStatement("", nil)
	}
	return block
}

func (d *decoder) optionalBlock(node *yaml.Node, context string) *ast.BlockStatement {
	if isNull(node) {
		return nil
	}
	return d.block(node, context)
}

func (d *decoder) statements(node *yaml.Node, context string) []ast.Statement {
	items := d.sequence(node, context)
	stmts := make([]ast.Statement, 0, len(items))
	for idx, item := range items {
		if stmt := d.statement(item, fmt.Sprintf("%s[%d]", context, idx)); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (d *decoder) optionalStatement(node *yaml.Node, context string) ast.Statement {
	if isNull(node) {
		return nil
	}
	node = resolveAlias(node)
	if node.Kind == yaml.SequenceNode {
		return d.block(node, context)
	}
	return d.statement(node, context)
}

func (d *decoder) expression(node *yaml.Node, context string) ast.Expression {
	stmt := d.statement(node, context)
	if stmt == nil {
		return nil
	}
	expr, ok := stmt.(ast.Expression)
	if !ok {
		d.issuef(node, "%s: %s is not an expression", context, stmt.NodeType())
		return nil
	}
	return expr
}

func (d *decoder) requiredExpression(fields map[string]*yaml.Node, key, context string) ast.Expression {
	node, ok := fields[key]
	if !ok || isNull(node) {
		d.issuef(nil, "%s: missing %q", context, key)
		return nil
	}
	return d.expression(node, context+"."+key)
}

// statement decodes one node tagged by its type field.
func (d *decoder) statement(node *yaml.Node, context string) ast.Statement {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		d.issuef(node, "%s must be a node mapping", context)
		return nil
	}
	var typ string
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		if node.Content[idx].Value == "type" {
			typ = node.Content[idx+1].Value
		}
	}
	allowed, known := nodeFields[typ]
	if !known {
		d.issuef(node, "%s: unknown node type %q", context, typ)
		return nil
	}
	fields := d.mapping(node, context, append([]string{"type", "line"}, allowed...)...)
	if fields == nil {
		return nil
	}
	context = fmt.Sprintf("%s(%s)", context, typ)

	var out ast.Statement
	switch typ {
	case "Const":
		out = d.constant(fields, context)
	case "Id":
		out = ast.NewIdentifier(d.str(fields, "name", context, true))
	case "Member":
		out = ast.NewMemberAccessExpression(
			ast.NewIdentifier(d.str(fields, "object", context, true)),
			ast.NewIdentifier(d.str(fields, "member", context, true)),
		)
	case "Call":
		var object *ast.Identifier
		if name := d.str(fields, "object", context, false); name != "" {
			object = ast.NewIdentifier(name)
		}
		callee := ast.NewIdentifier(d.str(fields, "name", context, true))
		items := d.sequence(fields["args"], context+".args")
		args := make([]ast.Expression, 0, len(items))
		for idx, item := range items {
			if arg := d.expression(item, fmt.Sprintf("%s.args[%d]", context, idx)); arg != nil {
				args = append(args, arg)
			}
		}
		out = ast.NewFunctionCall(object, callee, args)
	case "Binary":
		op := d.str(fields, "op", context, true)
		left := d.requiredExpression(fields, "left", context)
		right := d.requiredExpression(fields, "right", context)
		if left == nil || right == nil {
			return nil
		}
		out = ast.NewBinaryExpression(op, left, right)
	case "Assign":
		var target ast.AssignmentTarget = ast.NewIdentifier(d.str(fields, "name", context, true))
		if object := d.str(fields, "object", context, false); object != "" {
			target = ast.NewMemberAccessExpression(ast.NewIdentifier(object), target.(*ast.Identifier))
		}
		value := d.requiredExpression(fields, "value", context)
		if value == nil {
			return nil
		}
		out = ast.NewAssignmentExpression(target, value)
	case "Print":
		value := d.requiredExpression(fields, "value", context)
		if value == nil {
			return nil
		}
		out = ast.NewPrintStatement(value)
	case "Block":
		out = ast.NewBlockStatement(d.str(fields, "scope", context, false), d.statements(fields["body"], context+".body"))
	case "If":
		cond := d.requiredExpression(fields, "cond", context)
		if cond == nil {
			return nil
		}
		out = ast.NewIfStatement(cond, d.optionalStatement(fields["then"], context+".then"), d.optionalStatement(fields["else"], context+".else"))
	case "While":
		cond := d.requiredExpression(fields, "cond", context)
		if cond == nil {
			return nil
		}
		out = ast.NewWhileLoop(cond, d.optionalStatement(fields["body"], context+".body"))
	case "Return":
		var value ast.Expression
		if valueNode, ok := fields["value"]; ok && !isNull(valueNode) {
			value = d.expression(valueNode, context+".value")
		}
		out = ast.NewReturnStatement(value)
	}
	if out == nil {
		return nil
	}
	line := d.line(node, fields, context)
	ast.SetLine(out, line)
	propagateLine(out, line)
	return out
}

// propagateLine stamps identifier children, which have no mapping of their own.
func propagateLine(node ast.Node, line int) {
	switch n := node.(type) {
	case *ast.MemberAccessExpression:
		ast.SetLine(n.Object, line)
		ast.SetLine(n.Member, line)
	case *ast.FunctionCall:
		if n.Object != nil {
			ast.SetLine(n.Object, line)
		}
		ast.SetLine(n.Callee, line)
	case *ast.AssignmentExpression:
		ast.SetLine(n.Left, line)
		propagateLine(n.Left, line)
	}
}

func (d *decoder) constant(fields map[string]*yaml.Node, context string) ast.Expression {
	valueNode, ok := fields["value"]
	if !ok || isNull(valueNode) {
		d.issuef(nil, "%s: missing \"value\"", context)
		return nil
	}
	switch v := d.scalarValue(valueNode, d.str(fields, "valueType", context, false), context).(type) {
	case runtime.IntValue:
		return ast.NewIntegerLiteral(v.Val)
	case runtime.FloatValue:
		return ast.NewFloatLiteral(v.Val)
	case runtime.BoolValue:
		return ast.NewBooleanLiteral(v.Val)
	case runtime.StringValue:
		return ast.NewStringLiteral(v.Val)
	default:
		return nil
	}
}
