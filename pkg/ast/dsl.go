package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Flt(value float64) *FloatLiteral {
	return NewFloatLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

// Expression helpers.

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Member(object, member string) *MemberAccessExpression {
	return NewMemberAccessExpression(ID(object), ID(member))
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(nil, ID(name), args)
}

func CallMethod(object, name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(object), ID(name), args)
}

func Assign(name string, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(ID(name), value)
}

func AssignMember(object, member string, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(Member(object, member), value)
}

// Statement helpers.

func Print(value Expression) *PrintStatement {
	return NewPrintStatement(value)
}

func Block(statements ...Statement) *BlockStatement {
	return NewBlockStatement("", statements)
}

func ScopedBlock(scope string, statements ...Statement) *BlockStatement {
	return NewBlockStatement(scope, statements)
}

func If(condition Expression, then Statement) *IfStatement {
	return NewIfStatement(condition, then, nil)
}

func IfElse(condition Expression, then, otherwise Statement) *IfStatement {
	return NewIfStatement(condition, then, otherwise)
}

func While(condition Expression, body Statement) *WhileLoop {
	return NewWhileLoop(condition, body)
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(value)
}

// At stamps a source line onto a node and returns it.
func At[T Node](line int, node T) T {
	node.setLine(line)
	return node
}
