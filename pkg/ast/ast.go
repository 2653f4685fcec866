package ast

type NodeType string

const (
	NodeIdentifier             NodeType = "Identifier"
	NodeIntegerLiteral         NodeType = "IntegerLiteral"
	NodeFloatLiteral           NodeType = "FloatLiteral"
	NodeBooleanLiteral         NodeType = "BooleanLiteral"
	NodeStringLiteral          NodeType = "StringLiteral"
	NodeMemberAccessExpression NodeType = "MemberAccessExpression"
	NodeFunctionCall           NodeType = "FunctionCall"
	NodeBinaryExpression       NodeType = "BinaryExpression"
	NodeAssignmentExpression   NodeType = "AssignmentExpression"
	NodePrintStatement         NodeType = "PrintStatement"
	NodeBlockStatement         NodeType = "BlockStatement"
	NodeIfStatement            NodeType = "IfStatement"
	NodeWhileLoop              NodeType = "WhileLoop"
	NodeReturnStatement        NodeType = "ReturnStatement"
)

type Node interface {
	NodeType() NodeType
	// Line is the source line the node was built from, or -1 when unknown.
	Line() int
	setLine(line int)
}

type nodeImpl struct {
	Type   NodeType
	LineNo int
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind, LineNo: -1}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Line() int          { return n.LineNo }
func (n *nodeImpl) setLine(line int)  { n.LineNo = line }

// SetLine records the source line of a node.
func SetLine(node Node, line int) {
	if node != nil {
		node.setLine(line)
	}
}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// AssignmentTarget is either a plain identifier or an obj.member access.
type AssignmentTarget interface {
	Node
	assignmentTargetNode()
}

type assignmentTargetMarker struct{}

func (assignmentTargetMarker) assignmentTargetNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Name string
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value int64
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value float64
}

func NewFloatLiteral(value float64) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value bool
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value string
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// Expressions

// MemberAccessExpression reads obj.member where obj's declared type names a class.
type MemberAccessExpression struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker

	Object *Identifier
	Member *Identifier
}

func NewMemberAccessExpression(object, member *Identifier) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccessExpression), Object: object, Member: member}
}

// FunctionCall invokes Callee, optionally qualified by an object (obj.f(args)).
type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object    *Identifier
	Callee    *Identifier
	Arguments []Expression
}

func NewFunctionCall(object, callee *Identifier, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Object: object, Callee: callee, Arguments: args}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string
	Left     Expression
	Right    Expression
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Left  AssignmentTarget
	Right Expression
}

func NewAssignmentExpression(left AssignmentTarget, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Left: left, Right: right}
}

// Statements

type PrintStatement struct {
	nodeImpl
	statementMarker

	Argument Expression
}

func NewPrintStatement(argument Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Argument: argument}
}

// BlockStatement runs Body in order. When Scope is set the block evaluates
// inside the block scope of that name under the enclosing scope.
type BlockStatement struct {
	nodeImpl
	statementMarker

	Scope string
	Body  []Statement
}

func NewBlockStatement(scope string, body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Scope: scope, Body: body}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression
	Then      Statement
	Else      Statement
}

func NewIfStatement(condition Expression, then, otherwise Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: otherwise}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression
	Body      Statement
}

func NewWhileLoop(condition Expression, body Statement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}
