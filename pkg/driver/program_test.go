package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tinyc/interpreter-go/pkg/ast"
	"tinyc/interpreter-go/pkg/runtime"
)

const sampleProgram = `
scope:
  vars:
    - {name: x, type: int, value: 5}
    - {name: ratio, value: 0.5}
    - {name: p, type: Point}
  funcs:
    - name: add
      returns: int
      params: [{name: a, type: int}, {name: b, type: int}]
      body:
        - {type: Return, value: {type: Binary, op: "+", left: {type: Id, name: a}, right: {type: Id, name: b}}}
  children:
    - {kind: function, owner: add}
    - kind: class
      owner: Point
      vars: [{name: label, type: string, value: origin}]
program:
  - type: Print
    line: 10
    value: {type: Call, name: add, args: [{type: Id, name: x}, {type: Const, value: 3}]}
  - type: Assign
    object: p
    name: label
    value: {type: Const, value: "7", valueType: string}
  - type: If
    cond: {type: Const, value: true}
    then:
      - {type: Print, value: {type: Member, object: p, member: label}}
    else: {type: Print, value: {type: Const, value: no}}
`

func TestParseProgramBuildsScopeTreeAndAST(t *testing.T) {
	prog, err := ParseProgram(strings.NewReader(sampleProgram), "sample.yml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	x, ok := prog.Global.LookupLocal("x")
	if !ok || x.Type != runtime.TypeInt || x.Value != (runtime.IntValue{Val: 5}) {
		t.Fatalf("unexpected x binding %#v", x)
	}
	ratio, _ := prog.Global.LookupLocal("ratio")
	if ratio == nil || ratio.Type != "" || ratio.Value != (runtime.FloatValue{Val: 0.5}) {
		t.Fatalf("untyped var should keep its inferred value, got %#v", ratio)
	}
	p, _ := prog.Global.LookupLocal("p")
	if p == nil || p.Value != (runtime.ObjectValue{Class: "Point"}) {
		t.Fatalf("class-typed var should hold an object reference, got %#v", p)
	}
	add, _ := prog.Global.LookupLocal("add")
	if !add.IsFunction() || add.Type != runtime.TypeInt || len(add.ParamNames) != 2 || add.Body == nil {
		t.Fatalf("unexpected add binding %#v", add)
	}
	if _, ok := prog.Global.FunctionTemplate("add"); !ok {
		t.Fatalf("function template for add missing")
	}
	class, ok := prog.Global.Class("Point")
	if !ok || !class.HasLocal("label") {
		t.Fatalf("class scope for Point missing or incomplete")
	}

	if len(prog.Root.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Root.Body))
	}
	printStmt, ok := prog.Root.Body[0].(*ast.PrintStatement)
	if !ok {
		t.Fatalf("expected Print, got %T", prog.Root.Body[0])
	}
	if printStmt.Line() != 10 {
		t.Fatalf("explicit line should win, got %d", printStmt.Line())
	}
	call, ok := printStmt.Argument.(*ast.FunctionCall)
	if !ok || call.Callee.Name != "add" || len(call.Arguments) != 2 {
		t.Fatalf("unexpected call %#v", printStmt.Argument)
	}
	if call.Callee.Line() <= 0 {
		t.Fatalf("identifier children should carry a line, got %d", call.Callee.Line())
	}
	assign, ok := prog.Root.Body[1].(*ast.AssignmentExpression)
	if !ok {
		t.Fatalf("expected Assign, got %T", prog.Root.Body[1])
	}
	if _, ok := assign.Left.(*ast.MemberAccessExpression); !ok {
		t.Fatalf("object assignment should target a member, got %T", assign.Left)
	}
	if lit, ok := assign.Right.(*ast.StringLiteral); !ok || lit.Value != "7" {
		t.Fatalf("valueType should force a string constant, got %#v", assign.Right)
	}
	ifStmt, ok := prog.Root.Body[2].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected If, got %T", prog.Root.Body[2])
	}
	if _, ok := ifStmt.Then.(*ast.BlockStatement); !ok {
		t.Fatalf("sequence branch should become a block, got %T", ifStmt.Then)
	}
	if _, ok := ifStmt.Else.(*ast.PrintStatement); !ok {
		t.Fatalf("mapping branch should stay a statement, got %T", ifStmt.Else)
	}
	if ifStmt.Line() != 26 {
		t.Fatalf("yaml position should give line 26, got %d", ifStmt.Line())
	}
}

func TestParseProgramCollectsIssues(t *testing.T) {
	doc := `
scope:
  vars:
    - {name: x, type: int, value: nope, colour: red}
  children:
    - {kind: module, owner: m}
program:
  - {type: Loop, body: []}
  - {type: Binary, op: "+", left: {type: Const, value: 1}}
  - {type: Print}
extra: true
`
	_, err := ParseProgram(strings.NewReader(doc), "bad.yml")
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	wants := []string{
		`unknown field "extra"`,
		`unknown field "colour"`,
		`"nope" is not an int`,
		`unknown scope kind "module"`,
		`unknown node type "Loop"`,
		`missing "right"`,
		`missing "value"`,
	}
	msg := validation.Error()
	for _, want := range wants {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected issue containing %q in:\n%s", want, msg)
		}
	}
}

func TestParseProgramDuplicateDeclaration(t *testing.T) {
	doc := `
scope:
  vars:
    - {name: x, type: int}
    - {name: x, type: float, line: 3}
`
	_, err := ParseProgram(strings.NewReader(doc), "dup.yml")
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("expected SourceError, got %v", err)
	}
	if srcErr.Line != 3 {
		t.Fatalf("expected line 3, got %d", srcErr.Line)
	}
	var decl *runtime.DeclarationError
	if !errors.As(err, &decl) || decl.Name != "x" {
		t.Fatalf("expected declaration error for x, got %v", err)
	}
	if srcErr.Error() != "line 3: Variable 'x' already declared in scope 'global'." {
		t.Fatalf("unexpected message %q", srcErr.Error())
	}
}

func TestParseProgramDuplicateScope(t *testing.T) {
	doc := `
scope:
  children:
    - {kind: block, owner: b1}
    - {kind: block, owner: b1}
`
	_, err := ParseProgram(strings.NewReader(doc), "dup.yml")
	var decl *runtime.DeclarationError
	if !errors.As(err, &decl) || decl.Kind != "scope" {
		t.Fatalf("expected scope declaration error, got %v", err)
	}
}

func TestParseProgramEmptyDocument(t *testing.T) {
	if _, err := ParseProgram(strings.NewReader(""), "empty.yml"); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty document error, got %v", err)
	}
	prog, err := ParseProgram(strings.NewReader("scope: {}\n"), "bare.yml")
	if err != nil {
		t.Fatalf("scope-only document: %v", err)
	}
	if prog.Root == nil || len(prog.Root.Body) != 0 {
		t.Fatalf("missing program should give an empty root block")
	}
}

func TestLoadProgramFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.yml")
	if err := os.WriteFile(path, []byte("program:\n  - {type: Print, value: {type: Const, value: hi}}\n"), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}
	prog, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !filepath.IsAbs(prog.Path) {
		t.Fatalf("expected absolute path, got %s", prog.Path)
	}
	if _, err := LoadProgram(filepath.Join(dir, "missing.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := LoadProgram(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
