package interpreter

import (
	"testing"

	"tinyc/interpreter-go/pkg/ast"
	"tinyc/interpreter-go/pkg/runtime"
)

func TestTypeOfNodes(t *testing.T) {
	interp, global, out := newTestInterpreter()
	declareVar(t, global, "n", runtime.TypeInt, nil)
	declareVar(t, global, "p", "Point", nil)
	class := childScope(t, global, runtime.ScopeClass, "Point")
	declareVar(t, class, "label", runtime.TypeString, nil)
	declareFunction(t, global, "ratio", runtime.TypeFloat, nil, ast.Block(ast.Ret(ast.Flt(0.5))))

	cases := []struct {
		node ast.Node
		want string
	}{
		{ast.Int(1), runtime.TypeInt},
		{ast.Flt(1), runtime.TypeFloat},
		{ast.Bool(true), runtime.TypeBool},
		{ast.Str("s"), runtime.TypeString},
		{ast.ID("n"), runtime.TypeInt},
		{ast.ID("p"), "Point"},
		{ast.Member("p", "label"), runtime.TypeString},
		{ast.Call("ratio"), runtime.TypeFloat},
		{ast.Bin("+", ast.ID("n"), ast.Int(1)), runtime.TypeInt},
		{ast.Bin("<", ast.Flt(1), ast.Flt(2)), runtime.TypeBool},
		{ast.Bin("&&", ast.Bool(true), ast.Bool(false)), runtime.TypeBool},
		{ast.Assign("n", ast.Str("x")), runtime.TypeString},
		{ast.Ret(ast.Int(1)), runtime.TypeInt},
		{ast.Ret(nil), runtime.TypeVoid},
		{ast.Print(ast.Int(1)), runtime.TypeVoid},
		{ast.Block(ast.Int(1)), runtime.TypeVoid},
		{ast.If(ast.Bool(true), ast.Block()), runtime.TypeVoid},
		{ast.While(ast.Bool(false), ast.Block()), runtime.TypeVoid},
	}
	for _, tc := range cases {
		got, err := interp.TypeOf(tc.node, global)
		if err != nil {
			t.Fatalf("TypeOf(%s): %v", tc.node.NodeType(), err)
		}
		if got != tc.want {
			t.Fatalf("TypeOf(%s) = %s, want %s", tc.node.NodeType(), got, tc.want)
		}
	}
	if out.Len() != 0 {
		t.Fatalf("TypeOf must not run anything, got %q", out.String())
	}
	if n, _ := global.LookupLocal("n"); n.Value != (runtime.IntValue{}) {
		t.Fatalf("TypeOf must not assign, got %#v", n.Value)
	}
}

func TestTypeOfErrors(t *testing.T) {
	interp, global, _ := newTestInterpreter()
	declareVar(t, global, "p", "Ghost", nil)

	cases := []struct {
		node     ast.Node
		category ErrorCategory
		message  string
	}{
		{ast.ID("nope"), CategoryResolution, "Variable 'nope' used but not declared."},
		{ast.Member("p", "x"), CategoryResolution, "Class definition for 'Ghost' not found."},
		{ast.Call("missing"), CategoryResolution, "Function 'missing' not found."},
		{ast.Bin("+", ast.Int(1), ast.Str("a")), CategoryType, "Type mismatch: int + string"},
		{ast.Bin("%", ast.Int(1), ast.Int(2)), CategoryType, "Unknown operator '%'."},
	}
	for _, tc := range cases {
		_, err := interp.TypeOf(tc.node, global)
		expectRuntimeError(t, err, tc.category, tc.message)
	}
}

func TestCheckWalksStatementsWithoutRunning(t *testing.T) {
	interp, global, out := newTestInterpreter()
	declareVar(t, global, "n", runtime.TypeInt, nil)
	block := childScope(t, global, runtime.ScopeBlock, "inner")
	declareVar(t, block, "s", runtime.TypeString, nil)
	declareFunction(t, global, "broken", runtime.TypeInt, nil, ast.Block(ast.Ret(ast.ID("undeclared"))))

	ok := ast.Block(
		ast.Print(ast.ID("n")),
		ast.ScopedBlock("inner", ast.Print(ast.ID("s"))),
		ast.While(ast.Bin(">", ast.ID("n"), ast.Int(0)), ast.Assign("n", ast.Int(0))),
		ast.Call("broken"),
	)
	if err := interp.Check(ok); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("check must not print, got %q", out.String())
	}

	bad := ast.Block(
		ast.IfElse(ast.Bool(true), ast.Block(), ast.Print(ast.At(12, ast.ID("s")))),
	)
	rtErr := expectRuntimeError(t, interp.Check(bad), CategoryResolution, "Variable 's' used but not declared.")
	if rtErr.Line != 12 {
		t.Fatalf("expected line 12, got %d", rtErr.Line)
	}
	if err := interp.Check(nil); err != nil {
		t.Fatalf("nil root checks clean: %v", err)
	}
}
