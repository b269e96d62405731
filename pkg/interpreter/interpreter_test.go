package interpreter

import (
	"bytes"
	"errors"
	"testing"

	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/parser"
	"elf/interpreter-go/pkg/runtime"
)

func TestEvaluateProgramScenarios(t *testing.T) {
	runEvalCases(t, []evalCase{
		{name: "sum of bindings", source: "let x = 5; let y = 10; x + y", want: "15"},
		{name: "map doubles", source: "map(|x| x * 2, [1, 2, 3])", want: "[2, 4, 6]"},
		{name: "partial application", source: "let add = |a, b| a + b; let inc = add(1); inc(7)", want: "8"},
		{name: "composition", source: "let inc = |x| x + 1; let dbl = |x| x * 2; (inc >> dbl)(3)", want: "8"},
		{name: "mutable counter", source: "let mut c = 0; c = c + 1; c", want: "1"},
		{name: "empty program", source: "", want: "nil"},
		{name: "comments only", source: "// nothing here", want: "nil"},
		{name: "last statement ignores trailing comment", source: "1; 2 // two", want: "2"},
	})
	runErrorCases(t, []errorCase{
		{name: "division by zero", source: "1 / 0", msg: "Division by zero"},
		{name: "immutable assignment", source: "let k = 1; k = 2", msg: "Variable 'k' is not mutable"},
	})
}

func TestEvaluateProgramWithDSL(t *testing.T) {
	interp := New()
	program := ast.Prog(
		ast.Expr(ast.Let("x", ast.Int(40))),
		ast.Expr(ast.Bin("+", ast.ID("x"), ast.Int(2))),
	)
	val, err := interp.EvaluateProgram(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv, ok := val.(runtime.IntegerValue); !ok || iv.Val != 42 {
		t.Fatalf("unexpected value %#v", val)
	}
	if _, err := interp.GlobalEnvironment().Get("x"); err != nil {
		t.Fatalf("binding x missing from global frame: %v", err)
	}
}

func TestEvaluateNodeInChildFrame(t *testing.T) {
	interp := NewWithOutput(&bytes.Buffer{})
	interp.GlobalEnvironment().Define("base", runtime.IntegerValue{Val: 10}, false)
	frame := runtime.NewEnvironment(interp.GlobalEnvironment())
	frame.Define("n", runtime.IntegerValue{Val: 5}, false)

	val := interp.Evaluate(ast.Bin("*", ast.ID("base"), ast.ID("n")), frame)
	if runtime.Inspect(val) != "50" {
		t.Fatalf("unexpected value %s", runtime.Inspect(val))
	}
	val = interp.Evaluate(ast.Blk(ast.Expr(ast.Let("local", ast.Int(1)))), frame)
	if runtime.Inspect(val) != "1" || interp.GlobalEnvironment().Has("local") {
		t.Fatalf("block should bind in the frame it is given, got %s", runtime.Inspect(val))
	}
	val = interp.Evaluate(ast.Expr(ast.Bin("/", ast.Int(1), ast.Int(0))), frame)
	if errVal, ok := val.(*runtime.ErrorValue); !ok || errVal.Message != "Division by zero" {
		t.Fatalf("expected division error value, got %#v", val)
	}
}

func TestEvaluateSourceKeepsGlobalFrame(t *testing.T) {
	interp := NewWithOutput(&bytes.Buffer{})
	if _, err := interp.EvaluateSource("let mut total = 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := interp.EvaluateSource("total = total + 41"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	val, err := interp.EvaluateSource("total")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runtime.Inspect(val) != "42" {
		t.Fatalf("unexpected value %s", runtime.Inspect(val))
	}
}

func TestEvaluateSourceReturnsParseErrors(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateSource("let = 1")
	var parseErr *parser.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLiterals(t *testing.T) {
	runEvalCases(t, []evalCase{
		{name: "integer separators", source: "1_000_000", want: "1000000"},
		{name: "decimal", source: "1.50", want: "1.5"},
		{name: "integral decimal", source: "2.0", want: "2"},
		{name: "decimal separators", source: "1_000.000_1", want: "1000.0001"},
		{name: "string escapes", source: `"a\tb"`, want: `"a\tb"`},
		{name: "boolean", source: "true", want: "true"},
		{name: "nil", source: "nil", want: "nil"},
		{name: "integer literal wraps", source: "9223372036854775808", want: "-9223372036854775808"},
	})
}

func TestBindingsAndScopes(t *testing.T) {
	runEvalCases(t, []evalCase{
		{name: "let yields value", source: "let x = 3", want: "3"},
		{name: "assignment yields value", source: "let mut x = 1; x = 9", want: "9"},
		{name: "shadowing in same frame", source: "let x = 1; let x = 2; x", want: "2"},
		{name: "closure captures frame", source: "let make = |n| |x| x + n; let add5 = make(5); add5(1)", want: "6"},
		{name: "closure sees later mutation", source: "let mut n = 1; let get = || n; n = 7; get()", want: "7"},
		{name: "call frame assigns outer mutable", source: "let mut hits = 0; let hit = || { hits = hits + 1 }; hit(); hit(); hits", want: "2"},
		{name: "blocks share the enclosing frame", source: "if true { let inner = 4 }; inner", want: "4"},
		{name: "parameters shadow globals", source: "let x = 1; let f = |x| x * 10; f(2) + x", want: "21"},
		{name: "recursion", source: "let fact = |n| if n == 0 { 1 } else { n * fact(n - 1) }; fact(10)", want: "3628800"},
		{name: "mutually recursive via globals", source: "let even = |n| if n == 0 { true } else { odd(n - 1) }; let odd = |n| if n == 0 { false } else { even(n - 1) }; even(10)", want: "true"},
		{name: "user binding shadows builtin", source: "let size = |x| 99; size([1])", want: "99"},
	})
	runErrorCases(t, []errorCase{
		{name: "unknown identifier", source: "missing + 1", msg: "Identifier can not be found: missing"},
		{name: "assign unknown", source: "nope = 1", msg: "Identifier can not be found: nope"},
		{name: "parameters are immutable", source: "let f = |x| { x = 2 }; f(1)", msg: "Variable 'x' is not mutable"},
		{name: "failed let creates no binding", source: "let a = 1 / 0; a", msg: "Division by zero"},
	})
}

func TestFailedLetDoesNotBind(t *testing.T) {
	interp := NewWithOutput(&bytes.Buffer{})
	if _, err := interp.EvaluateSource("let a = 1 / 0"); err == nil {
		t.Fatalf("expected error")
	}
	if interp.GlobalEnvironment().Has("a") {
		t.Fatalf("failed let must not create a binding")
	}
}

func TestConditionals(t *testing.T) {
	runEvalCases(t, []evalCase{
		{name: "then branch", source: "if 1 < 2 { \"yes\" } else { \"no\" }", want: `"yes"`},
		{name: "else branch", source: "if 0 { 1 } else { 2 }", want: "2"},
		{name: "missing else yields nil", source: "if false { 1 }", want: "nil"},
		{name: "else if chain", source: "let x = 5; if x < 0 { -1 } else if x == 0 { 0 } else { 1 }", want: "1"},
		{name: "empty string is falsy", source: `if "" { 1 } else { 2 }`, want: "2"},
		{name: "empty list is truthy", source: "if [] { 1 } else { 2 }", want: "1"},
		{name: "empty block yields nil", source: "if true { } else { 1 }", want: "nil"},
	})
}

func TestErrorsShortCircuit(t *testing.T) {
	interp := NewWithOutput(&bytes.Buffer{})
	_, err := interp.EvaluateSource("let mut seen = 0; [1 / 0, seen = 1]")
	if err == nil || err.Error() != "Division by zero" {
		t.Fatalf("unexpected error %v", err)
	}
	seen, _ := interp.GlobalEnvironment().Lookup("seen")
	if runtime.Inspect(seen) != "0" {
		t.Fatalf("evaluation continued after error, seen = %s", runtime.Inspect(seen))
	}

	runErrorCases(t, []errorCase{
		{name: "error inside call argument", source: "size([1 / 0])", msg: "Division by zero"},
		{name: "error inside function body", source: "let f = |x| x / 0; f(1) + 1", msg: "Division by zero"},
		{name: "error in condition", source: "if missing { 1 }", msg: "Identifier can not be found: missing"},
		{name: "first error wins", source: "nope1 + nope2", msg: "Identifier can not be found: nope1"},
		{name: "error in map callback", source: "map(|x| x / 0, [1])", msg: "Division by zero"},
	})
}
