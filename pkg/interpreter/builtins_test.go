package interpreter

import (
	"bytes"
	"testing"

	"elf/interpreter-go/pkg/runtime"
)

func TestBuiltins(t *testing.T) {
	runEvalCases(t, []evalCase{
		{name: "map", source: "map(|x| x + 1, [1, 2])", want: "[2, 3]"},
		{name: "map empty", source: "map(|x| x, [])", want: "[]"},
		{name: "filter", source: "filter(|x| x > 1, [1, 2, 3])", want: "[2, 3]"},
		{name: "filter truthiness", source: `filter(|x| x, [0, 1, "", "a", nil])`, want: `[1, "a"]`},
		{name: "fold", source: "fold(0, |acc, x| acc + x, [1, 2, 3, 4])", want: "10"},
		{name: "fold with operator", source: "fold(1, *, [1, 2, 3, 4])", want: "24"},
		{name: "fold empty", source: "fold(7, +, [])", want: "7"},
		{name: "size list", source: "size([1, 2, 3])", want: "3"},
		{name: "size string counts characters", source: `size("héllo")`, want: "5"},
		{name: "size set", source: "size({1, 1, 2})", want: "2"},
		{name: "size dict", source: `size(#{"a": 1})`, want: "1"},
		{name: "push list", source: "push(3, [1, 2])", want: "[1, 2, 3]"},
		{name: "push set", source: "push(0, {1})", want: "{0, 1}"},
		{name: "push set duplicate", source: "push(1, {1})", want: "{1}"},
		{name: "first list", source: "first([5, 6])", want: "5"},
		{name: "first empty", source: "first([])", want: "nil"},
		{name: "first string", source: `first("abc")`, want: `"a"`},
		{name: "first set", source: "first({3, 1})", want: "1"},
		{name: "rest list", source: "rest([1, 2, 3])", want: "[2, 3]"},
		{name: "rest empty", source: "rest([])", want: "[]"},
		{name: "rest string", source: `rest("abc")`, want: `"bc"`},
		{name: "rest empty string", source: `rest("")`, want: `""`},
		{name: "rest set", source: "rest({3, 1, 2})", want: "{2, 3}"},
		{name: "assoc", source: `assoc("b", 2, #{"a": 1})`, want: `#{"a": 1, "b": 2}`},
		{name: "assoc overwrites", source: `assoc("a", 2, #{"a": 1})`, want: `#{"a": 2}`},
		{name: "operator as value", source: "let plus = +; plus(2, 3)", want: "5"},
		{name: "partial operator", source: "let gt = >; filter(|x| gt(x, 2), [1, 2, 3])", want: "[3]"},
		{name: "builtin renders", source: "map", want: "|...| { [builtin] }"},
	})
	runErrorCases(t, []errorCase{
		{name: "map non list", source: "map(|x| x, 1)", msg: "Unexpected argument: map(Function, Integer)"},
		{name: "map non function", source: "map(1, [1])", msg: "Unexpected argument: map(Integer, List)"},
		{name: "filter dict", source: "filter(|x| x, #{})", msg: "Unexpected argument: filter(Function, Dictionary)"},
		{name: "fold non list", source: "fold(0, +, 5)", msg: "Unexpected argument: fold(Integer, Function, Integer)"},
		{name: "size integer", source: "size(1)", msg: "Unexpected argument: size(Integer)"},
		{name: "push onto string", source: `push(1, "a")`, msg: "Unexpected argument: push(Integer, String)"},
		{name: "push dict into set", source: "push(#{}, {1})", msg: "Unable to include a Dictionary within a Set"},
		{name: "first nil", source: "first(nil)", msg: "Unexpected argument: first(Nil)"},
		{name: "assoc non dict", source: "assoc(1, 2, [3])", msg: "Unexpected argument: assoc(Integer, Integer, List)"},
		{name: "assoc dict key", source: "assoc(#{}, 1, #{})", msg: "Unable to use a Dictionary as a Dictionary key"},
		{name: "builtin over application", source: "size([1], [2])", msg: "Function expects 1 arguments, got 2"},
	})
}

func TestBuiltinsDoNotMutateInputs(t *testing.T) {
	runEvalCases(t, []evalCase{
		{name: "push keeps list", source: "let xs = [1]; let ys = push(2, xs); [xs, ys]", want: "[[1], [1, 2]]"},
		{name: "push keeps set", source: "let s = {1}; let t = push(2, s); [s, t]", want: "[{1}, {1, 2}]"},
		{name: "assoc keeps dict", source: `let d = #{"a": 1}; let e = assoc("a", 9, d); [d, e]`, want: `[#{"a": 1}, #{"a": 9}]`},
		{name: "rest keeps list", source: "let xs = [1, 2]; rest(xs); xs", want: "[1, 2]"},
		{name: "concat keeps operands", source: "let a = [1]; let b = a + [2]; [a, b]", want: "[[1], [1, 2]]"},
	})
}

func TestCurryingEquivalence(t *testing.T) {
	full := mustRender(t, `assoc("k", 1, #{})`)
	forms := []string{
		`assoc("k")(1)(#{})`,
		`assoc("k", 1)(#{})`,
		`assoc("k")(1, #{})`,
		`assoc()("k", 1, #{})`,
	}
	for _, source := range forms {
		if got := mustRender(t, source); got != full {
			t.Fatalf("%s = %s, want %s", source, got, full)
		}
	}
}

func TestCalls(t *testing.T) {
	runEvalCases(t, []evalCase{
		{name: "zero arity call", source: "let f = || 42; f()", want: "42"},
		{name: "partial of partial", source: "let f = |a, b, c| a + b + c; f(1)(2)(3)", want: "6"},
		{name: "partial renders as function", source: "let f = |a, b| a; f(1)", want: "|...| { [closure] }"},
		{name: "closure renders parameters", source: "|a, b| a", want: "|a, b| { [closure] }"},
		{name: "immediately invoked", source: "(|x| x * x)(9)", want: "81"},
		{name: "higher order", source: "let twice = |f, x| f(f(x)); twice(|x| x + 3, 1)", want: "7"},
		{name: "body value is last statement", source: "let f = |x| { let y = x * 2; y + 1 }; f(4)", want: "9"},
		{name: "body comments ignored", source: "let f = || { 1 // one\n }; f()", want: "1"},
	})
	runErrorCases(t, []errorCase{
		{name: "over application", source: "let f = |a| a; f(1, 2)", msg: "Function expects 1 arguments, got 2"},
		{name: "partial over application", source: "let f = |a, b| a; f(1)(2, 3)", msg: "Function expects 2 arguments, got 3"},
		{name: "call integer", source: "1(2)", msg: "Expected a Function, found: Integer"},
		{name: "call string", source: `let s = "x"; s()`, msg: "Expected a Function, found: String"},
		{name: "call nil", source: "nil()", msg: "Expected a Function, found: Nil"},
	})
}

func TestCompositionAndThreading(t *testing.T) {
	runEvalCases(t, []evalCase{
		{name: "compose three", source: "let inc = |x| x + 1; let dbl = |x| x * 2; (inc >> dbl >> inc)(3)", want: "9"},
		{name: "compose builtins", source: "(rest >> first)([1, 2, 3])", want: "2"},
		{name: "compose partials", source: "let add = |a, b| a + b; (add(1) >> add(10))(0)", want: "11"},
		{name: "compose is a function", source: "let f = size >> size; f == f", want: "true"},
		{name: "thread into calls", source: "[1, 2, 3] |> map(|x| x * 2) |> filter(|x| x > 2)", want: "[4, 6]"},
		{name: "thread into identifiers", source: "[3, 4] |> rest |> first", want: "4"},
		{name: "thread fold", source: "[1, 2, 3] |> fold(0, +)", want: "6"},
		{name: "thread into composition", source: "let inc = |x| x + 1; 1 |> inc >> inc", want: "3"},
		{name: "thread into lambda", source: "5 |> |x| x * x", want: "25"},
		{name: "composition renders without parameters", source: "let inc = |x| x + 1; inc >> inc", want: "|...| { [closure] }"},
		{name: "composition inside list", source: "[size >> size]", want: "[|...| { [closure] }]"},
		{name: "composed closure captures scope", source: "let k = 10; let addk = |x| x + k; let f = addk >> addk; let k2 = 1; f(0)", want: "20"},
	})
	runErrorCases(t, []errorCase{
		{name: "compose non function", source: "(1 >> size)([1])", msg: "Expected a Function, found: Integer"},
		{name: "thread into non function", source: "1 |> 2", msg: "Expected a Function, found: Integer"},
		{name: "thread error stops", source: "[1] |> map(|x| x / 0) |> size", msg: "Division by zero"},
		{name: "compose over application", source: "let two = |a, b| a; (two >> size)(1, 2)", msg: "Function expects 1 arguments, got 2"},
	})
}

func TestPutsWritesRenderings(t *testing.T) {
	var out bytes.Buffer
	interp := NewWithOutput(&out)
	val, err := interp.EvaluateSource(`puts("hi", 1, [2]); puts()`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != runtime.Nil {
		t.Fatalf("puts should return nil, got %s", runtime.Inspect(val))
	}
	if got, want := out.String(), "\"hi\" 1 [2] \n\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestBuiltinNames(t *testing.T) {
	names := BuiltinNames()
	want := map[string]bool{"map": true, "filter": true, "fold": true, "size": true, "push": true, "first": true, "rest": true, "assoc": true, "puts": true, "+": true, "!=": true}
	seen := 0
	for _, name := range names {
		if want[name] {
			seen++
		}
	}
	if seen != len(want) {
		t.Fatalf("builtin names missing entries: %v", names)
	}
}
