package interpreter

import (
	"bytes"
	"errors"
	"testing"

	"elf/interpreter-go/pkg/runtime"
)

func evalSource(t testing.TB, source string) (runtime.Value, error) {
	t.Helper()
	interp := NewWithOutput(&bytes.Buffer{})
	return interp.EvaluateSource(source)
}

func mustRender(t testing.TB, source string) string {
	t.Helper()
	val, err := evalSource(t, source)
	if err != nil {
		t.Fatalf("evaluating %q: unexpected error %v", source, err)
	}
	return runtime.Inspect(val)
}

func expectRender(t testing.TB, source, want string) {
	t.Helper()
	if got := mustRender(t, source); got != want {
		t.Fatalf("evaluating %q = %s, want %s", source, got, want)
	}
}

func expectEvalError(t testing.TB, source, msg string) {
	t.Helper()
	val, err := evalSource(t, source)
	if err == nil {
		t.Fatalf("evaluating %q: expected error %q, got value %s", source, msg, runtime.Inspect(val))
	}
	var errVal *runtime.ErrorValue
	if !errors.As(err, &errVal) {
		t.Fatalf("evaluating %q: expected evaluation error, got %T %v", source, err, err)
	}
	if errVal.Message != msg {
		t.Fatalf("evaluating %q: error %q, want %q", source, errVal.Message, msg)
	}
}

type evalCase struct {
	name   string
	source string
	want   string
}

type errorCase struct {
	name   string
	source string
	msg    string
}

func runEvalCases(t *testing.T, cases []evalCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectRender(t, tc.source, tc.want)
		})
	}
}

func runErrorCases(t *testing.T, cases []errorCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectEvalError(t, tc.source, tc.msg)
		})
	}
}
