package parser

import (
	"testing"

	"elf/interpreter-go/pkg/ast"
)

func mustParse(t testing.TB, source string) *ast.Program {
	t.Helper()
	program, err := ParseSource(source)
	if err != nil {
		t.Fatalf("ParseSource(%q) error: %v", source, err)
	}
	return program
}

// assertProgramsEqual compares programs by their debug JSON so spans are ignored.
func assertProgramsEqual(t testing.TB, expected, actual *ast.Program) {
	t.Helper()
	wantJSON, err := ast.JSON(expected, "  ")
	if err != nil {
		t.Fatalf("marshal expected: %v", err)
	}
	gotJSON, err := ast.JSON(actual, "  ")
	if err != nil {
		t.Fatalf("marshal actual: %v", err)
	}
	if string(wantJSON) != string(gotJSON) {
		t.Fatalf("program mismatch\nexpected: %s\n   actual: %s", wantJSON, gotJSON)
	}
}
