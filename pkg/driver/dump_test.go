package driver

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"elf/interpreter-go/pkg/lexer"
	"elf/interpreter-go/pkg/parser"
)

func TestDumpTokens(t *testing.T) {
	var buf bytes.Buffer
	src := NewSource("inline", `let s = "a>b"; // note`)
	if err := DumpTokens(&buf, src); err != nil {
		t.Fatalf("DumpTokens error: %v", err)
	}
	want := strings.Join([]string{
		`{"type":"LET","value":"let"}`,
		`{"type":"ID","value":"s"}`,
		`{"type":"=","value":"="}`,
		`{"type":"STR","value":"\"a>b\""}`,
		`{"type":";","value":";"}`,
		`{"type":"CMT","value":"// note"}`,
	}, "\n") + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("DumpTokens =\n%s\nwant\n%s", got, want)
	}
}

func TestDumpTokensLexError(t *testing.T) {
	var buf bytes.Buffer
	err := DumpTokens(&buf, NewSource("inline", "1 @"))
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written on error, got %q", buf.String())
	}
}

func TestDumpAST(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpAST(&buf, NewSource("inline", "a > b")); err != nil {
		t.Fatalf("DumpAST error: %v", err)
	}
	want := `{
  "statements": [
    {
      "type": "Expression",
      "value": {
        "left": {
          "name": "a",
          "type": "Identifier"
        },
        "operator": ">",
        "right": {
          "name": "b",
          "type": "Identifier"
        },
        "type": "Infix"
      }
    }
  ],
  "type": "Program"
}
`
	if got := buf.String(); got != want {
		t.Fatalf("DumpAST =\n%s\nwant\n%s", got, want)
	}
}

func TestDumpASTParseError(t *testing.T) {
	var buf bytes.Buffer
	err := DumpAST(&buf, NewSource("inline", "let = 1"))
	var parseErr *parser.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *parser.ParseError, got %v", err)
	}
}

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main"+SourceExtension)
	writeFile(t, path, "let x = 1;\nx + 1\n")

	src, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("LoadProgram error: %v", err)
	}
	if !filepath.IsAbs(src.Path) {
		t.Fatalf("Path should be absolute, got %q", src.Path)
	}
	if len(src.Program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(src.Program.Statements))
	}
	if len(src.Tokens) == 0 || src.Tokens[len(src.Tokens)-1].Type != lexer.TokenEOF {
		t.Fatalf("tokens should end with EOF: %v", src.Tokens)
	}
	again, err := src.Parse()
	if err != nil || again != src.Program {
		t.Fatal("Parse should return the cached program")
	}

	if _, err := LoadProgram(filepath.Join(dir, "absent.elf")); err == nil || !strings.Contains(err.Error(), "loader: read") {
		t.Fatalf("expected read error, got %v", err)
	}
}
