package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/log"

	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/lexer"
	"elf/interpreter-go/pkg/parser"
)

// SourceExtension is the conventional suffix for elf programs.
const SourceExtension = ".elf"

// Source is one program file carried through the front end.
type Source struct {
	Path    string
	Text    string
	Tokens  []lexer.Token
	Program *ast.Program
}

// ReadSource reads a program file without lexing it.
func ReadSource(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return &Source{Path: absPath, Text: string(data)}, nil
}

// Tokenize lexes the source text, caching the token stream.
func (s *Source) Tokenize() ([]lexer.Token, error) {
	if s.Tokens != nil {
		return s.Tokens, nil
	}
	tokens, err := lexer.Lex(s.Text)
	if err != nil {
		return nil, err
	}
	s.Tokens = tokens
	return tokens, nil
}

// Parse lexes and parses the source text, caching the program.
func (s *Source) Parse() (*ast.Program, error) {
	if s.Program != nil {
		return s.Program, nil
	}
	tokens, err := s.Tokenize()
	if err != nil {
		return nil, err
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	log.LogVf("loader: parsed %s (%d tokens, %d statements)", s.Path, len(tokens), len(program.Statements))
	s.Program = program
	return program, nil
}

// LoadProgram reads and parses a program file.
func LoadProgram(path string) (*Source, error) {
	src, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	if _, err := src.Parse(); err != nil {
		return src, err
	}
	return src, nil
}

// NewSource wraps in-memory text, used for fixtures and the repl.
func NewSource(path, text string) *Source {
	return &Source{Path: path, Text: text}
}
