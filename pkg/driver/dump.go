package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/lexer"
)

type tokenJSON struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// WriteTokens emits one minified JSON object per token, skipping EOF.
func WriteTokens(w io.Writer, tokens []lexer.Token) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, tok := range tokens {
		if tok.Type == lexer.TokenEOF {
			continue
		}
		if err := enc.Encode(tokenJSON{Type: string(tok.Type), Value: tok.Value}); err != nil {
			return fmt.Errorf("tokens: encode: %w", err)
		}
	}
	return nil
}

// WriteAST emits the program tree as one indented JSON document.
func WriteAST(w io.Writer, program *ast.Program) error {
	data, err := ast.JSON(program, "  ")
	if err != nil {
		return fmt.Errorf("ast: encode: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("ast: write: %w", err)
	}
	return nil
}

// DumpTokens lexes src and writes its token stream.
func DumpTokens(w io.Writer, src *Source) error {
	tokens, err := src.Tokenize()
	if err != nil {
		return err
	}
	return WriteTokens(w, tokens)
}

// DumpAST parses src and writes its tree.
func DumpAST(w io.Writer, src *Source) error {
	program, err := src.Parse()
	if err != nil {
		return err
	}
	return WriteAST(w, program)
}
