package parser

import (
	"errors"
	"fmt"

	"elf/interpreter-go/pkg/lexer"
)

// SourceLocation captures a source span for parser diagnostics.
type SourceLocation struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// ParseError includes a message plus a best-effort source location.
type ParseError struct {
	Message  string
	Location SourceLocation
	// AtEOF is set when parsing ran out of input.
	AtEOF bool
}

func (e *ParseError) Error() string {
	return e.Message
}

func locationForToken(tok lexer.Token) SourceLocation {
	width := len([]rune(tok.Value))
	if width == 0 {
		width = 1
	}
	return SourceLocation{
		Line:      tok.Line,
		Column:    tok.Column,
		EndLine:   tok.Line,
		EndColumn: tok.Column + width,
	}
}

func syntaxError(tok lexer.Token, expected string) *ParseError {
	message := fmt.Sprintf("parser: syntax error: unexpected %s", tok)
	if expected != "" {
		message = fmt.Sprintf("parser: syntax error: expected %s, found %s", expected, tok)
	}
	return &ParseError{
		Message:  message,
		Location: locationForToken(tok),
		AtEOF:    tok.Type == lexer.TokenEOF,
	}
}

// IsIncomplete reports whether err means the input ended early, so more
// text could still complete it.
func IsIncomplete(err error) bool {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.AtEOF
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Message == lexer.UnterminatedString
	}
	return false
}

// Describe renders the error with its position for terminal output.
func (e *ParseError) Describe(path string) string {
	if path == "" {
		return fmt.Sprintf("%d:%d: %s", e.Location.Line, e.Location.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", path, e.Location.Line, e.Location.Column, e.Message)
}
