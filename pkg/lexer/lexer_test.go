package lexer

import (
	"errors"
	"testing"
)

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func TestLexTokenTypes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []TokenType
	}{
		{
			name: "let binding",
			src:  "let mut x = 1_000;",
			want: []TokenType{TokenLet, TokenMut, TokenIdent, TokenAssign, TokenInt, TokenSemicolon, TokenEOF},
		},
		{
			name: "decimal and operators",
			src:  "1.5 >= 2 && x != y || z <= 3",
			want: []TokenType{TokenDecimal, TokenGreaterEq, TokenInt, TokenAnd, TokenIdent, TokenNotEqual, TokenIdent, TokenOr, TokenIdent, TokenLessEq, TokenInt, TokenEOF},
		},
		{
			name: "thread and compose",
			src:  "xs |> map(inc) >> f",
			want: []TokenType{TokenIdent, TokenThread, TokenIdent, TokenLParen, TokenIdent, TokenRParen, TokenCompose, TokenIdent, TokenEOF},
		},
		{
			name: "collections",
			src:  `#{"a": [1], "b": {2}}`,
			want: []TokenType{TokenDictOpen, TokenString, TokenColon, TokenLBracket, TokenInt, TokenRBracket, TokenComma, TokenString, TokenColon, TokenLBrace, TokenInt, TokenRBrace, TokenRBrace, TokenEOF},
		},
		{
			name: "function literal",
			src:  "|a, b| a * b",
			want: []TokenType{TokenPipe, TokenIdent, TokenComma, TokenIdent, TokenPipe, TokenIdent, TokenStar, TokenIdent, TokenEOF},
		},
		{
			name: "keywords",
			src:  "if true { nil } else { false }",
			want: []TokenType{TokenIf, TokenTrue, TokenLBrace, TokenNil, TokenRBrace, TokenElse, TokenLBrace, TokenFalse, TokenRBrace, TokenEOF},
		},
		{
			name: "comment",
			src:  "1 // trailing\n2",
			want: []TokenType{TokenInt, TokenComment, TokenInt, TokenEOF},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Lex(tc.src)
			if err != nil {
				t.Fatalf("Lex returned error: %v", err)
			}
			got := tokenTypes(tokens)
			if len(got) != len(tc.want) {
				t.Fatalf("token types = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("token %d = %s, want %s (all: %v)", i, got[i], tc.want[i], got)
				}
			}
		})
	}
}

func TestLexRawValues(t *testing.T) {
	tokens, err := Lex(`1_000.25 "a\"b" // note`)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	if tokens[0].Value != "1_000.25" {
		t.Fatalf("decimal raw value = %q", tokens[0].Value)
	}
	if tokens[1].Value != `"a\"b"` {
		t.Fatalf("string raw value = %q", tokens[1].Value)
	}
	if tokens[2].Value != "// note" {
		t.Fatalf("comment raw value = %q", tokens[2].Value)
	}
}

func TestLexPositions(t *testing.T) {
	tokens, err := Lex("let x = 1;\n  x + 2")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	plus := tokens[6]
	if plus.Type != TokenPlus || plus.Line != 2 || plus.Column != 5 {
		t.Fatalf("unexpected position for %#v", plus)
	}
}

func TestLexTrailingDotIsRejected(t *testing.T) {
	_, err := Lex("1.")
	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected lexer error, got %v", err)
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		msg  string
	}{
		{name: "unterminated string", src: `"abc`, msg: "lexer: unterminated string literal at 1:1"},
		{name: "unknown character", src: "1 @ 2", msg: `lexer: unexpected character '@' at 1:3`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Lex(tc.src)
			if err == nil {
				t.Fatalf("expected error")
			}
			if err.Error() != tc.msg {
				t.Fatalf("error = %q, want %q", err.Error(), tc.msg)
			}
		})
	}
}

func TestUnquoteString(t *testing.T) {
	cases := map[string]string{
		`"plain"`:       "plain",
		`"a\nb"`:        "a\nb",
		`"tab\there"`:   "tab\there",
		`"q\"uote"`:     `q"uote`,
		`"back\\slash"`: `back\slash`,
	}
	for raw, want := range cases {
		if got := UnquoteString(raw); got != want {
			t.Fatalf("UnquoteString(%s) = %q, want %q", raw, got, want)
		}
	}
}
