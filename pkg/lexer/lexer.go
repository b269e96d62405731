package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// UnterminatedString is the message for a string literal still open at end
// of input.
const UnterminatedString = "unterminated string literal"

// Error reports a lexical failure with the position of the offending input.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer: %s at %d:%d", e.Message, e.Line, e.Column)
}

type scanner struct {
	src    string
	pos    int
	line   int
	column int
	tokens []Token
}

// Lex splits src into tokens terminated by a single EOF token.
func Lex(src string) ([]Token, error) {
	s := &scanner{src: src, line: 1, column: 1}
	for {
		s.skipWhitespace()
		if s.pos >= len(s.src) {
			break
		}
		if err := s.next(); err != nil {
			return nil, err
		}
	}
	s.tokens = append(s.tokens, Token{Type: TokenEOF, Line: s.line, Column: s.column})
	return s.tokens, nil
}

func (s *scanner) peek(offset int) byte {
	if s.pos+offset >= len(s.src) {
		return 0
	}
	return s.src[s.pos+offset]
}

func (s *scanner) advance(n int) {
	for i := 0; i < n && s.pos < len(s.src); i++ {
		if s.src[s.pos] == '\n' {
			s.line++
			s.column = 1
		} else if utf8.RuneStart(s.src[s.pos]) {
			s.column++
		}
		s.pos++
	}
}

func (s *scanner) skipWhitespace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.advance(1)
		default:
			return
		}
	}
}

func (s *scanner) emit(typ TokenType, start, line, column int) {
	s.tokens = append(s.tokens, Token{Type: typ, Value: s.src[start:s.pos], Line: line, Column: column})
}

func (s *scanner) next() error {
	start, line, column := s.pos, s.line, s.column
	ch := s.src[s.pos]

	switch {
	case ch == '/' && s.peek(1) == '/':
		for s.pos < len(s.src) && s.src[s.pos] != '\n' {
			s.advance(1)
		}
		s.emit(TokenComment, start, line, column)
		return nil
	case ch == '"':
		return s.lexString(start, line, column)
	case isDigit(ch):
		s.lexNumber(start, line, column)
		return nil
	case isIdentStart(s.src[s.pos:]):
		for s.pos < len(s.src) && isIdentPart(s.src[s.pos:]) {
			_, size := utf8.DecodeRuneInString(s.src[s.pos:])
			s.advance(size)
		}
		word := s.src[start:s.pos]
		typ, ok := keywords[word]
		if !ok {
			typ = TokenIdent
		}
		s.emit(typ, start, line, column)
		return nil
	}

	if typ, ok := twoCharTokens[string([]byte{ch, s.peek(1)})]; ok {
		s.advance(2)
		s.emit(typ, start, line, column)
		return nil
	}
	if typ, ok := oneCharTokens[ch]; ok {
		s.advance(1)
		s.emit(typ, start, line, column)
		return nil
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return &Error{Message: fmt.Sprintf("unexpected character %q", r), Line: line, Column: column}
}

var twoCharTokens = map[string]TokenType{
	"#{": TokenDictOpen,
	"==": TokenEqual,
	"!=": TokenNotEqual,
	">=": TokenGreaterEq,
	"<=": TokenLessEq,
	"&&": TokenAnd,
	"||": TokenOr,
	"|>": TokenThread,
	">>": TokenCompose,
}

var oneCharTokens = map[byte]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'=': TokenAssign,
	'>': TokenGreater,
	'<': TokenLess,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
	'(': TokenLParen,
	')': TokenRParen,
	';': TokenSemicolon,
	',': TokenComma,
	'|': TokenPipe,
	':': TokenColon,
}

func (s *scanner) lexString(start, line, column int) error {
	s.advance(1)
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			if s.pos+1 >= len(s.src) {
				return &Error{Message: UnterminatedString, Line: line, Column: column}
			}
			s.advance(2)
		case '"':
			s.advance(1)
			s.emit(TokenString, start, line, column)
			return nil
		default:
			s.advance(1)
		}
	}
	return &Error{Message: UnterminatedString, Line: line, Column: column}
}

func (s *scanner) lexNumber(start, line, column int) {
	for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
		s.advance(1)
	}
	typ := TokenInt
	if s.peek(0) == '.' && isDigit(s.peek(1)) {
		s.advance(1)
		for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
			s.advance(1)
		}
		typ = TokenDecimal
	}
	s.emit(typ, start, line, column)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(rest string) bool {
	r, _ := utf8.DecodeRuneInString(rest)
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(rest string) bool {
	r, _ := utf8.DecodeRuneInString(rest)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// UnquoteString decodes the body of a STR token, resolving escape sequences.
// Unknown escapes keep the escaped character.
func UnquoteString(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			out = append(out, raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		default:
			out = append(out, raw[i])
		}
	}
	return string(out)
}
