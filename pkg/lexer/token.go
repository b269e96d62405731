package lexer

import "fmt"

// TokenType names a lexical category. Operator and punctuation tokens use
// their literal spelling as the type name.
type TokenType string

const (
	TokenInt     TokenType = "INT"
	TokenDecimal TokenType = "DEC"
	TokenString  TokenType = "STR"
	TokenTrue    TokenType = "TRUE"
	TokenFalse   TokenType = "FALSE"
	TokenNil     TokenType = "NIL"
	TokenIdent   TokenType = "ID"
	TokenLet     TokenType = "LET"
	TokenMut     TokenType = "MUT"
	TokenIf      TokenType = "IF"
	TokenElse    TokenType = "ELSE"
	TokenComment TokenType = "CMT"
	TokenEOF     TokenType = "EOF"

	TokenPlus      TokenType = "+"
	TokenMinus     TokenType = "-"
	TokenStar      TokenType = "*"
	TokenSlash     TokenType = "/"
	TokenAssign    TokenType = "="
	TokenGreater   TokenType = ">"
	TokenLess      TokenType = "<"
	TokenGreaterEq TokenType = ">="
	TokenLessEq    TokenType = "<="
	TokenEqual     TokenType = "=="
	TokenNotEqual  TokenType = "!="
	TokenAnd       TokenType = "&&"
	TokenOr        TokenType = "||"
	TokenThread    TokenType = "|>"
	TokenCompose   TokenType = ">>"
	TokenDictOpen  TokenType = "#{"
	TokenLBrace    TokenType = "{"
	TokenRBrace    TokenType = "}"
	TokenLBracket  TokenType = "["
	TokenRBracket  TokenType = "]"
	TokenLParen    TokenType = "("
	TokenRParen    TokenType = ")"
	TokenSemicolon TokenType = ";"
	TokenComma     TokenType = ","
	TokenPipe      TokenType = "|"
	TokenColon     TokenType = ":"
)

var keywords = map[string]TokenType{
	"let":   TokenLet,
	"mut":   TokenMut,
	"if":    TokenIf,
	"else":  TokenElse,
	"true":  TokenTrue,
	"false": TokenFalse,
	"nil":   TokenNil,
}

// Token is a typed slice of the source. Value holds the raw text.
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", t.Value)
}

// IsOperator reports whether the token spells a binary operator usable as a function value.
func (t Token) IsOperator() bool {
	switch t.Type {
	case TokenPlus, TokenMinus, TokenStar, TokenSlash,
		TokenGreater, TokenLess, TokenGreaterEq, TokenLessEq,
		TokenEqual, TokenNotEqual:
		return true
	default:
		return false
	}
}
