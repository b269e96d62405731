package parser

import "elf/interpreter-go/pkg/lexer"

type precedence int

const (
	precLowest precedence = iota
	precAssign
	precOr
	precAnd
	precEquality
	precComparison
	precThread
	precCompose
	precSum
	precProduct
	precPrefix
	precPostfix
)

var infixPrecedence = map[lexer.TokenType]precedence{
	lexer.TokenAssign:    precAssign,
	lexer.TokenOr:        precOr,
	lexer.TokenAnd:       precAnd,
	lexer.TokenEqual:     precEquality,
	lexer.TokenNotEqual:  precEquality,
	lexer.TokenGreater:   precComparison,
	lexer.TokenLess:      precComparison,
	lexer.TokenGreaterEq: precComparison,
	lexer.TokenLessEq:    precComparison,
	lexer.TokenThread:    precThread,
	lexer.TokenCompose:   precCompose,
	lexer.TokenPlus:      precSum,
	lexer.TokenMinus:     precSum,
	lexer.TokenStar:      precProduct,
	lexer.TokenSlash:     precProduct,
	lexer.TokenLParen:    precPostfix,
	lexer.TokenLBracket:  precPostfix,
}

func precedenceOf(typ lexer.TokenType) precedence {
	if prec, ok := infixPrecedence[typ]; ok {
		return prec
	}
	return precLowest
}

// rightAssociative operators parse their right operand one level lower so a
// repeated operator nests to the right.
func rightAssociative(typ lexer.TokenType) bool {
	return typ == lexer.TokenAssign || typ == lexer.TokenCompose
}
