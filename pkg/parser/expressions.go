package parser

import (
	"fortio.org/log"

	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/lexer"
)

func (p *Parser) parseExpression(minPrec precedence) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.current()
		prec := precedenceOf(tok.Type)
		if prec <= minPrec {
			return left, nil
		}
		left, err = p.parseInfix(left, tok, prec)
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parsePrefix() (ast.Expression, error) {
	p.skipComments()
	tok := p.current()

	if tok.IsOperator() && p.standsAlone() {
		p.advance()
		id := ast.NewIdentifier(tok.Value)
		p.mark(id, tok)
		return id, nil
	}

	switch tok.Type {
	case lexer.TokenIdent:
		p.advance()
		id := ast.NewIdentifier(tok.Value)
		p.mark(id, tok)
		return id, nil
	case lexer.TokenInt, lexer.TokenDecimal, lexer.TokenString,
		lexer.TokenTrue, lexer.TokenFalse, lexer.TokenNil:
		return p.parseLiteral()
	case lexer.TokenMinus:
		p.advance()
		operand, err := p.parseExpression(precPrefix)
		if err != nil {
			return nil, err
		}
		expr := ast.NewPrefixExpression(ast.OpSubtract, operand)
		p.mark(expr, tok)
		return expr, nil
	case lexer.TokenLet:
		return p.parseLet()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenPipe, lexer.TokenOr:
		return p.parseFunctionLiteral()
	case lexer.TokenLBracket:
		return p.parseListLiteral()
	case lexer.TokenLBrace:
		return p.parseSetLiteral()
	case lexer.TokenDictOpen:
		return p.parseDictLiteral()
	case lexer.TokenLParen:
		p.advance()
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		p.skipComments()
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, syntaxError(tok, "")
	}
}

// standsAlone reports whether the current operator token is used as a value,
// as in `fold(0, +, xs)`.
func (p *Parser) standsAlone() bool {
	switch p.peekType(1) {
	case lexer.TokenComma, lexer.TokenRParen, lexer.TokenRBracket,
		lexer.TokenRBrace, lexer.TokenSemicolon, lexer.TokenEOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseInfix(left ast.Expression, tok lexer.Token, prec precedence) (ast.Expression, error) {
	switch tok.Type {
	case lexer.TokenLParen:
		return p.parseCall(left)
	case lexer.TokenLBracket:
		return p.parseIndex(left)
	}

	p.advance()
	rightPrec := prec
	if rightAssociative(tok.Type) {
		rightPrec = prec - 1
	}
	right, err := p.parseExpression(rightPrec)
	if err != nil {
		return nil, err
	}

	var expr ast.Expression
	switch tok.Type {
	case lexer.TokenAssign:
		target, ok := left.(*ast.Identifier)
		if !ok {
			return nil, &ParseError{
				Message:  "parser: syntax error: assignment target must be an identifier",
				Location: locationForToken(tok),
			}
		}
		expr = ast.NewAssignmentExpression(target, right)
	case lexer.TokenCompose:
		expr = ast.NewFunctionComposition(append(composedFunctions(left), composedFunctions(right)...))
	case lexer.TokenThread:
		if thread, ok := left.(*ast.FunctionThread); ok {
			functions := append(thread.Functions[:len(thread.Functions):len(thread.Functions)], right)
			expr = ast.NewFunctionThread(thread.Initial, functions)
			ast.SetSpan(expr, p.spanThrough(thread.Span()))
			return expr, nil
		}
		expr = ast.NewFunctionThread(left, []ast.Expression{right})
	default:
		op, ok := ast.LookupOperator(tok.Value)
		if !ok {
			return nil, syntaxError(tok, "operator")
		}
		expr = ast.NewInfixExpression(op, left, right)
	}
	ast.SetSpan(expr, p.spanThrough(left.Span()))
	return expr, nil
}

// composedFunctions flattens nested compositions so `f >> g >> h` yields one
// node listing the functions in application order.
func composedFunctions(expr ast.Expression) []ast.Expression {
	if composition, ok := expr.(*ast.FunctionComposition); ok {
		log.LogVf("parser: flattening composition of %d functions", len(composition.Functions))
		return composition.Functions
	}
	return []ast.Expression{expr}
}

func (p *Parser) parseCall(callee ast.Expression) (ast.Expression, error) {
	args, err := p.parseExpressionList(lexer.TokenLParen, lexer.TokenRParen)
	if err != nil {
		return nil, err
	}
	call := ast.NewCallExpression(callee, args)
	ast.SetSpan(call, p.spanThrough(callee.Span()))
	return call, nil
}

func (p *Parser) parseIndex(target ast.Expression) (ast.Expression, error) {
	p.advance()
	index, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.skipComments()
	if _, err := p.expect(lexer.TokenRBracket); err != nil {
		return nil, err
	}
	expr := ast.NewIndexExpression(target, index)
	ast.SetSpan(expr, p.spanThrough(target.Span()))
	return expr, nil
}

// parseExpressionList reads comma separated expressions between open and
// close. A trailing comma is tolerated and comments between items are skipped.
func (p *Parser) parseExpressionList(open, close lexer.TokenType) ([]ast.Expression, error) {
	if _, err := p.expect(open); err != nil {
		return nil, err
	}
	items := make([]ast.Expression, 0)
	for {
		p.skipComments()
		if p.at(close) {
			p.advance()
			return items, nil
		}
		item, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		p.skipComments()
		if p.at(lexer.TokenComma) {
			p.advance()
			continue
		}
		if _, err := p.expect(close); err != nil {
			return nil, err
		}
		return items, nil
	}
}
