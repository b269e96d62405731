package parser

import (
	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/lexer"
)

func (p *Parser) parseLiteral() (ast.Expression, error) {
	tok := p.advance()
	var expr ast.Expression
	switch tok.Type {
	case lexer.TokenInt:
		expr = ast.NewIntegerLiteral(tok.Value)
	case lexer.TokenDecimal:
		expr = ast.NewDecimalLiteral(tok.Value)
	case lexer.TokenString:
		expr = ast.NewStringLiteral(lexer.UnquoteString(tok.Value))
	case lexer.TokenTrue:
		expr = ast.NewBooleanLiteral(true)
	case lexer.TokenFalse:
		expr = ast.NewBooleanLiteral(false)
	case lexer.TokenNil:
		expr = ast.NewNilLiteral()
	default:
		return nil, syntaxError(tok, "literal")
	}
	p.mark(expr, tok)
	return expr, nil
}

func (p *Parser) parseLet() (ast.Expression, error) {
	letTok := p.advance()
	mutable := false
	if p.at(lexer.TokenMut) {
		p.advance()
		mutable = true
	}
	nameTok, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	name := ast.NewIdentifier(nameTok.Value)
	p.mark(name, nameTok)
	expr := ast.NewLetExpression(name, value, mutable)
	p.mark(expr, letTok)
	return expr, nil
}

// parseIf accepts `else if` chains by wrapping the nested if in a
// single-statement else block.
func (p *Parser) parseIf() (ast.Expression, error) {
	ifTok := p.advance()
	condition, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	consequence, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var alternative *ast.Block
	if p.at(lexer.TokenElse) {
		elseTok := p.advance()
		if p.at(lexer.TokenIf) {
			nestedTok := p.current()
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt := ast.NewExpressionStatement(nested)
			p.mark(stmt, nestedTok)
			alternative = ast.NewBlock([]ast.Statement{stmt})
			p.mark(alternative, elseTok)
		} else {
			alternative, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}
	expr := ast.NewIfExpression(condition, consequence, alternative)
	p.mark(expr, ifTok)
	return expr, nil
}

// parseFunctionLiteral handles `|a, b| body` and `|| body`. A body that is not
// a brace block becomes a single-statement block.
func (p *Parser) parseFunctionLiteral() (ast.Expression, error) {
	open := p.advance()
	params := make([]*ast.Identifier, 0)
	if open.Type == lexer.TokenPipe {
		for !p.at(lexer.TokenPipe) {
			nameTok, err := p.expect(lexer.TokenIdent)
			if err != nil {
				return nil, err
			}
			param := ast.NewIdentifier(nameTok.Value)
			p.mark(param, nameTok)
			params = append(params, param)
			if p.at(lexer.TokenComma) {
				p.advance()
				continue
			}
			if !p.at(lexer.TokenPipe) {
				return nil, syntaxError(p.current(), "'|'")
			}
		}
		p.advance()
	}

	var body *ast.Block
	if p.at(lexer.TokenLBrace) {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		body = block
	} else {
		bodyTok := p.current()
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt := ast.NewExpressionStatement(expr)
		p.mark(stmt, bodyTok)
		body = ast.NewBlock([]ast.Statement{stmt})
		p.mark(body, bodyTok)
	}
	fn := ast.NewFunctionLiteral(params, body)
	p.mark(fn, open)
	return fn, nil
}

func (p *Parser) parseListLiteral() (ast.Expression, error) {
	open := p.current()
	items, err := p.parseExpressionList(lexer.TokenLBracket, lexer.TokenRBracket)
	if err != nil {
		return nil, err
	}
	list := ast.NewListLiteral(items)
	p.mark(list, open)
	return list, nil
}

func (p *Parser) parseSetLiteral() (ast.Expression, error) {
	open := p.current()
	items, err := p.parseExpressionList(lexer.TokenLBrace, lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	set := ast.NewSetLiteral(items)
	p.mark(set, open)
	return set, nil
}

func (p *Parser) parseDictLiteral() (ast.Expression, error) {
	open := p.advance()
	entries := make([]*ast.DictEntry, 0)
	for {
		p.skipComments()
		if p.at(lexer.TokenRBrace) {
			p.advance()
			break
		}
		key, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		p.skipComments()
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &ast.DictEntry{Key: key, Value: value})
		p.skipComments()
		if p.at(lexer.TokenComma) {
			p.advance()
			continue
		}
		if _, err := p.expect(lexer.TokenRBrace); err != nil {
			return nil, err
		}
		break
	}
	dict := ast.NewDictLiteral(entries)
	p.mark(dict, open)
	return dict, nil
}
