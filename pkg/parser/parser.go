package parser

import (
	"fortio.org/log"

	"elf/interpreter-go/pkg/ast"
	"elf/interpreter-go/pkg/lexer"
)

// Parser builds an AST from a token stream by precedence climbing. It stops
// at the first unexpected token.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New constructs a parser over tokens. A missing EOF terminator is appended.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.TokenEOF {
		line, column := 1, 1
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			line, column = last.Line, last.Column+len(last.Value)
		}
		tokens = append(tokens[:len(tokens):len(tokens)], lexer.Token{Type: lexer.TokenEOF, Line: line, Column: column})
	}
	return &Parser{tokens: tokens}
}

// Parse converts tokens into a Program.
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseSource lexes and parses src in one step.
func ParseSource(src string) (*ast.Program, error) {
	tokens, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseProgram consumes every token up to EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	start := p.current()
	statements, err := p.parseStatements(lexer.TokenEOF)
	if err != nil {
		return nil, err
	}
	program := ast.NewProgram(statements)
	p.mark(program, start)
	log.Debugf("parser: parsed program with %d statements", len(statements))
	return program, nil
}

func (p *Parser) current() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekType(offset int) lexer.TokenType {
	if p.pos+offset >= len(p.tokens) {
		return lexer.TokenEOF
	}
	return p.tokens[p.pos+offset].Type
}

func (p *Parser) at(typ lexer.TokenType) bool {
	return p.current().Type == typ
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(typ lexer.TokenType) (lexer.Token, error) {
	tok := p.current()
	if tok.Type != typ {
		return tok, syntaxError(tok, "'"+string(typ)+"'")
	}
	return p.advance(), nil
}

func (p *Parser) skipComments() {
	for p.at(lexer.TokenComment) {
		p.advance()
	}
}

func (p *Parser) mark(node ast.Node, tok lexer.Token) {
	ast.SetSpan(node, p.spanThrough(ast.At(tok.Line, tok.Column)))
}

// spanThrough widens start to the end of the last consumed token.
func (p *Parser) spanThrough(start ast.Span) ast.Span {
	if p.pos == 0 {
		return start
	}
	last := p.tokens[p.pos-1]
	return start.Extend(ast.At(last.Line, last.Column+len([]rune(last.Value))))
}

// parseStatements reads statements until the terminator token, which is left
// unconsumed. Semicolons between statements are optional.
func (p *Parser) parseStatements(terminator lexer.TokenType) ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)
	for {
		for p.at(lexer.TokenSemicolon) {
			p.advance()
		}
		tok := p.current()
		if tok.Type == terminator {
			return statements, nil
		}
		if tok.Type == lexer.TokenEOF {
			return nil, syntaxError(tok, "'"+string(terminator)+"'")
		}
		if tok.Type == lexer.TokenComment {
			p.advance()
			comment := ast.NewComment(tok.Value)
			p.mark(comment, tok)
			statements = append(statements, comment)
			continue
		}
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		stmt := ast.NewExpressionStatement(expr)
		p.mark(stmt, tok)
		statements = append(statements, stmt)
	}
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(lexer.TokenLBrace)
	if err != nil {
		return nil, err
	}
	statements, err := p.parseStatements(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	p.advance()
	block := ast.NewBlock(statements)
	p.mark(block, open)
	return block, nil
}
