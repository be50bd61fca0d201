/*
Package parser implements a Pratt (top-down operator precedence) parser
for Mirrow. It wraps a lexer.Lexer and pulls tokens lazily, one at a
time, holding only a one-token lookahead — the canonical shape named by
spec.md's Design Notes, as opposed to the token-vector-backed earlier
draft parser found in original_source/src/parser.rs (grounding-only; see
DESIGN.md).

Dispatch is table-driven, the same mechanism the host interpreter's
parser uses (UnaryFuncs/BinaryFuncs maps keyed by token type), renamed
here to the nud/led terminology spec.md uses: nud ("null denotation")
parses a token that starts an expression, led ("left denotation") parses
an infix/postfix operator given the already-parsed left operand.
*/
package parser

import (
	"fmt"

	"github.com/mirrow-lang/mirrow/ast"
	"github.com/mirrow-lang/mirrow/lexer"
)

type nudFunc func() ast.Expr
type ledFunc func(left ast.Expr) ast.Expr

// Parser holds parsing state: the lexer it pulls tokens from, the
// current and lookahead tokens, the nud/led dispatch tables, and an
// accumulated error list (parsing never panics; it collects and
// continues, the same policy the host interpreter's parser follows).
type Parser struct {
	lex *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token

	nuds map[lexer.TokenType]nudFunc
	leds map[lexer.TokenType]ledFunc

	Errors []string
}

// NewParser wraps lex in a Parser, registers the grammar's nud/led
// table, and primes the two-token lookahead.
func NewParser(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex, Errors: []string{}}
	p.nuds = make(map[lexer.TokenType]nudFunc)
	p.leds = make(map[lexer.TokenType]ledFunc)
	p.registerGrammar()
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) addErrorf(format string, args ...interface{}) {
	p.Errors = append(p.Errors, fmt.Sprintf(format, args...))
}

// HasErrors reports whether parsing has accumulated any syntax errors.
func (p *Parser) HasErrors() bool { return len(p.Errors) > 0 }

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

// expectPeek checks that peek matches t; if so, advances past it and
// returns true. Otherwise it records a syntax error and returns false,
// leaving the cursor where it was so the caller can attempt recovery.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peek.Type != t {
		p.addErrorf("[%d:%d] syntax error: expected %s, got %s",
			p.peek.Line, p.peek.Column, t, p.peek.Type)
		return false
	}
	p.advance()
	return true
}

func (p *Parser) peekPrecedence() Precedence {
	return precedenceOf(p.peek.Type)
}

// ParseProgram parses the entire token stream into a Program, the root
// of the AST. Statement-level parse errors are recorded but do not stop
// parsing: after a statement that reported an error, the parser skips
// ahead to the end of the current line or the next ';' and resumes there,
// so multiple errors can be reported from one pass.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{Statements: []ast.Stmt{}}

	for !p.curIs(lexer.EOF) {
		errCount := len(p.Errors)
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if len(p.Errors) > errCount {
			for !p.curIs(lexer.SEMICOLON_DELIM) && !p.peekIs(lexer.EOF) && p.peek.Line == p.cur.Line {
				p.advance()
			}
		}
		p.advance()
	}
	return prog
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case lexer.IMPORT_KEY:
		return p.parseImportStatement()
	case lexer.LET_KEY:
		return p.parseLetStatement()
	case lexer.FUNC_KEY:
		return p.parseFunctionStatement()
	case lexer.STRUCT_KEY:
		return p.parseStructStatement()
	case lexer.ENUM_KEY:
		return p.parseEnumStatement()
	case lexer.MATCH_KEY:
		return p.parseMatchStatement()
	case lexer.RETURN_KEY:
		return p.parseReturnStatement()
	case lexer.SEMICOLON_DELIM:
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseImportStatement() *ast.ImportStatement {
	tok := p.cur
	if !p.expectPeek(lexer.STRING_LIT) {
		return &ast.ImportStatement{Token: tok}
	}
	path := &ast.StringLiteral{Token: p.cur, Value: p.cur.Literal}
	if p.peekIs(lexer.SEMICOLON_DELIM) {
		p.advance()
	}
	return &ast.ImportStatement{Token: tok, Path: path}
}

func (p *Parser) parseLetStatement() *ast.LetStatement {
	tok := p.cur
	if !p.expectPeek(lexer.IDENTIFIER) {
		return nil
	}
	name := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if !p.expectPeek(lexer.ASSIGN_OP) {
		return nil
	}
	p.advance()
	value := p.parseExpression(Lowest)
	if p.peekIs(lexer.SEMICOLON_DELIM) {
		p.advance()
	}
	return &ast.LetStatement{Token: tok, Name: name, Value: value}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.cur
	p.advance()
	value := p.parseExpression(Lowest)
	if p.peekIs(lexer.SEMICOLON_DELIM) {
		p.advance()
	}
	return &ast.ReturnStatement{Token: tok, Value: value}
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	tok := p.cur
	expr := p.parseExpression(Lowest)

	// Assignment is recognized here, after the primary target has been
	// parsed, rather than through the led table: its left-hand side must
	// be an lvalue (identifier, index, or property access), which is
	// easiest to validate once the full target expression is in hand.
	if p.peekIs(lexer.ASSIGN_OP) {
		if !isAssignable(expr) {
			p.addErrorf("[%d:%d] syntax error: invalid assignment target", tok.Line, tok.Column)
		}
		p.advance() // consume '='
		p.advance()
		value := p.parseExpression(Lowest)
		expr = &ast.AssignmentExpression{Token: tok, Target: expr, Value: value}
	}

	if p.peekIs(lexer.SEMICOLON_DELIM) {
		p.advance()
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func isAssignable(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.IndexAccess, *ast.PropertyAccess:
		return true
	default:
		return false
	}
}

// parseExpression is the Pratt-parsing core: call nud() for the current
// token, then repeatedly call led() for as long as the upcoming
// operator's precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec Precedence) ast.Expr {
	nud, ok := p.nuds[p.cur.Type]
	if !ok {
		p.addErrorf("[%d:%d] syntax error: unexpected token %s in expression position",
			p.cur.Line, p.cur.Column, p.cur.Type)
		return nil
	}
	left := nud()

	for !p.peekIs(lexer.SEMICOLON_DELIM) && minPrec < p.peekPrecedence() {
		led, ok := p.leds[p.peek.Type]
		if !ok {
			return left
		}
		p.advance()
		left = led(left)
	}
	return left
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.cur, Statements: []ast.Stmt{}}
	p.advance() // consume '{'
	for !p.curIs(lexer.RIGHT_BRACE) && !p.curIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.advance()
	}
	return block
}
