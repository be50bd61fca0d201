package parser

import (
	"github.com/mirrow-lang/mirrow/ast"
	"github.com/mirrow-lang/mirrow/lexer"
)

// parseMatchStatement parses:
//
//	match value {
//	    { name, age } -> body,
//	    42 | 43 -> body,
//	    _ -> body,
//	}
//
// Semantics ported from original_source/tests/struct_destructuring_tests.rs
// and tests/underscore_tests.rs: a StructDeconstructPattern can never be
// combined with '|' against any other pattern (not even another struct
// pattern); bare '_' produces a WildcardPattern; other pattern kinds may
// freely coexist as separate, non-'|'-joined arms.
func (p *Parser) parseMatchStatement() *ast.MatchStatement {
	tok := p.cur
	p.advance()
	value := p.parseExpression(Lowest)
	if !p.expectPeek(lexer.LEFT_BRACE) {
		return nil
	}

	var arms []*ast.MatchArm
	for !p.peekIs(lexer.RIGHT_BRACE) && !p.peekIs(lexer.EOF) {
		p.advance()
		arm := p.parseMatchArm()
		if arm != nil {
			arms = append(arms, arm)
		}
		if p.peekIs(lexer.COMMA_DELIM) {
			p.advance()
		}
	}
	if !p.expectPeek(lexer.RIGHT_BRACE) {
		return nil
	}
	return &ast.MatchStatement{Token: tok, Value: value, Arms: arms}
}

// parseMatchExpression lets `match` appear in expression position (its
// value is the chosen arm's body), registered as a nud.
func (p *Parser) parseMatchExpression() ast.Expr {
	return p.parseMatchStatement()
}

func (p *Parser) parseMatchArm() *ast.MatchArm {
	tok := p.cur
	patterns := []ast.Pattern{p.parsePattern()}
	hasStruct := isStructPattern(patterns[0])

	for p.peekIs(lexer.PIPE_DELIM) {
		p.advance()
		p.advance()
		next := p.parsePattern()
		if hasStruct || isStructPattern(next) {
			p.addErrorf("[%d:%d] syntax error: a struct-destructure pattern cannot be combined with '|'",
				tok.Line, tok.Column)
		}
		patterns = append(patterns, next)
	}

	if !p.expectPeek(lexer.ARROW_OP) {
		return nil
	}
	p.advance()
	body := p.parseExpression(Lowest)
	return &ast.MatchArm{Token: tok, Patterns: patterns, Body: body}
}

func isStructPattern(pat ast.Pattern) bool {
	_, ok := pat.(*ast.StructDeconstructPattern)
	return ok
}

// parsePattern parses a single match-arm pattern.
func (p *Parser) parsePattern() ast.Pattern {
	switch p.cur.Type {
	case lexer.UNDERSCORE:
		return &ast.WildcardPattern{Token: p.cur}
	case lexer.LEFT_BRACE:
		return p.parseStructDeconstructPattern()
	case lexer.IDENTIFIER:
		return &ast.IdentifierPattern{Token: p.cur, Name: p.cur.Literal}
	default:
		tok := p.cur
		value := p.parseExpression(Comparison)
		return &ast.LiteralPattern{Token: tok, Value: value}
	}
}

// parseStructDeconstructPattern parses "{ name, age }". Only a bare
// identifier list is accepted: an empty "{}" and a field-assignment form
// "{ name = v }" are both rejected, per
// original_source/tests/struct_destructuring_tests.rs.
func (p *Parser) parseStructDeconstructPattern() ast.Pattern {
	tok := p.cur
	if p.peekIs(lexer.RIGHT_BRACE) {
		p.addErrorf("[%d:%d] syntax error: empty struct-destructure pattern '{}' is not allowed", tok.Line, tok.Column)
		p.advance()
		return &ast.StructDeconstructPattern{Token: tok}
	}

	var names []lexer.Token
	p.advance()
	names = append(names, p.cur)
	if p.peekIs(lexer.ASSIGN_OP) {
		p.addErrorf("[%d:%d] syntax error: field-assignment form is not allowed in a pattern", p.cur.Line, p.cur.Column)
	}
	for p.peekIs(lexer.COMMA_DELIM) {
		p.advance()
		p.advance()
		names = append(names, p.cur)
		if p.peekIs(lexer.ASSIGN_OP) {
			p.addErrorf("[%d:%d] syntax error: field-assignment form is not allowed in a pattern", p.cur.Line, p.cur.Column)
		}
	}
	if !p.expectPeek(lexer.RIGHT_BRACE) {
		return nil
	}
	return &ast.StructDeconstructPattern{Token: tok, FieldNames: names}
}
