package parser

import (
	"github.com/mirrow-lang/mirrow/ast"
	"github.com/mirrow-lang/mirrow/lexer"
)

// parseVariantStructLiteral handles "Type::Variant { ... }" — the
// double-colon led operator applied to an already-parsed type name,
// producing a tagged enum-variant struct literal. Confirmed syntax from
// original_source/src/library/lexer.rs's embedded test suite
// ("Person::Programmer { name = \"John\", age = 30 }").
func (p *Parser) parseVariantStructLiteral(left ast.Expr) ast.Expr {
	typeIdent, ok := left.(*ast.Identifier)
	if !ok {
		p.addErrorf("[%d:%d] syntax error: '::' must follow a type name", p.cur.Line, p.cur.Column)
		return nil
	}
	if !p.expectPeek(lexer.IDENTIFIER) {
		return nil
	}
	variant := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if !p.expectPeek(lexer.LEFT_BRACE) {
		return nil
	}
	return p.parseStructLiteralFields(typeIdent, variant)
}

// parseStructLiteralFields parses the "{ name = value, ... }" body of a
// struct literal. p.cur is the opening '{' on entry.
func (p *Parser) parseStructLiteralFields(typ *ast.Identifier, variant *ast.Identifier) ast.Expr {
	tok := p.cur
	if p.peekIs(lexer.RIGHT_BRACE) {
		p.advance()
		return &ast.StructLiteral{Token: tok, Type: typ, Variant: variant}
	}
	if !p.expectPeek(lexer.IDENTIFIER) {
		return nil
	}
	firstName := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	return p.parseStructFieldsAfterFirstName(tok, typ, variant, firstName)
}

// parseStructFieldsAfterFirstName parses "name = value, ..." through the
// closing '}', given that p.cur is already positioned on the first
// field's name (its own "=" not yet consumed). Shared by
// parseStructLiteralFields (typed/variant struct literals, entering from
// the opening '{') and parseMapOrSetLiteral (the bare "{ name = value }"
// form, which has already consumed one token past '{' to disambiguate
// struct from map/set before either loop runs).
func (p *Parser) parseStructFieldsAfterFirstName(tok lexer.Token, typ *ast.Identifier, variant *ast.Identifier, firstName *ast.Identifier) ast.Expr {
	names := []*ast.Identifier{firstName}
	var values []ast.Expr

	if !p.expectPeek(lexer.ASSIGN_OP) {
		return nil
	}
	p.advance()
	values = append(values, p.parseExpression(Lowest))

	for p.peekIs(lexer.COMMA_DELIM) {
		p.advance()
		if !p.expectPeek(lexer.IDENTIFIER) {
			return nil
		}
		names = append(names, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
		if !p.expectPeek(lexer.ASSIGN_OP) {
			return nil
		}
		p.advance()
		values = append(values, p.parseExpression(Lowest))
	}
	if !p.expectPeek(lexer.RIGHT_BRACE) {
		return nil
	}
	return &ast.StructLiteral{Token: tok, Type: typ, Variant: variant, FieldNames: names, FieldValues: values}
}

// parseStructStatement parses "struct Name { field1, field2 }" — a type
// declaration, distinct from a StructLiteral (which constructs a value).
func (p *Parser) parseStructStatement() *ast.StructStatement {
	tok := p.cur
	if !p.expectPeek(lexer.IDENTIFIER) {
		return nil
	}
	name := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if !p.expectPeek(lexer.LEFT_BRACE) {
		return nil
	}
	var fields []*ast.Identifier
	if !p.peekIs(lexer.RIGHT_BRACE) {
		p.advance()
		fields = append(fields, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
		for p.peekIs(lexer.COMMA_DELIM) {
			p.advance()
			p.advance()
			fields = append(fields, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
		}
	}
	if !p.expectPeek(lexer.RIGHT_BRACE) {
		return nil
	}
	return &ast.StructStatement{Token: tok, Name: name, Fields: fields}
}

// parseEnumStatement parses:
//
//	enum Role {
//	    Programmer { name, age },
//	    Guest,
//	}
func (p *Parser) parseEnumStatement() *ast.EnumStatement {
	tok := p.cur
	if !p.expectPeek(lexer.IDENTIFIER) {
		return nil
	}
	name := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if !p.expectPeek(lexer.LEFT_BRACE) {
		return nil
	}

	var variants []*ast.EnumVariant
	for !p.peekIs(lexer.RIGHT_BRACE) && !p.peekIs(lexer.EOF) {
		p.advance()
		variantTok := p.cur
		variantName := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
		var fields []*ast.Identifier
		if p.peekIs(lexer.LEFT_BRACE) {
			p.advance()
			if !p.peekIs(lexer.RIGHT_BRACE) {
				p.advance()
				fields = append(fields, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
				for p.peekIs(lexer.COMMA_DELIM) {
					p.advance()
					p.advance()
					fields = append(fields, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
				}
			}
			if !p.expectPeek(lexer.RIGHT_BRACE) {
				return nil
			}
		}
		variants = append(variants, &ast.EnumVariant{Token: variantTok, Name: variantName, Fields: fields})
		if p.peekIs(lexer.COMMA_DELIM) {
			p.advance()
		}
	}
	if !p.expectPeek(lexer.RIGHT_BRACE) {
		return nil
	}
	return &ast.EnumStatement{Token: tok, Name: name, Variants: variants}
}
