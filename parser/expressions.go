package parser

import (
	"strconv"

	"github.com/mirrow-lang/mirrow/ast"
	"github.com/mirrow-lang/mirrow/lexer"
)

// registerGrammar wires every token type the grammar recognizes to its
// nud (prefix) and/or led (infix/postfix) parsing function. This table-
// driven registration is the host interpreter's UnaryFuncs/BinaryFuncs
// pattern, carried over verbatim as a mechanism.
func (p *Parser) registerGrammar() {
	p.nuds[lexer.IDENTIFIER] = p.parseIdentifier
	p.nuds[lexer.INT_LIT] = p.parseIntegerLiteral
	p.nuds[lexer.FLOAT_LIT] = p.parseFloatLiteral
	p.nuds[lexer.STRING_LIT] = p.parseStringLiteral
	p.nuds[lexer.INTERP_STR_LIT] = p.parseInterpolatedStringLiteral
	p.nuds[lexer.TRUE_KEY] = p.parseBooleanLiteral
	p.nuds[lexer.FALSE_KEY] = p.parseBooleanLiteral
	p.nuds[lexer.NIL_LIT] = p.parseNilLiteral
	p.nuds[lexer.LEFT_PAREN] = p.parseGroupedExpression
	p.nuds[lexer.LEFT_BRACKET] = p.parseArrayLiteral
	p.nuds[lexer.LEFT_BRACE] = p.parseMapOrSetLiteral
	p.nuds[lexer.MINUS_OP] = p.parseUnaryExpression
	p.nuds[lexer.NOT_OP] = p.parseUnaryExpression
	p.nuds[lexer.PLUS_OP] = p.parseUnaryExpression
	p.nuds[lexer.IF_KEY] = p.parseIfExpression
	p.nuds[lexer.FUNC_KEY] = p.parseFunctionLiteral
	p.nuds[lexer.MATCH_KEY] = p.parseMatchExpression
	p.nuds[lexer.ASYNC_KEY] = p.parseAsyncExpression
	p.nuds[lexer.AWAIT_KEY] = p.parseAwaitExpression

	p.leds[lexer.PLUS_OP] = p.parseBinaryExpression
	p.leds[lexer.MINUS_OP] = p.parseBinaryExpression
	p.leds[lexer.MUL_OP] = p.parseBinaryExpression
	p.leds[lexer.DIV_OP] = p.parseBinaryExpression
	p.leds[lexer.MOD_OP] = p.parseBinaryExpression
	p.leds[lexer.EQ_OP] = p.parseBinaryExpression
	p.leds[lexer.NE_OP] = p.parseBinaryExpression
	p.leds[lexer.LT_OP] = p.parseBinaryExpression
	p.leds[lexer.GT_OP] = p.parseBinaryExpression
	p.leds[lexer.LE_OP] = p.parseBinaryExpression
	p.leds[lexer.GE_OP] = p.parseBinaryExpression
	p.leds[lexer.AND_OP] = p.parseBinaryExpression
	p.leds[lexer.OR_OP] = p.parseBinaryExpression
	p.leds[lexer.LEFT_PAREN] = p.parseCallExpression
	p.leds[lexer.LEFT_BRACKET] = p.parseIndexOrSliceExpression
	p.leds[lexer.DOT_OP] = p.parsePropertyAccess
	p.leds[lexer.RANGE_OP] = p.parseRangeExpression
	p.leds[lexer.PIPELINE_OP] = p.parsePipelineExpression
	p.leds[lexer.UPDATE_OP] = p.parseUpdateExpression
	p.leds[lexer.DOUBLE_COLON] = p.parseVariantStructLiteral
}

func (p *Parser) parseIdentifier() ast.Expr {
	ident := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if p.peekIs(lexer.LEFT_BRACE) {
		// IDENTIFIER { ... } is a typed struct literal (no variant).
		p.advance() // now at '{'
		return p.parseStructLiteralFields(ident, nil)
	}
	return ident
}

func (p *Parser) parseIntegerLiteral() ast.Expr {
	v, err := strconv.ParseInt(p.cur.Literal, 10, 64)
	if err != nil {
		p.addErrorf("[%d:%d] syntax error: malformed integer literal %q", p.cur.Line, p.cur.Column, p.cur.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.cur, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	v, err := strconv.ParseFloat(p.cur.Literal, 64)
	if err != nil {
		p.addErrorf("[%d:%d] syntax error: malformed float literal %q", p.cur.Line, p.cur.Column, p.cur.Literal)
		return nil
	}
	return &ast.FloatLiteral{Token: p.cur, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	return &ast.StringLiteral{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parseInterpolatedStringLiteral() ast.Expr {
	return &ast.InterpolatedStringLiteral{Token: p.cur, Raw: p.cur.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expr {
	return &ast.BooleanLiteral{Token: p.cur, Value: p.cur.Type == lexer.TRUE_KEY}
}

func (p *Parser) parseNilLiteral() ast.Expr {
	return &ast.NilLiteral{Token: p.cur}
}

func (p *Parser) parseGroupedExpression() ast.Expr {
	p.advance() // consume '('
	expr := p.parseExpression(Lowest)
	if !p.expectPeek(lexer.RIGHT_PAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseUnaryExpression() ast.Expr {
	tok := p.cur
	p.advance()
	right := p.parseExpression(Unary)
	return &ast.UnaryExpression{Token: tok, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseBinaryExpression(left ast.Expr) ast.Expr {
	tok := p.cur
	prec := precedenceOf(p.cur.Type)
	p.advance()
	right := p.parseExpression(prec)
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseCallExpression(fn ast.Expr) ast.Expr {
	tok := p.cur
	args := p.parseExpressionList(lexer.RIGHT_PAREN)
	return &ast.CallExpression{Token: tok, Function: fn, Arguments: args}
}

func (p *Parser) parseExpressionList(end lexer.TokenType) []ast.Expr {
	var list []ast.Expr
	if p.peekIs(end) {
		p.advance()
		return list
	}
	p.advance()
	list = append(list, p.parseExpression(Lowest))
	for p.peekIs(lexer.COMMA_DELIM) {
		p.advance()
		p.advance()
		list = append(list, p.parseExpression(Lowest))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

// parseIndexOrSliceExpression handles both arr[i] and arr[a:b] forms,
// distinguishing them by whether a ':' appears before the closing ']'.
func (p *Parser) parseIndexOrSliceExpression(left ast.Expr) ast.Expr {
	tok := p.cur
	p.advance() // consume '['

	var start ast.Expr
	if !p.curIs(lexer.COLON_DELIM) {
		start = p.parseExpression(Lowest)
	}

	if p.peekIs(lexer.COLON_DELIM) {
		p.advance() // now at ':'
		var end ast.Expr
		if !p.peekIs(lexer.RIGHT_BRACKET) {
			p.advance()
			end = p.parseExpression(Lowest)
		}
		if !p.expectPeek(lexer.RIGHT_BRACKET) {
			return nil
		}
		return &ast.SliceExpression{Token: tok, Left: left, Start: start, End: end}
	}

	if !p.expectPeek(lexer.RIGHT_BRACKET) {
		return nil
	}
	return &ast.IndexAccess{Token: tok, Left: left, Index: start}
}

func (p *Parser) parsePropertyAccess(left ast.Expr) ast.Expr {
	tok := p.cur
	if !p.expectPeek(lexer.IDENTIFIER) {
		return nil
	}
	prop := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	return &ast.PropertyAccess{Token: tok, Left: left, Property: prop}
}

func (p *Parser) parseRangeExpression(left ast.Expr) ast.Expr {
	tok := p.cur
	p.advance()
	end := p.parseExpression(Comparison)
	return &ast.RangeExpression{Token: tok, Start: left, End: end}
}

// parsePipelineExpression implements "x |> f" / "x |> f(y)" as sugar for
// a call with x prepended as the first argument; left-associative, like
// every other binary operator here except Update.
func (p *Parser) parsePipelineExpression(left ast.Expr) ast.Expr {
	tok := p.cur
	p.advance()
	right := p.parseExpression(Pipeline)
	return &ast.PipelineExpression{Token: tok, Left: left, Right: right}
}

// parseUpdateExpression implements "arr <- value" (array append sugar).
// Grounded in original_source/src/parser.rs, Update is right-associative,
// distinguishing it from the other binary operators: its right operand is
// parsed one level below its own precedence, so "a <- b <- c" groups as
// "a <- (b <- c)".
func (p *Parser) parseUpdateExpression(left ast.Expr) ast.Expr {
	tok := p.cur
	prec := precedenceOf(p.cur.Type)
	p.advance()
	value := p.parseExpression(prec - 1)
	return &ast.UpdateExpression{Token: tok, Left: left, Value: value}
}

func (p *Parser) parseIfExpression() ast.Expr {
	tok := p.cur
	p.advance()
	cond := p.parseExpression(Lowest)
	if !p.expectPeek(lexer.LEFT_BRACE) {
		return nil
	}
	cons := p.parseBlockStatement()

	var alt *ast.BlockStatement
	if p.peekIs(lexer.ELSE_KEY) {
		p.advance()
		if !p.expectPeek(lexer.LEFT_BRACE) {
			return nil
		}
		alt = p.parseBlockStatement()
	}
	return &ast.IfExpression{Token: tok, Condition: cond, Consequence: cons, Alternative: alt}
}

func (p *Parser) parseFunctionLiteral() ast.Expr {
	tok := p.cur
	if !p.expectPeek(lexer.LEFT_PAREN) {
		return nil
	}
	params := p.parseFunctionParameters()
	if !p.expectPeek(lexer.LEFT_BRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.FunctionLiteral{Token: tok, Params: params, Body: body}
}

func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	var params []*ast.Identifier
	if p.peekIs(lexer.RIGHT_PAREN) {
		p.advance()
		return params
	}
	p.advance()
	params = append(params, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
	for p.peekIs(lexer.COMMA_DELIM) {
		p.advance()
		p.advance()
		params = append(params, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
	}
	if !p.expectPeek(lexer.RIGHT_PAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseFunctionStatement() ast.Stmt {
	tok := p.cur
	if !p.expectPeek(lexer.IDENTIFIER) {
		return nil
	}
	name := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if !p.expectPeek(lexer.LEFT_PAREN) {
		return nil
	}
	params := p.parseFunctionParameters()
	if !p.expectPeek(lexer.LEFT_BRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.FunctionStatement{Token: tok, Name: name, Params: params, Body: body}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	tok := p.cur
	elements := p.parseExpressionList(lexer.RIGHT_BRACKET)
	return &ast.ArrayLiteral{Token: tok, Elements: elements}
}

// parseMapOrSetLiteral disambiguates three "{ ... }" forms: the bare
// (untagged) struct literal "{ name = value, ... }" (spec.md §4.2's
// literal grammar; the canonical form used throughout
// original_source/tests, e.g. struct_destructuring_tests.rs:157's
// `{ name = "John", age = 30 }`), the map "{ k: v, ... }", and the set
// "{ a, b, ... }" — decided by what follows the first element: '='
// means struct, ':' means map, anything else means set. An empty "{}"
// is an empty map by convention.
func (p *Parser) parseMapOrSetLiteral() ast.Expr {
	tok := p.cur
	if p.peekIs(lexer.RIGHT_BRACE) {
		p.advance()
		return &ast.MapLiteral{Token: tok}
	}

	p.advance()

	if p.curIs(lexer.IDENTIFIER) && p.peekIs(lexer.ASSIGN_OP) {
		firstName := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
		return p.parseStructFieldsAfterFirstName(tok, nil, nil, firstName)
	}

	first := p.parseExpression(Lowest)

	if p.peekIs(lexer.COLON_DELIM) {
		keys := []ast.Expr{first}
		var values []ast.Expr
		p.advance() // ':'
		p.advance()
		values = append(values, p.parseExpression(Lowest))
		for p.peekIs(lexer.COMMA_DELIM) {
			p.advance()
			p.advance()
			keys = append(keys, p.parseExpression(Lowest))
			if !p.expectPeek(lexer.COLON_DELIM) {
				return nil
			}
			p.advance()
			values = append(values, p.parseExpression(Lowest))
		}
		if !p.expectPeek(lexer.RIGHT_BRACE) {
			return nil
		}
		return &ast.MapLiteral{Token: tok, Keys: keys, Values: values}
	}

	elements := []ast.Expr{first}
	for p.peekIs(lexer.COMMA_DELIM) {
		p.advance()
		p.advance()
		elements = append(elements, p.parseExpression(Lowest))
	}
	if !p.expectPeek(lexer.RIGHT_BRACE) {
		return nil
	}
	return &ast.SetLiteral{Token: tok, Elements: elements}
}

// parseAsyncExpression and parseAwaitExpression accept the syntax so
// parsing never fails on it; the compiler is where async/await is
// rejected (spec.md §9 Open Question 1 — no invented semantics).
func (p *Parser) parseAsyncExpression() ast.Expr {
	tok := p.cur
	if !p.expectPeek(lexer.FUNC_KEY) {
		return nil
	}
	fn := p.parseFunctionLiteral()
	lit, _ := fn.(*ast.FunctionLiteral)
	return &ast.AsyncExpression{Token: tok, Body: lit}
}

func (p *Parser) parseAwaitExpression() ast.Expr {
	tok := p.cur
	p.advance()
	value := p.parseExpression(Unary)
	return &ast.AwaitExpression{Token: tok, Value: value}
}
