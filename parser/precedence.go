package parser

import "github.com/mirrow-lang/mirrow/lexer"

// Precedence levels, named and valued identically to the original
// implementation's Precedence enum (src/types/constants.rs), which this
// Pratt parser's binding-power table is ported from.
type Precedence int

const (
	Lowest     Precedence = 0
	Pipeline   Precedence = 1
	Comparison Precedence = 2
	Term       Precedence = 3
	Factor     Precedence = 4
	Unary      Precedence = 5
	// Call is not one of the spec's named binary-operator levels; it is
	// the implicit, tightest-binding level for postfix call/index/
	// property-access/variant-tag operators, which every Pratt parser
	// needs even though the 6-level enum only enumerates binary operator
	// precedence.
	Call Precedence = 6
)

// precedenceOf returns the binding power used when t appears as an
// infix/postfix operator (i.e. in led position).
func precedenceOf(t lexer.TokenType) Precedence {
	switch t {
	case lexer.PIPELINE_OP:
		return Pipeline
	case lexer.EQ_OP, lexer.NE_OP, lexer.LT_OP, lexer.GT_OP, lexer.LE_OP, lexer.GE_OP,
		lexer.AND_OP, lexer.OR_OP:
		return Comparison
	case lexer.PLUS_OP, lexer.MINUS_OP:
		return Term
	case lexer.MUL_OP, lexer.DIV_OP, lexer.MOD_OP:
		return Factor
	case lexer.RANGE_OP:
		return Comparison
	case lexer.LEFT_PAREN, lexer.LEFT_BRACKET, lexer.DOT_OP, lexer.DOUBLE_COLON:
		return Call
	case lexer.UPDATE_OP:
		return Pipeline
	default:
		return Lowest
	}
}
