package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDump_BinaryExpressionNestsOperands(t *testing.T) {
	prog := &Program{Statements: []Stmt{
		&ExpressionStatement{
			Expression: &BinaryExpression{
				Operator: "+",
				Left:     &IntegerLiteral{Value: 1},
				Right: &BinaryExpression{
					Operator: "*",
					Left:     &IntegerLiteral{Value: 2},
					Right:    &IntegerLiteral{Value: 3},
				},
			},
		},
	}}

	out := Dump(prog)
	assert.Contains(t, out, "Binary +")
	assert.Contains(t, out, "Binary *")
	assert.Contains(t, out, "Integer 1")
	assert.Contains(t, out, "Integer 2")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	var mulDepth, innerIntDepth int
	for _, l := range lines {
		trimmed := strings.TrimLeft(l, " ")
		depth := (len(l) - len(trimmed)) / dumpIndentSize
		if trimmed == "Binary *" {
			mulDepth = depth
		}
		if trimmed == "Integer 2" {
			innerIntDepth = depth
		}
	}
	assert.Equal(t, mulDepth+1, innerIntDepth)
}

func TestDump_MatchArmsIncludePatterns(t *testing.T) {
	prog := &Program{Statements: []Stmt{
		&MatchStatement{
			Value: &Identifier{Value: "x"},
			Arms: []*MatchArm{
				{Patterns: []Pattern{&WildcardPattern{}}, Body: &StringLiteral{Value: "any"}},
			},
		},
	}}
	out := Dump(prog)
	assert.Contains(t, out, "Match")
	assert.Contains(t, out, "WildcardPattern _")
	assert.Contains(t, out, `String "any"`)
}
