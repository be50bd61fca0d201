package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrow-lang/mirrow/internal/object"
	"github.com/mirrow-lang/mirrow/lexer"
	"github.com/mirrow-lang/mirrow/parser"
	"github.com/mirrow-lang/mirrow/vm"
)

func TestCompile_ArithmeticPrecedence(t *testing.T) {
	p := parser.NewParser(lexer.NewLexer("1 + 2 * 3"))
	program := p.ParseProgram()
	require.Empty(t, p.Errors)
	compiled, errs := Compile(program)
	require.Empty(t, errs)

	v := vm.New(compiled, nil, nil)
	result, err := v.Run()
	require.NoError(t, err)
	assert.Equal(t, "7", result.ToString())
}

func TestCompile_Pipeline(t *testing.T) {
	p := parser.NewParser(lexer.NewLexer(`
func inc(x) { return x + 1 }
5 |> inc
`))
	program := p.ParseProgram()
	require.Empty(t, p.Errors)
	compiled, errs := Compile(program)
	require.Empty(t, errs)

	v := vm.New(compiled, nil, nil)
	result, err := v.Run()
	require.NoError(t, err)
	assert.Equal(t, "6", result.ToString())
}

func TestCompile_ImportMustPrecedeOtherStatements(t *testing.T) {
	p := parser.NewParser(lexer.NewLexer(`
let x = 1
import "IO"
`))
	program := p.ParseProgram()
	require.Empty(t, p.Errors)
	_, errs := Compile(program)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "import must precede")
}

func TestCompile_DotAccessOnNonModuleIsError(t *testing.T) {
	p := parser.NewParser(lexer.NewLexer(`
struct Point { x, y }
let p = Point { x = 1, y = 2 }
p.x
`))
	program := p.ParseProgram()
	require.Empty(t, p.Errors)
	_, errs := Compile(program)
	require.NotEmpty(t, errs)
}

func TestCompile_MatchWithWildcard(t *testing.T) {
	p := parser.NewParser(lexer.NewLexer(`
match 5 {
    1 -> "one",
    _ -> "other",
}
`))
	program := p.ParseProgram()
	require.Empty(t, p.Errors)
	compiled, errs := Compile(program)
	require.Empty(t, errs)

	v := vm.New(compiled, nil, nil)
	result, err := v.Run()
	require.NoError(t, err)
	assert.Equal(t, "other", result.(*object.String).Value)
}
