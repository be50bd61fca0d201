package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectTypes(src string) []TokenType {
	lex := NewLexer(src)
	var types []TokenType
	for {
		tok := lex.NextToken()
		if tok.Type == EOF {
			break
		}
		types = append(types, tok.Type)
	}
	return types
}

func TestLexer_ArithmeticAndDelimiters(t *testing.T) {
	types := collectTypes(`123 + 2 * (31 - 12) / 4 % 2`)
	assert.Equal(t, []TokenType{
		INT_LIT, PLUS_OP, INT_LIT, MUL_OP, LEFT_PAREN, INT_LIT, MINUS_OP,
		INT_LIT, RIGHT_PAREN, DIV_OP, INT_LIT, MOD_OP, INT_LIT,
	}, types)
}

func TestLexer_Keywords(t *testing.T) {
	lex := NewLexer(`let func if else match struct enum import return async await true false nil`)
	want := []TokenType{
		LET_KEY, FUNC_KEY, IF_KEY, ELSE_KEY, MATCH_KEY, STRUCT_KEY, ENUM_KEY,
		IMPORT_KEY, RETURN_KEY, ASYNC_KEY, AWAIT_KEY, TRUE_KEY, FALSE_KEY, NIL_LIT,
	}
	for _, w := range want {
		tok := lex.NextToken()
		assert.Equal(t, w, tok.Type)
	}
	assert.Equal(t, EOF, lex.NextToken().Type)
}

func TestLexer_MultiCharOperators(t *testing.T) {
	types := collectTypes(`== != <= >= && || |> -> <- ... :: : |`)
	assert.Equal(t, []TokenType{
		EQ_OP, NE_OP, LE_OP, GE_OP, AND_OP, OR_OP, PIPELINE_OP, ARROW_OP,
		UPDATE_OP, RANGE_OP, DOUBLE_COLON, COLON_DELIM, PIPE_DELIM,
	}, types)
}

func TestLexer_Reflect_LoneAmpersandIsReflectOp(t *testing.T) {
	types := collectTypes(`& &&`)
	assert.Equal(t, []TokenType{REFLECT_OP, AND_OP}, types)
}

func TestLexer_Underscore_BareIsWildcardToken(t *testing.T) {
	lex := NewLexer(`_`)
	tok := lex.NextToken()
	assert.Equal(t, UNDERSCORE, tok.Type)
	assert.Equal(t, "_", tok.Literal)
}

func TestLexer_Underscore_AdjacentToIdentCharsIsIdentifier(t *testing.T) {
	for _, src := range []string{"_foo", "_bar_", "__x"} {
		lex := NewLexer(src)
		tok := lex.NextToken()
		assert.Equal(t, IDENTIFIER, tok.Type, src)
		assert.Equal(t, src, tok.Literal)
	}
}

func TestLexer_StringLiteral_DoubleAndSingleQuotesBothValid(t *testing.T) {
	lex := NewLexer(`"hello" 'world'`)
	tok1 := lex.NextToken()
	assert.Equal(t, STRING_LIT, tok1.Type)
	assert.Equal(t, "hello", tok1.Literal)

	tok2 := lex.NextToken()
	assert.Equal(t, STRING_LIT, tok2.Type)
	assert.Equal(t, "world", tok2.Literal)
}

func TestLexer_StringLiteral_OppositeQuoteCanAppearUnescaped(t *testing.T) {
	lex := NewLexer(`"it's fine" 'she said "hi"'`)
	tok1 := lex.NextToken()
	assert.Equal(t, STRING_LIT, tok1.Type)
	assert.Equal(t, "it's fine", tok1.Literal)

	tok2 := lex.NextToken()
	assert.Equal(t, STRING_LIT, tok2.Type)
	assert.Equal(t, `she said "hi"`, tok2.Literal)
}

func TestLexer_StringLiteral_Escapes(t *testing.T) {
	lex := NewLexer(`"a\nb\tc\\d\"e"`)
	tok := lex.NextToken()
	assert.Equal(t, STRING_LIT, tok.Type)
	assert.Equal(t, "a\nb\tc\\d\"e", tok.Literal)
}

func TestLexer_StringLiteral_UnrecognizedEscapeKeepsBothCharsLiterally(t *testing.T) {
	lex := NewLexer(`"\x"`)
	tok := lex.NextToken()
	assert.Equal(t, STRING_LIT, tok.Type)
	assert.Equal(t, `\x`, tok.Literal)
}

func TestLexer_StringLiteral_UnterminatedIsInvalid(t *testing.T) {
	for _, src := range []string{`"unterminated`, `'unterminated`} {
		lex := NewLexer(src)
		tok := lex.NextToken()
		assert.Equal(t, INVALID, tok.Type, src)
	}
}

func TestLexer_StringLiteral_TooLongIsInvalid(t *testing.T) {
	long := make([]byte, MaxStringLength+1)
	for i := range long {
		long[i] = 'a'
	}
	lex := NewLexer(`"` + string(long) + `"`)
	tok := lex.NextToken()
	assert.Equal(t, INVALID, tok.Type)
}

func TestLexer_InterpolatedString_PreservesRawSplices(t *testing.T) {
	lex := NewLexer(`$"hello ${name}!"`)
	tok := lex.NextToken()
	assert.Equal(t, INTERP_STR_LIT, tok.Type)
	assert.Equal(t, "hello ${name}!", tok.Literal)
}

func TestLexer_Comments_SkippedEntirely(t *testing.T) {
	types := collectTypes("1 // a line comment\n+ /* a block\ncomment */ 2")
	assert.Equal(t, []TokenType{INT_LIT, PLUS_OP, INT_LIT}, types)
}

func TestLexer_LineTracking(t *testing.T) {
	lex := NewLexer("1\n2\n3")
	tok1 := lex.NextToken()
	tok2 := lex.NextToken()
	tok3 := lex.NextToken()
	assert.Equal(t, 1, tok1.Line)
	assert.Equal(t, 2, tok2.Line)
	assert.Equal(t, 3, tok3.Line)
}

func TestLexer_EmptyInputProducesOnlyEOF(t *testing.T) {
	lex := NewLexer("")
	assert.Equal(t, EOF, lex.NextToken().Type)
}

func TestLexer_StructVariantTag(t *testing.T) {
	types := collectTypes(`Person::Programmer { name = "John", age = 30 }`)
	assert.Equal(t, []TokenType{
		IDENTIFIER, DOUBLE_COLON, IDENTIFIER, LEFT_BRACE, IDENTIFIER, ASSIGN_OP,
		STRING_LIT, COMMA_DELIM, IDENTIFIER, ASSIGN_OP, INT_LIT, RIGHT_BRACE,
	}, types)
}
