package compiler

import (
	"github.com/mirrow-lang/mirrow/ast"
	"github.com/mirrow-lang/mirrow/bytecode"
	"github.com/mirrow-lang/mirrow/internal/object"
)

// compileMatch lowers a match statement/expression to bytecode. The
// scrutinee is evaluated once into a synthetic local so arms can test it
// repeatedly without re-running its side effects. Each arm runs inside
// its own scope (push_scope/pop_scope) so pattern bindings don't leak to
// sibling arms or the code after the match.
//
// A struct-destructure pattern can never be combined with '|' (enforced
// by the parser), so it is always the sole pattern in its arm; it gets
// a guarded test-then-bind sequence rather than the boolean-OR test used
// for every other arm, since binding its fields is only safe once the
// match_struct_test has already succeeded.
//
// Every other arm (made of literal/wildcard/identifier patterns, however
// many '|'-combined) is compiled as a single cumulative boolean: start
// with false and OR in each pattern's truth value, then branch once on
// the result. This avoids a separate OpJumpIfTrue per pattern and the
// multi-target jump bookkeeping that would require.
func (c *Compiler) compileMatch(ms *ast.MatchStatement) {
	c.compileExpr(ms.Value)
	scrutinee := c.newMatchTemp()
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpStoreLocal, Str: scrutinee})

	var endJumps []int

	for _, arm := range ms.Arms {
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpPushScope})

		if len(arm.Patterns) == 1 {
			if sp, ok := arm.Patterns[0].(*ast.StructDeconstructPattern); ok {
				noMatch := c.compileStructArmTest(sp, scrutinee)
				c.compileExpr(arm.Body)
				c.fb.emit(bytecode.Instruction{Op: bytecode.OpPopScope})
				endJumps = append(endJumps, c.fb.emit(bytecode.Instruction{Op: bytecode.OpJump}))
				c.fb.patch(noMatch, c.fb.here())
				c.fb.emit(bytecode.Instruction{Op: bytecode.OpPopScope})
				continue
			}
		}

		noMatch := c.compileOrPatternTest(arm.Patterns, scrutinee)
		c.compileExpr(arm.Body)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpPopScope})
		endJumps = append(endJumps, c.fb.emit(bytecode.Instruction{Op: bytecode.OpJump}))
		c.fb.patch(noMatch, c.fb.here())
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpPopScope})
	}

	// No arm matched: fatal per spec.md §4.4 ("an unmatched scrutinee
	// halts the program"), rather than producing a nil.
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpMatchExhausted})

	end := c.fb.here()
	for _, idx := range endJumps {
		c.fb.patch(idx, end)
	}
}

// compileStructArmTest emits the struct-pattern guard: test, and on
// failure jump to a patched-in "no match" target (returned as an index
// still needing c.fb.patch). On success, fields are bound by indexing
// the scrutinee for each required name.
func (c *Compiler) compileStructArmTest(sp *ast.StructDeconstructPattern, scrutinee string) int {
	names := make([]string, len(sp.FieldNames))
	for i, tok := range sp.FieldNames {
		names[i] = tok.Literal
	}
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpLoadLocal, Str: scrutinee})
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpMatchStructTest, Names: names})
	noMatch := c.fb.emit(bytecode.Instruction{Op: bytecode.OpJumpIfFalse})

	for _, name := range names {
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpLoadLocal, Str: scrutinee})
		c.emitLoadConst(&object.String{Value: name})
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpIndexAccess})
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpStoreLocal, Str: name})
	}
	return noMatch
}

// compileOrPatternTest pre-binds every IdentifierPattern unconditionally
// (harmless: the arm's scope is popped regardless of whether it ends up
// matching), then builds a cumulative OR of each pattern's truth value
// and emits a single jump_if_false, returning its index for patching.
func (c *Compiler) compileOrPatternTest(patterns []ast.Pattern, scrutinee string) int {
	for _, pat := range patterns {
		if ip, ok := pat.(*ast.IdentifierPattern); ok {
			c.fb.emit(bytecode.Instruction{Op: bytecode.OpLoadLocal, Str: scrutinee})
			c.fb.emit(bytecode.Instruction{Op: bytecode.OpStoreLocal, Str: ip.Name})
		}
	}

	c.emitLoadConst(falseValue())
	for _, pat := range patterns {
		c.compilePatternTruth(pat, scrutinee)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpOr})
	}
	return c.fb.emit(bytecode.Instruction{Op: bytecode.OpJumpIfFalse})
}

// compilePatternTruth pushes one pattern's truth value against the
// scrutinee: wildcard and identifier always match, a literal matches by
// equality.
func (c *Compiler) compilePatternTruth(pat ast.Pattern, scrutinee string) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		c.emitLoadConst(trueValue())
	case *ast.IdentifierPattern:
		c.emitLoadConst(trueValue())
	case *ast.LiteralPattern:
		c.compileExpr(p.Value)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpLoadLocal, Str: scrutinee})
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpEq})
	default:
		c.addError("compile error: unsupported pattern %T in match arm", pat)
		c.emitLoadConst(falseValue())
	}
}
