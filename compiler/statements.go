package compiler

import (
	"github.com/mirrow-lang/mirrow/ast"
	"github.com/mirrow-lang/mirrow/bytecode"
)

func (c *Compiler) compileStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ImportStatement:
		c.compileImport(s)
	case *ast.LetStatement:
		c.compileExpr(s.Value)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpStoreLocal, Str: s.Name.Value})
		c.sawNonImport = true
	case *ast.ReturnStatement:
		c.compileExpr(s.Value)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpReturn})
		c.sawNonImport = true
	case *ast.ExpressionStatement:
		c.compileExpr(s.Expression)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpPop})
		c.sawNonImport = true
	case *ast.FunctionStatement:
		c.compileFunctionBody(s.Name.Value, s.Params, s.Body)
		c.sawNonImport = true
	case *ast.StructStatement:
		c.sawNonImport = true
	case *ast.EnumStatement:
		c.sawNonImport = true
	case *ast.MatchStatement:
		c.compileMatch(s)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpPop})
		c.sawNonImport = true
	default:
		c.addError("compile error: unsupported statement %T", stmt)
	}
}

func (c *Compiler) compileImport(s *ast.ImportStatement) {
	if c.sawNonImport {
		c.addError("[%d:%d] semantic error: import must precede all other statements", s.Token.Line, s.Token.Column)
		return
	}
	if s.Path == nil {
		c.addError("[%d:%d] semantic error: malformed import", s.Token.Line, s.Token.Column)
		return
	}
	name := s.Path.Value
	if !moduleRegistry[name] {
		c.addError("[%d:%d] semantic error: unknown module %q", s.Token.Line, s.Token.Column, name)
		return
	}
	c.importedModules[name] = true
	c.prog.Modules[name] = true
}

// compileFunctionBody lowers a function's body into its pre-hoisted
// bytecode.Function entry, swapping the compiler's current-function
// context for the duration (functions don't nest their instruction
// streams: a nested FunctionLiteral gets its own entry and a
// make_closure at the point it's referenced, not inline code).
func (c *Compiler) compileFunctionBody(name string, params []*ast.Identifier, body *ast.BlockStatement) {
	fn, ok := c.prog.Functions[name]
	if !ok {
		fn = &bytecode.Function{Name: name, Params: paramNames(params)}
		c.prog.Functions[name] = fn
	}

	savedFn, savedFb := c.cur, c.fb
	c.cur = fn
	c.fb = &instrBuilder{}

	for _, p := range fn.Params {
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpStoreLocal, Str: p})
	}
	// Function parameters arrive on the stack in call order; binding
	// them in reverse pops the last argument first, matching the VM's
	// call convention (see vm.Call).
	reverseStoreParams(c.fb, len(fn.Params))

	c.compileBlockAsStatements(body)
	c.emitImplicitReturn(body)

	fn.SetBody(c.fb.instrs)
	c.cur, c.fb = savedFn, savedFb
}

// reverseStoreParams rewrites the just-emitted param-binding prologue so
// parameters are popped off the stack in last-to-first order: the VM
// pushes call arguments left-to-right, so the last argument sits on top.
func reverseStoreParams(fb *instrBuilder, n int) {
	if n == 0 {
		return
	}
	start := len(fb.instrs) - n
	for i, j := start, len(fb.instrs)-1; i < j; i, j = i+1, j-1 {
		fb.instrs[i], fb.instrs[j] = fb.instrs[j], fb.instrs[i]
	}
}

// compileBlockAsStatements lowers every statement in block for its
// side effects only (each ExpressionStatement's value is popped); used
// for function bodies, where the return value comes from an explicit
// `return`, not from falling off the end of the block.
func (c *Compiler) compileBlockAsStatements(block *ast.BlockStatement) {
	for _, stmt := range block.Statements {
		c.compileStatement(stmt)
	}
}

// emitImplicitReturn ensures every function path ends in an explicit
// OpReturn: if the body's last statement wasn't already a return, the
// function implicitly returns nil.
func (c *Compiler) emitImplicitReturn(body *ast.BlockStatement) {
	if len(body.Statements) > 0 {
		if _, ok := body.Statements[len(body.Statements)-1].(*ast.ReturnStatement); ok {
			return
		}
	}
	c.emitLoadConst(nilValue())
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpReturn})
}

// compileProgramBody lowers the top-level program the same way a block
// is lowered in expression position (compileBlockAsExpr): every
// statement but the last runs for effect, and if the last is a bare
// expression its value becomes the whole program's result (spec.md §8
// seed scenario 2: running `1 + 2 * 3` alone yields `7`), rather than
// being discarded the way an ExpressionStatement normally is. A trailing
// `match` statement likewise yields the chosen arm's value.
func (c *Compiler) compileProgramBody(stmts []ast.Stmt) {
	if len(stmts) == 0 {
		c.emitLoadConst(nilValue())
		return
	}
	for _, stmt := range stmts[:len(stmts)-1] {
		c.compileStatement(stmt)
	}
	last := stmts[len(stmts)-1]
	if es, ok := last.(*ast.ExpressionStatement); ok {
		c.compileExpr(es.Expression)
		return
	}
	if ms, ok := last.(*ast.MatchStatement); ok {
		c.compileMatch(ms)
		c.sawNonImport = true
		return
	}
	c.compileStatement(last)
	c.emitLoadConst(nilValue())
}

// compileBlockAsExpr lowers block in expression position: every
// statement but the last is compiled for effect (popped); if the last
// statement is an ExpressionStatement its value is left on the stack as
// the block's value, otherwise (e.g. the block is empty, or ends in a
// let/return) nil is pushed — this is how `if`/`match` arm bodies
// produce a value per spec.md §4.4.
func (c *Compiler) compileBlockAsExpr(block *ast.BlockStatement) {
	if len(block.Statements) == 0 {
		c.emitLoadConst(nilValue())
		return
	}
	for _, stmt := range block.Statements[:len(block.Statements)-1] {
		c.compileStatement(stmt)
	}
	last := block.Statements[len(block.Statements)-1]
	if es, ok := last.(*ast.ExpressionStatement); ok {
		c.compileExpr(es.Expression)
		return
	}
	c.compileStatement(last)
	c.emitLoadConst(nilValue())
}
