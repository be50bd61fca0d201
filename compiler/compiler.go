/*
Package compiler implements Mirrow's single-pass AST-to-bytecode lowering
(spec.md §4.3): it walks the ast.Program produced by the parser and
emits a bytecode.Program, performing the two semantic checks the parser
itself cannot (import ordering, dot-notation restricted to modules)
along with duplicate-field and unknown-module detection. An unknown
member of a known module is not detected here; the vm reports it at
run time.

Compilation follows the host interpreter's "collect diagnostics, don't
panic" instinct from its parser, but per spec.md §7 compiler errors are
fail-fast in effect: once any error has been recorded, Compile returns a
nil *bytecode.Program so no partially-invalid program is ever handed to
the vm, even though — for the sake of reporting more than one error per
pass — lowering keeps walking the AST rather than stopping at the first
mistake.
*/
package compiler

import (
	"fmt"

	"github.com/mirrow-lang/mirrow/ast"
	"github.com/mirrow-lang/mirrow/bytecode"
	"github.com/mirrow-lang/mirrow/internal/object"
)

// moduleRegistry is the fixed set of built-in modules import may name
// (spec.md §6: "A fixed registry is exposed to import"). Kept here
// rather than in internal/stdlib to avoid compiler depending on the
// runtime module implementations — only their names matter at compile
// time.
var moduleRegistry = map[string]bool{
	"IO":     true,
	"Math":   true,
	"String": true,
	"Array":  true,
	"Json":   true,
	"Config": true,
}

type structDecl struct {
	fields map[string]bool
}

type enumDecl struct {
	variants map[string]bool
}

// Compiler holds all state accumulated across one Compile call.
type Compiler struct {
	prog *bytecode.Program

	errors []string

	constIndex map[string]int

	importedModules map[string]bool // module name -> imported in this program
	sawNonImport    bool

	structs map[string]*structDecl
	enums   map[string]*enumDecl

	anonCounter  int
	matchCounter int

	cur *bytecode.Function
	fb  *instrBuilder
}

// instrBuilder accumulates one function body's instructions and
// resolves forward jump targets by index, rather than through a
// separate label abstraction: since every instruction's final index is
// known the moment it's appended, a jump can simply be patched once its
// target position is reached.
type instrBuilder struct {
	instrs []bytecode.Instruction
}

func (b *instrBuilder) emit(instr bytecode.Instruction) int {
	b.instrs = append(b.instrs, instr)
	return len(b.instrs) - 1
}

func (b *instrBuilder) here() int { return len(b.instrs) }

func (b *instrBuilder) patch(idx int, target int) { b.instrs[idx].Int = target }

// New creates a Compiler ready for a single Compile call.
func New() *Compiler {
	return &Compiler{
		constIndex:      make(map[string]int),
		importedModules: make(map[string]bool),
		structs:         make(map[string]*structDecl),
		enums:           make(map[string]*enumDecl),
	}
}

// Compile lowers prog to bytecode. On any semantic error, the returned
// *bytecode.Program is nil and the returned []string lists every error
// found.
func Compile(prog *ast.Program) (*bytecode.Program, []string) {
	c := New()
	c.prog = bytecode.NewProgram()
	c.hoistDeclarations(prog.Statements)

	main := &bytecode.Function{Name: "$main"}
	c.prog.Main = main
	c.cur = main
	c.fb = &instrBuilder{}
	c.compileProgramBody(prog.Statements)
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpReturn})
	main.SetBody(c.fb.instrs)

	if len(c.errors) > 0 {
		return nil, c.errors
	}
	return c.prog, nil
}

func (c *Compiler) addError(format string, args ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

// hoistDeclarations registers every top-level function/struct/enum name
// before any statement is lowered, so forward references (a function
// calling one declared later in the file) resolve, mirroring spec.md
// §4.3's "hoist function names for forward reference."
func (c *Compiler) hoistDeclarations(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionStatement:
			fn := &bytecode.Function{Name: s.Name.Value, Params: paramNames(s.Params)}
			c.prog.Functions[s.Name.Value] = fn
		case *ast.StructStatement:
			fields := make(map[string]bool, len(s.Fields))
			for _, f := range s.Fields {
				fields[f.Value] = true
			}
			c.structs[s.Name.Value] = &structDecl{fields: fields}
		case *ast.EnumStatement:
			variants := make(map[string]bool, len(s.Variants))
			for _, v := range s.Variants {
				variants[v.Name.Value] = true
			}
			c.enums[s.Name.Value] = &enumDecl{variants: variants}
		}
	}
}

func paramNames(params []*ast.Identifier) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Value
	}
	return names
}

// addConstant interns v by a structural key so identical literals share
// one constant-pool slot, per spec.md §3 ("the compiler interns
// identical literals; each distinct literal yields one id").
func (c *Compiler) addConstant(v object.Value) int {
	key := string(v.GetType()) + ":" + v.ToObject()
	if idx, ok := c.constIndex[key]; ok {
		return idx
	}
	idx := len(c.prog.Constants)
	c.prog.Constants = append(c.prog.Constants, v)
	c.constIndex[key] = idx
	return idx
}

func (c *Compiler) emitLoadConst(v object.Value) {
	idx := c.addConstant(v)
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpLoadConst, Int: idx})
}

func (c *Compiler) newAnonFuncName() string {
	c.anonCounter++
	return fmt.Sprintf("$anon%d", c.anonCounter)
}

func (c *Compiler) newMatchTemp() string {
	c.matchCounter++
	return fmt.Sprintf("$match%d", c.matchCounter)
}
