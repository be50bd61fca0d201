package compiler

import (
	"github.com/mirrow-lang/mirrow/ast"
	"github.com/mirrow-lang/mirrow/bytecode"
	"github.com/mirrow-lang/mirrow/internal/object"
)

var binaryOps = map[string]bytecode.Opcode{
	"+":  bytecode.OpAdd,
	"-":  bytecode.OpSub,
	"*":  bytecode.OpMul,
	"/":  bytecode.OpDiv,
	"%":  bytecode.OpMod,
	"==": bytecode.OpEq,
	"!=": bytecode.OpNe,
	"<":  bytecode.OpLt,
	">":  bytecode.OpGt,
	"<=": bytecode.OpLe,
	">=": bytecode.OpGe,
	"&&": bytecode.OpAnd,
	"||": bytecode.OpOr,
}

func (c *Compiler) compileExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		c.emitLoadConst(&object.Number{Value: float64(e.Value)})
	case *ast.FloatLiteral:
		c.emitLoadConst(&object.Number{Value: e.Value})
	case *ast.StringLiteral:
		c.emitLoadConst(&object.String{Value: e.Value})
	case *ast.InterpolatedStringLiteral:
		// Splice evaluation is unimplemented future work; the raw
		// payload is kept verbatim as an ordinary string constant.
		c.emitLoadConst(&object.String{Value: e.Raw})
	case *ast.BooleanLiteral:
		if e.Value {
			c.emitLoadConst(trueValue())
		} else {
			c.emitLoadConst(falseValue())
		}
	case *ast.NilLiteral:
		c.emitLoadConst(nilValue())
	case *ast.Identifier:
		c.compileIdentifier(e)
	case *ast.UnaryExpression:
		c.compileUnary(e)
	case *ast.BinaryExpression:
		c.compileExpr(e.Left)
		c.compileExpr(e.Right)
		op, ok := binaryOps[e.Operator]
		if !ok {
			c.addError("[%d:%d] compile error: unknown binary operator %q", e.Token.Line, e.Token.Column, e.Operator)
			return
		}
		c.fb.emit(bytecode.Instruction{Op: op})
	case *ast.AssignmentExpression:
		c.compileAssignment(e)
	case *ast.CallExpression:
		c.compileExpr(e.Function)
		for _, arg := range e.Arguments {
			c.compileExpr(arg)
		}
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpCall, Int: len(e.Arguments)})
	case *ast.IndexAccess:
		c.compileExpr(e.Left)
		c.compileExpr(e.Index)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpIndexAccess})
	case *ast.SliceExpression:
		c.compileExpr(e.Left)
		c.compileOptional(e.Start)
		c.compileOptional(e.End)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpSlice})
	case *ast.PropertyAccess:
		c.compilePropertyAccess(e)
	case *ast.IfExpression:
		c.compileIf(e)
	case *ast.FunctionLiteral:
		c.compileFunctionLiteral(e)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			c.compileExpr(el)
		}
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpMakeArray, Int: len(e.Elements)})
	case *ast.MapLiteral:
		for i := range e.Keys {
			c.compileExpr(e.Keys[i])
			c.compileExpr(e.Values[i])
		}
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpMakeMap, Int: len(e.Keys)})
	case *ast.SetLiteral:
		for _, el := range e.Elements {
			c.compileExpr(el)
		}
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpMakeSet, Int: len(e.Elements)})
	case *ast.StructLiteral:
		c.compileStructLiteral(e)
	case *ast.RangeExpression:
		c.compileExpr(e.Start)
		c.compileExpr(e.End)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpRange})
	case *ast.PipelineExpression:
		c.compilePipeline(e)
	case *ast.UpdateExpression:
		c.compileExpr(e.Left)
		c.compileExpr(e.Value)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpArrayAppend})
	case *ast.MatchStatement:
		c.compileMatch(e)
	case *ast.AsyncExpression:
		c.addError("[%d:%d] semantic error: async/await has no defined execution semantics", e.Token.Line, e.Token.Column)
		c.emitLoadConst(nilValue())
	case *ast.AwaitExpression:
		c.addError("[%d:%d] semantic error: async/await has no defined execution semantics", e.Token.Line, e.Token.Column)
		c.emitLoadConst(nilValue())
	case *ast.BlockStatement:
		c.compileBlockAsExpr(e)
	default:
		c.addError("compile error: unsupported expression %T", expr)
	}
}

// compileOptional compiles expr if present, otherwise pushes nil — used
// for SliceExpression's optional Start/End bounds.
func (c *Compiler) compileOptional(expr ast.Expr) {
	if expr == nil {
		c.emitLoadConst(nilValue())
		return
	}
	c.compileExpr(expr)
}

func (c *Compiler) compileIdentifier(e *ast.Identifier) {
	if c.importedModules[e.Value] {
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpLoadModuleRef, Str: e.Value})
		return
	}
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpLoadLocal, Str: e.Value})
}

func (c *Compiler) compileUnary(e *ast.UnaryExpression) {
	if e.Operator == "+" {
		c.compileExpr(e.Right)
		return
	}
	c.compileExpr(e.Right)
	switch e.Operator {
	case "-":
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpNeg})
	case "!":
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpNot})
	default:
		c.addError("[%d:%d] compile error: unknown unary operator %q", e.Token.Line, e.Token.Column, e.Operator)
	}
}

func (c *Compiler) compileAssignment(e *ast.AssignmentExpression) {
	switch target := e.Target.(type) {
	case *ast.Identifier:
		c.compileExpr(e.Value)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpDup})
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpAssignLocal, Str: target.Value})
	case *ast.IndexAccess:
		c.compileExpr(target.Left)
		c.compileExpr(target.Index)
		c.compileExpr(e.Value)
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpIndexSet})
	default:
		c.addError("[%d:%d] compile error: invalid assignment target", e.Token.Line, e.Token.Column)
		c.emitLoadConst(nilValue())
	}
}

// compilePropertyAccess enforces spec.md §4.3's dot-notation
// restriction: PropertyAccess only compiles successfully when its
// target is statically known to be an imported module reference.
func (c *Compiler) compilePropertyAccess(e *ast.PropertyAccess) {
	ident, ok := e.Left.(*ast.Identifier)
	if !ok || !c.importedModules[ident.Value] {
		c.addError("[%d:%d] compile error: dot-notation is only valid on an imported module; use bracket indexing for struct/map field access",
			e.Token.Line, e.Token.Column)
		c.emitLoadConst(nilValue())
		return
	}
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpLoadModuleMember, Str: ident.Value, Str2: e.Property.Value})
}

func (c *Compiler) compileIf(e *ast.IfExpression) {
	c.compileExpr(e.Condition)
	elseJump := c.fb.emit(bytecode.Instruction{Op: bytecode.OpJumpIfFalse})
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpPushScope})
	c.compileBlockAsExpr(e.Consequence)
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpPopScope})
	endJump := c.fb.emit(bytecode.Instruction{Op: bytecode.OpJump})

	c.fb.patch(elseJump, c.fb.here())
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpPushScope})
	if e.Alternative != nil {
		c.compileBlockAsExpr(e.Alternative)
	} else {
		c.emitLoadConst(nilValue())
	}
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpPopScope})

	c.fb.patch(endJump, c.fb.here())
}

func (c *Compiler) compileFunctionLiteral(e *ast.FunctionLiteral) {
	name := c.newAnonFuncName()
	c.compileFunctionBody(name, e.Params, e.Body)
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpMakeClosure, Str: name})
}

// compileStructLiteral lowers both plain struct literals (Variant ==
// nil, compiling to a plain map) and tagged enum-variant literals
// (Type::Variant { ... }, compiling to an EnumInstance wrapping that
// same map), rejecting duplicate field names and unknown variants at
// compile time (spec.md §7's "duplicate field" / semantic errors).
func (c *Compiler) compileStructLiteral(e *ast.StructLiteral) {
	seen := make(map[string]bool, len(e.FieldNames))
	for _, f := range e.FieldNames {
		if seen[f.Value] {
			c.addError("[%d:%d] semantic error: duplicate field %q in struct literal", e.Token.Line, e.Token.Column, f.Value)
		}
		seen[f.Value] = true
	}

	for i, f := range e.FieldNames {
		c.emitLoadConst(&object.String{Value: f.Value})
		c.compileExpr(e.FieldValues[i])
	}

	if e.Variant == nil {
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpMakeMap, Int: len(e.FieldNames)})
		return
	}

	if decl, ok := c.enums[e.Type.Value]; ok && !decl.variants[e.Variant.Value] {
		c.addError("[%d:%d] semantic error: %q is not a variant of enum %q", e.Token.Line, e.Token.Column, e.Variant.Value, e.Type.Value)
	}
	tag := e.Type.Value + "::" + e.Variant.Value
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpMakeEnum, Str: tag, Int: len(e.FieldNames)})
}

// compilePipeline lowers `a |> b` to the equivalent of `b(a)` (or
// `b(a, ...)` when b is itself a call, prepending a as the first
// argument), per spec.md §4.3.
func (c *Compiler) compilePipeline(e *ast.PipelineExpression) {
	if call, ok := e.Right.(*ast.CallExpression); ok {
		c.compileExpr(call.Function)
		c.compileExpr(e.Left)
		for _, arg := range call.Arguments {
			c.compileExpr(arg)
		}
		c.fb.emit(bytecode.Instruction{Op: bytecode.OpCall, Int: len(call.Arguments) + 1})
		return
	}
	c.compileExpr(e.Right)
	c.compileExpr(e.Left)
	c.fb.emit(bytecode.Instruction{Op: bytecode.OpCall, Int: 1})
}
