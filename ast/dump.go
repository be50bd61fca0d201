package ast

import (
	"bytes"
	"fmt"
)

const dumpIndentSize = 2

// Dump renders prog as an indented tree, one line per node, the same
// indent-and-recurse shape the host interpreter's PrintingVisitor walks
// its own AST with — adapted here to a type switch over the tagged sum
// (see the package doc) instead of a double-dispatch Visitor, since
// these node types carry no Accept method.
func Dump(prog *Program) string {
	var buf bytes.Buffer
	for _, stmt := range prog.Statements {
		dumpStmt(&buf, stmt, 0)
	}
	return buf.String()
}

func writeLine(buf *bytes.Buffer, depth int, format string, args ...interface{}) {
	for i := 0; i < depth*dumpIndentSize; i++ {
		buf.WriteByte(' ')
	}
	fmt.Fprintf(buf, format, args...)
	buf.WriteByte('\n')
}

func dumpStmt(buf *bytes.Buffer, s Stmt, depth int) {
	switch n := s.(type) {
	case *ImportStatement:
		writeLine(buf, depth, "Import %q", n.Path.Value)
	case *LetStatement:
		writeLine(buf, depth, "Let %s =", n.Name.Value)
		dumpExpr(buf, n.Value, depth+1)
	case *ExpressionStatement:
		writeLine(buf, depth, "ExpressionStatement")
		dumpExpr(buf, n.Expression, depth+1)
	case *ReturnStatement:
		writeLine(buf, depth, "Return")
		if n.Value != nil {
			dumpExpr(buf, n.Value, depth+1)
		}
	case *BlockStatement:
		writeLine(buf, depth, "Block")
		for _, stmt := range n.Statements {
			dumpStmt(buf, stmt, depth+1)
		}
	case *FunctionStatement:
		writeLine(buf, depth, "Function %s(%s)", n.Name.Value, joinIdents(n.Params))
		dumpStmt(buf, n.Body, depth+1)
	case *StructStatement:
		writeLine(buf, depth, "Struct %s { %s }", n.Name.Value, joinIdents(n.Fields))
	case *EnumStatement:
		writeLine(buf, depth, "Enum %s", n.Name.Value)
		for _, v := range n.Variants {
			writeLine(buf, depth+1, "Variant %s { %s }", v.Name.Value, joinIdents(v.Fields))
		}
	case *MatchStatement:
		dumpMatch(buf, n, depth)
	default:
		writeLine(buf, depth, "%T", n)
	}
}

func dumpMatch(buf *bytes.Buffer, n *MatchStatement, depth int) {
	writeLine(buf, depth, "Match")
	dumpExpr(buf, n.Value, depth+1)
	for _, arm := range n.Arms {
		writeLine(buf, depth+1, "Arm")
		for _, pat := range arm.Patterns {
			dumpPattern(buf, pat, depth+2)
		}
		dumpExpr(buf, arm.Body, depth+2)
	}
}

func dumpPattern(buf *bytes.Buffer, p Pattern, depth int) {
	switch n := p.(type) {
	case *LiteralPattern:
		writeLine(buf, depth, "LiteralPattern")
		dumpExpr(buf, n.Value, depth+1)
	case *WildcardPattern:
		writeLine(buf, depth, "WildcardPattern _")
	case *IdentifierPattern:
		writeLine(buf, depth, "IdentifierPattern %s", n.Name)
	case *StructDeconstructPattern:
		names := make([]string, len(n.FieldNames))
		for i, t := range n.FieldNames {
			names[i] = t.Literal
		}
		writeLine(buf, depth, "StructDeconstructPattern { %s }", joinStrings(names))
	default:
		writeLine(buf, depth, "%T", n)
	}
}

func dumpExpr(buf *bytes.Buffer, e Expr, depth int) {
	switch n := e.(type) {
	case *Identifier:
		writeLine(buf, depth, "Identifier %s", n.Value)
	case *IntegerLiteral:
		writeLine(buf, depth, "Integer %d", n.Value)
	case *FloatLiteral:
		writeLine(buf, depth, "Float %g", n.Value)
	case *StringLiteral:
		writeLine(buf, depth, "String %q", n.Value)
	case *InterpolatedStringLiteral:
		writeLine(buf, depth, "InterpolatedString %q", n.Raw)
	case *BooleanLiteral:
		writeLine(buf, depth, "Boolean %t", n.Value)
	case *NilLiteral:
		writeLine(buf, depth, "Nil")
	case *UnaryExpression:
		writeLine(buf, depth, "Unary %s", n.Operator)
		dumpExpr(buf, n.Right, depth+1)
	case *BinaryExpression:
		writeLine(buf, depth, "Binary %s", n.Operator)
		dumpExpr(buf, n.Left, depth+1)
		dumpExpr(buf, n.Right, depth+1)
	case *AssignmentExpression:
		writeLine(buf, depth, "Assignment")
		dumpExpr(buf, n.Target, depth+1)
		dumpExpr(buf, n.Value, depth+1)
	case *CallExpression:
		writeLine(buf, depth, "Call")
		dumpExpr(buf, n.Function, depth+1)
		for _, arg := range n.Arguments {
			dumpExpr(buf, arg, depth+1)
		}
	case *IndexAccess:
		writeLine(buf, depth, "IndexAccess")
		dumpExpr(buf, n.Left, depth+1)
		dumpExpr(buf, n.Index, depth+1)
	case *SliceExpression:
		writeLine(buf, depth, "Slice")
		dumpExpr(buf, n.Left, depth+1)
		if n.Start != nil {
			dumpExpr(buf, n.Start, depth+1)
		}
		if n.End != nil {
			dumpExpr(buf, n.End, depth+1)
		}
	case *PropertyAccess:
		writeLine(buf, depth, "PropertyAccess .%s", n.Property.Value)
		dumpExpr(buf, n.Left, depth+1)
	case *IfExpression:
		writeLine(buf, depth, "If")
		dumpExpr(buf, n.Condition, depth+1)
		dumpStmt(buf, n.Consequence, depth+1)
		if n.Alternative != nil {
			dumpStmt(buf, n.Alternative, depth+1)
		}
	case *FunctionLiteral:
		writeLine(buf, depth, "FunctionLiteral(%s)", joinIdents(n.Params))
		dumpStmt(buf, n.Body, depth+1)
	case *ArrayLiteral:
		writeLine(buf, depth, "Array")
		for _, el := range n.Elements {
			dumpExpr(buf, el, depth+1)
		}
	case *MapLiteral:
		writeLine(buf, depth, "Map")
		for i, k := range n.Keys {
			dumpExpr(buf, k, depth+1)
			dumpExpr(buf, n.Values[i], depth+1)
		}
	case *SetLiteral:
		writeLine(buf, depth, "Set")
		for _, el := range n.Elements {
			dumpExpr(buf, el, depth+1)
		}
	case *StructLiteral:
		if n.Variant != nil {
			writeLine(buf, depth, "StructLiteral %s::%s", n.Type.Value, n.Variant.Value)
		} else if n.Type != nil {
			writeLine(buf, depth, "StructLiteral %s", n.Type.Value)
		} else {
			writeLine(buf, depth, "StructLiteral")
		}
		for i, fname := range n.FieldNames {
			writeLine(buf, depth+1, "%s =", fname.Value)
			dumpExpr(buf, n.FieldValues[i], depth+2)
		}
	case *RangeExpression:
		writeLine(buf, depth, "Range")
		dumpExpr(buf, n.Start, depth+1)
		dumpExpr(buf, n.End, depth+1)
	case *PipelineExpression:
		writeLine(buf, depth, "Pipeline")
		dumpExpr(buf, n.Left, depth+1)
		dumpExpr(buf, n.Right, depth+1)
	case *UpdateExpression:
		writeLine(buf, depth, "Update <-")
		dumpExpr(buf, n.Left, depth+1)
		dumpExpr(buf, n.Value, depth+1)
	case *AsyncExpression:
		writeLine(buf, depth, "Async")
		dumpStmt(buf, n.Body.Body, depth+1)
	case *AwaitExpression:
		writeLine(buf, depth, "Await")
		dumpExpr(buf, n.Value, depth+1)
	case *BlockStatement:
		dumpStmt(buf, n, depth)
	case *MatchStatement:
		dumpMatch(buf, n, depth)
	default:
		writeLine(buf, depth, "%T", n)
	}
}

func joinIdents(idents []*Identifier) string {
	names := make([]string, len(idents))
	for i, id := range idents {
		names[i] = id.Value
	}
	return joinStrings(names)
}

func joinStrings(strs []string) string {
	var buf bytes.Buffer
	for i, s := range strs {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s)
	}
	return buf.String()
}
