/*
Package ast defines Mirrow's Abstract Syntax Tree as a tagged sum of
concrete node types, each implementing one of the Node/Expr/Stmt/Pattern
interfaces. A Go type switch over these concrete types (rather than a
double-dispatch Visitor) is the chosen adaptation: spec.md's Design Notes
require "AST as tagged sum"; the original implementation's own AST is
accessed by concrete field, never through a visitor. See DESIGN.md for
the full grounding note.

Every node still carries the lexer.Token it started from, the same
convention the host interpreter's AST nodes follow, so compiler errors
can always cite a precise source location.
*/
package ast

import "github.com/mirrow-lang/mirrow/lexer"

// Node is the base interface implemented by every AST node.
type Node interface {
	Tok() lexer.Token
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Pattern is implemented by every match-arm pattern node.
type Pattern interface {
	Node
	patternNode()
}

// Program is the root of the AST: an ordered list of top-level
// statements. Imports, per spec.md, must all precede any non-import
// statement; that rule is enforced by the compiler, not the parser,
// since it parses fine either way (it's a semantic restriction).
type Program struct {
	Statements []Stmt
}

func (p *Program) Tok() lexer.Token {
	if len(p.Statements) == 0 {
		return lexer.Token{}
	}
	return p.Statements[0].Tok()
}

// ---- Statements ----

type ImportStatement struct {
	Token lexer.Token
	Path  *StringLiteral
}

func (n *ImportStatement) Tok() lexer.Token { return n.Token }
func (*ImportStatement) stmtNode()          {}

type LetStatement struct {
	Token lexer.Token
	Name  *Identifier
	Value Expr
}

func (n *LetStatement) Tok() lexer.Token { return n.Token }
func (*LetStatement) stmtNode()          {}

type ExpressionStatement struct {
	Token      lexer.Token
	Expression Expr
}

func (n *ExpressionStatement) Tok() lexer.Token { return n.Token }
func (*ExpressionStatement) stmtNode()          {}

type ReturnStatement struct {
	Token lexer.Token
	Value Expr
}

func (n *ReturnStatement) Tok() lexer.Token { return n.Token }
func (*ReturnStatement) stmtNode()          {}

type BlockStatement struct {
	Token      lexer.Token
	Statements []Stmt
}

func (n *BlockStatement) Tok() lexer.Token { return n.Token }
func (*BlockStatement) stmtNode()          {}
func (*BlockStatement) exprNode()          {} // a block's last expression is its value

type FunctionStatement struct {
	Token  lexer.Token
	Name   *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

func (n *FunctionStatement) Tok() lexer.Token { return n.Token }
func (*FunctionStatement) stmtNode()          {}

// StructStatement declares a struct type's field names. Mirrow structs
// have no methods; fields are given by name (`name = value`) at
// construction time via StructLiteral.
type StructStatement struct {
	Token  lexer.Token
	Name   *Identifier
	Fields []*Identifier
}

func (n *StructStatement) Tok() lexer.Token { return n.Token }
func (*StructStatement) stmtNode()          {}

// EnumStatement declares a tagged-union type: a name plus a list of
// variant names, each itself a struct shape (possibly empty).
type EnumStatement struct {
	Token    lexer.Token
	Name     *Identifier
	Variants []*EnumVariant
}

func (n *EnumStatement) Tok() lexer.Token { return n.Token }
func (*EnumStatement) stmtNode()          {}

type EnumVariant struct {
	Token  lexer.Token
	Name   *Identifier
	Fields []*Identifier
}

func (n *EnumVariant) Tok() lexer.Token { return n.Token }

// MatchStatement is Mirrow's sole branching construct (no if/else
// imperative loops exist in its grammar beyond the IfExpression
// ternary-like form below). Each arm may carry more than one pattern
// (`|`-combined) except a StructDeconstructPattern, which can never be
// combined with anything else — enforced by the parser, grounded in
// original_source/tests/struct_destructuring_tests.rs.
type MatchStatement struct {
	Token lexer.Token
	Value Expr
	Arms  []*MatchArm
}

func (n *MatchStatement) Tok() lexer.Token { return n.Token }
func (*MatchStatement) stmtNode()          {}
func (*MatchStatement) exprNode()          {}

type MatchArm struct {
	Token    lexer.Token
	Patterns []Pattern
	Body     Expr
}

func (n *MatchArm) Tok() lexer.Token { return n.Token }

// ---- Patterns ----

type LiteralPattern struct {
	Token lexer.Token
	Value Expr
}

func (n *LiteralPattern) Tok() lexer.Token { return n.Token }
func (*LiteralPattern) patternNode()       {}

// WildcardPattern matches anything and binds nothing; produced only
// when the lexer emits a bare UNDERSCORE token in pattern position.
type WildcardPattern struct {
	Token lexer.Token
}

func (n *WildcardPattern) Tok() lexer.Token { return n.Token }
func (*WildcardPattern) patternNode()       {}

// IdentifierPattern matches anything and binds it to Name.
type IdentifierPattern struct {
	Token lexer.Token
	Name  string
}

func (n *IdentifierPattern) Tok() lexer.Token { return n.Token }
func (*IdentifierPattern) patternNode()       {}

// StructDeconstructPattern matches a struct/map value, binding each
// named field. FieldNames stores full tokens (not bare strings) so
// identifier position survives for error reporting, mirroring
// original_source's StructDeconstructPattern{ field_names: Vec<Token> }.
// Per the grammar, this pattern can never be `|`-combined with any
// other pattern, not even another struct pattern.
type StructDeconstructPattern struct {
	Token      lexer.Token
	FieldNames []lexer.Token
}

func (n *StructDeconstructPattern) Tok() lexer.Token { return n.Token }
func (*StructDeconstructPattern) patternNode()        {}

// ---- Literal expressions ----

type Identifier struct {
	Token lexer.Token
	Value string
}

func (n *Identifier) Tok() lexer.Token { return n.Token }
func (*Identifier) exprNode()          {}

type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (n *IntegerLiteral) Tok() lexer.Token { return n.Token }
func (*IntegerLiteral) exprNode()          {}

type FloatLiteral struct {
	Token lexer.Token
	Value float64
}

func (n *FloatLiteral) Tok() lexer.Token { return n.Token }
func (*FloatLiteral) exprNode()          {}

type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (n *StringLiteral) Tok() lexer.Token { return n.Token }
func (*StringLiteral) exprNode()          {}

// InterpolatedStringLiteral preserves the raw, un-evaluated span between
// the delimiters. The compiler lowers it to a plain string constant of
// this raw text (see DESIGN.md Open Question 3).
type InterpolatedStringLiteral struct {
	Token lexer.Token
	Raw   string
}

func (n *InterpolatedStringLiteral) Tok() lexer.Token { return n.Token }
func (*InterpolatedStringLiteral) exprNode()          {}

type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (n *BooleanLiteral) Tok() lexer.Token { return n.Token }
func (*BooleanLiteral) exprNode()          {}

type NilLiteral struct {
	Token lexer.Token
}

func (n *NilLiteral) Tok() lexer.Token { return n.Token }
func (*NilLiteral) exprNode()          {}

// ---- Compound expressions ----

type UnaryExpression struct {
	Token    lexer.Token
	Operator string
	Right    Expr
}

func (n *UnaryExpression) Tok() lexer.Token { return n.Token }
func (*UnaryExpression) exprNode()          {}

type BinaryExpression struct {
	Token    lexer.Token
	Left     Expr
	Operator string
	Right    Expr
}

func (n *BinaryExpression) Tok() lexer.Token { return n.Token }
func (*BinaryExpression) exprNode()          {}

type AssignmentExpression struct {
	Token  lexer.Token
	Target Expr
	Value  Expr
}

func (n *AssignmentExpression) Tok() lexer.Token { return n.Token }
func (*AssignmentExpression) exprNode()          {}

type CallExpression struct {
	Token     lexer.Token
	Function  Expr
	Arguments []Expr
}

func (n *CallExpression) Tok() lexer.Token { return n.Token }
func (*CallExpression) exprNode()          {}

// IndexAccess is the only grammar form that may target a struct/map
// value and always compiles successfully (bracket indexing). Also
// covers array indexing (arr[0], arr[-1]).
type IndexAccess struct {
	Token lexer.Token
	Left  Expr
	Index Expr
}

func (n *IndexAccess) Tok() lexer.Token { return n.Token }
func (*IndexAccess) exprNode()          {}

type SliceExpression struct {
	Token lexer.Token
	Left  Expr
	Start Expr
	End   Expr
}

func (n *SliceExpression) Tok() lexer.Token { return n.Token }
func (*SliceExpression) exprNode()          {}

// PropertyAccess is dot notation (obj.field). It parses successfully on
// any expression but the compiler rejects it as a compile-time error
// when Left resolves to a struct/map/any non-module value — only a
// module import may be dereferenced with dot notation (module.function).
type PropertyAccess struct {
	Token    lexer.Token
	Left     Expr
	Property *Identifier
}

func (n *PropertyAccess) Tok() lexer.Token { return n.Token }
func (*PropertyAccess) exprNode()          {}

type IfExpression struct {
	Token       lexer.Token
	Condition   Expr
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (n *IfExpression) Tok() lexer.Token { return n.Token }
func (*IfExpression) exprNode()          {}

type FunctionLiteral struct {
	Token  lexer.Token
	Params []*Identifier
	Body   *BlockStatement
}

func (n *FunctionLiteral) Tok() lexer.Token { return n.Token }
func (*FunctionLiteral) exprNode()          {}

type ArrayLiteral struct {
	Token    lexer.Token
	Elements []Expr
}

func (n *ArrayLiteral) Tok() lexer.Token { return n.Token }
func (*ArrayLiteral) exprNode()          {}

type MapLiteral struct {
	Token  lexer.Token
	Keys   []Expr
	Values []Expr
}

func (n *MapLiteral) Tok() lexer.Token { return n.Token }
func (*MapLiteral) exprNode()          {}

type SetLiteral struct {
	Token    lexer.Token
	Elements []Expr
}

func (n *SetLiteral) Tok() lexer.Token { return n.Token }
func (*SetLiteral) exprNode()          {}

// StructLiteral constructs a struct or, when Variant is non-nil, a
// tagged enum variant (Person::Programmer { name = "John", age = 30 }).
type StructLiteral struct {
	Token       lexer.Token
	Type        *Identifier
	Variant     *Identifier // nil for a plain struct literal
	FieldNames  []*Identifier
	FieldValues []Expr
}

func (n *StructLiteral) Tok() lexer.Token { return n.Token }
func (*StructLiteral) exprNode()          {}

// RangeExpression is the "2...5" inclusive-range sugar.
type RangeExpression struct {
	Token lexer.Token
	Start Expr
	End   Expr
}

func (n *RangeExpression) Tok() lexer.Token { return n.Token }
func (*RangeExpression) exprNode()          {}

// PipelineExpression is "x |> f", sugar for f(x).
type PipelineExpression struct {
	Token lexer.Token
	Left  Expr
	Right Expr
}

func (n *PipelineExpression) Tok() lexer.Token { return n.Token }
func (*PipelineExpression) exprNode()          {}

// UpdateExpression is "arr <- value", append sugar, right-associative
// at its own precedence level (distinct from the other binary ops),
// grounded in original_source/src/parser.rs's led() handling of Update.
type UpdateExpression struct {
	Token lexer.Token
	Left  Expr
	Value Expr
}

func (n *UpdateExpression) Tok() lexer.Token { return n.Token }
func (*UpdateExpression) exprNode()          {}

// AsyncExpression and AwaitExpression parse syntactically (so the
// parser never errors on them) but the compiler always rejects them:
// async/await has no defined runtime semantics upstream of this
// implementation (spec.md §9 Open Question 1).
type AsyncExpression struct {
	Token lexer.Token
	Body  *FunctionLiteral
}

func (n *AsyncExpression) Tok() lexer.Token { return n.Token }
func (*AsyncExpression) exprNode()          {}

type AwaitExpression struct {
	Token lexer.Token
	Value Expr
}

func (n *AwaitExpression) Tok() lexer.Token { return n.Token }
func (*AwaitExpression) exprNode()          {}
