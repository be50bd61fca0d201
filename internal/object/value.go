/*
Package object defines Mirrow's runtime value system: the tagged sum of
types a running program can hold, plus the environment (scope chain)
frames are built from. Every value implements GetType/ToString/ToObject,
the same three-method shape the host interpreter's GoMixObject interface
uses, renamed ValueType in place of GoMixType since this is no longer a
mixed static/dynamic type system — Mirrow is purely dynamic, per
spec.md's data model.

Numbers and booleans are by-value per spec.md §3; strings, arrays, maps,
enum instances and closures are heap references managed by the vm
package's garbage collector (see vm/heap.go) and additionally implement
HeapObject below.
*/
package object

import (
	"fmt"
	"os"
)

// ValueType identifies the dynamic type of a Value at runtime.
type ValueType string

const (
	NumberType  ValueType = "number"
	StringType  ValueType = "string"
	BoolType    ValueType = "bool"
	NilType     ValueType = "nil"
	ArrayType   ValueType = "array"
	MapType     ValueType = "map"
	SetType     ValueType = "set"
	EnumType    ValueType = "enum"
	ClosureType ValueType = "closure"
	ModuleType  ValueType = "module"
	ErrorType   ValueType = "error"
	FileType    ValueType = "file"
)

// Value is the interface every Mirrow runtime value implements.
type Value interface {
	GetType() ValueType
	ToString() string
	ToObject() string
}

// Number is Mirrow's sole numeric type: an IEEE-754 f64, per spec.md §3
// ("Numbers are IEEE-754 f64"). The lexer distinguishes INT_LIT/FLOAT_LIT
// for syntax purposes only; both lower to Number at runtime.
type Number struct {
	Value float64
}

func (n *Number) GetType() ValueType { return NumberType }
func (n *Number) ToString() string   { return formatNumber(n.Value) }
func (n *Number) ToObject() string   { return fmt.Sprintf("<number(%s)>", n.ToString()) }

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

type Bool struct {
	Value bool
}

func (b *Bool) GetType() ValueType { return BoolType }
func (b *Bool) ToString() string   { return fmt.Sprintf("%t", b.Value) }
func (b *Bool) ToObject() string   { return fmt.Sprintf("<bool(%t)>", b.Value) }

type Nil struct{}

func (n *Nil) GetType() ValueType { return NilType }
func (n *Nil) ToString() string   { return "nil" }
func (n *Nil) ToObject() string   { return "<nil>" }

// Module is a reference to an imported built-in module by name (spec.md
// §3's `Module(name)` value variant). It exists only so PropertyAccess
// has a receiver type the compiler can recognize statically; modules
// are never heap-allocated or collected.
type Module struct {
	Name string
}

func (m *Module) GetType() ValueType { return ModuleType }
func (m *Module) ToString() string   { return m.Name }
func (m *Module) ToObject() string   { return fmt.Sprintf("<module(%s)>", m.Name) }

// Error is a value-level error, returned by builtins on failure (the
// host project's std/common.go createError convention) rather than a
// Go error, since builtins must be callable from Mirrow code and report
// failures as ordinary values.
type Error struct {
	Message string
}

func (e *Error) GetType() ValueType { return ErrorType }
func (e *Error) ToString() string   { return e.Message }
func (e *Error) ToObject() string   { return fmt.Sprintf("<error(%s)>", e.Message) }

// File wraps an open OS file handle, a supplemented feature (file/file.go
// in the host project) spec.md's distillation dropped but its Non-goals
// never excluded. Like Module, a File is a resource handle rather than a
// GC-managed value and is never passed through the heap allocator.
type File struct {
	Handle *os.File
	Path   string
	closed bool
}

func (f *File) GetType() ValueType { return FileType }
func (f *File) ToString() string   { return fmt.Sprintf("<file(%s)>", f.Path) }
func (f *File) ToObject() string   { return f.ToString() }

// IsTruthy implements Mirrow's truthiness rule: nil and false are
// falsy, every other value (including 0 and "") is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case *Nil:
		return false
	case *Bool:
		return val.Value
	default:
		return true
	}
}

// Equal implements spec.md §4.4's equality rule: structural for
// primitives and strings, reference-identity for heap compounds unless
// a type defines otherwise (EnumInstance does, below).
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value == y.Value
	case *Bool:
		y, ok := b.(*Bool)
		return ok && x.Value == y.Value
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *String:
		y, ok := b.(*String)
		return ok && x.Value == y.Value
	case *EnumInstance:
		y, ok := b.(*EnumInstance)
		if !ok || x.Tag != y.Tag {
			return false
		}
		return x.Payload == y.Payload
	default:
		return a == b
	}
}
