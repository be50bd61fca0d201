package vm

import (
	"io"

	"github.com/mirrow-lang/mirrow/internal/object"
)

// NativeFunc is a builtin module member's implementation: it receives a
// Runtime handle (to call back into user closures, as the host
// interpreter's std.Runtime lets builtins do) and its arguments, and
// returns a value or a runtime error.
type NativeFunc func(rt Runtime, args []object.Value) (object.Value, error)

// Module is one entry in the fixed built-in registry spec.md §6
// requires ("IO", "Math", "String", "Array", "Json", "Config" per
// SPEC_FULL.md's domain stack). internal/stdlib builds these; vm only
// needs to dispatch through them.
type Module struct {
	Name    string
	Members map[string]NativeFunc
}

// Runtime is what a NativeFunc gets to call back into the running
// program — mirrors the host interpreter's std.Runtime interface
// (CallFunction/GetInputReader), generalized to Mirrow's closure-based
// calling convention.
type Runtime interface {
	Call(fn object.Value, args []object.Value) (object.Value, error)
	Stdout() io.Writer
	Alloc(obj object.HeapObject) object.HeapObject
}
