package vm

import (
	"github.com/mirrow-lang/mirrow/bytecode"
	"github.com/mirrow-lang/mirrow/internal/object"
)

// Frame is one call's activation record: the function it's executing,
// its instruction pointer, and its binding scope. Mirrow gives every
// function its own instruction slice (bytecode.Function.Body), so a
// frame's "code_ptr" from spec.md §4.4 is simply (Fn, IP) rather than an
// offset into one flat global stream.
type Frame struct {
	Fn  *bytecode.Function
	IP  int
	Env *object.Environment
}

func newFrame(fn *bytecode.Function, parent *object.Environment) *Frame {
	return &Frame{Fn: fn, Env: object.NewEnvironment(parent)}
}

func (f *Frame) instr() (bytecode.Instruction, bool) {
	body := f.Fn.Body()
	if f.IP >= len(body) {
		return bytecode.Instruction{}, false
	}
	return body[f.IP], true
}
