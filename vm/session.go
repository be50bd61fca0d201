package vm

import (
	"io"
	"os"

	"github.com/mirrow-lang/mirrow/bytecode"
	"github.com/mirrow-lang/mirrow/internal/object"
)

// Session runs a sequence of independently compiled bytecode.Programs
// against one persistent global environment and one persistent heap —
// what internal/repl needs (each line the user types is parsed and
// compiled as its own small Program, but `let` bindings from one line
// must still be visible on the next) and what Run's one-shot,
// fresh-environment-per-call behavior does not provide.
type Session struct {
	heap    *Heap
	env     *object.Environment
	modules map[string]*Module
	out     io.Writer
}

// NewSession starts a REPL-style session with an empty global scope.
func NewSession(modules map[string]*Module, out io.Writer) *Session {
	if out == nil {
		out = os.Stdout
	}
	return &Session{heap: NewHeap(), env: object.NewEnvironment(nil), modules: modules, out: out}
}

// Run executes one already compiled Program against the session's
// persistent environment and heap, returning its value.
func (s *Session) Run(prog *bytecode.Program) (object.Value, error) {
	v := &VM{prog: prog, modules: s.modules, heap: s.heap, out: s.out}
	v.frames = append(v.frames, &Frame{Fn: prog.Main, Env: s.env})
	return v.loop(0)
}
