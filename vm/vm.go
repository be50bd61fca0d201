/*
Package vm implements Mirrow's stack-based virtual machine (spec.md
§4.4): a single value stack shared across frames, a frame stack modeling
call/return, and an embedded mark-and-sweep garbage collector (heap.go)
over a heap of runtime-allocated compound values.

There is no separate bytecode-level calling convention beyond the
shared stack: a call pushes a new Frame and re-pushes its arguments onto
the same vm.stack; the callee's own parameter-binding prologue (emitted
by the compiler, see compiler/statements.go's reverseStoreParams) then
pops them via store_local — the VM never binds parameters itself in Go.
*/
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/mirrow-lang/mirrow/bytecode"
	"github.com/mirrow-lang/mirrow/internal/object"
)

// VM executes one compiled bytecode.Program to completion.
type VM struct {
	prog    *bytecode.Program
	stack   []object.Value
	frames  []*Frame
	heap    *Heap
	modules map[string]*Module
	out     io.Writer
	trace   io.Writer
}

// SetTrace turns on a per-instruction execution trace (spec.md §6's
// `--debug` output, the final stage after source/tokens/AST/bytecode),
// writing one line per dispatched instruction to w.
func (vm *VM) SetTrace(w io.Writer) { vm.trace = w }

// New constructs a VM ready to Run prog. modules is the built-in module
// registry (keyed by the same names the compiler validated imports
// against); out defaults to os.Stdout when nil.
func New(prog *bytecode.Program, modules map[string]*Module, out io.Writer) *VM {
	if out == nil {
		out = os.Stdout
	}
	return &VM{prog: prog, modules: modules, heap: NewHeap(), out: out}
}

func (vm *VM) Stdout() io.Writer { return vm.out }

// Alloc lets a NativeFunc register a freshly built compound value with
// the heap so it is counted toward GC scoring like any VM-allocated
// value, rather than escaping tracking entirely because it was built
// outside the op_make_* opcodes.
func (vm *VM) Alloc(obj object.HeapObject) object.HeapObject { return vm.heap.Alloc(obj) }

// Run executes the program's implicit top-level function to completion
// and returns its final value.
func (vm *VM) Run() (object.Value, error) {
	vm.frames = append(vm.frames, newFrame(vm.prog.Main, nil))
	return vm.loop(0)
}

func (vm *VM) current() *Frame { return vm.frames[len(vm.frames)-1] }

// loop drives frame dispatch until the frame stack unwinds back down to
// floor frames (for the top-level Run, floor is 0; for a nested Call
// from a builtin, floor is the frame depth just before that call was
// made), then reports the value its caller left on top of the stack.
func (vm *VM) loop(floor int) (object.Value, error) {
	for len(vm.frames) > floor {
		frame := vm.current()
		ins, ok := frame.instr()
		if !ok {
			// emitImplicitReturn/compileProgramBody guarantee every path
			// ends in an explicit return; reaching here means a compiler
			// invariant was violated.
			return nil, newRuntimeError(0, "function %q fell off its body with no return", frame.Fn.Name)
		}
		if vm.trace != nil {
			fmt.Fprintf(vm.trace, "%-12s ip=%-4d %s\n", frame.Fn.Name, frame.IP, ins.Op.Name())
		}
		frame.IP++
		if err := vm.exec(frame, ins); err != nil {
			return nil, err
		}
		vm.heap.MaybeCollect(vm.stack, vm.frames)
	}
	return vm.pop()
}

// exec runs one instruction against frame.
func (vm *VM) exec(frame *Frame, ins bytecode.Instruction) error {
	switch ins.Op {
	case bytecode.OpLoadConst:
		vm.push(vm.prog.Constants[ins.Int])

	case bytecode.OpLoadLocal:
		v, ok := frame.Env.Get(ins.Str)
		if !ok {
			fn, isFn := vm.prog.Functions[ins.Str]
			if !isFn {
				return newRuntimeError(ins.Line, "undefined variable %q", ins.Str)
			}
			v = &object.Closure{FnRef: fn, Name: ins.Str}
		}
		vm.push(v)

	case bytecode.OpStoreLocal:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		frame.Env.Bind(ins.Str, v)

	case bytecode.OpAssignLocal:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		if !frame.Env.Assign(ins.Str, v) {
			return newRuntimeError(ins.Line, "undefined variable %q", ins.Str)
		}

	case bytecode.OpLoadModuleRef:
		vm.push(&object.Module{Name: ins.Str})

	case bytecode.OpLoadModuleMember:
		mod, ok := vm.modules[ins.Str]
		if !ok {
			return newRuntimeError(ins.Line, "unknown module %q", ins.Str)
		}
		fn, ok := mod.Members[ins.Str2]
		if !ok {
			return newRuntimeError(ins.Line, "unknown module member %s.%s", ins.Str, ins.Str2)
		}
		vm.push(&object.Closure{FnRef: fn, Name: ins.Str + "." + ins.Str2})

	case bytecode.OpPop:
		_, err := vm.pop()
		return err

	case bytecode.OpDup:
		v, err := vm.peek()
		if err != nil {
			return err
		}
		vm.push(v)

	case bytecode.OpNeg:
		return vm.unaryNumeric(ins.Line, func(n float64) float64 { return -n })

	case bytecode.OpNot:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.push(&object.Bool{Value: !object.IsTruthy(v)})

	case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv, bytecode.OpMod,
		bytecode.OpEq, bytecode.OpNe, bytecode.OpLt, bytecode.OpGt, bytecode.OpLe, bytecode.OpGe,
		bytecode.OpAnd, bytecode.OpOr:
		return vm.binary(ins)

	case bytecode.OpMakeArray:
		elems, err := vm.popN(ins.Int)
		if err != nil {
			return err
		}
		vm.push(vm.heap.Alloc(&object.Array{Elements: elems}))

	case bytecode.OpMakeMap:
		m, err := vm.buildMap(ins.Int)
		if err != nil {
			return err
		}
		vm.push(m)

	case bytecode.OpMakeSet:
		elems, err := vm.popN(ins.Int)
		if err != nil {
			return err
		}
		set := object.NewMapObj()
		for _, e := range elems {
			set.Set(e.ToString(), &object.Bool{Value: true})
		}
		vm.push(vm.heap.Alloc(set))

	case bytecode.OpMakeEnum:
		m, err := vm.buildMap(ins.Int)
		if err != nil {
			return err
		}
		vm.push(vm.heap.Alloc(&object.EnumInstance{Tag: ins.Str, Payload: m}))

	case bytecode.OpIndexAccess:
		return vm.indexAccess(ins.Line)

	case bytecode.OpIndexSet:
		return vm.indexSet(ins.Line)

	case bytecode.OpSlice:
		return vm.slice(ins.Line)

	case bytecode.OpRange:
		return vm.rangeOp(ins.Line)

	case bytecode.OpArrayAppend:
		return vm.arrayAppend(ins.Line)

	case bytecode.OpCall:
		return vm.call(ins.Int, ins.Line)

	case bytecode.OpReturn:
		return vm.doReturn()

	case bytecode.OpMakeClosure:
		fn, ok := vm.prog.Functions[ins.Str]
		if !ok {
			return newRuntimeError(ins.Line, "Invalid heap pointer")
		}
		vm.push(vm.heap.Alloc(&object.Closure{FnRef: fn, Name: ins.Str, Env: frame.Env.Copy()}))

	case bytecode.OpJump:
		frame.IP = ins.Int

	case bytecode.OpJumpIfFalse:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		if !object.IsTruthy(v) {
			frame.IP = ins.Int
		}

	case bytecode.OpPushScope:
		frame.Env = frame.Env.Child()

	case bytecode.OpPopScope:
		if parent := frame.Env.Parent(); parent != nil {
			frame.Env = parent
		}

	case bytecode.OpMatchStructTest:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.push(&object.Bool{Value: structHasFields(v, ins.Names)})

	case bytecode.OpMatchExhausted:
		return newRuntimeError(ins.Line, "no match arm satisfied the scrutinee")

	default:
		return newRuntimeError(ins.Line, "unknown opcode %d", ins.Op)
	}
	return nil
}

func structHasFields(v object.Value, names []string) bool {
	m, ok := v.(*object.MapObj)
	if !ok {
		return false
	}
	for _, name := range names {
		if _, has := m.Get(name); !has {
			return false
		}
	}
	return true
}

func (vm *VM) buildMap(pairCount int) (*object.MapObj, error) {
	vals, err := vm.popN(pairCount * 2)
	if err != nil {
		return nil, err
	}
	m := object.NewMapObj()
	for i := 0; i < len(vals); i += 2 {
		m.Set(vals[i].ToString(), vals[i+1])
	}
	vm.heap.Alloc(m)
	return m, nil
}

func (vm *VM) push(v object.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() (object.Value, error) {
	if len(vm.stack) == 0 {
		return nil, newRuntimeError(0, "Stack underflow")
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v, nil
}

func (vm *VM) peek() (object.Value, error) {
	if len(vm.stack) == 0 {
		return nil, newRuntimeError(0, "Stack underflow")
	}
	return vm.stack[len(vm.stack)-1], nil
}

// popN pops n values and returns them in their original push order
// (oldest first): a plain tail slice of the stack already preserves
// that order.
func (vm *VM) popN(n int) ([]object.Value, error) {
	if len(vm.stack) < n {
		return nil, newRuntimeError(0, "Stack underflow")
	}
	vals := make([]object.Value, n)
	copy(vals, vm.stack[len(vm.stack)-n:])
	vm.stack = vm.stack[:len(vm.stack)-n]
	return vals, nil
}

func (vm *VM) unaryNumeric(line int, f func(float64) float64) error {
	v, err := vm.pop()
	if err != nil {
		return err
	}
	n, ok := v.(*object.Number)
	if !ok {
		return newRuntimeError(line, "operand must be a number, got %s", v.GetType())
	}
	vm.push(&object.Number{Value: f(n.Value)})
	return nil
}

// Call implements the Runtime interface so builtins can invoke
// user-defined closures without reaching into VM internals: it pushes
// fn/args as an ordinary call would and, if that resolves to a
// user-defined function, drives the dispatch loop until that specific
// call's frame has returned.
func (vm *VM) Call(fn object.Value, args []object.Value) (object.Value, error) {
	floor := len(vm.frames)
	vm.push(fn)
	for _, a := range args {
		vm.push(a)
	}
	if err := vm.call(len(args), 0); err != nil {
		return nil, err
	}
	if len(vm.frames) == floor {
		// call() resolved to a native function and already left the
		// result on top of the stack.
		return vm.pop()
	}
	return vm.loop(floor)
}
