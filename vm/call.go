package vm

import (
	"github.com/mirrow-lang/mirrow/bytecode"
	"github.com/mirrow-lang/mirrow/internal/object"
)

// call implements both op_call's two callable shapes: a user-defined
// function (push a frame and let its own store_local prologue bind
// parameters off the shared stack) and a native module member (invoke
// directly in Go and push its result).
func (vm *VM) call(argc, line int) error {
	args, err := vm.popN(argc)
	if err != nil {
		return err
	}
	callee, err := vm.pop()
	if err != nil {
		return err
	}

	closure, ok := callee.(*object.Closure)
	if !ok {
		return newRuntimeError(line, "value of type %s is not callable", callee.GetType())
	}

	switch fn := closure.FnRef.(type) {
	case *bytecode.Function:
		if len(fn.Params) != argc {
			return newRuntimeError(line, "%s expects %d argument(s), got %d", closure.Name, len(fn.Params), argc)
		}
		vm.frames = append(vm.frames, newFrame(fn, closure.Env))
		for _, a := range args {
			vm.push(a)
		}
		return nil
	case NativeFunc:
		result, err := fn(vm, args)
		if err != nil {
			return err
		}
		vm.push(result)
		return nil
	default:
		return newRuntimeError(line, "Invalid heap pointer")
	}
}

// doReturn pops the returned value, pops the current frame, and leaves
// the value for the caller (either the outer frame's dispatch loop, or
// vm.loop's floor check when the outermost frame returns).
func (vm *VM) doReturn() error {
	v, err := vm.pop()
	if err != nil {
		return err
	}
	vm.frames = vm.frames[:len(vm.frames)-1]
	vm.push(v)
	return nil
}
