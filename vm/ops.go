package vm

import (
	"github.com/mirrow-lang/mirrow/bytecode"
	"github.com/mirrow-lang/mirrow/internal/object"
)

// binary implements every two-operand opcode. Operands were pushed
// left-then-right, so the top of the stack is the right operand.
func (vm *VM) binary(ins bytecode.Instruction) error {
	right, err := vm.pop()
	if err != nil {
		return err
	}
	left, err := vm.pop()
	if err != nil {
		return err
	}

	switch ins.Op {
	case bytecode.OpAdd:
		return vm.add(left, right, ins.Line)
	case bytecode.OpSub:
		return vm.numericBinary(left, right, ins.Line, func(a, b float64) float64 { return a - b })
	case bytecode.OpMul:
		return vm.numericBinary(left, right, ins.Line, func(a, b float64) float64 { return a * b })
	case bytecode.OpDiv:
		return vm.divBinary(left, right, ins.Line, false)
	case bytecode.OpMod:
		return vm.divBinary(left, right, ins.Line, true)
	case bytecode.OpEq:
		vm.push(&object.Bool{Value: object.Equal(left, right)})
		return nil
	case bytecode.OpNe:
		vm.push(&object.Bool{Value: !object.Equal(left, right)})
		return nil
	case bytecode.OpLt:
		return vm.comparison(left, right, ins.Line, func(a, b float64) bool { return a < b })
	case bytecode.OpGt:
		return vm.comparison(left, right, ins.Line, func(a, b float64) bool { return a > b })
	case bytecode.OpLe:
		return vm.comparison(left, right, ins.Line, func(a, b float64) bool { return a <= b })
	case bytecode.OpGe:
		return vm.comparison(left, right, ins.Line, func(a, b float64) bool { return a >= b })
	case bytecode.OpAnd:
		vm.push(&object.Bool{Value: object.IsTruthy(left) && object.IsTruthy(right)})
		return nil
	case bytecode.OpOr:
		vm.push(&object.Bool{Value: object.IsTruthy(left) || object.IsTruthy(right)})
		return nil
	}
	return newRuntimeError(ins.Line, "unknown binary opcode %d", ins.Op)
}

// add handles spec.md §4.4's "+ on two strings concatenates" alongside
// ordinary numeric addition.
func (vm *VM) add(left, right object.Value, line int) error {
	ln, lok := left.(*object.Number)
	rn, rok := right.(*object.Number)
	if lok && rok {
		vm.push(&object.Number{Value: ln.Value + rn.Value})
		return nil
	}
	ls, lok := left.(*object.String)
	rs, rok := right.(*object.String)
	if lok && rok {
		vm.push(vm.heap.Alloc(&object.String{Value: ls.Value + rs.Value}))
		return nil
	}
	return newRuntimeError(line, "type mismatch: cannot add %s and %s", left.GetType(), right.GetType())
}

func (vm *VM) numericBinary(left, right object.Value, line int, f func(a, b float64) float64) error {
	ln, lok := left.(*object.Number)
	rn, rok := right.(*object.Number)
	if !lok || !rok {
		return newRuntimeError(line, "operands must be numbers, got %s and %s", left.GetType(), right.GetType())
	}
	vm.push(&object.Number{Value: f(ln.Value, rn.Value)})
	return nil
}

func (vm *VM) divBinary(left, right object.Value, line int, mod bool) error {
	ln, lok := left.(*object.Number)
	rn, rok := right.(*object.Number)
	if !lok || !rok {
		return newRuntimeError(line, "operands must be numbers, got %s and %s", left.GetType(), right.GetType())
	}
	if rn.Value == 0 {
		return newRuntimeError(line, "division by zero")
	}
	if mod {
		vm.push(&object.Number{Value: float64(int64(ln.Value) % int64(rn.Value))})
		return nil
	}
	vm.push(&object.Number{Value: ln.Value / rn.Value})
	return nil
}

func (vm *VM) comparison(left, right object.Value, line int, f func(a, b float64) bool) error {
	ln, lok := left.(*object.Number)
	rn, rok := right.(*object.Number)
	if !lok || !rok {
		return newRuntimeError(line, "operands must be numbers, got %s and %s", left.GetType(), right.GetType())
	}
	vm.push(&object.Bool{Value: f(ln.Value, rn.Value)})
	return nil
}
