// The Math module, grounded in std/math.go's abs/sqrt/pow/floor/ceil/
// round/min/max set, narrowed to the subset SPEC_FULL.md §2.1 names.
package stdlib

import (
	"math"

	"github.com/mirrow-lang/mirrow/internal/object"
	"github.com/mirrow-lang/mirrow/vm"
)

func mathModule() *vm.Module {
	return &vm.Module{
		Name: "Math",
		Members: map[string]vm.NativeFunc{
			"abs":   mathUnary(math.Abs),
			"sqrt":  mathUnary(math.Sqrt),
			"floor": mathUnary(math.Floor),
			"ceil":  mathUnary(math.Ceil),
			"round": mathUnary(math.Round),
			"pow":   mathPow,
			"min":   mathMin,
			"max":   mathMax,
		},
	}
}

func mathUnary(f func(float64) float64) vm.NativeFunc {
	return func(rt vm.Runtime, args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return wrongArgCount("math function", 1, len(args))
		}
		n, ok := args[0].(*object.Number)
		if !ok {
			return argTypeError("math function", 0, object.NumberType, args[0].GetType())
		}
		return &object.Number{Value: f(n.Value)}, nil
	}
}

func mathPow(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("pow", 2, len(args))
	}
	base, ok := args[0].(*object.Number)
	if !ok {
		return argTypeError("pow", 0, object.NumberType, args[0].GetType())
	}
	exp, ok := args[1].(*object.Number)
	if !ok {
		return argTypeError("pow", 1, object.NumberType, args[1].GetType())
	}
	return &object.Number{Value: math.Pow(base.Value, exp.Value)}, nil
}

func mathMin(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("min", 2, len(args))
	}
	a, ok := args[0].(*object.Number)
	if !ok {
		return argTypeError("min", 0, object.NumberType, args[0].GetType())
	}
	b, ok := args[1].(*object.Number)
	if !ok {
		return argTypeError("min", 1, object.NumberType, args[1].GetType())
	}
	return &object.Number{Value: math.Min(a.Value, b.Value)}, nil
}

func mathMax(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("max", 2, len(args))
	}
	a, ok := args[0].(*object.Number)
	if !ok {
		return argTypeError("max", 0, object.NumberType, args[0].GetType())
	}
	b, ok := args[1].(*object.Number)
	if !ok {
		return argTypeError("max", 1, object.NumberType, args[1].GetType())
	}
	return &object.Number{Value: math.Max(a.Value, b.Value)}, nil
}
