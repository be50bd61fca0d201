// The Array module, grounded in std/arrays.go's push/pop/sort/reverse/
// contains/map_array/filter_array set, narrowed to the subset
// SPEC_FULL.md §2.1 names. map/filter call back into Mirrow closures
// through vm.Runtime.Call, mirroring std/arrays.go's mapArray/
// filterArray use of the host project's Runtime.CallFunction.
package stdlib

import (
	"sort"

	"github.com/mirrow-lang/mirrow/internal/object"
	"github.com/mirrow-lang/mirrow/vm"
)

func arrayModule() *vm.Module {
	return &vm.Module{
		Name: "Array",
		Members: map[string]vm.NativeFunc{
			"push":     arrayPush,
			"pop":      arrayPop,
			"sort":     arraySort,
			"reverse":  arrayReverse,
			"contains": arrayContains,
			"map":      arrayMap,
			"filter":   arrayFilter,
		},
	}
}

func asArray(name string, index int, v object.Value) (*object.Array, error) {
	a, ok := v.(*object.Array)
	if !ok {
		_, err := argTypeError(name, index, object.ArrayType, v.GetType())
		return nil, err
	}
	return a, nil
}

func arrayPush(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("push", 2, len(args))
	}
	arr, err := asArray("push", 0, args[0])
	if err != nil {
		return nil, err
	}
	arr.Elements = append(arr.Elements, args[1])
	return arr, nil
}

func arrayPop(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return wrongArgCount("pop", 1, len(args))
	}
	arr, err := asArray("pop", 0, args[0])
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return createError("pop: array is empty")
	}
	last := arr.Elements[len(arr.Elements)-1]
	arr.Elements = arr.Elements[:len(arr.Elements)-1]
	return last, nil
}

// arraySort sorts in place by numeric value when every element is a
// Number, falling back to lexical comparison of ToString otherwise —
// the same two-tier strategy std/arrays.go's sortArray uses.
func arraySort(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return wrongArgCount("sort", 1, len(args))
	}
	arr, err := asArray("sort", 0, args[0])
	if err != nil {
		return nil, err
	}
	sort.Slice(arr.Elements, func(i, j int) bool {
		ni, iok := arr.Elements[i].(*object.Number)
		nj, jok := arr.Elements[j].(*object.Number)
		if iok && jok {
			return ni.Value < nj.Value
		}
		return arr.Elements[i].ToString() < arr.Elements[j].ToString()
	})
	return arr, nil
}

func arrayReverse(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return wrongArgCount("reverse", 1, len(args))
	}
	arr, err := asArray("reverse", 0, args[0])
	if err != nil {
		return nil, err
	}
	out := make([]object.Value, len(arr.Elements))
	for i, e := range arr.Elements {
		out[len(out)-1-i] = e
	}
	return rt.Alloc(&object.Array{Elements: out}), nil
}

func arrayContains(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("contains", 2, len(args))
	}
	arr, err := asArray("contains", 0, args[0])
	if err != nil {
		return nil, err
	}
	for _, e := range arr.Elements {
		if object.Equal(e, args[1]) {
			return &object.Bool{Value: true}, nil
		}
	}
	return &object.Bool{Value: false}, nil
}

func arrayMap(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("map", 2, len(args))
	}
	arr, err := asArray("map", 0, args[0])
	if err != nil {
		return nil, err
	}
	out := make([]object.Value, len(arr.Elements))
	for i, e := range arr.Elements {
		res, callErr := rt.Call(args[1], []object.Value{e})
		if callErr != nil {
			return nil, callErr
		}
		out[i] = res
	}
	return rt.Alloc(&object.Array{Elements: out}), nil
}

func arrayFilter(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("filter", 2, len(args))
	}
	arr, err := asArray("filter", 0, args[0])
	if err != nil {
		return nil, err
	}
	var out []object.Value
	for _, e := range arr.Elements {
		res, callErr := rt.Call(args[1], []object.Value{e})
		if callErr != nil {
			return nil, callErr
		}
		if object.IsTruthy(res) {
			out = append(out, e)
		}
	}
	return rt.Alloc(&object.Array{Elements: out}), nil
}
