package vm

import "github.com/mirrow-lang/mirrow/internal/object"

// indexAccess implements bracket indexing (spec.md §4.3: "the only
// member access on user data"): arrays and strings index by number
// (negative counts from the end), maps/structs index by the stringified
// key, producing the named "missing field on index access" runtime
// error (spec.md §4.4) when absent.
func (vm *VM) indexAccess(line int) error {
	index, err := vm.pop()
	if err != nil {
		return err
	}
	target, err := vm.pop()
	if err != nil {
		return err
	}

	switch t := target.(type) {
	case *object.Array:
		idx, err := numberIndex(index, len(t.Elements), line)
		if err != nil {
			return err
		}
		vm.push(t.Elements[idx])
		return nil
	case *object.MapObj:
		key := index.ToString()
		v, ok := t.Get(key)
		if !ok {
			return newRuntimeError(line, "missing field %q on index access", key)
		}
		vm.push(v)
		return nil
	case *object.String:
		runes := []rune(t.Value)
		idx, err := numberIndex(index, len(runes), line)
		if err != nil {
			return err
		}
		vm.push(vm.heap.Alloc(&object.String{Value: string(runes[idx])}))
		return nil
	default:
		return newRuntimeError(line, "Invalid heap pointer")
	}
}

func numberIndex(index object.Value, length, line int) (int, error) {
	n, ok := index.(*object.Number)
	if !ok {
		return 0, newRuntimeError(line, "index must be a number, got %s", index.GetType())
	}
	idx := int(n.Value)
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, newRuntimeError(line, "index out of range")
	}
	return idx, nil
}

// indexSet implements `target[index] = value` (compiled from
// AssignmentExpression with an IndexAccess target). It leaves value on
// the stack, matching assignment's expression-value semantics.
func (vm *VM) indexSet(line int) error {
	value, err := vm.pop()
	if err != nil {
		return err
	}
	index, err := vm.pop()
	if err != nil {
		return err
	}
	target, err := vm.pop()
	if err != nil {
		return err
	}

	switch t := target.(type) {
	case *object.Array:
		idx, err := numberIndex(index, len(t.Elements), line)
		if err != nil {
			return err
		}
		t.Elements[idx] = value
	case *object.MapObj:
		t.Set(index.ToString(), value)
	default:
		return newRuntimeError(line, "Invalid heap pointer")
	}
	vm.push(value)
	return nil
}

// slice implements `target[start:end]`-style bracket slicing with
// Nil standing in for an omitted bound; negative bounds count from the
// end, and out-of-range bounds clamp rather than error, matching common
// scripting-language slice ergonomics.
func (vm *VM) slice(line int) error {
	end, err := vm.pop()
	if err != nil {
		return err
	}
	start, err := vm.pop()
	if err != nil {
		return err
	}
	left, err := vm.pop()
	if err != nil {
		return err
	}

	switch t := left.(type) {
	case *object.Array:
		s, e, err := sliceBounds(start, end, len(t.Elements), line)
		if err != nil {
			return err
		}
		elems := append([]object.Value(nil), t.Elements[s:e]...)
		vm.push(vm.heap.Alloc(&object.Array{Elements: elems}))
		return nil
	case *object.String:
		runes := []rune(t.Value)
		s, e, err := sliceBounds(start, end, len(runes), line)
		if err != nil {
			return err
		}
		vm.push(vm.heap.Alloc(&object.String{Value: string(runes[s:e])}))
		return nil
	default:
		return newRuntimeError(line, "cannot slice a %s", left.GetType())
	}
}

func sliceBounds(start, end object.Value, n, line int) (int, int, error) {
	s, e := 0, n
	if num, ok := start.(*object.Number); ok {
		s = int(num.Value)
	} else if _, isNil := start.(*object.Nil); !isNil {
		return 0, 0, newRuntimeError(line, "slice bound must be a number")
	}
	if num, ok := end.(*object.Number); ok {
		e = int(num.Value)
	} else if _, isNil := end.(*object.Nil); !isNil {
		return 0, 0, newRuntimeError(line, "slice bound must be a number")
	}
	if s < 0 {
		s += n
	}
	if e < 0 {
		e += n
	}
	if s < 0 {
		s = 0
	}
	if e > n {
		e = n
	}
	if s > e {
		s = e
	}
	return s, e, nil
}

// rangeOp implements "a...b" (spec.md's inclusive range sugar), always
// producing a concrete Array of Numbers since the Value tagged sum in
// spec.md §3 has no distinct Range heap variant.
func (vm *VM) rangeOp(line int) error {
	end, err := vm.pop()
	if err != nil {
		return err
	}
	start, err := vm.pop()
	if err != nil {
		return err
	}
	sn, ok := start.(*object.Number)
	if !ok {
		return newRuntimeError(line, "range bounds must be numbers")
	}
	en, ok := end.(*object.Number)
	if !ok {
		return newRuntimeError(line, "range bounds must be numbers")
	}

	lo, hi := int(sn.Value), int(en.Value)
	var elems []object.Value
	if lo <= hi {
		for i := lo; i <= hi; i++ {
			elems = append(elems, &object.Number{Value: float64(i)})
		}
	} else {
		for i := lo; i >= hi; i-- {
			elems = append(elems, &object.Number{Value: float64(i)})
		}
	}
	vm.push(vm.heap.Alloc(&object.Array{Elements: elems}))
	return nil
}

// arrayAppend implements "arr <- value" in place, leaving the same
// array reference on the stack as the expression's value.
func (vm *VM) arrayAppend(line int) error {
	value, err := vm.pop()
	if err != nil {
		return err
	}
	target, err := vm.pop()
	if err != nil {
		return err
	}
	arr, ok := target.(*object.Array)
	if !ok {
		return newRuntimeError(line, "cannot append to a %s", target.GetType())
	}
	arr.Elements = append(arr.Elements, value)
	vm.push(arr)
	return nil
}
