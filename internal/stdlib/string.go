// The String module, grounded in std/strings.go's upper/lower/trim/
// split/join/replace/contains/index set, narrowed to the subset
// SPEC_FULL.md §2.1 names (plus to_string/typeof from std/common.go,
// which this module exposes as members rather than language-wide
// builtins per spec.md §6's namespaced-import design).
package stdlib

import (
	"strings"

	"github.com/mirrow-lang/mirrow/internal/object"
	"github.com/mirrow-lang/mirrow/vm"
)

func stringModule() *vm.Module {
	return &vm.Module{
		Name: "String",
		Members: map[string]vm.NativeFunc{
			"length":    strLength,
			"upper":     strUnary(strings.ToUpper),
			"lower":     strUnary(strings.ToLower),
			"trim":      strUnary(strings.TrimSpace),
			"split":     strSplit,
			"join":      strJoin,
			"replace":   strReplace,
			"contains":  strContains,
			"index_of":  strIndexOf,
			"to_string": strToString,
			"typeof":    strTypeof,
		},
	}
}

func asString(name string, index int, v object.Value) (*object.String, error) {
	s, ok := v.(*object.String)
	if !ok {
		_, err := argTypeError(name, index, object.StringType, v.GetType())
		return nil, err
	}
	return s, nil
}

func strUnary(f func(string) string) vm.NativeFunc {
	return func(rt vm.Runtime, args []object.Value) (object.Value, error) {
		if len(args) != 1 {
			return wrongArgCount("string function", 1, len(args))
		}
		s, ok := args[0].(*object.String)
		if !ok {
			return argTypeError("string function", 0, object.StringType, args[0].GetType())
		}
		return rt.Alloc(&object.String{Value: f(s.Value)}), nil
	}
}

func strLength(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return wrongArgCount("length", 1, len(args))
	}
	s, ok := args[0].(*object.String)
	if !ok {
		return argTypeError("length", 0, object.StringType, args[0].GetType())
	}
	return &object.Number{Value: float64(len([]rune(s.Value)))}, nil
}

func strSplit(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("split", 2, len(args))
	}
	s, ok := args[0].(*object.String)
	if !ok {
		return argTypeError("split", 0, object.StringType, args[0].GetType())
	}
	sep, ok := args[1].(*object.String)
	if !ok {
		return argTypeError("split", 1, object.StringType, args[1].GetType())
	}
	parts := strings.Split(s.Value, sep.Value)
	elems := make([]object.Value, len(parts))
	for i, p := range parts {
		elems[i] = &object.String{Value: p}
	}
	return rt.Alloc(&object.Array{Elements: elems}), nil
}

func strJoin(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("join", 2, len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return argTypeError("join", 0, object.ArrayType, args[0].GetType())
	}
	sep, ok := args[1].(*object.String)
	if !ok {
		return argTypeError("join", 1, object.StringType, args[1].GetType())
	}
	parts := make([]string, len(arr.Elements))
	for i, e := range arr.Elements {
		parts[i] = e.ToString()
	}
	return rt.Alloc(&object.String{Value: strings.Join(parts, sep.Value)}), nil
}

func strReplace(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 3 {
		return wrongArgCount("replace", 3, len(args))
	}
	s, err := asString("replace", 0, args[0])
	if err != nil {
		return nil, err
	}
	old, err := asString("replace", 1, args[1])
	if err != nil {
		return nil, err
	}
	repl, err := asString("replace", 2, args[2])
	if err != nil {
		return nil, err
	}
	return rt.Alloc(&object.String{Value: strings.ReplaceAll(s.Value, old.Value, repl.Value)}), nil
}

func strContains(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("contains", 2, len(args))
	}
	s, err := asString("contains", 0, args[0])
	if err != nil {
		return nil, err
	}
	sub, err := asString("contains", 1, args[1])
	if err != nil {
		return nil, err
	}
	return &object.Bool{Value: strings.Contains(s.Value, sub.Value)}, nil
}

func strIndexOf(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 2 {
		return wrongArgCount("index_of", 2, len(args))
	}
	s, err := asString("index_of", 0, args[0])
	if err != nil {
		return nil, err
	}
	sub, err := asString("index_of", 1, args[1])
	if err != nil {
		return nil, err
	}
	return &object.Number{Value: float64(strings.Index(s.Value, sub.Value))}, nil
}

func strToString(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return wrongArgCount("to_string", 1, len(args))
	}
	return rt.Alloc(&object.String{Value: args[0].ToString()}), nil
}

func strTypeof(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return wrongArgCount("typeof", 1, len(args))
	}
	return rt.Alloc(&object.String{Value: string(args[0].GetType())}), nil
}
