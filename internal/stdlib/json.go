// The Json module, grounded in std/json.go's parse_json/stringify_json
// pair, reusing std/common.go's convertToGoMix/convertFromGoMix
// recursive-conversion strategy rewritten against object.Value.
package stdlib

import (
	"encoding/json"

	"github.com/mirrow-lang/mirrow/internal/object"
	"github.com/mirrow-lang/mirrow/vm"
)

func jsonModule() *vm.Module {
	return &vm.Module{
		Name: "Json",
		Members: map[string]vm.NativeFunc{
			"encode": jsonEncode,
			"decode": jsonDecode,
		},
	}
}

func jsonDecode(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return wrongArgCount("decode", 1, len(args))
	}
	s, ok := args[0].(*object.String)
	if !ok {
		return argTypeError("decode", 0, object.StringType, args[0].GetType())
	}
	var data interface{}
	if err := json.Unmarshal([]byte(s.Value), &data); err != nil {
		return createError("decode: %v", err)
	}
	return jsonToValue(rt, data), nil
}

func jsonEncode(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return wrongArgCount("encode", 1, len(args))
	}
	bytes, err := json.Marshal(valueToJSON(args[0]))
	if err != nil {
		return createError("encode: %v", err)
	}
	return rt.Alloc(&object.String{Value: string(bytes)}), nil
}

func valueToJSON(v object.Value) interface{} {
	switch val := v.(type) {
	case *object.Number:
		return val.Value
	case *object.String:
		return val.Value
	case *object.Bool:
		return val.Value
	case *object.Nil:
		return nil
	case *object.Array:
		out := make([]interface{}, len(val.Elements))
		for i, e := range val.Elements {
			out[i] = valueToJSON(e)
		}
		return out
	case *object.MapObj:
		out := make(map[string]interface{}, len(val.Keys))
		for _, k := range val.Keys {
			e, _ := val.Get(k)
			out[k] = valueToJSON(e)
		}
		return out
	default:
		return val.ToString()
	}
}

func jsonToValue(rt vm.Runtime, data interface{}) object.Value {
	switch v := data.(type) {
	case map[string]interface{}:
		m := object.NewMapObj()
		for k, raw := range v {
			m.Set(k, jsonToValue(rt, raw))
		}
		return rt.Alloc(m)
	case []interface{}:
		elems := make([]object.Value, len(v))
		for i, raw := range v {
			elems[i] = jsonToValue(rt, raw)
		}
		return rt.Alloc(&object.Array{Elements: elems})
	case string:
		return rt.Alloc(&object.String{Value: v})
	case bool:
		return &object.Bool{Value: v}
	case float64:
		return &object.Number{Value: v}
	default:
		return &object.Nil{}
	}
}
