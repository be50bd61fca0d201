// The Config module has no teacher counterpart — it exists to give
// gopkg.in/yaml.v3 a concrete home per SPEC_FULL.md §2's domain stack
// table, reading a YAML sidecar into a Mirrow map the way the Json
// module decodes JSON, sharing its jsonToValue-style recursive
// conversion since yaml.Unmarshal into interface{} produces the same
// map[string]interface{}/[]interface{} shape encoding/json does.
package stdlib

import (
	"os"

	"github.com/mirrow-lang/mirrow/internal/object"
	"github.com/mirrow-lang/mirrow/vm"
	"gopkg.in/yaml.v3"
)

func configModule() *vm.Module {
	return &vm.Module{
		Name: "Config",
		Members: map[string]vm.NativeFunc{
			"load": configLoad,
		},
	}
}

func configLoad(rt vm.Runtime, args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return wrongArgCount("load", 1, len(args))
	}
	path, ok := args[0].(*object.String)
	if !ok {
		return argTypeError("load", 0, object.StringType, args[0].GetType())
	}
	raw, err := os.ReadFile(path.Value)
	if err != nil {
		return createError("load: %v", err)
	}
	var data interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return createError("load: %v", err)
	}
	return yamlToValue(rt, data), nil
}

// yamlToValue mirrors jsonToValue but additionally normalizes yaml.v3's
// map[string]interface{} keys (yaml.v3 decodes mapping keys as strings
// when the target is interface{}, unlike yaml.v2's map[interface{}]
// interface{}) and promotes int/int64 results, which json.Unmarshal
// never produces but yaml.Unmarshal does for bare integer scalars.
func yamlToValue(rt vm.Runtime, data interface{}) object.Value {
	switch v := data.(type) {
	case map[string]interface{}:
		m := object.NewMapObj()
		for k, raw := range v {
			m.Set(k, yamlToValue(rt, raw))
		}
		return rt.Alloc(m)
	case []interface{}:
		elems := make([]object.Value, len(v))
		for i, raw := range v {
			elems[i] = yamlToValue(rt, raw)
		}
		return rt.Alloc(&object.Array{Elements: elems})
	case string:
		return rt.Alloc(&object.String{Value: v})
	case bool:
		return &object.Bool{Value: v}
	case int:
		return &object.Number{Value: float64(v)}
	case int64:
		return &object.Number{Value: float64(v)}
	case float64:
		return &object.Number{Value: v}
	default:
		return &object.Nil{}
	}
}
