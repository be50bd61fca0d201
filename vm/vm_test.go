package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrow-lang/mirrow/compiler"
	"github.com/mirrow-lang/mirrow/internal/object"
	"github.com/mirrow-lang/mirrow/lexer"
	"github.com/mirrow-lang/mirrow/parser"
)

func run(t *testing.T, src string, modules map[string]*Module, out *bytes.Buffer) object.Value {
	t.Helper()
	p := parser.NewParser(lexer.NewLexer(src))
	program := p.ParseProgram()
	require.Empty(t, p.Errors)
	compiled, errs := compiler.Compile(program)
	require.Empty(t, errs)

	v := New(compiled, modules, out)
	result, err := v.Run()
	require.NoError(t, err)
	return result
}

func TestVM_ClosureCapturesEnclosingScope(t *testing.T) {
	result := run(t, `
let makeAdder = func(x) { return func(y) { return x + y } }
let add5 = makeAdder(5)
add5(3)
`, nil, nil)
	assert.Equal(t, "8", result.ToString())
}

func TestVM_StructFieldAccess(t *testing.T) {
	result := run(t, `
struct Point { x, y }
let p = Point { x = 1, y = 2 }
p["x"] + p["y"]
`, nil, nil)
	assert.Equal(t, "3", result.ToString())
}

// TestVM_UntaggedStructLiteral exercises spec.md's own seed scenario 4:
// a bare "{ name = value, ... }" literal with no preceding type name,
// indexed with brackets.
func TestVM_UntaggedStructLiteral(t *testing.T) {
	result := run(t, `
let p = { name = "John", age = 30 }
p["name"]
`, nil, nil)
	assert.Equal(t, "John", result.(*object.String).Value)
}

func TestVM_ModuleCallRoutesThroughNativeFunc(t *testing.T) {
	calledWith := object.Value(nil)
	modules := map[string]*Module{
		"Math": {
			Name: "Math",
			Members: map[string]NativeFunc{
				"double": func(rt Runtime, args []object.Value) (object.Value, error) {
					calledWith = args[0]
					n := args[0].(*object.Number)
					return &object.Number{Value: n.Value * 2}, nil
				},
			},
		},
	}
	result := run(t, `
import "Math"
Math.double(21)
`, modules, nil)
	assert.Equal(t, "42", result.ToString())
	require.NotNil(t, calledWith)
}

func TestVM_GCReclaimsUnreachableHeapValues(t *testing.T) {
	heap := NewHeap()
	reachable := heap.Alloc(&object.Array{Elements: nil})
	heap.Alloc(&object.Array{Elements: nil})
	require.Len(t, heap.objects, 2)

	heap.collect([]object.Value{reachable.(object.Value)}, nil)
	assert.Len(t, heap.objects, 1)
	assert.Same(t, reachable, heap.objects[0])
}
