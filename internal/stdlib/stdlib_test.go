package stdlib

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrow-lang/mirrow/internal/object"
)

// fakeRuntime is a minimal vm.Runtime for exercising NativeFuncs in
// isolation, without wiring a full VM. Call is a plain Go callback
// rather than closure dispatch, enough for array.go's map/filter tests.
type fakeRuntime struct {
	callFn func(fn object.Value, args []object.Value) (object.Value, error)
}

func (f *fakeRuntime) Call(fn object.Value, args []object.Value) (object.Value, error) {
	return f.callFn(fn, args)
}
func (f *fakeRuntime) Stdout() io.Writer { return io.Discard }
func (f *fakeRuntime) Alloc(obj object.HeapObject) object.HeapObject { return obj }

func TestRegistry_HasAllSixModules(t *testing.T) {
	reg := Registry()
	for _, name := range []string{"IO", "Math", "String", "Array", "Json", "Config"} {
		require.Contains(t, reg, name)
		assert.Equal(t, name, reg[name].Name)
	}
}

func TestMath_Pow(t *testing.T) {
	mod := mathModule()
	fn := mod.Members["pow"]
	result, err := fn(&fakeRuntime{}, []object.Value{
		&object.Number{Value: 2}, &object.Number{Value: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, "1024", result.ToString())
}

func TestArray_Map(t *testing.T) {
	mod := arrayModule()
	fn := mod.Members["map"]
	rt := &fakeRuntime{callFn: func(_ object.Value, args []object.Value) (object.Value, error) {
		n := args[0].(*object.Number)
		return &object.Number{Value: n.Value * 2}, nil
	}}
	arr := &object.Array{Elements: []object.Value{
		&object.Number{Value: 1}, &object.Number{Value: 2}, &object.Number{Value: 3},
	}}
	result, err := fn(rt, []object.Value{arr, &object.Nil{}})
	require.NoError(t, err)
	mapped := result.(*object.Array)
	assert.Equal(t, "2", mapped.Elements[0].ToString())
	assert.Equal(t, "6", mapped.Elements[2].ToString())
}

func TestArray_FilterKeepsOnlyTruthy(t *testing.T) {
	mod := arrayModule()
	fn := mod.Members["filter"]
	rt := &fakeRuntime{callFn: func(_ object.Value, args []object.Value) (object.Value, error) {
		n := args[0].(*object.Number)
		return &object.Bool{Value: int(n.Value)%2 == 0}, nil
	}}
	arr := &object.Array{Elements: []object.Value{
		&object.Number{Value: 1}, &object.Number{Value: 2},
		&object.Number{Value: 3}, &object.Number{Value: 4},
	}}
	result, err := fn(rt, []object.Value{arr, &object.Nil{}})
	require.NoError(t, err)
	filtered := result.(*object.Array)
	require.Len(t, filtered.Elements, 2)
	assert.Equal(t, "2", filtered.Elements[0].ToString())
	assert.Equal(t, "4", filtered.Elements[1].ToString())
}

func TestJson_EncodeDecodeRoundTrip(t *testing.T) {
	mod := jsonModule()
	encode := mod.Members["encode"]
	decode := mod.Members["decode"]
	rt := &fakeRuntime{}

	m := object.NewMapObj()
	m.Set("name", &object.String{Value: "ada"})
	m.Set("age", &object.Number{Value: 36})

	encoded, err := encode(rt, []object.Value{m})
	require.NoError(t, err)
	str := encoded.(*object.String)

	decoded, err := decode(rt, []object.Value{str})
	require.NoError(t, err)
	back := decoded.(*object.MapObj)
	name, ok := back.Get("name")
	require.True(t, ok)
	assert.Equal(t, "ada", name.(*object.String).Value)
}

func TestArray_WrongArgCountIsError(t *testing.T) {
	mod := arrayModule()
	fn := mod.Members["push"]
	result, err := fn(&fakeRuntime{}, []object.Value{&object.Nil{}})
	require.NoError(t, err)
	assert.IsType(t, &object.Error{}, result)
}
