package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironment_ChildLooksUpThroughParent(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Bind("x", &Number{Value: 1})

	child := parent.Child()
	v, ok := child.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "1", v.ToString())
}

func TestEnvironment_AssignFailsForUndeclaredName(t *testing.T) {
	env := NewEnvironment(nil)
	assert.False(t, env.Assign("missing", &Nil{}))
}

func TestEnvironment_AssignUpdatesInDeclaringScope(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Bind("x", &Number{Value: 1})
	child := parent.Child()

	ok := child.Assign("x", &Number{Value: 2})
	assert.True(t, ok)

	v, _ := parent.Get("x")
	assert.Equal(t, "2", v.ToString())
}

func TestHeap_ScoreReflectsCompositeSize(t *testing.T) {
	small := &Array{Elements: []Value{&Number{Value: 1}}}
	large := &Array{Elements: []Value{&Number{Value: 1}, &Number{Value: 2}, &Number{Value: 3}}}
	assert.Less(t, small.Score(), large.Score())
}

func TestEqual_NumbersAndStrings(t *testing.T) {
	assert.True(t, Equal(&Number{Value: 3}, &Number{Value: 3}))
	assert.False(t, Equal(&Number{Value: 3}, &Number{Value: 4}))
	assert.True(t, Equal(&String{Value: "a"}, &String{Value: "a"}))
}
