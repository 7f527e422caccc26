package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/accordion/internal/config"
)

func TestResolveLiteralsPassThrough(t *testing.T) {
	nested := map[string]any{"x": 1}
	decl := config.Props{
		{Name: "n", Value: config.Literal(5)},
		{Name: "f", Value: config.Literal(2.5)},
		{Name: "b", Value: config.Literal(true)},
		{Name: "obj", Value: config.Literal(nested)},
		{Name: "s", Value: config.Literal("count")},
	}

	bag := Resolve(decl, StateMap{"count": 9}, nil)

	assert.Equal(t, 5, bag.Int("n", -1))
	assert.Equal(t, 2.5, bag.Float("f", -1))
	assert.True(t, bag.Bool("b", false))
	got, _ := bag.Get("obj")
	assert.Equal(t, nested, got)
	// A tagged literal string is never looked up.
	assert.Equal(t, "count", bag.String("s", ""))
}

func TestResolveTokenPrecedence(t *testing.T) {
	var calledWith any
	setX := Setter(func(v any) { calledWith = v })
	shadow := Setter(func(any) {})

	state := StateMap{"x": 5, "setX": "state value", "label": "hello"}
	setters := SetterMap{"setX": setX, "other": shadow}

	decl := config.Props{
		{Name: "onChange", Value: config.Token("setX")},
		{Name: "value", Value: config.Token("x")},
		{Name: "title", Value: config.Token("Plain Title")},
		{Name: "label", Value: config.Token("label")},
	}
	bag := Resolve(decl, state, setters)

	// setter map wins over a colliding state key
	require.NotNil(t, bag.Setter("onChange"))
	require.True(t, bag.Call("onChange", 42))
	assert.Equal(t, 42, calledWith)

	assert.Equal(t, 5, bag.Int("value", 0))
	assert.Equal(t, "Plain Title", bag.String("title", ""))
	assert.Equal(t, "hello", bag.String("label", ""))
}

func TestResolveNoPrefixInference(t *testing.T) {
	// "setSomething" is not in the setter map, so it must not become a setter.
	bag := Resolve(config.Props{
		{Name: "v", Value: config.Token("setSomething")},
	}, StateMap{}, SetterMap{})

	assert.Nil(t, bag.Setter("v"))
	assert.Equal(t, "setSomething", bag.String("v", ""))
}

func TestResolveExplicitReferences(t *testing.T) {
	setter := Setter(func(any) {})
	decl := config.Props{
		{Name: "value", Value: config.StateRef("count")},
		{Name: "missing", Value: config.StateRef("nope")},
		{Name: "set", Value: config.SetterRef("setCount")},
		{Name: "noSetter", Value: config.SetterRef("setNope")},
		// explicit state ref ignores a setter with the same name
		{Name: "collide", Value: config.StateRef("setCount")},
	}
	bag := Resolve(decl,
		StateMap{"count": 3, "setCount": "state"},
		SetterMap{"setCount": setter},
	)

	assert.Equal(t, 3, bag.Int("value", 0))
	v, ok := bag.Get("missing")
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.NotNil(t, bag.Setter("set"))
	assert.Nil(t, bag.Setter("noSetter"))
	assert.Equal(t, "state", bag.String("collide", ""))
}

func TestResolveKeepsDeclarationOrder(t *testing.T) {
	decl := config.Props{
		{Name: "z", Value: config.Literal(1)},
		{Name: "a", Value: config.Literal(2)},
		{Name: "m", Value: config.Literal(3)},
	}
	bag := Resolve(decl, nil, nil)
	assert.Equal(t, []string{"z", "a", "m"}, bag.Keys())
	assert.Equal(t, 3, bag.Len())
}

func TestResolveDoesNotMutateMaps(t *testing.T) {
	state := StateMap{"x": 1}
	setters := SetterMap{}
	Resolve(config.Props{{Name: "a", Value: config.Token("y")}}, state, setters)
	assert.Len(t, state, 1)
	assert.Empty(t, setters)
}

func TestBagGettersDefaults(t *testing.T) {
	bag := NewBag("i64", int64(7), "f", 3.9, "s", "str", "u", uint8(2))

	assert.Equal(t, 7, bag.Int("i64", 0))
	assert.Equal(t, 3, bag.Int("f", 0))
	assert.Equal(t, 2, bag.Int("u", 0))
	assert.Equal(t, 7.0, bag.Float("i64", 0))
	assert.Equal(t, 11, bag.Int("s", 11))
	assert.Equal(t, "d", bag.String("i64", "d"))
	assert.True(t, bag.Bool("missing", true))
	assert.False(t, bag.Call("s", 1))

	var zero Bag
	assert.Equal(t, 4, zero.Int("anything", 4))
	assert.Empty(t, zero.Keys())
}

func TestBagAcceptsPlainFuncSetter(t *testing.T) {
	var got any
	bag := NewBag("set", func(v any) { got = v })
	require.True(t, bag.Call("set", "x"))
	assert.Equal(t, "x", got)
}
