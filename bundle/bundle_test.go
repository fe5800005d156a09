package bundle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassImmutability(t *testing.T) {
	code := []byte{1, 2, 3}
	cls := NewClass("acme/Foo", code)

	// Mutating the input slice does not affect the class.
	code[0] = 99
	require.Equal(t, []byte{1, 2, 3}, cls.Bytecode())

	// Mutating a returned slice does not affect the class.
	got := cls.Bytecode()
	got[1] = 99
	require.Equal(t, []byte{1, 2, 3}, cls.Bytecode())
}

func TestClassWithBytecode(t *testing.T) {
	cls := NewClass("acme/Foo", []byte{1})
	derived := cls.WithBytecode([]byte{2, 3})

	require.Equal(t, "acme/Foo", derived.Name())
	require.Equal(t, []byte{2, 3}, derived.Bytecode())
	require.Equal(t, []byte{1}, cls.Bytecode())
}

func TestNewBundleCopiesInputs(t *testing.T) {
	classes := map[string]*Class{"acme/A": NewClass("acme/A", []byte{1})}
	resources := map[string][]byte{"conf": {10}}
	b := New(Params{ID: "b1", Classes: classes, Resources: resources})

	classes["acme/B"] = NewClass("acme/B", nil)
	resources["conf"][0] = 99
	delete(resources, "conf")

	require.Equal(t, 1, b.ClassCount())
	data, ok := b.Resource("conf")
	require.True(t, ok)
	require.Equal(t, []byte{10}, data)
}

func TestBundleGeneratedID(t *testing.T) {
	a := New(Params{})
	b := New(Params{})
	require.NotEmpty(t, a.ID())
	require.NotEqual(t, a.ID(), b.ID())
	require.Equal(t, "fixed", New(Params{ID: "fixed"}).ID())
}

func TestBundleAccessors(t *testing.T) {
	b := New(Params{
		ID: "b1",
		Classes: map[string]*Class{
			"acme/B": NewClass("acme/B", []byte{2}),
			"acme/A": NewClass("acme/A", []byte{1}),
		},
		Resources: map[string][]byte{"b.txt": {2}, "a.txt": {1}},
	})

	require.Equal(t, []string{"acme/A", "acme/B"}, b.ClassNames())
	require.Equal(t, []string{"a.txt", "b.txt"}, b.ResourceNames())

	cls, ok := b.Class("acme/A")
	require.True(t, ok)
	require.Equal(t, []byte{1}, cls.Bytecode())

	_, ok = b.Class("acme/C")
	require.False(t, ok)
}

func TestWithClasses(t *testing.T) {
	b := New(Params{
		ID:        "b1",
		Classes:   map[string]*Class{"acme/A": NewClass("acme/A", []byte{1})},
		Resources: map[string][]byte{"conf": {10}},
	})
	replaced := b.WithClasses(map[string]*Class{"acme/B": NewClass("acme/B", []byte{2})})

	// ID and resources carry over; only the class mapping changed.
	require.Equal(t, "b1", replaced.ID())
	require.Equal(t, []string{"acme/B"}, replaced.ClassNames())
	data, ok := replaced.Resource("conf")
	require.True(t, ok)
	require.Equal(t, []byte{10}, data)

	// The original bundle is unchanged.
	require.Equal(t, []string{"acme/A"}, b.ClassNames())
}

func TestWithResource(t *testing.T) {
	b := New(Params{ID: "b1"})
	derived := b.WithResource("conf", []byte{1})

	_, ok := b.Resource("conf")
	require.False(t, ok)
	data, ok := derived.Resource("conf")
	require.True(t, ok)
	require.Equal(t, []byte{1}, data)
}
