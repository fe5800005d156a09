package transform

import (
	"errors"
	"testing"

	"github.com/deepnoodle-ai/weaver/classfile"
	"github.com/deepnoodle-ai/weaver/loader"
	"github.com/deepnoodle-ai/weaver/op"
	"github.com/stretchr/testify/require"
)

func encodeClass(t *testing.T, cls *classfile.Class) []byte {
	t.Helper()
	data, err := classfile.Encode(cls)
	require.Nil(t, err)
	return data
}

// tagSource sets the source file on every visited class.
type tagSource struct {
	source string
}

func (v *tagSource) VisitClass(cls *classfile.Class, ctx *loader.Context) error {
	cls.SourceFile = v.source
	return nil
}

func TestStructuralRewritesClass(t *testing.T) {
	in := encodeClass(t, &classfile.Class{
		Name: "acme/A",
		Methods: []classfile.Method{
			{Name: "run", Descriptor: "()V", Code: []classfile.Instruction{{Opcode: op.Return}}},
		},
	})

	out, err := Structural(&tagSource{source: "tagged.w"}).Transform(in, nil)
	require.Nil(t, err)

	cls, err := classfile.Parse(out)
	require.Nil(t, err)
	require.Equal(t, "acme/A", cls.Name)
	require.Equal(t, "tagged.w", cls.SourceFile)
	require.Len(t, cls.Methods, 1)
}

func TestStructuralDecodeErrorPropagates(t *testing.T) {
	_, err := Structural(&tagSource{}).Transform([]byte{0x00, 0x01}, nil)
	require.NotNil(t, err)
	var cerr *classfile.Error
	require.ErrorAs(t, err, &cerr)
}

type failingVisitor struct {
	err error
}

func (v *failingVisitor) VisitClass(cls *classfile.Class, ctx *loader.Context) error {
	return v.err
}

func TestStructuralVisitErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	in := encodeClass(t, &classfile.Class{Name: "acme/A"})

	_, err := Structural(&failingVisitor{err: boom}).Transform(in, nil)
	require.ErrorIs(t, err, boom)
}

func TestStructuralInjectedWithoutInjector(t *testing.T) {
	require.Nil(t, Structural(&tagSource{}).Injected())
}

type injectingVisitor struct {
	tagSource
	classes map[string][]byte
}

func (v *injectingVisitor) Injected() map[string][]byte {
	return v.classes
}

func TestStructuralInjectedPassthrough(t *testing.T) {
	injected := map[string][]byte{"acme/Support": {1, 2}}
	transformer := Structural(&injectingVisitor{classes: injected})
	require.Equal(t, injected, transformer.Injected())
}

// overridingVisitor swaps in a load context that can resolve its support
// class, then records what the class being rewritten resolves to.
type overridingVisitor struct {
	resolved []byte
}

func (v *overridingVisitor) LoadContext(cls *classfile.Class, ctx *loader.Context) *loader.Context {
	return ctx.WithOverride("acme/Support", []byte{0x5})
}

func (v *overridingVisitor) VisitClass(cls *classfile.Class, ctx *loader.Context) error {
	code, ok := ctx.Resolve("acme/Support")
	if !ok {
		return errors.New("support class not resolvable")
	}
	v.resolved = code
	return nil
}

func TestStructuralContextOverride(t *testing.T) {
	in := encodeClass(t, &classfile.Class{Name: "acme/A"})
	visitor := &overridingVisitor{}
	base := loader.FromMap(map[string][]byte{"acme/A": in}, nil)

	_, err := Structural(visitor).Transform(in, base)
	require.Nil(t, err)
	require.Equal(t, []byte{0x5}, visitor.resolved)
}
