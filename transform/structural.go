package transform

import (
	"github.com/deepnoodle-ai/weaver/classfile"
	"github.com/deepnoodle-ai/weaver/loader"
)

// Visitor mutates the structural form of a class during a rewrite.
type Visitor interface {
	VisitClass(cls *classfile.Class, ctx *loader.Context) error
}

// Injector is implemented by visitors that contribute new classes to the
// bundle in addition to rewriting existing ones.
type Injector interface {
	Injected() map[string][]byte
}

// ContextOverrider is implemented by visitors that need a different load
// context for the class being rewritten, e.g. to make an injected support
// class resolvable while rewriting call sites that reference it.
type ContextOverrider interface {
	LoadContext(cls *classfile.Class, ctx *loader.Context) *loader.Context
}

// Structural adapts a Visitor into a Transformer. Each Transform call
// decodes the bytecode with a fresh Reader, lets the visitor modify the
// structure in place, and re-encodes it with a fresh Writer. Decode,
// visit, and encode failures all propagate to the caller.
func Structural(v Visitor) Transformer {
	return &structural{visitor: v}
}

type structural struct {
	visitor Visitor
}

func (s *structural) Transform(code []byte, ctx *loader.Context) ([]byte, error) {
	cls, err := classfile.NewReader(code).ReadClass()
	if err != nil {
		return nil, err
	}
	if overrider, ok := s.visitor.(ContextOverrider); ok {
		ctx = overrider.LoadContext(cls, ctx)
	}
	if err := s.visitor.VisitClass(cls, ctx); err != nil {
		return nil, err
	}
	return classfile.NewWriter().WriteClass(cls)
}

func (s *structural) Injected() map[string][]byte {
	if injector, ok := s.visitor.(Injector); ok {
		return injector.Injected()
	}
	return nil
}
