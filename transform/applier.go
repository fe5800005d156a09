package transform

import (
	"fmt"

	"github.com/deepnoodle-ai/weaver/bundle"
	"github.com/deepnoodle-ai/weaver/loader"
)

// Applier maps a bundle and a load context to a new bundle. Appliers are
// pure: repeated application with the same inputs and deterministic
// transformers yields bytecode-identical results.
type Applier interface {
	Apply(b *bundle.Bundle, ctx *loader.Context) (*bundle.Bundle, error)
}

// Identity is the canonical no-op applier. Compose recognizes it by
// identity comparison and elides it, so pipelines built incrementally from
// an Identity seed never accumulate pass-through layers.
var Identity Applier = identity{}

type identity struct{}

func (identity) Apply(b *bundle.Bundle, ctx *loader.Context) (*bundle.Bundle, error) {
	return b, nil
}

// Of builds an applier from the given factories: Identity for none, a
// single-transformer applier for exactly one, and a multi-transformer
// applier otherwise. The single-transformer case instantiates its
// transformer once at construction, since there is nothing to sequence and
// no per-pass reinstantiation concern applies; it rewrites classes only and
// does not merge injected classes.
func Of(factories ...Factory) Applier {
	switch len(factories) {
	case 0:
		return Identity
	case 1:
		return &single{transformer: factories[0]()}
	default:
		return &multi{factories: copyFactories(factories)}
	}
}

// Compose combines two appliers into one that feeds the result of a into b.
// Composing with Identity returns the other operand unchanged, avoiding
// trivial indirection.
func Compose(a, b Applier) Applier {
	if a == Identity {
		return b
	}
	if b == Identity {
		return a
	}
	return &composed{first: a, second: b}
}

// Gated builds an applier for one phase of the given factory table, guarded
// by a predicate over the input bundle. An unregistered phase yields
// Identity outright: with no work registered, the predicate is never
// consulted. A registered phase yields a multi-transformer applier built
// once, whose execution is decided per invocation by evaluating the
// predicate against the pre-transformation bundle.
func Gated(table map[Phase][]Factory, phase Phase, pred Predicate) Applier {
	factories, ok := table[phase]
	if !ok {
		return Identity
	}
	return &gated{
		pred:  pred,
		inner: &multi{factories: copyFactories(factories)},
	}
}

type single struct {
	transformer Transformer
}

func (s *single) Apply(b *bundle.Bundle, ctx *loader.Context) (*bundle.Bundle, error) {
	classes, err := rewriteAll(b.Classes(), s.transformer, ctx)
	if err != nil {
		return nil, err
	}
	return b.WithClasses(classes), nil
}

type multi struct {
	factories []Factory
}

func (m *multi) Apply(b *bundle.Bundle, ctx *loader.Context) (*bundle.Bundle, error) {
	classes := b.Classes()
	for _, factory := range m.factories {
		transformer := factory()
		next, err := rewriteAll(classes, transformer, ctx)
		if err != nil {
			return nil, err
		}
		// Injected classes overwrite same-named entries; the next pass
		// sees the injected version.
		for name, code := range transformer.Injected() {
			next[name] = bundle.NewClass(name, code)
		}
		classes = next
	}
	return b.WithClasses(classes), nil
}

type composed struct {
	first  Applier
	second Applier
}

func (c *composed) Apply(b *bundle.Bundle, ctx *loader.Context) (*bundle.Bundle, error) {
	out, err := c.first.Apply(b, ctx)
	if err != nil {
		return nil, err
	}
	return c.second.Apply(out, ctx)
}

type gated struct {
	pred  Predicate
	inner Applier
}

func (g *gated) Apply(b *bundle.Bundle, ctx *loader.Context) (*bundle.Bundle, error) {
	if !g.pred(b) {
		return b, nil
	}
	return g.inner.Apply(b, ctx)
}

// rewriteAll applies one transformer instance to every class in the
// mapping. A failure on any class aborts the whole pass.
func rewriteAll(classes map[string]*bundle.Class, t Transformer, ctx *loader.Context) (map[string]*bundle.Class, error) {
	out := make(map[string]*bundle.Class, len(classes))
	for name, cls := range classes {
		code, err := t.Transform(cls.Bytecode(), ctx)
		if err != nil {
			return nil, fmt.Errorf("transform class %q: %w", name, err)
		}
		out[name] = cls.WithBytecode(code)
	}
	return out, nil
}

func copyFactories(src []Factory) []Factory {
	dst := make([]Factory, len(src))
	copy(dst, src)
	return dst
}
