// Package weaver transforms class bundles by applying composable pipelines
// of bytecode transformers.
//
// A pipeline is built by composing appliers onto an identity seed, so
// unconfigured stages add no indirection:
//
//	out, err := weaver.Apply(b, ctx,
//	    weaver.WithPhase(table, "instrumentation", hasDescriptor),
//	    weaver.WithTransformers(transformers.NewStripDebug()),
//	)
package weaver

import (
	"github.com/deepnoodle-ai/weaver/bundle"
	"github.com/deepnoodle-ai/weaver/loader"
	"github.com/deepnoodle-ai/weaver/transform"
)

// Option configures a weaver pipeline.
type Option func(*options)

type options struct {
	applier transform.Applier
}

func collectOptions(opts ...Option) *options {
	o := &options{applier: transform.Identity}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithTransformers appends a stage that applies the given transformer
// factories in order. This option is additive; stages run in the order
// their options are supplied.
func WithTransformers(factories ...transform.Factory) Option {
	return func(o *options) {
		o.applier = transform.Compose(o.applier, transform.Of(factories...))
	}
}

// WithPhase appends a gated stage for one phase of the given factory table.
// The stage runs only when the predicate holds for the input bundle; an
// unregistered phase contributes nothing to the pipeline.
func WithPhase(table map[transform.Phase][]transform.Factory, phase transform.Phase, pred transform.Predicate) Option {
	return func(o *options) {
		o.applier = transform.Compose(o.applier, transform.Gated(table, phase, pred))
	}
}

// WithApplier appends a pre-built applier as a stage.
func WithApplier(a transform.Applier) Option {
	return func(o *options) {
		o.applier = transform.Compose(o.applier, a)
	}
}

// Applier builds the composed applier described by the given options.
// With no options it returns the identity applier.
func Applier(opts ...Option) transform.Applier {
	return collectOptions(opts...).applier
}

// Apply builds a pipeline from the given options and applies it to the
// bundle once.
func Apply(b *bundle.Bundle, ctx *loader.Context, opts ...Option) (*bundle.Bundle, error) {
	return Applier(opts...).Apply(b, ctx)
}
