// Package transform implements the bytecode transformation pipeline: an
// ordered, composable set of class transformers applied to a bundle,
// producing a new bundle with rewritten and injected classes.
//
// The pipeline itself holds no state between invocations. Transformers are
// produced by factories and each instance is used for exactly one pass over
// the class mapping, so whatever state a transformer keeps dies with that
// pass.
package transform

import (
	"github.com/deepnoodle-ai/weaver/bundle"
	"github.com/deepnoodle-ai/weaver/loader"
)

// Transformer rewrites class bytecode and optionally contributes new
// classes. Implementations are supplied by callers and are opaque to the
// pipeline.
type Transformer interface {
	// Transform rewrites one class's bytecode, using the given load
	// context to resolve types as needed.
	Transform(code []byte, ctx *loader.Context) ([]byte, error)

	// Injected returns wholly new classes (name to bytecode) to add to
	// the bundle in addition to the rewritten ones. May return nil.
	Injected() map[string][]byte
}

// Factory produces a fresh Transformer. A multi-transformer applier invokes
// the factory once per pass, so transformers need not be reusable or
// stateless across passes.
type Factory func() Transformer

// Phase is an opaque key identifying a group of registered transformer
// factories. No ordering is defined between phases; ordering exists only
// within the factory list registered for one phase.
type Phase string

// Predicate decides whether a gated applier runs for a given input bundle.
type Predicate func(*bundle.Bundle) bool
