// Package loader provides the class resolution environment used during
// bytecode rewriting.
package loader

import "github.com/deepnoodle-ai/weaver/bundle"

// Context resolves class bytecode by name. Contexts form a chain: lookups
// consult the local mapping first and then delegate to the parent. A Context
// is immutable; overrides derive a new value.
type Context struct {
	parent  *Context
	classes map[string][]byte
}

// NewContext creates a Context over a snapshot of the bundle's classes,
// delegating to the given parent (which may be nil).
func NewContext(b *bundle.Bundle, parent *Context) *Context {
	classes := make(map[string][]byte, b.ClassCount())
	for name, cls := range b.Classes() {
		classes[name] = cls.Bytecode()
	}
	return &Context{parent: parent, classes: classes}
}

// FromMap creates a Context over the given name to bytecode mapping. The
// map is copied.
func FromMap(classes map[string][]byte, parent *Context) *Context {
	copied := make(map[string][]byte, len(classes))
	for name, code := range classes {
		copied[name] = code
	}
	return &Context{parent: parent, classes: copied}
}

// Resolve returns the bytecode for the named class, consulting the parent
// chain when the class is not known locally.
func (c *Context) Resolve(name string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	if code, ok := c.classes[name]; ok {
		return code, true
	}
	return c.parent.Resolve(name)
}

// WithOverride derives a Context in which the named class resolves to the
// given bytecode, shadowing both the local mapping and the parent chain.
func (c *Context) WithOverride(name string, code []byte) *Context {
	return &Context{parent: c, classes: map[string][]byte{name: code}}
}
