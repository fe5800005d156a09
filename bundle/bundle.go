// Package bundle provides immutable representations of class bundles.
//
// A Bundle holds a mapping from class name to compiled class, plus opaque
// runtime resources. All types in this package are immutable after
// construction: constructors copy input maps and slices, and "mutation" is
// expressed by deriving a new value with one field replaced. This makes
// bundles safe to share across goroutines and pipeline stages.
package bundle

import (
	"sort"

	"github.com/gofrs/uuid"
)

// Class is an immutable compiled class: a name plus raw bytecode.
type Class struct {
	name string
	code []byte
}

// NewClass creates a Class with the given name and bytecode. The bytecode
// slice is copied.
func NewClass(name string, code []byte) *Class {
	return &Class{name: name, code: copyBytes(code)}
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Bytecode returns a copy of the class bytecode.
func (c *Class) Bytecode() []byte {
	return copyBytes(c.code)
}

// WithBytecode derives a new Class carrying the given bytecode under the
// same name. The receiver is unchanged.
func (c *Class) WithBytecode(code []byte) *Class {
	return &Class{name: c.name, code: copyBytes(code)}
}

// Bundle is an immutable collection of compiled classes and runtime
// resources, treated as one versioned artifact.
type Bundle struct {
	id        string
	classes   map[string]*Class
	resources map[string][]byte
}

// Params contains parameters for creating a new Bundle.
type Params struct {
	ID        string // Generated when empty
	Classes   map[string]*Class
	Resources map[string][]byte
}

// New creates a Bundle from the given parameters. Input maps are copied to
// ensure immutability.
func New(params Params) *Bundle {
	id := params.ID
	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}
	return &Bundle{
		id:        id,
		classes:   copyClasses(params.Classes),
		resources: copyResources(params.Resources),
	}
}

// ID returns the bundle identifier.
func (b *Bundle) ID() string {
	return b.id
}

// Class returns the named class, if present.
func (b *Bundle) Class(name string) (*Class, bool) {
	cls, ok := b.classes[name]
	return cls, ok
}

// ClassCount returns the number of classes in the bundle.
func (b *Bundle) ClassCount() int {
	return len(b.classes)
}

// ClassNames returns the sorted names of all classes in the bundle.
func (b *Bundle) ClassNames() []string {
	names := make([]string, 0, len(b.classes))
	for name := range b.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classes returns a copy of the class mapping. The contained classes are
// themselves immutable.
func (b *Bundle) Classes() map[string]*Class {
	return copyClasses(b.classes)
}

// Resource returns a copy of the named resource, if present.
func (b *Bundle) Resource(name string) ([]byte, bool) {
	data, ok := b.resources[name]
	if !ok {
		return nil, false
	}
	return copyBytes(data), true
}

// ResourceNames returns the sorted names of all resources in the bundle.
func (b *Bundle) ResourceNames() []string {
	names := make([]string, 0, len(b.resources))
	for name := range b.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithClasses derives a new Bundle with the class mapping replaced. The ID
// and resources are carried over unchanged; the input map is copied.
func (b *Bundle) WithClasses(classes map[string]*Class) *Bundle {
	return &Bundle{
		id:        b.id,
		classes:   copyClasses(classes),
		resources: b.resources,
	}
}

// WithResource derives a new Bundle with one resource added or replaced.
func (b *Bundle) WithResource(name string, data []byte) *Bundle {
	resources := copyResources(b.resources)
	resources[name] = copyBytes(data)
	return &Bundle{
		id:        b.id,
		classes:   b.classes,
		resources: resources,
	}
}

func copyBytes(src []byte) []byte {
	if src == nil {
		return nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}

func copyClasses(src map[string]*Class) map[string]*Class {
	dst := make(map[string]*Class, len(src))
	for name, cls := range src {
		dst[name] = cls
	}
	return dst
}

func copyResources(src map[string][]byte) map[string][]byte {
	dst := make(map[string][]byte, len(src))
	for name, data := range src {
		dst[name] = copyBytes(data)
	}
	return dst
}
