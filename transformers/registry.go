package transformers

import (
	"sort"

	"github.com/deepnoodle-ai/weaver/transform"
)

var registry = map[string]transform.Factory{
	"entry-trace": NewEntryTrace(),
	"strip-debug": NewStripDebug(),
}

// Lookup returns the registered factory with the given name.
func Lookup(name string) (transform.Factory, bool) {
	factory, ok := registry[name]
	return factory, ok
}

// Names returns the sorted names of all registered factories.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
