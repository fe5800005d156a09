// Package metadata provides access to bundle descriptor records.
package metadata

import (
	"encoding/json"
	"fmt"
)

// FileGroup names a set of files within a bundle, e.g. the files that make
// up one graded deliverable.
type FileGroup struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

// Descriptor describes a bundle: its name, the assignment identifiers it
// belongs to, and its named file groups.
type Descriptor struct {
	Name        string      `json:"name"`
	Assignments []string    `json:"assignments"`
	FileGroups  []FileGroup `json:"fileGroups"`
}

// Load decodes a Descriptor from JSON.
func Load(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("metadata: decode descriptor: %w", err)
	}
	return &d, nil
}

// HasAssignment returns true if the descriptor lists the given assignment
// identifier.
func (d *Descriptor) HasAssignment(id string) bool {
	for _, a := range d.Assignments {
		if a == id {
			return true
		}
	}
	return false
}

// Group returns the file group with the given name, if present.
func (d *Descriptor) Group(name string) (FileGroup, bool) {
	for _, g := range d.FileGroups {
		if g.Name == name {
			return g, true
		}
	}
	return FileGroup{}, false
}
