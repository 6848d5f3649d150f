package form

import (
	"encoding/json"
	"fmt"
	"os"
)

// Field is a terminal value holder in the exported form-data tree. Any node
// carrying a "value" key is a leaf; sibling metadata such as Options never
// participates in mapping.
type Field struct {
	Value   any      `json:"value"`
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Data is a complete exported form document: one top-level key per section
// ("section1" through "section30"), each holding that section's nested data
// tree. The mapping core treats it as a read-only snapshot.
type Data map[string]any

// Parse decodes an exported form-data JSON document. Unknown top-level keys
// are preserved; sections the mapper does not know about are simply ignored
// downstream.
func Parse(b []byte) (Data, error) {
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("failed to parse form data: %w", err)
	}
	return d, nil
}

// Load reads and parses a form-data JSON document from disk.
func Load(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form data file: %w", err)
	}
	return Parse(b)
}

// Section returns the named section's data tree, or nil if the section is
// absent from the document.
func (d Data) Section(key string) any {
	if d == nil {
		return nil
	}
	return d[key]
}

// HasSection reports whether the document contains a non-nil tree for the
// given section key.
func (d Data) HasSection(key string) bool {
	v, ok := d[key]
	return ok && v != nil
}
