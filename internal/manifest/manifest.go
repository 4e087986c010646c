// Package manifest defines the persisted declaration list written next to a
// generated unit. The symbol importer consumes it to expand requested names
// without re-serializing anything.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind strings recorded per declaration.
const (
	KindConst  = "const"
	KindStatic = "static"
	KindFunc   = "func"
)

// Declaration is one named, typed, emitted binding.
type Declaration struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	Type string `yaml:"type"`
	// Dim is the number of outer fixed-array levels for array exports;
	// zero for non-array declarations.
	Dim      int      `yaml:"dim,omitempty"`
	Fragment string   `yaml:"fragment"`
	Imports  []string `yaml:"imports,omitempty"`
}

// Manifest is the full declaration list of one generation run.
type Manifest struct {
	Package      string        `yaml:"package"`
	Declarations []Declaration `yaml:"declarations"`
}

// Find returns the declaration with the given name.
func (m *Manifest) Find(name string) (*Declaration, bool) {
	for i := range m.Declarations {
		if m.Declarations[i].Name == name {
			return &m.Declarations[i], true
		}
	}

	return nil, false
}

// LoadFile loads and parses a manifest from the given path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest

	err := yaml.Unmarshal(data, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	return &m, nil
}

// Marshal serializes a Manifest to YAML.
func Marshal(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}
