// Package symbols is the consuming-side importer: it expands a list of
// declaration names from a previously flushed manifest into a source file of
// equivalent bindings. Fragments are reproduced exactly as the generation
// phase wrote them; nothing is re-serialized or re-validated here.
package symbols

import (
	"errors"
	"fmt"
	"path/filepath"

	"constgen/internal/genfile"
	"constgen/internal/manifest"
)

// ErrMissingSymbol is returned when a requested name was never registered
// during generation. A missing name is always an error, never a silently
// synthesized default.
var ErrMissingSymbol = errors.New("missing symbol")

// Expand renders the requested declarations into a source file for package
// pkg, in the requested order. Requesting a name twice is an error: the
// expansion would redeclare the binding.
func Expand(m *manifest.Manifest, pkg string, names ...string) ([]byte, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no symbols requested")
	}

	seen := make(map[string]struct{}, len(names))
	decls := make([]manifest.Declaration, 0, len(names))

	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("symbol %s requested twice", name)
		}

		seen[name] = struct{}{}

		d, ok := m.Find(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSymbol, name)
		}

		decls = append(decls, *d)
	}

	content, err := genfile.Render(pkg, decls)
	if err != nil {
		return content, fmt.Errorf("expanding symbols: %w", err)
	}

	return content, nil
}

// Use loads the manifest at manifestPath, expands the requested names for
// package pkg, and writes the result to outPath with the same atomic
// discipline as artifact flushing.
func Use(manifestPath, outPath, pkg string, names ...string) error {
	m, err := manifest.LoadFile(manifestPath)
	if err != nil {
		return err
	}

	content, err := Expand(m, pkg, names...)
	if err != nil {
		if content != nil {
			_ = genfile.WriteDebugUnformatted(filepath.Dir(outPath), filepath.Base(outPath), content)
		}

		return err
	}

	staged, err := genfile.Stage(outPath, content)
	if err != nil {
		return err
	}
	defer staged.Discard()

	return staged.Commit()
}
