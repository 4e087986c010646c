// Package constgen turns values computed by a generator program into typed
// Go declarations compiled into the consuming package. A generation run
// writes named values through an Artifact; flushing materializes one source
// unit plus a manifest the symbol importer expands from. The consuming
// program pays no parsing or deserialization cost: its "decode" step is
// ordinary compilation.
package constgen

import (
	"fmt"
	"path/filepath"

	"constgen/emit"
	"constgen/internal/genfile"
	"constgen/internal/manifest"
)

// Artifact owns the declarations of one generation run. It is an explicit
// context object: create one per run, thread it through every Write call,
// flush once. Runs are single-threaded; Artifact does no locking.
type Artifact struct {
	pkg   string
	reg   *emit.Registry
	decls []manifest.Declaration
	names map[string]struct{}
}

// Option configures an Artifact.
type Option func(*Artifact)

// WithRegistry supplies a capability registry carrying custom type
// registrations. Without it only built-in shapes are emittable.
func WithRegistry(reg *emit.Registry) Option {
	return func(a *Artifact) {
		a.reg = reg
	}
}

// New creates the Artifact for one generation run. pkg names the package of
// the generated unit.
func New(pkg string, opts ...Option) *Artifact {
	a := &Artifact{
		pkg:   pkg,
		names: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.reg == nil {
		a.reg = emit.NewRegistry()
	}

	return a
}

// Len reports the number of declarations registered so far.
func (a *Artifact) Len() int {
	return len(a.decls)
}

// UnitFile returns the filename of the generated source unit.
func (a *Artifact) UnitFile() string {
	return a.pkg + ".gen.go"
}

// ManifestFile returns the filename of the generated manifest.
func (a *Artifact) ManifestFile() string {
	return a.pkg + ".manifest.yaml"
}

// register appends one declaration, enforcing name uniqueness.
func (a *Artifact) register(d manifest.Declaration) error {
	if !isIdentifier(d.Name) {
		return fmt.Errorf("declaration name %q is not a valid identifier", d.Name)
	}

	if _, dup := a.names[d.Name]; dup {
		return fmt.Errorf("%w: %s", ErrNameCollision, d.Name)
	}

	a.names[d.Name] = struct{}{}
	a.decls = append(a.decls, d)

	return nil
}

// Flush materializes the run: one formatted source unit and one manifest,
// both staged to temp files and committed by atomic rename. A failure at any
// point leaves previously materialized output untouched and removes the
// temp files.
func (a *Artifact) Flush(dir string) error {
	content, err := genfile.Render(a.pkg, a.decls)
	if err != nil {
		if content != nil {
			_ = genfile.WriteDebugUnformatted(dir, a.UnitFile(), content)
		}

		return fmt.Errorf("rendering unit: %w", err)
	}

	mdata, err := manifest.Marshal(&manifest.Manifest{
		Package:      a.pkg,
		Declarations: a.decls,
	})
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	unit, err := genfile.Stage(filepath.Join(dir, a.UnitFile()), content)
	if err != nil {
		return err
	}
	defer unit.Discard()

	man, err := genfile.Stage(filepath.Join(dir, a.ManifestFile()), mdata)
	if err != nil {
		return err
	}
	defer man.Discard()

	if err := unit.Commit(); err != nil {
		return err
	}

	return man.Commit()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}
