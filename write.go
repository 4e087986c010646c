package constgen

import (
	"fmt"
	"strconv"
	"strings"

	"constgen/emit"
	"constgen/internal/manifest"
)

// WriteConst exports value as a constant. Composite types, which Go cannot
// carry in a const declaration, materialize as var while keeping the const
// kind on record.
func (a *Artifact) WriteConst(name, typ string, value any) error {
	return a.writeValue(manifest.KindConst, name, typ, value)
}

// WriteStatic exports value as a package-level var.
func (a *Artifact) WriteStatic(name, typ string, value any) error {
	return a.writeValue(manifest.KindStatic, name, typ, value)
}

// WriteFunc exports value behind a zero-argument accessor function.
func (a *Artifact) WriteFunc(name, typ string, value any) error {
	return a.writeValue(manifest.KindFunc, name, typ, value)
}

// WriteConstArray exports an array-shaped value as a constant-kind binding.
// elem declares the element type, optionally suffixed with a dimension
// ("int:2"); the dimension counts the outer nesting levels emitted as
// fixed-size arrays and defaults to 1.
func (a *Artifact) WriteConstArray(name, elem string, value any) error {
	return a.writeArray(manifest.KindConst, name, elem, value)
}

// WriteStaticArray exports an array-shaped value as a package-level var.
// See WriteConstArray for the elem syntax.
func (a *Artifact) WriteStaticArray(name, elem string, value any) error {
	return a.writeArray(manifest.KindStatic, name, elem, value)
}

// WriteArrayFunc exports an array-shaped value behind a zero-argument
// accessor function. See WriteConstArray for the elem syntax.
func (a *Artifact) WriteArrayFunc(name, elem string, value any) error {
	return a.writeArray(manifest.KindFunc, name, elem, value)
}

// WriteSliceFunc exports a sequence behind an accessor returning a freshly
// built slice. This is the export to use when elements are heap-backed.
func (a *Artifact) WriteSliceFunc(name, elem string, value any) error {
	t, err := emit.ParseType(elem)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	e := emit.NewEmitter(a.reg)

	frag, typ, err := e.EmitSlice(value, t)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return a.register(manifest.Declaration{
		Name:     name,
		Kind:     manifest.KindFunc,
		Type:     typ,
		Fragment: frag,
		Imports:  e.Imports(),
	})
}

func (a *Artifact) writeValue(kind, name, typ string, value any) error {
	t, err := emit.ParseType(typ)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	e := emit.NewEmitter(a.reg)

	frag, err := e.Emit(value, t)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	// The binding type itself may reference support packages.
	e.NoteType(t)

	return a.register(manifest.Declaration{
		Name:     name,
		Kind:     kind,
		Type:     t.String(),
		Fragment: frag,
		Imports:  e.Imports(),
	})
}

func (a *Artifact) writeArray(kind, name, elem string, value any) error {
	sig, dim, err := splitDim(elem)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	t, err := emit.ParseType(sig)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	e := emit.NewEmitter(a.reg)

	frag, typ, err := e.EmitArray(value, t, dim)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return a.register(manifest.Declaration{
		Name:     name,
		Kind:     kind,
		Type:     typ,
		Dim:      dim,
		Fragment: frag,
		Imports:  e.Imports(),
	})
}

// splitDim splits an element signature from its optional ":dim" suffix.
// The dimension defaults to 1.
func splitDim(sig string) (string, int, error) {
	i := strings.LastIndexByte(sig, ':')
	if i < 0 {
		return sig, 1, nil
	}

	dim, err := strconv.Atoi(strings.TrimSpace(sig[i+1:]))
	if err != nil {
		return "", 0, fmt.Errorf("invalid dimension suffix in %q: %w", sig, err)
	}

	return strings.TrimSpace(sig[:i]), dim, nil
}
