package emit

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"constgen/phf"
)

// Support package import paths referenced by emitted fragments.
const (
	pkgRT  = "constgen/rt"
	pkgPHF = "constgen/phf"
)

// Emitter converts values into source fragments under their declared types.
// It accumulates the support-package imports the fragments reference, so the
// unit renderer can emit a matching import block.
//
// Emission is pure apart from that bookkeeping: identical values yield
// byte-identical fragments.
type Emitter struct {
	reg     *Registry
	imports map[string]struct{}
}

// NewEmitter returns an emitter dispatching through reg. A nil reg means
// built-ins only.
func NewEmitter(reg *Registry) *Emitter {
	if reg == nil {
		reg = NewRegistry()
	}

	return &Emitter{reg: reg, imports: make(map[string]struct{})}
}

// Imports returns the support-package import paths recorded so far, sorted.
func (e *Emitter) Imports() []string {
	paths := make([]string, 0, len(e.imports))
	for p := range e.imports {
		paths = append(paths, p)
	}

	// Two entries at most; a simple swap keeps it sorted.
	if len(paths) == 2 && paths[0] > paths[1] {
		paths[0], paths[1] = paths[1], paths[0]
	}

	return paths
}

// NoteType records the imports needed to render t itself (tuple and
// collection spellings name their support packages).
func (e *Emitter) NoteType(t *Type) {
	switch t.Kind {
	case KindTuple:
		e.imports[pkgRT] = struct{}{}
	case KindMap, KindSet, KindOrderedMap, KindOrderedSet:
		e.imports[pkgPHF] = struct{}{}
	}

	if t.Elem != nil {
		e.NoteType(t.Elem)
	}

	for _, a := range t.Args {
		e.NoteType(a)
	}
}

// Emit produces the source fragment reconstructing v under declared type t.
func (e *Emitter) Emit(v any, t *Type) (string, error) {
	return e.emit(v, t, false)
}

// EmitArray produces a fixed-size-array fragment and its full type. The
// outer dim nesting levels of v become fixed arrays sized from the value;
// levels beyond dim keep whatever shape elem declares. A value shallower
// than dim, or ragged data, fails with ErrDimensionMismatch.
func (e *Emitter) EmitArray(v any, elem *Type, dim int) (frag, typ string, err error) {
	if dim < 1 {
		return "", "", fmt.Errorf("%w: dimension %d must be at least 1", ErrDimensionMismatch, dim)
	}

	rv := reflect.ValueOf(v)
	lens := make([]int, dim)

	cur := rv
	for d := range dim {
		if !cur.IsValid() || (cur.Kind() != reflect.Slice && cur.Kind() != reflect.Array) {
			return "", "", fmt.Errorf("%w: value nesting depth %d is shallower than dimension %d",
				ErrDimensionMismatch, d, dim)
		}

		lens[d] = cur.Len()

		if d < dim-1 {
			if cur.Len() == 0 {
				return "", "", fmt.Errorf("%w: empty level %d leaves inner array sizes undetermined",
					ErrDimensionMismatch, d)
			}

			cur = cur.Index(0)
		}
	}

	e.NoteType(elem)

	var sb strings.Builder
	for _, n := range lens {
		sb.WriteString("[")
		sb.WriteString(strconv.Itoa(n))
		sb.WriteString("]")
	}

	sb.WriteString(elem.String())
	typ = sb.String()

	body, err := e.renderFixed(rv, lens, elem)
	if err != nil {
		return "", "", err
	}

	return typ + body, typ, nil
}

// EmitSlice produces a growable-sequence fragment and its type ([]elem).
// This is the heap-backed form used by slice-returning accessor exports.
func (e *Emitter) EmitSlice(v any, elem *Type) (frag, typ string, err error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return "", "", fmt.Errorf("emit []%s: value of type %T is not a sequence", elem, v)
	}

	e.NoteType(elem)
	typ = "[]" + elem.String()

	parts := make([]string, 0, rv.Len())
	for i := range rv.Len() {
		f, err := e.emit(rv.Index(i).Interface(), elem, elidable(elem))
		if err != nil {
			return "", "", err
		}

		parts = append(parts, f)
	}

	return typ + "{" + strings.Join(parts, ", ") + "}", typ, nil
}

// renderFixed renders the braces-only body of a fixed array, recursing
// through the remaining dimension levels and verifying uniform lengths.
func (e *Emitter) renderFixed(rv reflect.Value, lens []int, elem *Type) (string, error) {
	if len(lens) == 0 {
		return e.emit(rv.Interface(), elem, elidable(elem))
	}

	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "", fmt.Errorf("%w: value nesting is shallower than the declared dimension", ErrDimensionMismatch)
	}

	if rv.Len() != lens[0] {
		return "", fmt.Errorf("%w: ragged data (level expects %d elements, found %d)",
			ErrDimensionMismatch, lens[0], rv.Len())
	}

	parts := make([]string, 0, rv.Len())
	for i := range rv.Len() {
		f, err := e.renderFixed(rv.Index(i), lens[1:], elem)
		if err != nil {
			return "", err
		}

		parts = append(parts, f)
	}

	return "{" + strings.Join(parts, ", ") + "}", nil
}

// elidable reports whether a fragment of kind t may drop its type prefix
// when nested directly inside a composite literal.
func elidable(t *Type) bool {
	switch t.Kind {
	case KindSlice, KindArray, KindTuple:
		return true
	default:
		return false
	}
}

func (e *Emitter) emit(v any, t *Type, elide bool) (string, error) {
	switch t.Kind {
	case KindScalar:
		return e.emitScalar(v, t)
	case KindNamed:
		fn, ok := e.reg.lookup(t.Name)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedType, t.Name)
		}

		return fn(e, v, t)
	case KindOption:
		return e.emitOption(v, t)
	case KindTuple:
		return e.emitTuple(v, t, elide)
	case KindSlice, KindArray:
		return e.emitSequence(v, t, elide)
	case KindMap, KindSet, KindOrderedMap, KindOrderedSet:
		return e.emitCollection(v, t)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
}

func (e *Emitter) emitScalar(v any, t *Type) (string, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return "", fmt.Errorf("emit %s: nil value", t.Name)
	}

	mismatch := func() error {
		return fmt.Errorf("emit %s: cannot represent value of type %T", t.Name, v)
	}

	switch scalars[t.Name] {
	case classInt:
		if !isSignedKind(rv.Kind()) {
			return "", mismatch()
		}

		return strconv.FormatInt(rv.Int(), 10), nil
	case classUint:
		if !isUnsignedKind(rv.Kind()) {
			return "", mismatch()
		}

		return strconv.FormatUint(rv.Uint(), 10), nil
	case classRune:
		if !isSignedKind(rv.Kind()) {
			return "", mismatch()
		}

		return strconv.QuoteRune(rune(rv.Int())), nil
	case classFloat:
		if rv.Kind() != reflect.Float32 && rv.Kind() != reflect.Float64 {
			return "", mismatch()
		}

		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("emit %s: %v has no literal form", t.Name, f)
		}

		bits := 64
		if t.Name == "float32" {
			bits = 32
		}

		return strconv.FormatFloat(f, 'g', -1, bits), nil
	case classBool:
		if rv.Kind() != reflect.Bool {
			return "", mismatch()
		}

		return strconv.FormatBool(rv.Bool()), nil
	case classString:
		if rv.Kind() != reflect.String {
			return "", mismatch()
		}

		return strconv.Quote(rv.String()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, t.Name)
	}
}

func (e *Emitter) emitOption(v any, t *Type) (string, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer {
		return "", fmt.Errorf("emit %s: value of type %T is not a pointer", t, v)
	}

	if rv.IsNil() {
		return "nil", nil
	}

	inner, err := e.emit(rv.Elem().Interface(), t.Elem, false)
	if err != nil {
		return "", err
	}

	e.imports[pkgRT] = struct{}{}

	return "rt.Ptr(" + inner + ")", nil
}

func (e *Emitter) emitTuple(v any, t *Type, elide bool) (string, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Struct || rv.NumField() != len(t.Args) {
		return "", fmt.Errorf("emit %s: value of type %T is not a %d-tuple carrier", t, v, len(t.Args))
	}

	e.imports[pkgRT] = struct{}{}

	parts := make([]string, 0, len(t.Args))
	for i, at := range t.Args {
		f, err := e.emit(rv.Field(i).Interface(), at, false)
		if err != nil {
			return "", err
		}

		parts = append(parts, f)
	}

	body := "{" + strings.Join(parts, ", ") + "}"
	if elide {
		return body, nil
	}

	e.NoteType(t)

	return t.String() + body, nil
}

func (e *Emitter) emitSequence(v any, t *Type, elide bool) (string, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return "", fmt.Errorf("emit %s: value of type %T is not a sequence", t, v)
	}

	if t.Kind == KindArray && rv.Len() != t.Len {
		return "", fmt.Errorf("%w: declared %s, value has %d elements", ErrDimensionMismatch, t, rv.Len())
	}

	parts := make([]string, 0, rv.Len())
	for i := range rv.Len() {
		f, err := e.emit(rv.Index(i).Interface(), t.Elem, elidable(t.Elem))
		if err != nil {
			return "", err
		}

		parts = append(parts, f)
	}

	body := "{" + strings.Join(parts, ", ") + "}"
	if elide {
		return body, nil
	}

	e.NoteType(t)

	return t.String() + body, nil
}

// emitCollection finalizes a phf builder and renders the Raw* constructor
// call carrying its tables.
func (e *Emitter) emitCollection(v any, t *Type) (string, error) {
	b, ok := v.(phf.Builder)
	if !ok {
		return "", fmt.Errorf("emit %s: value of type %T is not a collection builder", t, v)
	}

	table, err := b.BuildTable()
	if err != nil {
		return "", fmt.Errorf("emit %s: %w", t, err)
	}

	wantSet := t.Kind == KindSet || t.Kind == KindOrderedSet
	wantOrdered := t.Kind == KindOrderedMap || t.Kind == KindOrderedSet

	if table.Set != wantSet || table.Ordered != wantOrdered {
		return "", fmt.Errorf("emit %s: builder of type %T does not match the declared collection", t, v)
	}

	e.imports[pkgPHF] = struct{}{}
	e.NoteType(t)

	keys, err := e.emitEntryList(table.Keys, t.Args[0])
	if err != nil {
		return "", fmt.Errorf("emit %s keys: %w", t, err)
	}

	seed := "0x" + strconv.FormatUint(table.Seed, 16)
	disps := renderDisps(table.Disps)

	var vals string
	if !wantSet {
		vals, err = e.emitEntryList(table.Vals, t.Args[1])
		if err != nil {
			return "", fmt.Errorf("emit %s values: %w", t, err)
		}
	}

	switch t.Kind {
	case KindMap:
		return fmt.Sprintf("phf.RawMap(%s, %s, %s, %s)", seed, disps, keys, vals), nil
	case KindSet:
		return fmt.Sprintf("phf.RawSet(%s, %s, %s)", seed, disps, keys), nil
	case KindOrderedMap:
		return fmt.Sprintf("phf.RawOrderedMap(%s, %s, %s, %s, %s)",
			seed, disps, renderIdxs(table.Idxs), keys, vals), nil
	default:
		return fmt.Sprintf("phf.RawOrderedSet(%s, %s, %s, %s)",
			seed, disps, renderIdxs(table.Idxs), keys), nil
	}
}

func (e *Emitter) emitEntryList(items []any, t *Type) (string, error) {
	parts := make([]string, 0, len(items))

	for _, it := range items {
		f, err := e.emit(it, t, elidable(t))
		if err != nil {
			return "", err
		}

		parts = append(parts, f)
	}

	return "[]" + t.String() + "{" + strings.Join(parts, ", ") + "}", nil
}

func renderDisps(disps [][2]uint32) string {
	parts := make([]string, 0, len(disps))
	for _, d := range disps {
		parts = append(parts, fmt.Sprintf("{%d, %d}", d[0], d[1]))
	}

	return "[][2]uint32{" + strings.Join(parts, ", ") + "}"
}

func renderIdxs(idxs []int) string {
	parts := make([]string, 0, len(idxs))
	for _, i := range idxs {
		parts = append(parts, strconv.Itoa(i))
	}

	return "[]uint32{" + strings.Join(parts, ", ") + "}"
}

func isSignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}
