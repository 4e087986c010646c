package emit

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is a parsed declared-type signature. Signatures use a Go-flavored
// grammar:
//
//	int8 ... int64, uint ... uint64, float32, float64, bool, string, rune, byte
//	*T                   option-like (nullable) value
//	(T1, T2, ...)        tuple, arity 2-4, emitted as an rt tuple carrier
//	[]T                  growable sequence
//	[N]T                 fixed-size array
//	phf.Map[K, V]        perfect-hash map  (also Set, OrderedMap, OrderedSet)
//	pkg.Name or Name     a registered custom type
//
// The "phf." qualifier on collection heads is optional in signatures and
// always present in rendered output.
type Type struct {
	Kind Kind
	// Name is the scalar or registered type name. Empty for structural kinds.
	Name string
	// Elem is the element type for option, slice and array kinds.
	Elem *Type
	// Len is the declared length for array kinds.
	Len int
	// Args holds tuple element types, or key (and value) types for
	// collection kinds.
	Args []*Type
}

// scalars maps each scalar signature name to its literal class.
var scalars = map[string]scalarClass{
	"int":     classInt,
	"int8":    classInt,
	"int16":   classInt,
	"int32":   classInt,
	"int64":   classInt,
	"uint":    classUint,
	"uint8":   classUint,
	"uint16":  classUint,
	"uint32":  classUint,
	"uint64":  classUint,
	"byte":    classUint,
	"float32": classFloat,
	"float64": classFloat,
	"bool":    classBool,
	"string":  classString,
	"rune":    classRune,
}

type scalarClass int

const (
	classInt scalarClass = iota
	classUint
	classFloat
	classBool
	classString
	classRune
)

// collectionKinds maps collection head names (with and without the phf
// qualifier) to their kind and expected argument count.
var collectionKinds = map[string]struct {
	kind Kind
	args int
}{
	"Map":            {KindMap, 2},
	"Set":            {KindSet, 1},
	"OrderedMap":     {KindOrderedMap, 2},
	"OrderedSet":     {KindOrderedSet, 1},
	"phf.Map":        {KindMap, 2},
	"phf.Set":        {KindSet, 1},
	"phf.OrderedMap": {KindOrderedMap, 2},
	"phf.OrderedSet": {KindOrderedSet, 1},
}

// ParseType parses a full type signature.
func ParseType(sig string) (*Type, error) {
	p := &typeParser{src: sig}

	t, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("parsing type %q: %w", sig, err)
	}

	p.skipSpaces()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("parsing type %q: trailing input at offset %d", sig, p.pos)
	}

	return t, nil
}

// String renders the type in the spelling used by generated code.
func (t *Type) String() string {
	switch t.Kind {
	case KindScalar, KindNamed:
		return t.Name
	case KindOption:
		return "*" + t.Elem.String()
	case KindSlice:
		return "[]" + t.Elem.String()
	case KindArray:
		return "[" + strconv.Itoa(t.Len) + "]" + t.Elem.String()
	case KindTuple:
		heads := [...]string{2: "rt.Pair", 3: "rt.Tuple3", 4: "rt.Tuple4"}
		return heads[len(t.Args)] + "[" + joinTypes(t.Args) + "]"
	case KindMap:
		return "phf.Map[" + joinTypes(t.Args) + "]"
	case KindSet:
		return "phf.Set[" + joinTypes(t.Args) + "]"
	case KindOrderedMap:
		return "phf.OrderedMap[" + joinTypes(t.Args) + "]"
	case KindOrderedSet:
		return "phf.OrderedSet[" + joinTypes(t.Args) + "]"
	default:
		return "<invalid>"
	}
}

func joinTypes(ts []*Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}

	return strings.Join(parts, ", ")
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

func (p *typeParser) expect(c byte) error {
	p.skipSpaces()
	if p.peek() != c {
		return fmt.Errorf("expected %q at offset %d", string(c), p.pos)
	}

	p.pos++

	return nil
}

func (p *typeParser) parse() (*Type, error) {
	p.skipSpaces()

	switch p.peek() {
	case 0:
		return nil, fmt.Errorf("unexpected end of signature")
	case '*':
		p.pos++

		elem, err := p.parse()
		if err != nil {
			return nil, err
		}

		return &Type{Kind: KindOption, Elem: elem}, nil
	case '[':
		return p.parseBracketed()
	case '(':
		return p.parseTuple()
	default:
		return p.parseIdent()
	}
}

func (p *typeParser) parseBracketed() (*Type, error) {
	p.pos++ // '['
	p.skipSpaces()

	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}

	digits := p.src[start:p.pos]

	if err := p.expect(']'); err != nil {
		return nil, err
	}

	elem, err := p.parse()
	if err != nil {
		return nil, err
	}

	if digits == "" {
		return &Type{Kind: KindSlice, Elem: elem}, nil
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil, fmt.Errorf("array length %q: %w", digits, err)
	}

	return &Type{Kind: KindArray, Len: n, Elem: elem}, nil
}

func (p *typeParser) parseTuple() (*Type, error) {
	p.pos++ // '('

	var args []*Type
	for {
		arg, err := p.parse()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		p.skipSpaces()
		if p.peek() == ',' {
			p.pos++
			continue
		}

		break
	}

	if err := p.expect(')'); err != nil {
		return nil, err
	}

	if len(args) < 2 || len(args) > 4 {
		return nil, fmt.Errorf("tuple arity %d not supported (2-4)", len(args))
	}

	return &Type{Kind: KindTuple, Args: args}, nil
}

func (p *typeParser) parseIdent() (*Type, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentChar(p.src[p.pos]) {
		p.pos++
	}

	name := p.src[start:p.pos]
	if name == "" {
		return nil, fmt.Errorf("unexpected character %q at offset %d", string(p.peek()), p.pos)
	}

	if coll, ok := collectionKinds[name]; ok {
		args, err := p.parseTypeArgs()
		if err != nil {
			return nil, err
		}

		if len(args) != coll.args {
			return nil, fmt.Errorf("%s expects %d type arguments, got %d", name, coll.args, len(args))
		}

		return &Type{Kind: coll.kind, Args: args}, nil
	}

	if _, ok := scalars[name]; ok {
		return &Type{Kind: KindScalar, Name: name}, nil
	}

	return &Type{Kind: KindNamed, Name: name}, nil
}

func (p *typeParser) parseTypeArgs() ([]*Type, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}

	var args []*Type
	for {
		arg, err := p.parse()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		p.skipSpaces()
		if p.peek() == ',' {
			p.pos++
			continue
		}

		break
	}

	if err := p.expect(']'); err != nil {
		return nil, err
	}

	return args, nil
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
