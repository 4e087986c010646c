package emit

import (
	"fmt"
	"strings"
)

// FieldSpec declares one field of an emitted struct: the field name in the
// output type, its declared emit type, and an accessor extracting it from
// the source value. Accessors are supplied explicitly so that emission stays
// declaration-driven.
type FieldSpec struct {
	Name string
	Type string
	Get  func(v any) any
}

// StructSpec declares how a struct type is emitted. When OutType is set the
// constructor fragment builds that type instead of the registered one: the
// output-type substitution. Every field of the source type that should
// survive must have a declared counterpart here; nothing is inferred.
type StructSpec struct {
	OutType string
	Fields  []FieldSpec
}

// RegisterStruct registers a constructor-style emit capability for the named
// struct type. Field types are parsed eagerly so a bad spec fails at
// registration, not mid-emission.
func (r *Registry) RegisterStruct(name string, spec StructSpec) error {
	fields, err := compileFields(name, spec.Fields)
	if err != nil {
		return err
	}

	out := spec.OutType
	if out == "" {
		out = name
	}

	return r.Register(name, func(e *Emitter, v any, _ *Type) (string, error) {
		return emitFields(e, out, v, fields)
	})
}

// VariantSpec declares one variant of an emitted enum-like type. Type names
// the variant's constructor type; it defaults to the variant name.
type VariantSpec struct {
	Name   string
	Type   string
	Fields []FieldSpec
}

// EnumSpec declares how a tagged-variant type is emitted. Select names the
// triggered variant for a value and returns the payload the variant's field
// accessors operate on; only that variant is emitted.
type EnumSpec struct {
	Variants []VariantSpec
	Select   func(v any) (variant string, payload any)
}

// RegisterEnum registers an emit capability for the named variant type.
func (r *Registry) RegisterEnum(name string, spec EnumSpec) error {
	if spec.Select == nil {
		return fmt.Errorf("registering %q: enum spec requires a Select func", name)
	}

	type variant struct {
		out    string
		fields []compiledField
	}

	variants := make(map[string]variant, len(spec.Variants))
	for _, v := range spec.Variants {
		fields, err := compileFields(name+"."+v.Name, v.Fields)
		if err != nil {
			return err
		}

		out := v.Type
		if out == "" {
			out = v.Name
		}

		variants[v.Name] = variant{out: out, fields: fields}
	}

	return r.Register(name, func(e *Emitter, v any, _ *Type) (string, error) {
		tag, payload := spec.Select(v)

		va, ok := variants[tag]
		if !ok {
			return "", fmt.Errorf("emit %s: unknown variant %q", name, tag)
		}

		return emitFields(e, va.out, payload, va.fields)
	})
}

type compiledField struct {
	name string
	typ  *Type
	get  func(v any) any
}

func compileFields(owner string, specs []FieldSpec) ([]compiledField, error) {
	fields := make([]compiledField, 0, len(specs))

	for _, f := range specs {
		if f.Get == nil {
			return nil, fmt.Errorf("registering %q: field %s has no accessor", owner, f.Name)
		}

		t, err := ParseType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("registering %q: field %s: %w", owner, f.Name, err)
		}

		fields = append(fields, compiledField{name: f.Name, typ: t, get: f.Get})
	}

	return fields, nil
}

// emitFields renders a keyed constructor fragment, delegating each field to
// its declared capability in declaration order.
func emitFields(e *Emitter, out string, v any, fields []compiledField) (string, error) {
	parts := make([]string, 0, len(fields))

	for _, f := range fields {
		frag, err := e.emit(f.get(v), f.typ, false)
		if err != nil {
			return "", fmt.Errorf("field %s: %w", f.name, err)
		}

		parts = append(parts, f.name+": "+frag)
	}

	return out + "{" + strings.Join(parts, ", ") + "}", nil
}
