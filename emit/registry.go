package emit

import "fmt"

// EmitFunc produces the source fragment reconstructing v, whose declared
// type is t. Implementations must be pure and deterministic: the same value
// always yields a byte-identical fragment.
type EmitFunc func(e *Emitter, v any, t *Type) (string, error)

// Registry is the emit-capability table: a strategy map keyed by declared
// type name. Scalars and structural shapes (options, tuples, sequences,
// collections) are built in; named custom types require explicit
// registration. Capability is resolved from the declared signature only,
// never inferred from the runtime value.
type Registry struct {
	custom map[string]EmitFunc
}

// NewRegistry returns a registry with only the built-in capabilities.
func NewRegistry() *Registry {
	return &Registry{custom: make(map[string]EmitFunc)}
}

// Register adds an emit capability for the named type. Registering a name
// twice, or shadowing a built-in, is an error.
func (r *Registry) Register(name string, fn EmitFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("registering %q: name and emit func are required", name)
	}

	if _, ok := scalars[name]; ok {
		return fmt.Errorf("registering %q: shadows a built-in scalar", name)
	}

	if _, ok := collectionKinds[name]; ok {
		return fmt.Errorf("registering %q: shadows a collection type", name)
	}

	if _, ok := r.custom[name]; ok {
		return fmt.Errorf("registering %q: already registered", name)
	}

	r.custom[name] = fn

	return nil
}

func (r *Registry) lookup(name string) (EmitFunc, bool) {
	fn, ok := r.custom[name]
	return fn, ok
}
