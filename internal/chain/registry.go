package chain

import (
	"fmt"
	"sort"
)

// Registry maps technique ids to implementations. It is populated once at
// process start from the fixed set of built-in techniques and is read-only
// afterwards, so unsynchronized concurrent lookups from many invocations are
// safe. Unknown ids are an expected condition, not a programming error.
type Registry struct {
	techniques map[string]Technique
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		techniques: make(map[string]Technique),
	}
}

// Register adds a technique under its own name. Registration happens during
// startup only; duplicate names indicate a wiring bug and are rejected.
func (r *Registry) Register(t Technique) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("technique has empty name")
	}
	if _, exists := r.techniques[name]; exists {
		return fmt.Errorf("technique %q already registered", name)
	}
	r.techniques[name] = t
	return nil
}

// Lookup resolves a technique id. The boolean is false for unknown ids.
func (r *Registry) Lookup(id string) (Technique, bool) {
	t, ok := r.techniques[id]
	return t, ok
}

// Names returns the registered technique ids in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.techniques))
	for name := range r.techniques {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
