package generator

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownGenerator   = errors.New("generator: unknown generator")
	ErrDuplicateGenerator = errors.New("generator: already registered")
)

// Registry looks generators up by Name.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// NewBuiltinRegistry registers the markup and template generators, both
// built from options.
func NewBuiltinRegistry(options ...Option) (*Registry, error) {
	r := NewRegistry()
	tmpl, err := NewTemplate(options...)
	if err != nil {
		return nil, err
	}
	for _, gen := range []Generator{NewMarkup(options...), tmpl} {
		if err := r.Register(gen); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds gen under gen.Name().
func (r *Registry) Register(gen Generator) error {
	if gen == nil {
		return fmt.Errorf("generator: register nil generator")
	}
	name := gen.Name()
	if name == "" {
		return fmt.Errorf("generator: register generator without a name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.generators[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateGenerator, name)
	}
	r.generators[name] = gen
	return nil
}

// MustRegister panics when Register fails.
func (r *Registry) MustRegister(gen Generator) {
	if err := r.Register(gen); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownGenerator, name, r.namesLocked())
	}
	return gen, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.generators[name]
	return ok
}
