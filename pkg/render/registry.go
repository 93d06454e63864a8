package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-contentkit/pkg/assets"
)

// ErrMissingRenderFunc is returned by Require for every absent render type.
var ErrMissingRenderFunc = errors.New("render: missing render function")

// Descriptor couples a render function with the assets any page using it
// must load.
type Descriptor struct {
	Name        string
	Render      RenderFunc
	Stylesheets []string
	Scripts     []assets.Script
}

// Registry stores render functions by render type, providing discovery and
// duplication safeguards.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]Descriptor),
	}
}

// Register adds a descriptor by its Name. Duplicate names return an error.
func (r *Registry) Register(desc Descriptor) error {
	if err := validate(desc); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[desc.Name]; exists {
		return fmt.Errorf("render: render function %q already registered", desc.Name)
	}
	r.descriptors[desc.Name] = desc
	return nil
}

// RegisterFunc registers a render function without assets.
func (r *Registry) RegisterFunc(name string, fn RenderFunc) error {
	return r.Register(Descriptor{Name: name, Render: fn})
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(desc Descriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Set registers desc, replacing any descriptor with the same name.
func (r *Registry) Set(desc Descriptor) error {
	if err := validate(desc); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors[desc.Name] = desc
	return nil
}

// Get retrieves a descriptor by render type.
func (r *Registry) Get(name string) (Descriptor, bool) {
	if r == nil || name == "" {
		return Descriptor{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.descriptors[name]
	return desc, ok
}

// List returns a sorted list of registered render types.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a render type is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Merge returns a copy of r where every entry of overrides replaces the
// descriptor of the same name. Overridden entries lose the assets of the
// descriptor they replace. Nil functions are ignored.
func (r *Registry) Merge(overrides map[string]RenderFunc) *Registry {
	out := NewRegistry()
	if r != nil {
		r.mu.RLock()
		for name, desc := range r.descriptors {
			out.descriptors[name] = desc
		}
		r.mu.RUnlock()
	}
	for name, fn := range overrides {
		if name == "" || fn == nil {
			continue
		}
		out.descriptors[name] = Descriptor{Name: name, Render: fn}
	}
	return out
}

// Require reports every listed render type that has no render function.
func (r *Registry) Require(names ...string) error {
	var errs []error
	for _, name := range names {
		if !r.Has(name) {
			errs = append(errs, fmt.Errorf("%w %q", ErrMissingRenderFunc, name))
		}
	}
	return errors.Join(errs...)
}

func validate(desc Descriptor) error {
	if desc.Name == "" {
		return fmt.Errorf("render: render function name is required")
	}
	if desc.Render == nil {
		return fmt.Errorf("render: render function %q is nil", desc.Name)
	}
	return nil
}
