package registry

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/scribe/pkg/errors"
)

type entry[T any] struct {
	item   T
	silent bool
}

// Registry is an immutable table of named items
type Registry[T any] struct {
	items map[string]entry[T]
}

// Lookup returns the item registered under name. A silent entry is found
// and yields the zero item.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	e, ok := r.items[name]
	return e.item, ok
}

// Get retrieves an item, failing with ErrNotFound for unknown names
func (r *Registry[T]) Get(name string) (T, error) {
	e, ok := r.items[name]
	if !ok {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name).
			WithDetail("name", name)
	}
	return e.item, nil
}

// Has checks if a name is registered, silent or not
func (r *Registry[T]) Has(name string) bool {
	_, ok := r.items[name]
	return ok
}

// Silent reports whether name is registered as silent
func (r *Registry[T]) Silent(name string) bool {
	return r.items[name].silent
}

// List returns all registered names in sorted order
func (r *Registry[T]) List() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered names
func (r *Registry[T]) Count() int {
	return len(r.items)
}

// Builder accumulates entries for a new Registry
type Builder[T any] struct {
	items map[string]entry[T]
	own   map[string]bool
}

// NewBuilder starts an empty registry
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{
		items: make(map[string]entry[T]),
		own:   make(map[string]bool),
	}
}

// Extend starts a registry holding every entry of parent. Inherited
// entries may be overridden once by Register or Silence.
func Extend[T any](parent *Registry[T]) *Builder[T] {
	b := NewBuilder[T]()
	if parent != nil {
		for name, e := range parent.items {
			b.items[name] = e
		}
	}
	return b
}

// Register adds an item under name
func (b *Builder[T]) Register(name string, item T) error {
	return b.put(name, entry[T]{item: item})
}

// Silence registers name as known but rendering nothing
func (b *Builder[T]) Silence(name string) error {
	return b.put(name, entry[T]{silent: true})
}

func (b *Builder[T]) put(name string, e entry[T]) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}
	if b.own[name] {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", name).
			WithDetail("name", name)
	}
	b.items[name] = e
	b.own[name] = true
	return nil
}

// Remove drops a name, inherited or not
func (b *Builder[T]) Remove(name string) error {
	if _, ok := b.items[name]; !ok {
		return errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name).
			WithDetail("name", name)
	}
	delete(b.items, name)
	delete(b.own, name)
	return nil
}

// Build freezes the accumulated entries. The builder can keep being used;
// later changes do not affect registries already built.
func (b *Builder[T]) Build() *Registry[T] {
	items := make(map[string]entry[T], len(b.items))
	for name, e := range b.items {
		items[name] = e
	}
	return &Registry[T]{items: items}
}

// MustRegister registers an item and panics if registration fails.
// Registration errors in format tables are programming errors.
func MustRegister[T any](b *Builder[T], name string, item T) {
	if err := b.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}

// MustSilence silences a name and panics if that fails
func MustSilence[T any](b *Builder[T], names ...string) {
	for _, name := range names {
		if err := b.Silence(name); err != nil {
			panic(fmt.Sprintf("failed to silence %s: %v", name, err))
		}
	}
}

// MustGet retrieves an item and panics if not found
func MustGet[T any](reg *Registry[T], name string) T {
	item, err := reg.Get(name)
	if err != nil {
		panic(fmt.Sprintf("failed to get %s: %v", name, err))
	}
	return item
}
