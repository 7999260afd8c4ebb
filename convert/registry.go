package convert

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds converters by name and resolves MIME types to the
// highest priority converter claiming them. It is safe for concurrent
// use. Resolution results are cached per MIME type; registering or
// removing a converter invalidates the cache.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]Converter
	ordered    []Converter
	cache      map[string]Converter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[string]Converter),
		cache:      make(map[string]Converter),
	}
}

// Register adds c under its name. Registering a name twice returns
// [ErrDuplicateConverter]; remove the old one first to replace it.
func (r *Registry) Register(c Converter) error {
	if c == nil {
		return ErrNilConverter
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	name := c.Name()
	if _, ok := r.converters[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateConverter, name)
	}
	r.converters[name] = c
	r.ordered = append(r.ordered, c)
	sort.SliceStable(r.ordered, func(i, j int) bool {
		return r.ordered[i].Priority() > r.ordered[j].Priority()
	})
	r.cache = make(map[string]Converter)
	return nil
}

// Unregister removes the named converter and reports whether it was
// present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.converters[name]; !ok {
		return false
	}
	delete(r.converters, name)
	for i, c := range r.ordered {
		if c.Name() == name {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}
	r.cache = make(map[string]Converter)
	return true
}

// Resolve returns the highest priority converter claiming mimeType. Ties
// keep registration order.
func (r *Registry) Resolve(mimeType string) (Converter, bool) {
	r.mu.RLock()
	if c, ok := r.cache[mimeType]; ok {
		r.mu.RUnlock()
		return c, c != nil
	}
	var found Converter
	for _, c := range r.ordered {
		if c.Supports(mimeType) {
			found = c
			break
		}
	}
	r.mu.RUnlock()

	// Misses are cached as nil so repeated lookups stay cheap.
	r.mu.Lock()
	r.cache[mimeType] = found
	r.mu.Unlock()
	return found, found != nil
}

// ByName returns the converter registered under name.
func (r *Registry) ByName(name string) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.converters[name]
	return c, ok
}

// Has reports whether a converter is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.ByName(name)
	return ok
}

// IsSupported reports whether some converter claims mimeType.
func (r *Registry) IsSupported(mimeType string) bool {
	_, ok := r.Resolve(mimeType)
	return ok
}

// SupportedTypes returns the known MIME types at least one registered
// converter claims, sorted.
func (r *Registry) SupportedTypes() []string {
	var types []string
	for _, mime := range KnownMIMETypes() {
		if r.IsSupported(mime) {
			types = append(types, mime)
		}
	}
	return types
}

// Len returns the number of registered converters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.converters)
}

// Names returns converter names in resolution order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.ordered))
	for i, c := range r.ordered {
		names[i] = c.Name()
	}
	return names
}

// Clear removes every converter.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters = make(map[string]Converter)
	r.ordered = nil
	r.cache = make(map[string]Converter)
}
