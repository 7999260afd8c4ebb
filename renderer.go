package markit

import (
	"reflect"
	"sort"
	"sync"
)

// Renderer converts values of one shape to Markdown text. Implementations
// must be stateless; per-conversion state belongs in the [Context].
type Renderer interface {
	// Supports reports whether the renderer can handle value.
	Supports(value any) bool
	// Render produces Markdown for value. Render must return some defined
	// text for every value Supports accepts; failures degrade to a plain
	// form rather than error out.
	Render(value any, ctx *Context) string
	// Priority orders renderers during dispatch; higher wins.
	Priority() int
	// Name identifies the renderer in logs and engine info.
	Name() string
}

type registration struct {
	shape reflect.Type
	r     Renderer
	seq   int
}

// Registry maps declared value shapes to renderers and resolves runtime
// values to one of them. It is safe for concurrent registration and lookup.
// Lookups are read-through: a mutation made mid-conversion is observed by
// later resolutions of that same conversion.
type Registry struct {
	mu      sync.RWMutex
	byShape map[reflect.Type]Renderer
	ordered []registration
	seq     int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byShape: make(map[reflect.Type]Renderer)}
}

// Register binds shape to r, replacing any previous binding for the same
// shape.
func (reg *Registry) Register(shape reflect.Type, r Renderer) error {
	if shape == nil {
		return ErrNilShape
	}
	if r == nil {
		return ErrNilRenderer
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.byShape[shape]; ok {
		reg.removeLocked(shape)
	}
	reg.byShape[shape] = r
	reg.seq++
	reg.ordered = append(reg.ordered, registration{shape: shape, r: r, seq: reg.seq})
	sort.SliceStable(reg.ordered, func(i, j int) bool {
		a, b := reg.ordered[i], reg.ordered[j]
		if a.r.Priority() != b.r.Priority() {
			return a.r.Priority() > b.r.Priority()
		}
		return a.seq < b.seq
	})
	return nil
}

// RegisterFor binds the shape of T to r.
func RegisterFor[T any](reg *Registry, r Renderer) error {
	return reg.Register(reflect.TypeFor[T](), r)
}

// Unregister removes the binding for shape and reports whether one existed.
func (reg *Registry) Unregister(shape reflect.Type) bool {
	if shape == nil {
		return false
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.byShape[shape]; !ok {
		return false
	}
	reg.removeLocked(shape)
	return true
}

func (reg *Registry) removeLocked(shape reflect.Type) {
	delete(reg.byShape, shape)
	for i, e := range reg.ordered {
		if e.shape == shape {
			reg.ordered = append(reg.ordered[:i], reg.ordered[i+1:]...)
			return
		}
	}
}

// Has reports whether shape has a binding.
func (reg *Registry) Has(shape reflect.Type) bool {
	if shape == nil {
		return false
	}
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	_, ok := reg.byShape[shape]
	return ok
}

// Len returns the number of registered bindings.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.ordered)
}

// Names returns the renderer names in dispatch-scan order.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	names := make([]string, len(reg.ordered))
	for i, e := range reg.ordered {
		names[i] = e.r.Name()
	}
	return names
}

// Clear removes all bindings.
func (reg *Registry) Clear() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.byShape = make(map[reflect.Type]Renderer)
	reg.ordered = nil
}

// Resolve finds a renderer for value. A binding for the value's exact
// dynamic type wins when its predicate accepts the value; otherwise every
// binding is scanned in priority order (ties broken by registration order)
// and the first accepting predicate wins.
//
// Predicates run outside the registry lock, so a Supports implementation
// may itself consult the registry.
func (reg *Registry) Resolve(value any) (Renderer, bool) {
	if value == nil {
		return nil, false
	}
	reg.mu.RLock()
	exact, hasExact := reg.byShape[reflect.TypeOf(value)]
	scan := make([]Renderer, len(reg.ordered))
	for i, e := range reg.ordered {
		scan[i] = e.r
	}
	reg.mu.RUnlock()

	if hasExact && exact.Supports(value) {
		return exact, true
	}
	for _, r := range scan {
		if r.Supports(value) {
			return r, true
		}
	}
	return nil, false
}
