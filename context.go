package markit

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// stateListDepth is the state-bag key holding the list nesting counter.
// Bag keys are a convention shared between renderers, not an enforced
// schema.
const stateListDepth = "listDepth"

// Context carries the mutable state of a single conversion: the output
// buffer, an order-preserving copy of the document metadata, and a free-form
// state bag for renderer coordination. Configuration is embedded read-only.
//
// A Context is not safe for concurrent use; concurrent conversions must
// each own a private Context.
type Context struct {
	cfg   Config
	meta  *Map
	out   strings.Builder
	state map[string]any
}

// NewContext creates a Context for one conversion.
func NewContext(cfg Config) *Context {
	return NewContextWithMetadata(cfg, nil)
}

// NewContextWithMetadata creates a Context carrying an order-preserving
// copy of metadata. Later mutation of the caller's map is not observed.
func NewContextWithMetadata(cfg Config, metadata *Map) *Context {
	return &Context{
		cfg:   cfg,
		meta:  metadata.Clone(),
		state: make(map[string]any),
	}
}

// Config returns the shared read-only configuration.
func (c *Context) Config() Config { return c.cfg }

// Metadata returns the conversion metadata in insertion order.
func (c *Context) Metadata() *Map { return c.meta }

// Logger returns the configured logger.
func (c *Context) Logger() *log.Logger { return c.cfg.Logger() }

// Append adds text to the output buffer.
func (c *Context) Append(s string) *Context {
	c.out.WriteString(s)
	return c
}

// Appendf adds a formatted string to the output buffer.
func (c *Context) Appendf(format string, args ...any) *Context {
	fmt.Fprintf(&c.out, format, args...)
	return c
}

// Newline appends a single newline.
func (c *Context) Newline() *Context {
	c.out.WriteByte('\n')
	return c
}

// Newlines appends n newlines.
func (c *Context) Newlines(n int) *Context {
	for range n {
		c.out.WriteByte('\n')
	}
	return c
}

// SetState stores a value in the state bag.
func (c *Context) SetState(key string, value any) {
	c.state[key] = value
}

// State returns the raw state bag entry under key.
func (c *Context) State(key string) (any, bool) {
	v, ok := c.state[key]
	return v, ok
}

// StateAs returns a typed state bag entry; ok is false when the key is
// missing or holds a different type.
func StateAs[T any](ctx *Context, key string) (T, bool) {
	v, ok := ctx.state[key]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// ListDepth returns the current list nesting depth.
func (c *Context) ListDepth() int {
	d, _ := StateAs[int](c, stateListDepth)
	return d
}

// IncrementListDepth increases the nesting depth and returns the new value.
func (c *Context) IncrementListDepth() int {
	d := c.ListDepth() + 1
	c.SetState(stateListDepth, d)
	return d
}

// DecrementListDepth decreases the nesting depth, flooring at zero, and
// returns the new value. Unbalanced decrements therefore cannot push later
// renders into negative indentation.
func (c *Context) DecrementListDepth() int {
	d := c.ListDepth() - 1
	if d < 0 {
		d = 0
	}
	c.SetState(stateListDepth, d)
	return d
}

// Reset clears the output buffer and state bag. Configuration and metadata
// survive, so a Context can be reused across conversions.
func (c *Context) Reset() {
	c.out.Reset()
	clear(c.state)
}

// Content returns the accumulated output.
func (c *Context) Content() string { return c.out.String() }

// Len returns the accumulated output length in bytes.
func (c *Context) Len() int { return c.out.Len() }
