package markit

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Version reported by [Engine.Info].
const Version = "1.0.0"

// Engine converts values to Markdown: it resolves a renderer for the
// value's shape, emits the metadata preamble when one is configured, and
// falls back to shape-based rendering when no registered renderer accepts
// the value. The conversion surface is total; every input yields text.
//
// An Engine is safe for concurrent Convert calls. Each conversion owns a
// private [Context] and the registry guards its own state.
type Engine struct {
	cfg Config
	reg *Registry
}

// NewEngine creates an Engine with the built-in renderers registered.
func NewEngine(cfg Config) *Engine {
	e := &Engine{cfg: cfg, reg: NewRegistry()}
	// Exact bindings for the common shapes. The priority scan covers the
	// rest of each renderer's family (int32 vs int, concrete slice types,
	// typed maps) through the Supports predicates.
	_ = RegisterFor[string](e.reg, StringRenderer{})
	_ = RegisterFor[bool](e.reg, BoolRenderer{})
	_ = RegisterFor[int](e.reg, NumberRenderer{})
	_ = RegisterFor[float64](e.reg, NumberRenderer{})
	_ = RegisterFor[time.Time](e.reg, DateRenderer{})
	_ = RegisterFor[[]any](e.reg, SequenceRenderer{})
	_ = RegisterFor[*Map](e.reg, MapRenderer{})
	_ = RegisterFor[map[string]any](e.reg, MapRenderer{})
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Registry returns the renderer registry backing the engine.
func (e *Engine) Registry() *Registry { return e.reg }

// RegisterRenderer binds shape to r for dispatch.
func (e *Engine) RegisterRenderer(shape reflect.Type, r Renderer) error {
	return e.reg.Register(shape, r)
}

// UnregisterRenderer removes the binding for shape.
func (e *Engine) UnregisterRenderer(shape reflect.Type) bool {
	return e.reg.Unregister(shape)
}

// HasRenderer reports whether shape has a binding.
func (e *Engine) HasRenderer(shape reflect.Type) bool {
	return e.reg.Has(shape)
}

// Convert renders value to Markdown. A nil value yields an empty document.
func (e *Engine) Convert(value any) string {
	return e.ConvertWithMetadata(value, nil)
}

// ConvertWithMetadata renders value preceded by a document-information
// preamble when metadata is non-empty and the configuration includes
// metadata. A nil value yields an empty document even when metadata is
// present.
func (e *Engine) ConvertWithMetadata(value any, metadata *Map) string {
	if value == nil {
		return ""
	}
	ctx := NewContextWithMetadata(e.cfg, metadata)
	if e.cfg.IncludeMetadata() && ctx.Metadata().Len() > 0 {
		e.writeMetadataBlock(ctx)
	}
	if r, ok := e.reg.Resolve(value); ok {
		e.cfg.Logger().Debug("resolved renderer", "renderer", r.Name())
		ctx.Append(r.Render(value, ctx))
	} else {
		e.cfg.Logger().Debug("no renderer matched, using fallback", "shape", fmt.Sprintf("%T", value))
		ctx.Append(e.renderFallback(value, ctx))
	}
	return ctx.Content()
}

// writeMetadataBlock emits the preamble in metadata insertion order,
// skipping nil values.
func (e *Engine) writeMetadataBlock(ctx *Context) {
	ctx.Append("## Document Information").Newlines(2)
	for _, p := range ctx.Metadata().Pairs() {
		if p.Value == nil {
			continue
		}
		ctx.Append("- **").Append(humanizeKey(p.Key)).Append(":** ")
		ctx.Append(e.formatMetadataValue(p.Value, ctx)).Newline()
	}
	ctx.Newline()
	ctx.Append("## Content").Newlines(2)
}

// formatMetadataValue renders one preamble value on a single line: dates in
// the configured layout, sequences inline, maps as an item count, scalars
// escaped.
func (e *Engine) formatMetadataValue(value any, ctx *Context) string {
	switch {
	case isDate(value):
		return DateRenderer{}.Render(value, ctx)
	case isSequence(value):
		return inlineSequence(sequenceItems(value))
	case isMapping(value):
		return fmt.Sprintf("%d items", mappingLen(value))
	}
	return e.cfg.Escape(stringify(value))
}

// renderFallback handles values no registered renderer accepts, dispatching
// on runtime shape so conversion stays total even with a cleared registry.
func (e *Engine) renderFallback(value any, ctx *Context) string {
	switch v := value.(type) {
	case string:
		return e.cfg.Escape(v)
	case time.Time:
		return DateRenderer{}.Render(v, ctx)
	case *Map:
		return MapRenderer{}.Render(v, ctx)
	}
	switch {
	case isSequence(value):
		return SequenceRenderer{}.Render(value, ctx)
	case isMapping(value):
		return MapRenderer{}.Render(value, ctx)
	}
	return e.cfg.Escape(stringify(value))
}

// mappingLen returns the entry count of an associative value.
func mappingLen(value any) int {
	if m, ok := value.(*Map); ok {
		return m.Len()
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Map {
		return rv.Len()
	}
	return 0
}

// humanizeKey turns a camelCase metadata key into a sentence-style label:
// "documentTitle" becomes "Document title". Runs of capitals split per
// letter; keys are expected to be lowerCamel.
func humanizeKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	out := b.String()
	if out == "" {
		return out
	}
	first, size := utf8.DecodeRuneInString(out)
	return string(unicode.ToUpper(first)) + out[size:]
}

// Info describes an engine build.
type Info struct {
	Name      string
	Version   string
	Features  []string
	Renderers []string
}

// Info returns the engine self-description, with renderer names in
// dispatch-scan order.
func (e *Engine) Info() Info {
	return Info{
		Name:    "markit",
		Version: Version,
		Features: []string{
			"renderer dispatch",
			"metadata preamble",
			"map tables",
			"nested lists",
			"fluent builder",
			"markdown validation",
		},
		Renderers: e.reg.Names(),
	}
}
