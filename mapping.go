package markit

import (
	"reflect"
	"strings"
)

// MapRenderer renders associative values as two-column tables when every
// entry is tabulatable, falling back to a definition list otherwise.
//
// Ordered [Map] values render in insertion order unless key sorting is
// configured. Native Go maps always render key-sorted; their iteration
// order is randomized and documents must be reproducible.
type MapRenderer struct{}

// Supports accepts *Map and native map values.
func (MapRenderer) Supports(value any) bool {
	return isMapping(value)
}

// Render returns the table or definition-list block.
func (MapRenderer) Render(value any, ctx *Context) string {
	pairs, keysString := mapPairs(value, ctx.Config().SortMapKeys())
	if len(pairs) == 0 {
		return ""
	}
	if tabular(pairs, keysString, ctx.Config()) {
		return renderMapTable(pairs, ctx.Config())
	}
	return renderDefinitionList(pairs, ctx.Config())
}

// Priority implements [Renderer].
func (MapRenderer) Priority() int { return 70 }

// Name implements [Renderer].
func (MapRenderer) Name() string { return "map" }

// mapPairs extracts entries in rendering order. The second result reports
// whether every original key was a string, a table precondition.
func mapPairs(value any, sortKeys bool) ([]Pair, bool) {
	if m, ok := value.(*Map); ok {
		pairs := m.Pairs()
		if sortKeys {
			sortPairs(pairs)
		}
		return pairs, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	keysString := true
	pairs := make([]Pair, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		k := it.Key().Interface()
		if _, ok := k.(string); !ok {
			keysString = false
		}
		pairs = append(pairs, Pair{Key: stringify(k), Value: it.Value().Interface()})
	}
	sortPairs(pairs)
	return pairs, keysString
}

// tabular reports whether every entry fits a two-column table: string keys
// without newlines, non-nil scalar values only.
func tabular(pairs []Pair, keysString bool, cfg Config) bool {
	if !cfg.IncludeTables() || !keysString {
		return false
	}
	for _, p := range pairs {
		if p.Value == nil || isStructural(p.Value) {
			return false
		}
		if strings.Contains(p.Key, "\n") {
			return false
		}
	}
	return true
}

func renderMapTable(pairs []Pair, cfg Config) string {
	var b strings.Builder
	b.WriteString("| Key | Value |\n")
	if cfg.TableFormat() == TablePipe {
		b.WriteString("|:---|:----|\n")
	} else {
		b.WriteString("|---|------|\n")
	}
	for _, p := range pairs {
		b.WriteString("| ")
		b.WriteString(cfg.Escape(p.Key))
		b.WriteString(" | ")
		b.WriteString(cfg.Escape(stringify(p.Value)))
		b.WriteString(" |\n")
	}
	b.WriteByte('\n')
	return b.String()
}

func renderDefinitionList(pairs []Pair, cfg Config) string {
	var b strings.Builder
	for _, p := range pairs {
		if p.Value == nil {
			continue
		}
		b.WriteString(cfg.Escape(p.Key))
		b.WriteString(": ")
		switch {
		case isSequence(p.Value):
			b.WriteString(inlineSubList(p.Value, cfg))
		case isMapping(p.Value):
			b.WriteByte('\n')
			b.WriteString(renderNestedMap(p.Value, cfg))
		default:
			b.WriteString(cfg.Escape(stringify(p.Value)))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// inlineSubList joins sequence items on one line as marker-prefixed tokens.
func inlineSubList(value any, cfg Config) string {
	marker := cfg.ListStyle().Marker()
	var parts []string
	for _, item := range sequenceItems(value) {
		if item == nil {
			continue
		}
		parts = append(parts, marker+" "+cfg.Escape(stringify(item)))
	}
	return strings.Join(parts, " ")
}

// renderNestedMap emits one indented "key: value" line per entry. Nesting
// stops here; deeper values flatten to their string form.
func renderNestedMap(value any, cfg Config) string {
	pairs, _ := mapPairs(value, cfg.SortMapKeys())
	var b strings.Builder
	for _, p := range pairs {
		if p.Value == nil {
			continue
		}
		b.WriteString("  ")
		b.WriteString(cfg.Escape(p.Key))
		b.WriteString(": ")
		b.WriteString(cfg.Escape(stringify(p.Value)))
		b.WriteByte('\n')
	}
	return b.String()
}
