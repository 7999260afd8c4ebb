package markit

import (
	"reflect"
	"strings"
)

// SequenceRenderer renders slices and arrays as unordered lists indented to
// the current nesting depth. Once the configured depth limit is reached the
// sequence collapses to a single inline token instead of indenting further.
//
// The renderer reads the depth but never changes it; composers that nest
// lists bracket their recursion with [Context.IncrementListDepth] and
// [Context.DecrementListDepth].
type SequenceRenderer struct{}

// Supports accepts slice and array values.
func (SequenceRenderer) Supports(value any) bool {
	return isSequence(value)
}

// Render returns the list block, or the inline form at the depth limit.
func (SequenceRenderer) Render(value any, ctx *Context) string {
	items := sequenceItems(value)
	if len(items) == 0 {
		return ""
	}
	depth := ctx.ListDepth()
	if depth >= ctx.Config().MaxListDepth() {
		return inlineSequence(items)
	}
	marker := ctx.Config().ListStyle().Marker()
	indent := strings.Repeat("  ", depth)
	var b strings.Builder
	for _, item := range items {
		if item == nil {
			continue
		}
		text := stringify(item)
		if strings.TrimSpace(text) == "" {
			continue
		}
		b.WriteString(indent)
		b.WriteString(marker)
		b.WriteByte(' ')
		b.WriteString(ctx.Config().Escape(text))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// Priority implements [Renderer].
func (SequenceRenderer) Priority() int { return 60 }

// Name implements [Renderer].
func (SequenceRenderer) Name() string { return "sequence" }

// sequenceItems flattens a slice or array value into []any.
func sequenceItems(value any) []any {
	if items, ok := value.([]any); ok {
		return items
	}
	rv := reflect.ValueOf(value)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// inlineSequence renders items as one bracketed, comma-joined token. The
// inline form is plain text, not Markdown structure, and is not escaped.
func inlineSequence(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		parts = append(parts, stringify(item))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
