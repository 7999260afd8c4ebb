package markit

import "time"

// Layout probe instants. They differ in every date and time component, so
// any layout carrying real time verbs formats them differently.
var (
	layoutProbeA = time.Date(2001, time.February, 3, 4, 5, 6, 7, time.UTC)
	layoutProbeB = time.Date(2019, time.August, 21, 22, 23, 24, 25, time.UTC)
)

// DateRenderer formats time.Time values with the configured layout. A
// layout that carries no time information at all, such as a pattern pasted
// in from another formatting language, degrades to the value's default
// string form instead of emitting the layout verbatim for every date.
type DateRenderer struct{}

// Supports accepts time.Time values.
func (DateRenderer) Supports(value any) bool {
	return isDate(value)
}

// Render returns the formatted timestamp. Date output is never escaped;
// layouts are trusted and the common forms are dash- and dot-heavy.
func (DateRenderer) Render(value any, ctx *Context) string {
	t, ok := value.(time.Time)
	if !ok {
		return ctx.Config().Escape(stringify(value))
	}
	layout := ctx.Config().DateFormat()
	if !layoutValid(layout) {
		ctx.Logger().Warn("date layout carries no time information, using default form", "layout", layout)
		return t.String()
	}
	return t.Format(layout)
}

// Priority implements [Renderer].
func (DateRenderer) Priority() int { return 65 }

// Name implements [Renderer].
func (DateRenderer) Name() string { return "date" }

// layoutValid reports whether layout encodes at least one time component.
func layoutValid(layout string) bool {
	return layoutProbeA.Format(layout) != layoutProbeB.Format(layout)
}
