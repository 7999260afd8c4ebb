package markit

// BoolRenderer renders booleans as bracketed tokens, or as emoji-decorated
// text when the [OptionUseEmoji] custom option is set.
type BoolRenderer struct{}

// Supports accepts bool values.
func (BoolRenderer) Supports(value any) bool {
	_, ok := value.(bool)
	return ok
}

// Render returns the textual form for the boolean.
func (BoolRenderer) Render(value any, ctx *Context) string {
	b, ok := value.(bool)
	if !ok {
		return ctx.Config().Escape(stringify(value))
	}
	if ctx.Config().customBool(OptionUseEmoji, false) {
		if b {
			return "✅ Yes"
		}
		return "❌ No"
	}
	if b {
		return "[YES]"
	}
	return "[NO]"
}

// Priority implements [Renderer].
func (BoolRenderer) Priority() int { return 70 }

// Name implements [Renderer].
func (BoolRenderer) Name() string { return "boolean" }
