package markit

// StringRenderer renders string values through the shared escaping policy.
type StringRenderer struct{}

// Supports accepts string values.
func (StringRenderer) Supports(value any) bool {
	_, ok := value.(string)
	return ok
}

// Render returns the escaped text.
func (StringRenderer) Render(value any, ctx *Context) string {
	s, ok := value.(string)
	if !ok {
		s = stringify(value)
	}
	return ctx.Config().Escape(s)
}

// Priority implements [Renderer].
func (StringRenderer) Priority() int { return 50 }

// Name implements [Renderer].
func (StringRenderer) Name() string { return "string" }
