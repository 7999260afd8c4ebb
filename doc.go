// Package markit converts structured in-memory values to Markdown.
//
// The central entry point is [Engine], which dispatches a value to a
// [Renderer] for its shape and assembles the result with an optional
// metadata preamble:
//
//	engine := markit.NewEngine(markit.NewConfig())
//	doc := engine.Convert(map[string]any{"name": "markit", "stars": 1234})
//
// Scalars, dates, sequences, and maps are handled out of the box. Nil input
// yields an empty document; unknown shapes fall back to an escaped plain
// form, so conversion never fails.
//
// # Configuration
//
// [Config] carries the style rules for a conversion: table and list
// formats, heading style, escaping behavior, list depth limits, and date
// layouts. Build one with [NewConfig] and functional options, or start
// from a preset:
//
//   - [TableOptimizedConfig] — tabular output, sorted keys
//   - [SimpleTextConfig] — minimal text, HTML escaping, no tables
//   - [RichFormattingConfig] — every decorative feature, emoji booleans
//   - [APIDocConfig] — sorted keys, date-only timestamps
//
// A Config is immutable; derive variants with [Config.With].
//
// # Renderers
//
// A [Renderer] pairs a Supports predicate with a Render function. The
// [Registry] binds renderers to declared shapes: an exact match on the
// value's dynamic type wins, otherwise renderers are scanned by descending
// [Renderer.Priority] and the first accepting predicate is used. Register
// custom renderers with [RegisterFor]:
//
//	markit.RegisterFor[MyType](engine.Registry(), myRenderer)
//
// # Ordered Maps
//
// [Map] is an insertion-ordered string-keyed map. Use it wherever entry
// order must survive into the document; native Go maps render key-sorted
// because their iteration order is randomized.
//
// # Builder
//
// [Builder] composes documents step by step: headings, lists, tables,
// links, and code blocks share the engine's escaping rules, so hand-built
// and converted fragments mix safely.
//
//	b := markit.NewBuilder(cfg)
//	b.Heading("Report", 1).Paragraph("All systems nominal.")
//	doc := b.Build()
//
// # Validation
//
// [IsValidMarkdown] runs a cheap structural check (balanced brackets and
// parentheses, no empty link labels) for catching mangled output.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrNilRenderer] — a nil renderer was passed to a registry
//   - [ErrNilShape] — a nil shape type was passed to a registry
package markit
