package markit

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Builder composes Markdown documents step by step. Operations that accept
// prose escape it through the configured policy exactly once; [Builder.Raw],
// [Builder.CodeBlock] contents, [Builder.Blockquote] lines, table cells,
// and URLs pass through untouched.
//
// A Builder owns a private buffer. [Builder.Flush] moves that buffer into
// the owning [Context], so independent fragments can be staged and then
// composed into one output stream. Builders are not safe for concurrent
// use.
type Builder struct {
	ctx *Context
	buf strings.Builder
}

// NewBuilder creates a Builder with a fresh Context for cfg.
func NewBuilder(cfg Config) *Builder {
	return NewBuilderContext(NewContext(cfg))
}

// NewBuilderContext creates a Builder that flushes into ctx.
func NewBuilderContext(ctx *Context) *Builder {
	return &Builder{ctx: ctx}
}

func (b *Builder) escape(s string) string {
	return b.ctx.Config().Escape(s)
}

// Heading appends a heading at level, clamped to 1 through 6. Blank text
// is a no-op. Levels 1 and 2 render as underlined headings when the setext
// style is configured; the underline width follows the display width of
// the escaped text.
func (b *Builder) Heading(text string, level int) *Builder {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return b
	}
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	escaped := b.escape(trimmed)
	if b.ctx.Config().HeadingStyle() == HeadingSetext && level <= 2 {
		glyph := "="
		if level == 2 {
			glyph = "-"
		}
		b.buf.WriteString(escaped)
		b.buf.WriteByte('\n')
		b.buf.WriteString(strings.Repeat(glyph, runewidth.StringWidth(escaped)))
	} else {
		b.buf.WriteString(strings.Repeat("#", level))
		b.buf.WriteByte(' ')
		b.buf.WriteString(escaped)
	}
	b.buf.WriteString("\n\n")
	return b
}

// Paragraph appends escaped text followed by a blank line. Blank text is a
// no-op.
func (b *Builder) Paragraph(text string) *Builder {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return b
	}
	b.buf.WriteString(b.escape(trimmed))
	b.buf.WriteString("\n\n")
	return b
}

// Text appends escaped text with no surrounding structure.
func (b *Builder) Text(text string) *Builder {
	b.buf.WriteString(b.escape(text))
	return b
}

// Raw appends text without escaping.
func (b *Builder) Raw(text string) *Builder {
	b.buf.WriteString(text)
	return b
}

// Bold appends an escaped bold span.
func (b *Builder) Bold(text string) *Builder {
	b.buf.WriteString("**")
	b.buf.WriteString(b.escape(text))
	b.buf.WriteString("**")
	return b
}

// Italic appends an escaped italic span.
func (b *Builder) Italic(text string) *Builder {
	b.buf.WriteString("*")
	b.buf.WriteString(b.escape(text))
	b.buf.WriteString("*")
	return b
}

// Strikethrough appends an escaped struck-through span.
func (b *Builder) Strikethrough(text string) *Builder {
	b.buf.WriteString("~~")
	b.buf.WriteString(b.escape(text))
	b.buf.WriteString("~~")
	return b
}

// Code appends an escaped inline code span.
func (b *Builder) Code(text string) *Builder {
	b.buf.WriteByte('`')
	b.buf.WriteString(b.escape(text))
	b.buf.WriteByte('`')
	return b
}

// CodeBlock appends code verbatim, fenced with the language tag when code
// wrapping is enabled, as bare text otherwise.
func (b *Builder) CodeBlock(code, language string) *Builder {
	if b.ctx.Config().WrapCodeBlocks() {
		b.buf.WriteString("```")
		if lang := strings.TrimSpace(language); lang != "" {
			b.buf.WriteString(lang)
		}
		b.buf.WriteByte('\n')
		b.buf.WriteString(code)
		b.buf.WriteString("\n```\n\n")
	} else {
		b.buf.WriteString(code)
		b.buf.WriteString("\n\n")
	}
	return b
}

// Blockquote appends each line of text prefixed with "> ". The content is
// treated as already formatted and is not escaped.
func (b *Builder) Blockquote(text string) *Builder {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(normalized, "\n") {
		b.buf.WriteString("> ")
		b.buf.WriteString(line)
		b.buf.WriteByte('\n')
	}
	b.buf.WriteByte('\n')
	return b
}

// UnorderedList appends items as marker lines indented to level. Blank
// items are skipped; a blank line closes the list.
func (b *Builder) UnorderedList(level int, items ...string) *Builder {
	if level < 0 {
		level = 0
	}
	marker := b.ctx.Config().ListStyle().Marker()
	indent := strings.Repeat("  ", level)
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		b.buf.WriteString(indent)
		b.buf.WriteString(marker)
		b.buf.WriteByte(' ')
		b.buf.WriteString(b.escape(trimmed))
		b.buf.WriteByte('\n')
	}
	b.buf.WriteByte('\n')
	return b
}

// OrderedList appends numbered items starting at start, indented to level.
// Blank items are skipped and do not consume a number.
func (b *Builder) OrderedList(level, start int, items ...string) *Builder {
	if level < 0 {
		level = 0
	}
	indent := strings.Repeat("  ", level)
	n := start
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		fmt.Fprintf(&b.buf, "%s%d. %s\n", indent, n, b.escape(trimmed))
		n++
	}
	b.buf.WriteByte('\n')
	return b
}

// HorizontalRule appends a thematic break.
func (b *Builder) HorizontalRule() *Builder {
	b.buf.WriteString("---\n\n")
	return b
}

// Link appends a link with escaped text and a verbatim URL. An empty URL
// is a no-op.
func (b *Builder) Link(text, url string) *Builder {
	if url == "" {
		return b
	}
	b.buf.WriteByte('[')
	b.buf.WriteString(b.escape(text))
	b.buf.WriteString("](")
	b.buf.WriteString(url)
	b.buf.WriteByte(')')
	return b
}

// Image appends an image reference with escaped alt text and an optional
// escaped title. An empty URL is a no-op.
func (b *Builder) Image(alt, url, title string) *Builder {
	if url == "" {
		return b
	}
	b.buf.WriteString("![")
	b.buf.WriteString(b.escape(alt))
	b.buf.WriteString("](")
	b.buf.WriteString(url)
	if t := strings.TrimSpace(title); t != "" {
		b.buf.WriteString(` "`)
		b.buf.WriteString(b.escape(t))
		b.buf.WriteByte('"')
	}
	b.buf.WriteByte(')')
	return b
}

// LineBreak appends a hard line break.
func (b *Builder) LineBreak() *Builder {
	b.buf.WriteString("  \n")
	return b
}

// Table appends a pipe table: a header row, an all-dash separator, then
// rows padded or truncated to the header width. Cells are trimmed and
// emitted verbatim; columns pad to the widest cell's display width, three
// at minimum. No-op when tables are disabled or headers are empty.
func (b *Builder) Table(headers []string, rows [][]string) *Builder {
	if !b.ctx.Config().IncludeTables() || len(headers) == 0 {
		return b
	}
	numCols := len(headers)
	header := make([]string, numCols)
	for i, h := range headers {
		header[i] = strings.TrimSpace(h)
	}
	body := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, numCols)
		for j := range numCols {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		body[i] = cells
	}

	widths := make([]int, numCols)
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range body {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	b.writeTableRow(header, widths)
	sep := make([]string, numCols)
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	b.buf.WriteString("| ")
	b.buf.WriteString(strings.Join(sep, " | "))
	b.buf.WriteString(" |\n")
	for _, row := range body {
		b.writeTableRow(row, widths)
	}
	b.buf.WriteByte('\n')
	return b
}

func (b *Builder) writeTableRow(cells []string, widths []int) {
	padded := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = cell + strings.Repeat(" ", w-runewidth.StringWidth(cell))
	}
	b.buf.WriteString("| ")
	b.buf.WriteString(strings.Join(padded, " | "))
	b.buf.WriteString(" |\n")
}

// Document assembles a titled document: an H1, an optional information
// section from metadata, and the raw content body under an H2.
func (b *Builder) Document(title string, metadata *Map, content string) *Builder {
	b.Heading(title, 1)
	if metadata.Len() > 0 {
		b.Heading("Document Information", 2)
		for _, p := range metadata.Pairs() {
			if p.Value == nil {
				continue
			}
			b.Raw("- **").Text(humanizeKey(p.Key)).Raw(":** ").Text(stringify(p.Value)).Raw("\n")
		}
		b.Raw("\n")
	}
	if strings.TrimSpace(content) != "" {
		b.Heading("Content", 2)
		b.Raw(content).Raw("\n")
	}
	return b
}

// Build returns the current buffer contents without consuming them.
func (b *Builder) Build() string { return b.buf.String() }

// Len returns the buffered length in bytes.
func (b *Builder) Len() int { return b.buf.Len() }

// Reset clears the Builder buffer. The owning Context keeps whatever was
// already flushed.
func (b *Builder) Reset() *Builder {
	b.buf.Reset()
	return b
}

// Flush appends the buffer to the owning Context's output, clears the
// buffer, and returns the flushed text.
func (b *Builder) Flush() string {
	out := b.buf.String()
	b.ctx.Append(out)
	b.buf.Reset()
	return out
}

// Context returns the owning Context.
func (b *Builder) Context() *Context { return b.ctx }

// Valid reports whether the buffered content passes the structural
// heuristic of [IsValidMarkdown].
func (b *Builder) Valid() bool { return IsValidMarkdown(b.Build()) }
