package convert

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/markit"
)

// TextConverter handles plain text and text-adjacent formats: Markdown
// passthrough with YAML front matter extraction, CSV tables, JSON and XML
// code blocks, log-level highlighting, and structure-preserving plain
// text.
type TextConverter struct{}

// NewTextConverter creates a TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Supports accepts text MIME types except HTML, which routes to
// [HTMLConverter].
func (c *TextConverter) Supports(mimeType string) bool {
	if mimeType == "text/html" || mimeType == "application/xhtml+xml" {
		return false
	}
	return IsText(mimeType)
}

// Priority implements [Converter].
func (c *TextConverter) Priority() int { return 50 }

// Name implements [Converter].
func (c *TextConverter) Name() string { return "text" }

// Convert reads the file and renders it according to its extension.
func (c *TextConverter) Convert(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: not valid UTF-8 text", path)
	}
	content := string(data)

	res := &Result{Metadata: markit.NewMap()}
	cfg := opts.markdownConfig()

	var body string
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".md", ".markdown":
		body = c.markdownBody(content, res)
	case ".csv":
		body = c.csvBody(content, cfg, res)
	case ".json":
		body = c.jsonBody(content, cfg, res)
	case ".xml":
		body = c.xmlBody(content, cfg)
	case ".log":
		body = c.logBody(content)
	default:
		body = c.plainBody(content)
	}

	lines := lineCount(content)
	words := len(strings.Fields(content))
	chars := utf8.RuneCountInString(content)
	res.Metadata.Set("format", formatLabel(ext))
	res.Metadata.Set("sizeBytes", len(data))
	res.Metadata.Set("lineCount", lines)
	res.Metadata.Set("wordCount", words)
	res.Metadata.Set("characterCount", chars)

	base := filepath.Base(path)
	b := markit.NewBuilder(cfg)
	b.Heading(strings.TrimSuffix(base, filepath.Ext(base)), 1)
	if opts.IncludeMetadata {
		b.Heading("File Information", 2)
		b.Raw(fmt.Sprintf("- **Format:** %s\n", formatLabel(ext)))
		b.Raw(fmt.Sprintf("- **Size:** %s\n", sizeLabel(int64(len(data)))))
		b.Raw(fmt.Sprintf("- **Lines:** %d\n", lines))
		b.Raw(fmt.Sprintf("- **Words:** %d\n", words))
		b.Raw(fmt.Sprintf("- **Characters:** %d\n", chars))
		b.Raw("\n")
	}
	b.Heading("Content", 2)
	b.Raw(body)
	res.Markdown = b.Flush()
	return res, nil
}

// markdownBody strips YAML front matter into the result metadata and
// passes the document through untouched.
func (c *TextConverter) markdownBody(content string, res *Result) string {
	rest, fm, ok := splitFrontMatter(content)
	if !ok {
		if strings.HasPrefix(content, "---\n") || strings.HasPrefix(content, "---\r\n") {
			res.Warn("front matter not closed")
		}
		return content
	}
	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(fm), &parsed); err != nil {
		res.Warn(fmt.Sprintf("front matter ignored: %v", err))
		return content
	}
	keys := make([]string, 0, len(parsed))
	for k := range parsed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		res.Metadata.Set(k, parsed[k])
	}
	return rest
}

// csvBody parses CSV into a document table, or a bullet list when tables
// are disabled. Parse failures degrade to a code block with a warning.
func (c *TextConverter) csvBody(content string, cfg markit.Config, res *Result) string {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		res.Warn(fmt.Sprintf("csv parse failed: %v", err))
		b := markit.NewBuilder(cfg)
		b.CodeBlock(strings.TrimRight(content, "\n"), "csv")
		return b.Build()
	}
	if len(records) == 0 {
		return ""
	}
	res.Metadata.Set("columnCount", len(records[0]))
	res.Metadata.Set("rowCount", len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(records[0]) {
			res.Warn("csv rows normalized to header width")
			break
		}
	}

	b := markit.NewBuilder(cfg)
	if cfg.IncludeTables() {
		b.Table(records[0], records[1:])
	} else {
		items := make([]string, len(records))
		for i, rec := range records {
			items[i] = strings.Join(rec, ", ")
		}
		b.UnorderedList(0, items...)
	}
	return b.Build()
}

// jsonBody pretty-prints JSON into a fenced block. Invalid JSON degrades
// to an unlabeled code block with a warning.
func (c *TextConverter) jsonBody(content string, cfg markit.Config, res *Result) string {
	b := markit.NewBuilder(cfg)
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(content), "", "  "); err != nil {
		res.Warn(fmt.Sprintf("invalid json: %v", err))
		b.CodeBlock(strings.TrimRight(content, "\n"), "")
		return b.Build()
	}
	b.CodeBlock(buf.String(), "json")
	return b.Build()
}

// xmlBody wraps the document in a fenced block.
func (c *TextConverter) xmlBody(content string, cfg markit.Config) string {
	b := markit.NewBuilder(cfg)
	b.CodeBlock(strings.TrimRight(content, "\n"), "xml")
	return b.Build()
}

// logBody highlights log lines by severity. Line content passes through
// unescaped so timestamps and bracketed fields stay readable.
func (c *TextConverter) logBody(content string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		switch {
		case line == "":
		case containsAny(line, "ERROR", "FATAL", "SEVERE"):
			b.WriteString("**Error:** ")
		case containsAny(line, "WARN"):
			b.WriteString("**Warning:** ")
		case containsAny(line, "INFO"):
			b.WriteString("*Info:* ")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// plainBody keeps paragraph structure: blank-line separated blocks become
// paragraphs with surrounding whitespace trimmed.
func (c *TextConverter) plainBody(content string) string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	var b strings.Builder
	for _, para := range strings.Split(normalized, "\n\n") {
		trimmed := strings.TrimSpace(para)
		if trimmed == "" {
			continue
		}
		b.WriteString(trimmed)
		b.WriteString("\n\n")
	}
	return b.String()
}

// splitFrontMatter cuts a leading "---" fenced YAML block off the
// document. The closing fence must start a line.
func splitFrontMatter(content string) (rest, frontMatter string, ok bool) {
	const fence = "---"
	if !strings.HasPrefix(content, fence) {
		return content, "", false
	}
	after := strings.TrimPrefix(content[len(fence):], "\r")
	if !strings.HasPrefix(after, "\n") {
		return content, "", false
	}
	after = after[1:]
	for idx := 0; ; {
		j := strings.Index(after[idx:], "\n"+fence)
		if j < 0 {
			return content, "", false
		}
		idx += j
		tail := strings.TrimPrefix(after[idx+1+len(fence):], "\r")
		// The fence must be the whole line, not a "----" or "--- x" prefix.
		if tail != "" && !strings.HasPrefix(tail, "\n") {
			idx += 1 + len(fence)
			continue
		}
		frontMatter = after[:idx+1]
		rest = strings.TrimPrefix(tail, "\n")
		rest = strings.TrimPrefix(rest, "\n")
		return rest, frontMatter, true
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func formatLabel(ext string) string {
	switch ext {
	case ".md", ".markdown":
		return "Markdown"
	case ".csv":
		return "CSV"
	case ".json":
		return "JSON"
	case ".xml":
		return "XML"
	case ".log":
		return "Log"
	default:
		return "Plain text"
	}
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// sizeLabel renders a byte count in the nearest binary unit.
func sizeLabel(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
