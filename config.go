package markit

import (
	"io"

	"github.com/charmbracelet/log"
)

// DefaultDateFormat is the Go layout applied to date values when no custom
// layout is configured.
const DefaultDateFormat = "2006-01-02 15:04:05"

// Custom option keys consulted by the built-in renderers. Arbitrary keys
// may be stored alongside these for custom renderers to read.
const (
	// OptionUseEmoji switches boolean rendering from bracketed tokens to
	// emoji-decorated text.
	OptionUseEmoji = "useEmoji"
	// OptionEscapeBang, when set to false, removes "!" from the escaped
	// character set.
	OptionEscapeBang = "escapeBang"
)

// nopLogger swallows everything; the package never logs unless a logger is
// configured.
var nopLogger = log.New(io.Discard)

// Config is an immutable bag of style options shared by an entire
// conversion. Build one with [NewConfig], derive variants with
// [Config.With]. Copies are cheap and never alias mutable state, so a
// Config may be shared freely across goroutines.
type Config struct {
	includeTables   bool
	includeMetadata bool
	tableFormat     TableFormat
	listStyle       ListStyle
	headingStyle    HeadingStyle
	escapeHTML      bool
	wrapCodeBlocks  bool
	maxListDepth    int
	sortMapKeys     bool
	dateFormat      string
	custom          map[string]any
	logger          *log.Logger
}

// Option configures a Config under construction.
type Option func(*Config)

// WithTables toggles tabular rendering of eligible maps and builder tables.
func WithTables(enabled bool) Option {
	return func(c *Config) { c.includeTables = enabled }
}

// WithMetadata toggles the document-information preamble.
func WithMetadata(enabled bool) Option {
	return func(c *Config) { c.includeMetadata = enabled }
}

// WithTableFormat sets the table separator style.
func WithTableFormat(f TableFormat) Option {
	return func(c *Config) { c.tableFormat = f }
}

// WithListStyle sets the unordered-list marker style.
func WithListStyle(s ListStyle) Option {
	return func(c *Config) { c.listStyle = s }
}

// WithHeadingStyle sets the heading style.
func WithHeadingStyle(s HeadingStyle) Option {
	return func(c *Config) { c.headingStyle = s }
}

// WithEscapeHTML toggles HTML entity escaping ahead of Markdown escaping.
func WithEscapeHTML(enabled bool) Option {
	return func(c *Config) { c.escapeHTML = enabled }
}

// WithWrapCodeBlocks toggles fenced code blocks.
func WithWrapCodeBlocks(enabled bool) Option {
	return func(c *Config) { c.wrapCodeBlocks = enabled }
}

// WithMaxListDepth sets the nesting depth at which sequences collapse to
// their inline form. Values below 1 clamp to 1.
func WithMaxListDepth(depth int) Option {
	return func(c *Config) { c.maxListDepth = depth }
}

// WithSortMapKeys toggles key-sorted rendering of ordered maps.
func WithSortMapKeys(enabled bool) Option {
	return func(c *Config) { c.sortMapKeys = enabled }
}

// WithDateFormat sets the Go layout for date values. An empty layout keeps
// [DefaultDateFormat].
func WithDateFormat(layout string) Option {
	return func(c *Config) {
		if layout != "" {
			c.dateFormat = layout
		}
	}
}

// WithCustomOption stores an opaque option under key.
func WithCustomOption(key string, value any) Option {
	return func(c *Config) {
		if c.custom == nil {
			c.custom = make(map[string]any)
		}
		c.custom[key] = value
	}
}

// WithLogger sets the logger used for conversion diagnostics. A nil logger
// restores the default silent one.
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) { c.logger = logger }
}

// NewConfig builds a Config with the package defaults, then applies opts.
func NewConfig(opts ...Option) Config {
	c := Config{
		includeTables:   true,
		includeMetadata: true,
		tableFormat:     TableGitHub,
		listStyle:       ListDash,
		headingStyle:    HeadingATX,
		wrapCodeBlocks:  true,
		maxListDepth:    6,
		dateFormat:      DefaultDateFormat,
		logger:          nopLogger,
	}
	return c.With(opts...)
}

// With returns a copy of c with opts applied. The receiver is unchanged.
func (c Config) With(opts ...Option) Config {
	if c.custom != nil {
		dup := make(map[string]any, len(c.custom))
		for k, v := range c.custom {
			dup[k] = v
		}
		c.custom = dup
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.maxListDepth < 1 {
		c.maxListDepth = 1
	}
	if c.dateFormat == "" {
		c.dateFormat = DefaultDateFormat
	}
	if c.logger == nil {
		c.logger = nopLogger
	}
	return c
}

// IncludeTables reports whether tabular rendering is enabled.
func (c Config) IncludeTables() bool { return c.includeTables }

// IncludeMetadata reports whether the metadata preamble is enabled.
func (c Config) IncludeMetadata() bool { return c.includeMetadata }

// TableFormat returns the table separator style.
func (c Config) TableFormat() TableFormat { return c.tableFormat }

// ListStyle returns the unordered-list marker style.
func (c Config) ListStyle() ListStyle { return c.listStyle }

// HeadingStyle returns the heading style.
func (c Config) HeadingStyle() HeadingStyle { return c.headingStyle }

// EscapeHTML reports whether HTML entities are escaped ahead of Markdown
// characters.
func (c Config) EscapeHTML() bool { return c.escapeHTML }

// WrapCodeBlocks reports whether code blocks are fenced.
func (c Config) WrapCodeBlocks() bool { return c.wrapCodeBlocks }

// MaxListDepth returns the depth at which sequences collapse inline.
func (c Config) MaxListDepth() int { return c.maxListDepth }

// SortMapKeys reports whether ordered maps render key-sorted.
func (c Config) SortMapKeys() bool { return c.sortMapKeys }

// DateFormat returns the Go layout for date values.
func (c Config) DateFormat() string { return c.dateFormat }

// CustomOption returns the opaque option stored under key.
func (c Config) CustomOption(key string) (any, bool) {
	v, ok := c.custom[key]
	return v, ok
}

// Logger returns the configured logger, never nil.
func (c Config) Logger() *log.Logger {
	if c.logger == nil {
		return nopLogger
	}
	return c.logger
}

// Escape applies the configured escaping policy to s. Custom renderers
// should route all user text through Escape so a document carries a single
// policy end to end.
func (c Config) Escape(s string) string {
	return escapeText(s, c.escapeHTML, c.escapeBang())
}

// customBool reads a boolean custom option, returning def when the key is
// unset or holds a non-bool.
func (c Config) customBool(key string, def bool) bool {
	v, ok := c.custom[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

func (c Config) escapeBang() bool { return c.customBool(OptionEscapeBang, true) }

// TableOptimizedConfig favors tabular output for structured data.
func TableOptimizedConfig() Config {
	return NewConfig(
		WithTables(true),
		WithTableFormat(TableGitHub),
		WithSortMapKeys(true),
	)
}

// SimpleTextConfig produces minimal text-first output with HTML escaping
// and no tables or preamble.
func SimpleTextConfig() Config {
	return NewConfig(
		WithTables(false),
		WithMetadata(false),
		WithEscapeHTML(true),
		WithListStyle(ListDash),
	)
}

// RichFormattingConfig enables every decorative feature, including emoji
// booleans.
func RichFormattingConfig() Config {
	return NewConfig(
		WithTables(true),
		WithTableFormat(TableGitHub),
		WithHeadingStyle(HeadingATX),
		WithWrapCodeBlocks(true),
		WithCustomOption(OptionUseEmoji, true),
	)
}

// APIDocConfig targets API reference documents: sorted keys, date-only
// timestamps, fenced code.
func APIDocConfig() Config {
	return NewConfig(
		WithTables(true),
		WithMetadata(true),
		WithWrapCodeBlocks(true),
		WithSortMapKeys(true),
		WithDateFormat("2006-01-02"),
	)
}
