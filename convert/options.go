package convert

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/bjaus/markit"
)

// DefaultMaxFileSize caps input files at 50 MiB.
const DefaultMaxFileSize = 50 * 1024 * 1024

// Options control a single conversion. Build them from [DefaultOptions]
// and adjust fields as needed; the engine rejects options that fail
// [Options.Validate].
type Options struct {
	// IncludeImages keeps image elements in the output.
	IncludeImages bool
	// IncludeTables renders tabular data as Markdown tables.
	IncludeTables bool
	// IncludeMetadata adds a document information section to the output.
	IncludeMetadata bool
	// TableFormat selects the table separator style: github, markdown, or
	// pipe.
	TableFormat string
	// ImageFormat selects image syntax: markdown or html.
	ImageFormat string
	// ListStyle selects the bullet marker: dash, asterisk, or plus. Empty
	// means dash.
	ListStyle string
	// HeadingStyle selects atx or setext headings. Empty means atx.
	HeadingStyle string
	// DateFormat is the time layout for rendered dates. Empty means the
	// markit default.
	DateFormat string
	// Language hints the document language (BCP 47 tag). Optional.
	Language string
	// MaxFileSize rejects files larger than this many bytes.
	MaxFileSize int64
	// EscapeHTML entity-escapes &, <, and > in rendered text.
	EscapeHTML bool
	// SortMapKeys orders metadata and mapping output alphabetically.
	SortMapKeys bool
	// Custom passes renderer-specific toggles through to the markit
	// configuration.
	Custom map[string]any
}

// DefaultOptions returns the standard conversion options.
func DefaultOptions() Options {
	return Options{
		IncludeImages:   true,
		IncludeTables:   true,
		IncludeMetadata: true,
		TableFormat:     "github",
		ImageFormat:     "markdown",
		Language:        "en",
		MaxFileSize:     DefaultMaxFileSize,
	}
}

// Validate checks option values. Optional fields are only validated when
// set.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.TableFormat, validation.Required, validation.In("github", "markdown", "pipe")),
		validation.Field(&o.ImageFormat, validation.Required, validation.In("markdown", "html")),
		validation.Field(&o.ListStyle, validation.In("dash", "asterisk", "plus")),
		validation.Field(&o.HeadingStyle, validation.In("atx", "setext")),
		validation.Field(&o.Language, validation.Length(2, 8)),
		validation.Field(&o.MaxFileSize, validation.Required, validation.Min(int64(1))),
	)
}

// markdownConfig maps the options onto a rendering configuration.
func (o Options) markdownConfig() markit.Config {
	opts := []markit.Option{
		markit.WithTables(o.IncludeTables),
		markit.WithMetadata(o.IncludeMetadata),
		markit.WithTableFormat(markit.ParseTableFormat(o.TableFormat)),
		markit.WithListStyle(markit.ParseListStyle(o.ListStyle)),
		markit.WithHeadingStyle(markit.ParseHeadingStyle(o.HeadingStyle)),
		markit.WithEscapeHTML(o.EscapeHTML),
		markit.WithSortMapKeys(o.SortMapKeys),
	}
	if o.DateFormat != "" {
		opts = append(opts, markit.WithDateFormat(o.DateFormat))
	}
	for k, v := range o.Custom {
		opts = append(opts, markit.WithCustomOption(k, v))
	}
	return markit.NewConfig(opts...)
}
