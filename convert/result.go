package convert

import (
	"strings"
	"time"

	"github.com/bjaus/markit"
)

// Result is the outcome of one successful conversion.
type Result struct {
	// ID uniquely identifies the conversion run.
	ID string
	// FileName is the base name of the source file.
	FileName string
	// FileSize is the source size in bytes.
	FileSize int64
	// MimeType is the detected MIME type of the source.
	MimeType string
	// Markdown is the produced document.
	Markdown string
	// Metadata holds document properties harvested during conversion, in
	// discovery order.
	Metadata *markit.Map
	// Warnings lists non-fatal problems encountered along the way.
	Warnings []string
	// ConvertedAt records when the conversion finished.
	ConvertedAt time.Time
	// Duration is the time the conversion took.
	Duration time.Duration
}

// WordCount returns the number of whitespace-separated tokens in the
// produced Markdown.
func (r *Result) WordCount() int {
	return len(strings.Fields(r.Markdown))
}

// Valid reports whether the produced Markdown passes the structural
// check.
func (r *Result) Valid() bool {
	return markit.IsValidMarkdown(r.Markdown)
}

// Warn records a non-fatal problem.
func (r *Result) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
