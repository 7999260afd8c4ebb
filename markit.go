package markit

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Sentinel errors for programmatic error handling.
var (
	ErrNilRenderer = errors.New("nil renderer")
	ErrNilShape    = errors.New("nil shape type")
)

// TableFormat selects the separator-row glyphs used by map tables.
type TableFormat string

const (
	TableGitHub   TableFormat = "github"
	TableMarkdown TableFormat = "markdown"
	TablePipe     TableFormat = "pipe"
)

// String returns the format name.
func (f TableFormat) String() string { return string(f) }

// ParseTableFormat maps a name to a TableFormat, case-insensitively.
// Unrecognized names clamp to [TableGitHub]: style options degrade, they
// never fail.
func ParseTableFormat(s string) TableFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown":
		return TableMarkdown
	case "pipe":
		return TablePipe
	default:
		return TableGitHub
	}
}

// ListStyle selects the unordered-item marker glyph.
type ListStyle string

const (
	ListDash     ListStyle = "dash"
	ListAsterisk ListStyle = "asterisk"
	ListPlus     ListStyle = "plus"
)

// String returns the style name.
func (s ListStyle) String() string { return string(s) }

// Marker returns the item marker glyph for the style.
func (s ListStyle) Marker() string {
	switch s {
	case ListAsterisk:
		return "*"
	case ListPlus:
		return "+"
	default:
		return "-"
	}
}

// ParseListStyle maps a name to a ListStyle, case-insensitively.
// Unrecognized names clamp to [ListDash].
func ParseListStyle(s string) ListStyle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asterisk":
		return ListAsterisk
	case "plus":
		return ListPlus
	default:
		return ListDash
	}
}

// HeadingStyle selects between #-prefixed and underlined headings.
type HeadingStyle string

const (
	HeadingATX    HeadingStyle = "atx"
	HeadingSetext HeadingStyle = "setext"
)

// String returns the style name.
func (s HeadingStyle) String() string { return string(s) }

// ParseHeadingStyle maps a name to a HeadingStyle, case-insensitively.
// Unrecognized names clamp to [HeadingATX].
func ParseHeadingStyle(s string) HeadingStyle {
	if strings.ToLower(strings.TrimSpace(s)) == "setext" {
		return HeadingSetext
	}
	return HeadingATX
}

// --- Value shape helpers ---

// stringify converts a value to its plain string form, preferring
// fmt.Stringer over the default formatting verb.
func stringify(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", value)
}

// isDate reports whether value is a date-like scalar.
func isDate(value any) bool {
	_, ok := value.(time.Time)
	return ok
}

// isSequence reports whether value is an ordered sequence shape.
func isSequence(value any) bool {
	if value == nil {
		return false
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// isMapping reports whether value is an associative shape.
func isMapping(value any) bool {
	if _, ok := value.(*Map); ok {
		return true
	}
	return value != nil && reflect.TypeOf(value).Kind() == reflect.Map
}

// isStructural reports whether value is a sequence or associative shape.
func isStructural(value any) bool {
	return isSequence(value) || isMapping(value)
}
