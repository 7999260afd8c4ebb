package convert

import (
	"context"
	"errors"
)

// Sentinel errors returned by the conversion engine.
var (
	// ErrNoConverter indicates no registered converter claims the file's
	// MIME type.
	ErrNoConverter = errors.New("no converter for file type")
	// ErrDuplicateConverter indicates a converter with the same name is
	// already registered.
	ErrDuplicateConverter = errors.New("converter already registered")
	// ErrNilConverter indicates a nil converter was passed to Register.
	ErrNilConverter = errors.New("nil converter")
	// ErrFileTooLarge indicates the input file exceeds Options.MaxFileSize.
	ErrFileTooLarge = errors.New("file exceeds size limit")
)

// Converter turns one source file into Markdown.
type Converter interface {
	// Convert reads the file at path and produces a Result. Implementations
	// check ctx before long work and return its error once cancelled.
	Convert(ctx context.Context, path string, opts Options) (*Result, error)

	// Supports reports whether the converter handles the given MIME type.
	Supports(mimeType string) bool

	// Priority orders converters competing for the same MIME type; higher
	// wins.
	Priority() int

	// Name identifies the converter within a registry.
	Name() string
}
