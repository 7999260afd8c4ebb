package convert

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Engine routes files through registered converters.
type Engine struct {
	reg    *Registry
	logger *log.Logger
}

// EngineOption adjusts engine construction.
type EngineOption func(*Engine)

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an Engine with the text and HTML converters
// registered.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		reg:    NewRegistry(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	// Fresh registry, names cannot collide.
	_ = e.reg.Register(NewTextConverter())
	_ = e.reg.Register(NewHTMLConverter())
	return e
}

// Registry returns the converter registry for registration and
// inspection.
func (e *Engine) Registry() *Registry {
	return e.reg
}

// Convert converts the file at path into Markdown.
func (e *Engine) Convert(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}
	if info.Size() > opts.MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, path, info.Size(), opts.MaxFileSize)
	}

	mime := DetectMIME(path)
	conv, ok := e.reg.Resolve(mime)
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoConverter, path, mime)
	}

	id := uuid.NewString()
	logger := e.logger.With("id", id, "file", filepath.Base(path), "converter", conv.Name())
	logger.Debug("converting", "mime", mime, "size", info.Size())

	start := time.Now()
	res, err := conv.Convert(ctx, path, opts)
	if err != nil {
		logger.Error("conversion failed", "err", err)
		return nil, fmt.Errorf("%s: %w", conv.Name(), err)
	}
	res.ID = id
	res.FileName = info.Name()
	res.FileSize = info.Size()
	res.MimeType = mime
	res.ConvertedAt = time.Now()
	res.Duration = time.Since(start)

	logger.Debug("converted", "words", res.WordCount(), "warnings", len(res.Warnings), "in", res.Duration)
	return res, nil
}

// ConvertAll converts paths lazily, yielding each result or error in
// input order. Iteration stops early once ctx is cancelled; the final
// yield carries the context error.
func (e *Engine) ConvertAll(ctx context.Context, paths []string, opts Options) iter.Seq2[*Result, error] {
	return func(yield func(*Result, error) bool) {
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			res, err := e.Convert(ctx, path, opts)
			if !yield(res, err) {
				return
			}
		}
	}
}
