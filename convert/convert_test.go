package convert_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/markit/convert"
)

// --- Test types: stub converter ---

type stubConverter struct {
	name     string
	priority int
	mimes    []string
	markdown string
}

func (s *stubConverter) Convert(_ context.Context, _ string, _ convert.Options) (*convert.Result, error) {
	return &convert.Result{Markdown: s.markdown}, nil
}

func (s *stubConverter) Supports(mimeType string) bool {
	return slices.Contains(s.mimes, mimeType)
}

func (s *stubConverter) Priority() int { return s.priority }
func (s *stubConverter) Name() string  { return s.name }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ============================================================
// Options
// ============================================================

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := convert.DefaultOptions()

	assert.True(t, opts.IncludeImages)
	assert.True(t, opts.IncludeTables)
	assert.True(t, opts.IncludeMetadata)
	assert.Equal(t, "github", opts.TableFormat)
	assert.Equal(t, "markdown", opts.ImageFormat)
	assert.Equal(t, "en", opts.Language)
	assert.Equal(t, int64(convert.DefaultMaxFileSize), opts.MaxFileSize)
	assert.False(t, opts.SortMapKeys)
	assert.NoError(t, opts.Validate())
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate  func(*convert.Options)
		wantErr bool
	}{
		"defaults valid":       {mutate: func(*convert.Options) {}, wantErr: false},
		"bad table format":     {mutate: func(o *convert.Options) { o.TableFormat = "fancy" }, wantErr: true},
		"empty table format":   {mutate: func(o *convert.Options) { o.TableFormat = "" }, wantErr: true},
		"pipe table format":    {mutate: func(o *convert.Options) { o.TableFormat = "pipe" }, wantErr: false},
		"bad image format":     {mutate: func(o *convert.Options) { o.ImageFormat = "svg" }, wantErr: true},
		"html image format":    {mutate: func(o *convert.Options) { o.ImageFormat = "html" }, wantErr: false},
		"bad list style":       {mutate: func(o *convert.Options) { o.ListStyle = "dot" }, wantErr: true},
		"plus list style":      {mutate: func(o *convert.Options) { o.ListStyle = "plus" }, wantErr: false},
		"empty list style":     {mutate: func(o *convert.Options) { o.ListStyle = "" }, wantErr: false},
		"bad heading style":    {mutate: func(o *convert.Options) { o.HeadingStyle = "underline" }, wantErr: true},
		"setext heading style": {mutate: func(o *convert.Options) { o.HeadingStyle = "setext" }, wantErr: false},
		"zero max file size":   {mutate: func(o *convert.Options) { o.MaxFileSize = 0 }, wantErr: true},
		"negative max size":    {mutate: func(o *convert.Options) { o.MaxFileSize = -1 }, wantErr: true},
		"empty language":       {mutate: func(o *convert.Options) { o.Language = "" }, wantErr: false},
		"long language":        {mutate: func(o *convert.Options) { o.Language = "extremely-long-tag" }, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := convert.DefaultOptions()
			tc.mutate(&opts)

			err := opts.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// ============================================================
// MIME detection
// ============================================================

func TestDetectMIMEByExtension(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path string
		want string
	}{
		"txt":            {path: "notes.txt", want: "text/plain"},
		"log":            {path: "app.log", want: "text/plain"},
		"markdown":       {path: "README.md", want: "text/markdown"},
		"markdown long":  {path: "doc.markdown", want: "text/markdown"},
		"csv":            {path: "data.csv", want: "text/csv"},
		"json":           {path: "config.json", want: "application/json"},
		"xml":            {path: "feed.xml", want: "application/xml"},
		"html":           {path: "page.html", want: "text/html"},
		"html uppercase": {path: "PAGE.HTML", want: "text/html"},
		"pdf":            {path: "report.pdf", want: "application/pdf"},
		"image":          {path: "photo.JPG", want: "image/jpeg"},
		"archive":        {path: "bundle.zip", want: "application/zip"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, convert.DetectMIME(tc.path))
		})
	}
}

func TestDetectMIMESniff(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	htmlPath := writeFile(t, dir, "page", "<!DOCTYPE html><html><body><p>hi</p></body></html>")
	assert.Equal(t, "text/html", convert.DetectMIME(htmlPath))

	textPath := writeFile(t, dir, "notes", "just some plain words\n")
	assert.Equal(t, "text/plain", convert.DetectMIME(textPath))

	binPath := filepath.Join(dir, "blob")
	require.NoError(t, os.WriteFile(binPath, make([]byte, 64), 0o644))
	assert.Equal(t, "application/octet-stream", convert.DetectMIME(binPath))
}

func TestDetectMIMEMissingFile(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "application/octet-stream", convert.DetectMIME(filepath.Join(t.TempDir(), "nope")))
}

func TestIsText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mime string
		want bool
	}{
		"plain":    {mime: "text/plain", want: true},
		"markdown": {mime: "text/markdown", want: true},
		"html":     {mime: "text/html", want: true},
		"json":     {mime: "application/json", want: true},
		"xml":      {mime: "application/xml", want: true},
		"yaml":     {mime: "application/yaml", want: true},
		"xhtml":    {mime: "application/xhtml+xml", want: true},
		"pdf":      {mime: "application/pdf", want: false},
		"png":      {mime: "image/png", want: false},
		"binary":   {mime: "application/octet-stream", want: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, convert.IsText(tc.mime))
		})
	}
}

// ============================================================
// Registry
// ============================================================

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()

	require.NoError(t, reg.Register(&stubConverter{name: "pdf", priority: 10}))
	assert.True(t, reg.Has("pdf"))
	assert.Equal(t, 1, reg.Len())

	err := reg.Register(&stubConverter{name: "pdf", priority: 20})
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrDuplicateConverter)
}

func TestRegistryRegisterNil(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()
	assert.ErrorIs(t, reg.Register(nil), convert.ErrNilConverter)
}

func TestRegistryUnregister(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()
	require.NoError(t, reg.Register(&stubConverter{name: "pdf", priority: 10, mimes: []string{"application/pdf"}}))

	assert.True(t, reg.Unregister("pdf"))
	assert.False(t, reg.Has("pdf"))
	assert.False(t, reg.Unregister("pdf"))

	_, ok := reg.Resolve("application/pdf")
	assert.False(t, ok)
}

func TestRegistryResolvePriority(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()
	require.NoError(t, reg.Register(&stubConverter{name: "generic", priority: 10, mimes: []string{"text/plain"}}))
	require.NoError(t, reg.Register(&stubConverter{name: "special", priority: 90, mimes: []string{"text/plain"}}))

	c, ok := reg.Resolve("text/plain")
	require.True(t, ok)
	assert.Equal(t, "special", c.Name())
	assert.Equal(t, []string{"special", "generic"}, reg.Names())
}

func TestRegistryResolveCacheInvalidation(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()
	require.NoError(t, reg.Register(&stubConverter{name: "low", priority: 10, mimes: []string{"text/plain"}}))

	c, ok := reg.Resolve("text/plain")
	require.True(t, ok)
	assert.Equal(t, "low", c.Name())

	_, ok = reg.Resolve("application/pdf")
	assert.False(t, ok)

	// Mutation drops cached resolutions, including misses.
	require.NoError(t, reg.Register(&stubConverter{name: "high", priority: 99, mimes: []string{"text/plain", "application/pdf"}}))

	c, ok = reg.Resolve("text/plain")
	require.True(t, ok)
	assert.Equal(t, "high", c.Name())

	c, ok = reg.Resolve("application/pdf")
	require.True(t, ok)
	assert.Equal(t, "high", c.Name())
}

func TestRegistryByName(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()
	require.NoError(t, reg.Register(&stubConverter{name: "pdf", priority: 10}))

	c, ok := reg.ByName("pdf")
	require.True(t, ok)
	assert.Equal(t, "pdf", c.Name())

	_, ok = reg.ByName("docx")
	assert.False(t, ok)
}

func TestRegistrySupportedTypes(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()
	require.NoError(t, reg.Register(&stubConverter{name: "csv only", priority: 10, mimes: []string{"text/csv"}}))

	assert.True(t, reg.IsSupported("text/csv"))
	assert.False(t, reg.IsSupported("text/html"))
	assert.Equal(t, []string{"text/csv"}, reg.SupportedTypes())

	// The stock engine claims every text type the detector knows.
	engine := convert.NewEngine()
	types := engine.Registry().SupportedTypes()
	assert.Contains(t, types, "text/plain")
	assert.Contains(t, types, "text/html")
	assert.Contains(t, types, "application/json")
	assert.NotContains(t, types, "application/pdf")
}

func TestRegistryClear(t *testing.T) {
	t.Parallel()

	reg := convert.NewRegistry()
	require.NoError(t, reg.Register(&stubConverter{name: "pdf", priority: 10, mimes: []string{"application/pdf"}}))

	reg.Clear()

	assert.Equal(t, 0, reg.Len())
	assert.False(t, reg.Has("pdf"))
	_, ok := reg.Resolve("application/pdf")
	assert.False(t, ok)
}

func TestKnownMIMETypes(t *testing.T) {
	t.Parallel()

	types := convert.KnownMIMETypes()

	assert.True(t, sort.StringsAreSorted(types))
	assert.Contains(t, types, "text/plain")
	assert.Contains(t, types, "application/pdf")

	// Deduplicated: .txt, .text, and .log all map to text/plain.
	seen := map[string]int{}
	for _, m := range types {
		seen[m]++
	}
	assert.Equal(t, 1, seen["text/plain"])
}

// ============================================================
// Engine
// ============================================================

func TestEngineConvertTextFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "notes.txt", "Hello world.\n\nSecond paragraph.\n")

	engine := convert.NewEngine()
	res, err := engine.Convert(context.Background(), path, convert.DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, res.ID, 36)
	assert.Equal(t, "notes.txt", res.FileName)
	assert.Equal(t, int64(32), res.FileSize)
	assert.Equal(t, "text/plain", res.MimeType)
	assert.False(t, res.ConvertedAt.IsZero())
	assert.Contains(t, res.Markdown, "# notes\n")
	assert.Contains(t, res.Markdown, "## File Information\n")
	assert.Contains(t, res.Markdown, "## Content\n")
	assert.Contains(t, res.Markdown, "Hello world.")
	assert.True(t, res.Valid())
	assert.Positive(t, res.WordCount())
	assert.Empty(t, res.Warnings)
}

func TestEngineInvalidOptions(t *testing.T) {
	t.Parallel()

	engine := convert.NewEngine()
	_, err := engine.Convert(context.Background(), "whatever.txt", convert.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid options")
}

func TestEngineMissingFile(t *testing.T) {
	t.Parallel()

	engine := convert.NewEngine()
	_, err := engine.Convert(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), convert.DefaultOptions())
	assert.Error(t, err)
}

func TestEngineDirectory(t *testing.T) {
	t.Parallel()

	engine := convert.NewEngine()
	_, err := engine.Convert(context.Background(), t.TempDir(), convert.DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestEngineFileTooLarge(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "big.txt", "far more than four bytes\n")

	opts := convert.DefaultOptions()
	opts.MaxFileSize = 4

	engine := convert.NewEngine()
	_, err := engine.Convert(context.Background(), path, opts)
	assert.ErrorIs(t, err, convert.ErrFileTooLarge)
}

func TestEngineNoConverter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 16), 0o644))

	engine := convert.NewEngine()
	_, err := engine.Convert(context.Background(), path, convert.DefaultOptions())
	assert.ErrorIs(t, err, convert.ErrNoConverter)
}

func TestEngineCustomConverter(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "report.pdf", "%PDF-1.4 fake")

	engine := convert.NewEngine()
	require.NoError(t, engine.Registry().Register(&stubConverter{
		name:     "pdf",
		priority: 80,
		mimes:    []string{"application/pdf"},
		markdown: "# extracted\n",
	}))

	res, err := engine.Convert(context.Background(), path, convert.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "# extracted\n", res.Markdown)
	assert.Equal(t, "report.pdf", res.FileName)
	assert.NotEmpty(t, res.ID)
}

func TestEngineDefaultConverters(t *testing.T) {
	t.Parallel()

	engine := convert.NewEngine()
	reg := engine.Registry()

	assert.True(t, reg.Has("text"))
	assert.True(t, reg.Has("html"))
	assert.ErrorIs(t, reg.Register(convert.NewTextConverter()), convert.ErrDuplicateConverter)

	// HTML outranks text for its MIME types.
	c, ok := reg.Resolve("text/html")
	require.True(t, ok)
	assert.Equal(t, "html", c.Name())

	c, ok = reg.Resolve("text/plain")
	require.True(t, ok)
	assert.Equal(t, "text", c.Name())
}

func TestEngineConvertAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeFile(t, dir, "a.txt", "alpha\n")
	second := writeFile(t, dir, "b.txt", "beta\n")
	missing := filepath.Join(dir, "missing.txt")

	engine := convert.NewEngine()

	var names []string
	var errs int
	for res, err := range engine.ConvertAll(context.Background(), []string{first, missing, second}, convert.DefaultOptions()) {
		if err != nil {
			errs++
			continue
		}
		names = append(names, res.FileName)
	}

	assert.Equal(t, []string{"a.txt", "b.txt"}, names)
	assert.Equal(t, 1, errs)
}

func TestEngineConvertAllStopsWhenCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := convert.NewEngine()

	var got []error
	for res, err := range engine.ConvertAll(ctx, []string{"a.txt", "b.txt"}, convert.DefaultOptions()) {
		assert.Nil(t, res)
		got = append(got, err)
	}

	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], context.Canceled)
}

func TestEngineConvertAllBreak(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeFile(t, dir, "a.txt", "alpha\n")
	second := writeFile(t, dir, "b.txt", "beta\n")

	engine := convert.NewEngine()

	var seen int
	for res, err := range engine.ConvertAll(context.Background(), []string{first, second}, convert.DefaultOptions()) {
		require.NoError(t, err)
		require.NotNil(t, res)
		seen++
		break
	}

	assert.Equal(t, 1, seen)
}
