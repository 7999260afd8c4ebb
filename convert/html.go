package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/bjaus/markit"
)

// HTMLConverter converts HTML documents. Metadata comes from the head
// (title, description, author, keywords, with Open Graph fallbacks),
// boilerplate elements are stripped, and the remaining body converts to
// Markdown.
type HTMLConverter struct{}

// NewHTMLConverter creates an HTMLConverter.
func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{}
}

// Supports accepts HTML MIME types.
func (c *HTMLConverter) Supports(mimeType string) bool {
	return mimeType == "text/html" || mimeType == "application/xhtml+xml"
}

// Priority implements [Converter]. Higher than the text converter so HTML
// never routes through plain-text handling.
func (c *HTMLConverter) Priority() int { return 100 }

// Name implements [Converter].
func (c *HTMLConverter) Name() string { return "html" }

// Convert parses the document, harvests metadata, strips boilerplate, and
// converts the rest.
func (c *HTMLConverter) Convert(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	res := &Result{Metadata: markit.NewMap()}
	c.harvestMetadata(doc, res)

	if !opts.IncludeImages {
		doc.Find("img").Remove()
	}
	doc.Find("script, style, nav, footer, header, iframe, form, noscript").Remove()

	body, err := htmltomarkdown.ConvertString(documentBody(doc))
	if err != nil {
		return nil, fmt.Errorf("convert html: %w", err)
	}

	heading := ""
	if v, ok := res.Metadata.Get("title"); ok {
		heading, _ = v.(string)
	}
	if heading == "" {
		base := filepath.Base(path)
		heading = strings.TrimSuffix(base, filepath.Ext(base))
	}

	b := markit.NewBuilder(opts.markdownConfig())
	b.Heading(heading, 1)
	if opts.IncludeMetadata && res.Metadata.Len() > 0 {
		b.Heading("Document Information", 2)
		for _, field := range metadataFields {
			v, ok := res.Metadata.Get(field.key)
			if !ok {
				continue
			}
			b.Raw("- **").Raw(field.label).Raw(":** ").Text(fmt.Sprint(v)).Raw("\n")
		}
		b.Raw("\n")
	}
	b.Heading("Content", 2)
	b.Raw(strings.TrimSpace(body))
	b.Raw("\n")
	res.Markdown = b.Flush()
	return res, nil
}

// metadataFields orders the document information bullets.
var metadataFields = []struct {
	key   string
	label string
}{
	{"title", "Title"},
	{"description", "Description"},
	{"author", "Author"},
	{"keywords", "Keywords"},
	{"language", "Language"},
	{"linkCount", "Links"},
	{"imageCount", "Images"},
}

// harvestMetadata pulls document properties from the head before any
// elements are stripped, so counts reflect the source document.
func (c *HTMLConverter) harvestMetadata(doc *goquery.Document, res *Result) {
	set := func(key, val string) {
		if v := strings.TrimSpace(val); v != "" {
			res.Metadata.Set(key, v)
		}
	}
	set("title", doc.Find("title").First().Text())
	if _, ok := res.Metadata.Get("title"); !ok {
		if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
			set("title", v)
		}
	}
	if v, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		set("description", v)
	} else if v, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		set("description", v)
	}
	if v, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok {
		set("author", v)
	}
	if v, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok {
		set("keywords", v)
	}
	if v, ok := doc.Find("html").Attr("lang"); ok {
		set("language", v)
	}
	if n := doc.Find("a[href]").Length(); n > 0 {
		res.Metadata.Set("linkCount", n)
	}
	if n := doc.Find("img[src]").Length(); n > 0 {
		res.Metadata.Set("imageCount", n)
	}
}

// documentBody returns the inner HTML of <body>, or the whole document
// when parsing produced none.
func documentBody(doc *goquery.Document) string {
	body := doc.Find("body").First()
	if body.Length() > 0 {
		if html, err := body.Html(); err == nil {
			return html
		}
	}
	if html, err := doc.Html(); err == nil {
		return html
	}
	return ""
}
