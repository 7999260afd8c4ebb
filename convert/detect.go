package convert

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// mimeByExtension maps known file extensions to MIME types. The extension
// wins over content sniffing because it captures author intent: a .md
// file full of HTML tags is still Markdown.
var mimeByExtension = map[string]string{
	".txt":      "text/plain",
	".text":     "text/plain",
	".log":      "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".csv":      "text/csv",
	".tsv":      "text/tab-separated-values",
	".json":     "application/json",
	".xml":      "application/xml",
	".yaml":     "application/yaml",
	".yml":      "application/yaml",
	".html":     "text/html",
	".htm":      "text/html",
	".xhtml":    "application/xhtml+xml",
	".pdf":      "application/pdf",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx":     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".pptx":     "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".png":      "image/png",
	".jpg":      "image/jpeg",
	".jpeg":     "image/jpeg",
	".gif":      "image/gif",
	".webp":     "image/webp",
	".zip":      "application/zip",
	".gz":       "application/gzip",
}

const sniffLen = 512

// DetectMIME determines the MIME type of the file at path: known
// extensions first, then a content sniff of the leading bytes, falling
// back to application/octet-stream.
func DetectMIME(path string) string {
	if mime, ok := mimeByExtension[strings.ToLower(filepath.Ext(path))]; ok {
		return mime
	}
	f, err := os.Open(path)
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "application/octet-stream"
	}
	mime := http.DetectContentType(buf[:n])
	// DetectContentType appends charset parameters; strip for matching.
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return mime
}

// IsText reports whether mimeType describes a text-based format.
func IsText(mimeType string) bool {
	if strings.HasPrefix(mimeType, "text/") {
		return true
	}
	switch mimeType {
	case "application/json", "application/xml", "application/yaml", "application/xhtml+xml":
		return true
	}
	return false
}

// KnownMIMETypes returns the sorted, deduplicated MIME types the
// extension table recognizes.
func KnownMIMETypes() []string {
	seen := make(map[string]struct{}, len(mimeByExtension))
	types := make([]string, 0, len(mimeByExtension))
	for _, mime := range mimeByExtension {
		if _, ok := seen[mime]; ok {
			continue
		}
		seen[mime] = struct{}{}
		types = append(types, mime)
	}
	sort.Strings(types)
	return types
}
