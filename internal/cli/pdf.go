package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/bjaus/markit/convert"
)

var (
	codeSpanRe = regexp.MustCompile("`([^`]+)`")
	linkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
)

// writePDF typesets the produced Markdown into a PDF at path. Headings
// scale by level, code blocks and tables render in monospace on a filled
// background, list items indent, everything else flows as body text.
func writePDF(path string, res *convert.Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(res.FileName, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	left, _, _, _ := pdf.GetMargins()
	inCode := false

	for _, line := range strings.Split(res.Markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			pdf.Ln(2)
			continue
		}
		if inCode || strings.HasPrefix(trimmed, "|") {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, line, "", "L", true)
			continue
		}

		switch {
		case trimmed == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "#"):
			text, level := splitHeading(line)
			writeHeading(pdf, text, level)
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "+ "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetX(left + 4)
			pdf.MultiCell(0, 5, "• "+stripInline(trimmed[2:]), "", "L", false)
		case trimmed == "---":
			pdf.Ln(1)
			x, y := pdf.GetXY()
			w, _ := pdf.GetPageSize()
			pdf.Line(x, y, w-left, y)
			pdf.Ln(3)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, stripInline(line), "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

// splitHeading separates the marker run from the heading text.
func splitHeading(line string) (string, int) {
	level := 0
	for _, ch := range line {
		if ch != '#' {
			break
		}
		level++
	}
	return strings.TrimSpace(line[level:]), level
}

// writeHeading scales the font by heading level.
func writeHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, stripInline(text), "", "L", false)
	pdf.Ln(2)
}

// stripInline removes Markdown inline syntax for plain typesetting: bold
// and strikethrough markers, escape backslashes, code spans, and link
// syntax (keeping the link text).
func stripInline(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "~~", "")
	text = strings.ReplaceAll(text, "\\", "")
	text = codeSpanRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	return text
}
