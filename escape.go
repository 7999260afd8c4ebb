package markit

import "strings"

// The two escaping stages compose in a fixed order: HTML entities first,
// then one simultaneous pass over the Markdown-reserved set. Entity text
// contains no reserved characters, and a single replacer pass never
// revisits the backslashes it inserts, so every reserved character in the
// input gains exactly one backslash per pass.
var (
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)

	markdownEscaper = strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"[", `\[`,
		"]", `\]`,
		"(", `\(`,
		")", `\)`,
		"#", `\#`,
		"+", `\+`,
		"-", `\-`,
		".", `\.`,
		"!", `\!`,
	)

	// markdownEscaperNoBang serves callers that opt out of "!" escaping
	// via the escapeBang custom option.
	markdownEscaperNoBang = strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"[", `\[`,
		"]", `\]`,
		"(", `\(`,
		")", `\)`,
		"#", `\#`,
		"+", `\+`,
		"-", `\-`,
		".", `\.`,
	)
)

// escapeText applies the package escaping policy to s.
func escapeText(s string, escapeHTML, escapeBang bool) string {
	if s == "" {
		return ""
	}
	if escapeHTML {
		s = htmlEscaper.Replace(s)
	}
	if escapeBang {
		return markdownEscaper.Replace(s)
	}
	return markdownEscaperNoBang.Replace(s)
}
