package markit

import (
	"regexp"
	"strings"
)

// emptyLinkPattern matches link syntax with a blank label, e.g. "[ ](x)".
var emptyLinkPattern = regexp.MustCompile(`\[\s*\]\([^)]*\)`)

// IsValidMarkdown runs a cheap structural sanity check over text: square
// brackets balance, parentheses balance, and no link has an empty label.
// It is a heuristic for catching mangled output, not a grammar check;
// prose that legitimately uses unpaired brackets will fail it.
func IsValidMarkdown(text string) bool {
	if strings.Count(text, "[") != strings.Count(text, "]") {
		return false
	}
	if strings.Count(text, "(") != strings.Count(text, ")") {
		return false
	}
	if strings.Contains(text, "[](") {
		return false
	}
	return !emptyLinkPattern.MatchString(text)
}
