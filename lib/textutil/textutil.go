package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace normalizes a block of text into single-line prose.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// the upstream translations of the final verse of a sarga end with a
// fixed colophon sentence; readers trim it off when presenting.
const closingFormula = "Thus ends"

// TrimClosingFormula cuts a translation off at the chapter-end colophon
// if one is present. the raw text stays untouched in storage, this is a
// presentation concern.
func TrimClosingFormula(s string) string {
	idx := strings.Index(s, closingFormula)
	if idx < 0 {
		return s
	}
	return strings.TrimSpace(s[:idx])
}
