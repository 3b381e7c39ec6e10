package docext

import (
	"regexp"
	"strings"
)

var (
	cidArtifactRe    = regexp.MustCompile(`\(cid:\d+\)`)
	horizontalWSRe   = regexp.MustCompile(`[ \t\x{00a0}]+`)
	multiBlankLineRe = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes raw extracted text for downstream parsing. It drops
// soft hyphens and (cid:N) extraction artifacts, collapses runs of
// horizontal whitespace, and folds three or more consecutive newlines into a
// single blank line. Line boundaries are otherwise preserved because the
// parsers are line-anchored.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "­", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = cidArtifactRe.ReplaceAllString(text, "")
	text = horizontalWSRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	text = strings.Join(lines, "\n")
	text = multiBlankLineRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
