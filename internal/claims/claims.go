// Package claims extracts the amended claim set from an applicant's claims
// document (PDF or DOCX). The claims feed the "Regarding Claims" part of
// the reply draft, so ordering and numbering must survive extraction.
package claims

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/patentdesk/fer-reply/internal/docext"
)

// Claim is one numbered claim as filed.
type Claim struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

var (
	startHeadingRe = regexp.MustCompile(`(?im)^\s*(?:WE\s+CLAIM|I\s+CLAIM|THE\s+CLAIMS?|AMENDED\s+CLAIMS?|CLAIMS?|REGARDING\s+CLAIMS?)\s*[:\-]?\s*$`)
	startInlineRe  = regexp.MustCompile(`(?i)\b(?:WE|I)\s+CLAIM\s*[:\-]`)
	startNumberRe  = regexp.MustCompile(`(?m)^\s*(?:1[\.\):]\s+|Claim\s*1\b)`)

	endRes = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*SUBMISSIONS?\s+TO\s+(?:THE\s+)?OBJECTIONS?\b`),
		regexp.MustCompile(`(?im)^\s*FORMAL\s+REQUIREMENTS?\b`),
		regexp.MustCompile(`(?im)^\s*YOURS\s+FAITHFULLY\b`),
		regexp.MustCompile(`(?im)^\s*ENCLOSURES?\s*[:\-]?`),
		regexp.MustCompile(`(?im)^\s*ABSTRACT\s*[:\-]?\s*$`),
		regexp.MustCompile(`(?im)^\s*Dated\s+this\b`),
	}

	claimMarkerRe = regexp.MustCompile(`(?m)^\s*(\d{1,3})[\.\):]\s+`)
	pageNoiseRe   = regexp.MustCompile(`(?im)^\s*(?:Page\s+\d+(?:\s+of\s+\d+)?|\d+\s*\|\s*Page.*|[\[(]?\d{1,3}[\])]?)\s*$`)
	multiSpaceRe  = regexp.MustCompile(`\s+`)
)

// Extract reads a claims PDF or DOCX and returns the numbered claims in
// document order.
func Extract(path string) ([]Claim, error) {
	text, err := docext.ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("extracting claims text: %w", err)
	}
	list := FromText(text)
	if len(list) == 0 {
		return nil, fmt.Errorf("no numbered claims found in %q", path)
	}
	return list, nil
}

// FromText extracts the claims from already-extracted document text.
func FromText(text string) []Claim {
	return Split(Block(text))
}

// Block isolates the claims region: from a claims heading (or the first
// numbered claim when the heading is missing) to the first trailing section.
func Block(text string) string {
	t := docext.CleanText(text)
	if t == "" {
		return ""
	}

	start := -1
	if loc := startHeadingRe.FindStringIndex(t); loc != nil {
		start = loc[1]
	} else if loc := startInlineRe.FindStringIndex(t); loc != nil {
		start = loc[1]
	} else if loc := startNumberRe.FindStringIndex(t); loc != nil {
		start = loc[0]
	}
	if start < 0 {
		return ""
	}

	block := t[start:]
	end := len(block)
	for _, re := range endRes {
		if loc := re.FindStringIndex(block); loc != nil && loc[0] < end {
			end = loc[0]
		}
	}
	return strings.TrimSpace(block[:end])
}

// Split turns a claims block into ordered (number, text) pairs. Markers
// whose number does not continue the sequence are treated as claim-internal
// enumeration, not new claims.
func Split(block string) []Claim {
	if strings.TrimSpace(block) == "" {
		return nil
	}

	matches := claimMarkerRe.FindAllStringSubmatchIndex(block, -1)
	if len(matches) == 0 {
		return nil
	}

	var claims []Claim
	expected := 0
	for i, m := range matches {
		num := atoi(block[m[2]:m[3]])
		if expected == 0 {
			if num != 1 {
				continue
			}
		} else if num != expected+1 {
			continue
		}

		end := len(block)
		for j := i + 1; j < len(matches); j++ {
			if atoi(block[matches[j][2]:matches[j][3]]) == num+1 {
				end = matches[j][0]
				break
			}
		}

		body := cleanClaimText(block[m[1]:end])
		if body == "" {
			continue
		}
		claims = append(claims, Claim{Number: num, Text: body})
		expected = num
	}
	return claims
}

func cleanClaimText(s string) string {
	s = pageNoiseRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
