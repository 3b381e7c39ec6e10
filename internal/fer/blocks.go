package fer

import (
	"regexp"
	"strings"
)

var (
	detailedObsStartRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)B\.\s*Detailed\s+observations\s+on\s+the\s+requirements\s+under\s+the\s+Act`),
		regexp.MustCompile(`(?i)Detailed\s+observations\s+on\s+the\s+requirements\s+under\s+the\s+Act`),
	}
	detailedObsEndRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)PART\s*[-–]\s*III\s*[:\-]\s*FORMAL`),
		regexp.MustCompile(`(?i)PART\s*[-–]\s*III`),
		regexp.MustCompile(`(?i)FORMAL\s+REQUIREMENTS`),
	}

	formalStartRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)PART\s*[-–]\s*III\s*[:\-]\s*FORMAL\s+REQUIREMENTS`),
		regexp.MustCompile(`(?i)PART\s*[-–]\s*III[^\n]{0,100}FORMAL\s+REQUIREMENTS`),
		regexp.MustCompile(`(?im)^\s*FORMAL\s+REQUIREMENTS\s*$`),
	}
	formalEndRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)PART\s*[-–]\s*IV`),
		regexp.MustCompile(`(?i)DOCUMENTS\s+ON\s+RECORD`),
	}
)

// DetailedObservationsBlock slices the PART-II detailed observations out of
// FER text: from the "Detailed observations on the requirements under the
// Act" heading to PART-III or FORMAL REQUIREMENTS.
func DetailedObservationsBlock(text string) string {
	for _, startRe := range detailedObsStartRes {
		loc := startRe.FindStringIndex(text)
		if loc == nil {
			continue
		}
		tail := text[loc[0]:]
		end := len(tail)
		for _, endRe := range detailedObsEndRes {
			if m := endRe.FindStringIndex(tail); m != nil && m[0] < end {
				end = m[0]
			}
		}
		return strings.TrimSpace(tail[:end])
	}
	return ""
}

// FormalRequirementsBlock extracts the raw PART-III formal-requirements text
// from the FER, keeping the original line layout for the row parser. The
// latest heading occurrence wins so intro prose that merely mentions
// "formal requirements" is skipped.
func FormalRequirementsBlock(text string) string {
	t := strings.ReplaceAll(text, "­", "")
	t = cidRe.ReplaceAllString(t, "")

	bestEnd := -1
	for _, startRe := range formalStartRes {
		for _, loc := range startRe.FindAllStringIndex(t, -1) {
			if loc[1] > bestEnd {
				bestEnd = loc[1]
			}
		}
	}
	if bestEnd < 0 {
		return ""
	}

	tail := t[bestEnd:]
	end := len(tail)
	for _, endRe := range formalEndRes {
		if m := endRe.FindStringIndex(tail); m != nil && m[0] < end {
			end = m[0]
		}
	}
	return strings.TrimSpace(tail[:end])
}
