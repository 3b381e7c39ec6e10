// Package cs extracts drafting inputs from the Complete Specification
// document: invention title, applicant, and the background, summary and
// technical-effect sections used by the non-patentability reply. Input may
// be PDF or DOCX; everything works on extracted text.
package cs

import (
	"regexp"
	"strings"

	"github.com/patentdesk/fer-reply/internal/fer"
)

// Sections is the CS material fed into the reply's technical sections.
type Sections struct {
	Background      string
	Summary         string
	TechnicalEffect string
}

var (
	cidRe        = regexp.MustCompile(`\(cid:\d+\)`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
	hasLetterRe  = regexp.MustCompile(`[A-Za-z]`)
	pageNoRe     = regexp.MustCompile(`(?i)^Page\s+\d+\s+of\s+\d+$`)

	titleHeadingRe  = regexp.MustCompile(`(?i)\bTITLE\s+OF\s+THE\s+INVENTION\b`)
	titleInlineCut  = regexp.MustCompile(`(?i)^.*?\bTITLE\s+OF\s+THE\s+INVENTION\b\s*[:\-]?\s*`)
	titleKVRe       = regexp.MustCompile(`(?im)^\s*Title\s*[:\-]\s*([A-Za-z][A-Za-z0-9 &/',.-]{5,})`)
	titleFormLineRe = regexp.MustCompile(`(?i)^FORM\s*\d+.*$`)

	bracketNumRe  = regexp.MustCompile(`^\[\d{1,4}\]\s*`)
	leadingNumRe  = regexp.MustCompile(`^\d+\s+`)
	titleStopRe   = regexp.MustCompile(`(?i)\b(NAME\s+AND\s+ADDRESS\s+OF\s+THE\s+APPLICANT|APPLICANTS?|NATIONALITY|ADDRESS|TECHNICAL\s+FIELD|FIELD\s+OF\s+INVENTION|BACKGROUND|OBJECT\s+OF\s+THE\s+INVENTION|SUMMARY\s+OF\s+THE\s+INVENTION|DETAILED\s+DESCRIPTION|CLAIMS?|ABSTRACT)\b`)
	nameAddrRe    = regexp.MustCompile(`(?i)NAME\s+AND\s+ADDRESS\s+OF\s+THE\s+APPLICANT`)
	nameHeaderRe  = regexp.MustCompile(`(?i)\bName\s+Nationality\s+Address\b`)
	followSpecRe  = regexp.MustCompile(`(?i)\bThe\s+following\s+specification\b`)
	applBlockStop = regexp.MustCompile(`(?i)\b(NAME\s+AND\s+ADDRESS|NATIONALITY|TITLE\s+OF\s+THE\s+INVENTION|FIELD\s+OF\s+INVENTION|BACKGROUND)\b`)
)

// Numbered-heading prefix used by CS drafts: "[0015]", "4.", "B." etc.
const numberedPrefix = `(?:\[\d{3,4}\]\s*)?(?:\d+\s*)?(?:[A-Z]\.\s*)?`

var (
	backgroundHeadRes = compileHeads(
		`BACKGROUND\s+OF\s+THE\s+INVENTION`,
		`BACKGROUND\s+OF\s+INVENTION`,
		`BACKGROUND`,
	)
	summaryHeadRes = compileHeads(
		`SUMMARY\s+OF\s+THE\s+INVENTION`,
		`SUMMARY\s+OF\s+INVENTION`,
		`SUMMARY`,
	)
	objectHeadRes = compileHeads(
		`OBJECT(?:S)?\s+OF\s+THE\s+INVENTION`,
		`OBJECTIVE(?:S)?\s+OF\s+THE\s+INVENTION`,
		`OBJECT\s+OF\s+INVENTION`,
	)
	technicalEffectHeadRes = compileHeads(
		`TECHNICAL\s+EFFECT(?:S)?(?:\s+OF\s+THE\s+INVENTION)?`,
		`TECHNICAL\s+ADVANTAGES?(?:\s+OF\s+THE\s+INVENTION)?`,
		`ADVANTAGES?\s+OF\s+THE\s+INVENTION`,
	)
	summaryStopRes = compileHeads(
		`BRIEF\s+DESCRIPTION(?:\s+OF\s+DRAWINGS?)?`,
		`DETAILED\s+DESCRIPTION(?:\s+OF\s+THE\s+INVENTION)?`,
		`DESCRIPTION`,
		`CLAIMS?`,
		`ABSTRACT`,
	)
)

func compileHeads(pats ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(pats))
	for _, p := range pats {
		res = append(res, regexp.MustCompile(`(?im)^\s*`+numberedPrefix+p+`\s*[:\-]?\s*$`))
	}
	return res
}

// TitleFromText finds the title via the "TITLE OF THE INVENTION" heading,
// accumulating following lines up to a stop heading or length cap, with an
// inline "Title:" row as the fallback.
func TitleFromText(text string) string {
	lines := strings.Split(text, "\n")

	for i, ln := range lines {
		if !titleHeadingRe.MatchString(ln) {
			continue
		}

		inline := cleanTitleLine(titleInlineCut.ReplaceAllString(ln, ""))
		if inline != "" && !titleStopRe.MatchString(inline) {
			return inline
		}

		var parts []string
		limit := i + 8
		if limit > len(lines) {
			limit = len(lines)
		}
		for _, nxt := range lines[i+1 : limit] {
			s := cleanTitleLine(nxt)
			if s == "" {
				if len(parts) > 0 {
					break
				}
				continue
			}
			if pageNoRe.MatchString(s) || titleFormLineRe.MatchString(s) {
				continue
			}
			if titleStopRe.MatchString(s) {
				break
			}
			parts = append(parts, s)
			if len(strings.Join(parts, " ")) >= 140 {
				break
			}
		}

		if title := strings.Trim(multiSpaceRe.ReplaceAllString(strings.Join(parts, " "), " "), " :-"); title != "" {
			return title
		}
	}

	if m := titleKVRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func cleanTitleLine(s string) string {
	x := strings.TrimSpace(s)
	x = cidRe.ReplaceAllString(x, "")
	x = bracketNumRe.ReplaceAllString(x, "")
	x = leadingNumRe.ReplaceAllString(x, "")
	x = multiSpaceRe.ReplaceAllString(x, " ")
	return strings.Trim(x, " :-")
}

// ApplicantFromText extracts the applicant name from Complete Specification
// text: the labeled-block extractor first, then the "NAME AND ADDRESS OF THE
// APPLICANT" scan, then the FER free-form heuristics. The CS applicant wins
// over the FER when both name one.
func ApplicantFromText(text string) string {
	if byLabel := fer.ApplicantFromLabeledBlock(text); byLabel != "" {
		return byLabel
	}

	lines := strings.Split(text, "\n")
	start := -1
	for i, ln := range lines {
		if nameAddrRe.MatchString(ln) {
			start = i
			break
		}
	}

	if start >= 0 {
		var parts []string
		limit := start + 20
		if limit > len(lines) {
			limit = len(lines)
		}
		for _, ln := range lines[start+1 : limit] {
			s := strings.Trim(cidRe.ReplaceAllString(ln, ""), " /:;-")
			if s == "" {
				if len(parts) > 0 {
					break
				}
				continue
			}
			if pageNoRe.MatchString(s) || nameHeaderRe.MatchString(s) {
				continue
			}
			if followSpecRe.MatchString(s) {
				break
			}
			if !hasLetterRe.MatchString(s) {
				continue
			}
			if applBlockStop.MatchString(s) {
				break
			}
			parts = append(parts, s)
			if fer.HasCorporateSuffix(strings.Join(parts, " ")) {
				break
			}
		}

		if candidate := fer.PickBestApplicantName(strings.Join(parts, " ")); candidate != "" {
			return candidate
		}
	}

	return fer.PickBestApplicantName(fer.ApplicantFromText(text))
}

// ExtractFromText slices the numbered CS sections out of extracted text.
func ExtractFromText(text string) *Sections {
	if strings.TrimSpace(text) == "" {
		return &Sections{}
	}

	backgroundStops := concat(objectHeadRes, summaryHeadRes, technicalEffectHeadRes, summaryStopRes)
	summaryStops := concat(technicalEffectHeadRes, summaryStopRes)
	technicalStops := concat(summaryStopRes, backgroundHeadRes, summaryHeadRes)

	return &Sections{
		Background:      extractSection(text, backgroundHeadRes, backgroundStops),
		Summary:         extractSection(text, summaryHeadRes, summaryStops),
		TechnicalEffect: extractSection(text, technicalEffectHeadRes, technicalStops),
	}
}

func concat(groups ...[]*regexp.Regexp) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// extractSection finds the earliest heading match and cuts at the earliest
// stop match after it.
func extractSection(text string, headings, stops []*regexp.Regexp) string {
	start := -1
	bodyStart := 0
	for _, re := range headings {
		if loc := re.FindStringIndex(text); loc != nil {
			if start < 0 || loc[0] < start {
				start = loc[0]
				bodyStart = loc[1]
			}
		}
	}
	if start < 0 {
		return ""
	}

	end := len(text)
	tail := text[bodyStart:]
	for _, re := range stops {
		if loc := re.FindStringIndex(tail); loc != nil && bodyStart+loc[0] < end {
			end = bodyStart + loc[0]
		}
	}

	return cleanSectionText(text[bodyStart:end])
}

var (
	pageFurnitureRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Page\s+\d+\s+of\s+\d+$`),
		regexp.MustCompile(`(?i)^\d+\s*\|\s*Page\b`),
		regexp.MustCompile(`(?i)^Page\s+\d+$`),
		regexp.MustCompile(`(?i)^THE\s+PATENT\s+OFFICE$`),
		regexp.MustCompile(`^[\[(]?\d{1,4}[\])]?$`),
	}
	paraNumRes = []*regexp.Regexp{
		regexp.MustCompile(`^\[\d{3,5}\]\s*`),
		regexp.MustCompile(`^\(?\d{1,3}\)?\s+`),
		regexp.MustCompile(`^\(?\d{1,3}\)?[.:]\s*`),
	}
	doubleSpaceRe = regexp.MustCompile(`\s{2,}`)
	tripleNLRe    = regexp.MustCompile(`\n{3,}`)
)

// cleanSectionText drops page furniture and paragraph-numbering noise while
// keeping paragraph breaks.
func cleanSectionText(section string) string {
	text := strings.ReplaceAll(section, "­", "")
	text = cidRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r", "\n")

	var cleaned []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(multiSpaceRe.ReplaceAllString(raw, " "))
		if line == "" {
			if len(cleaned) > 0 && cleaned[len(cleaned)-1] != "" {
				cleaned = append(cleaned, "")
			}
			continue
		}

		furniture := false
		for _, re := range pageFurnitureRes {
			if re.MatchString(line) {
				furniture = true
				break
			}
		}
		if furniture {
			continue
		}

		line = paraNumRes[0].ReplaceAllString(line, "")
		if m := paraNumRes[1].FindString(line); m != "" && len(line) > len(m) && isLetter(line[len(m)]) {
			line = line[len(m):]
		} else {
			line = paraNumRes[2].ReplaceAllString(line, "")
		}
		line = strings.TrimSpace(doubleSpaceRe.ReplaceAllString(line, " "))

		if line == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}

	out := strings.Trim(strings.Join(cleaned, "\n"), " \n\t:-")
	return tripleNLRe.ReplaceAllString(out, "\n\n")
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
