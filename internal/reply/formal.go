package reply

import (
	"regexp"
	"strings"
)

// FormalRow is one row of the FER's PART-III formal-requirements table.
type FormalRow struct {
	Category string `json:"category"`
	Remark   string `json:"remark"`
}

type formalCategory struct {
	name string
	re   *regexp.Regexp
}

const formalLinePrefix = `^(?:In\s+the\s+)?(?:Whether\s+GPA,\s*SPA,)?\s*`

var formalCategories = []formalCategory{
	{"Form 28", regexp.MustCompile(`(?i)` + formalLinePrefix + `Form\s*28\b`)},
	{"Form 18", regexp.MustCompile(`(?i)` + formalLinePrefix + `Form\s*18\b`)},
	{"Form 13", regexp.MustCompile(`(?i)` + formalLinePrefix + `Form\s*13\b`)},
	{"Form 9", regexp.MustCompile(`(?i)` + formalLinePrefix + `Form\s*9\b`)},
	{"Form 8", regexp.MustCompile(`(?i)` + formalLinePrefix + `Form\s*8\b`)},
	{"Form 5", regexp.MustCompile(`(?i)` + formalLinePrefix + `Form\s*5\b`)},
	{"Form 3", regexp.MustCompile(`(?i)` + formalLinePrefix + `Form\s*3\b`)},
	{"Form 2", regexp.MustCompile(`(?i)` + formalLinePrefix + `Form\s*2\b`)},
	{"Form 1", regexp.MustCompile(`(?i)` + formalLinePrefix + `Form\s*1\b`)},
	{"Stamp Duty", regexp.MustCompile(`(?i)` + formalLinePrefix + `Stamp\s+Duty`)},
	{"Power of Attorney", regexp.MustCompile(`(?i)` + formalLinePrefix + `Power\s+of\s+Attorney`)},
	{"Format of Specification", regexp.MustCompile(`(?i)` + formalLinePrefix + `(?:Format\s+of\s+Specification|\(rule\s*13\))`)},
	{"Format of Drawings", regexp.MustCompile(`(?i)` + formalLinePrefix + `(?:Format\s+of\s+Drawings|In drawings|drawings sheet|section\s*78\(2\))`)},
	{"Other Deficiencies", regexp.MustCompile(`(?i)` + formalLinePrefix + `(?:Other\s+Deficiencies|fails\s+to\s+comply)`)},
}

var (
	formHintRes = map[string]*regexp.Regexp{
		"Form 28": regexp.MustCompile(`(?i)\bForm\s*28\b`),
		"Form 18": regexp.MustCompile(`(?i)\bForm\s*18\b`),
		"Form 13": regexp.MustCompile(`(?i)\bForm\s*13\b`),
		"Form 9":  regexp.MustCompile(`(?i)\bForm\s*9\b`),
		"Form 8":  regexp.MustCompile(`(?i)\bForm\s*8\b`),
		"Form 5":  regexp.MustCompile(`(?i)\bForm\s*5\b`),
		"Form 3":  regexp.MustCompile(`(?i)\bForm\s*3\b`),
	}
	form2Re       = regexp.MustCompile(`(?i)\bForm\s*2\b`)
	form2HintRe   = regexp.MustCompile(`(?i)specification|format|provisional|complete`)
	form1Re       = regexp.MustCompile(`(?i)\bForm\s*1\b`)
	form1HintRe   = regexp.MustCompile(`(?i)category|serial number|applicant`)
	strongFormSeq = []string{"Form 28", "Form 18", "Form 13", "Form 9", "Form 8", "Form 5", "Form 3"}

	formalHeaderRe  = regexp.MustCompile(`(?i)(?:Objections?)[^\n]*?Remarks?`)
	pageFurnitureRe = regexp.MustCompile(`(?i)\n?Page\s+\d+\s+of\s+\d+\s*\n?THE\s+PATENT\s+OFFICE\s*\n?`)
	partIVTailRe    = regexp.MustCompile(`(?is)\bPART\s*[-–]\s*IV\b.*$`)
	docsOnRecordRe  = regexp.MustCompile(`(?i)^DOCUMENTS\s+ON\s+RECORD`)
	partIVLineRe    = regexp.MustCompile(`(?i)^PART\s*[-–]\s*IV`)
	leadingSlashRe  = regexp.MustCompile(`^[/|]+`)

	drawnToActRe  = regexp.MustCompile(`(?i)Applicant attention is drawn to of the Patents Act\.?`)
	toOfActRe     = regexp.MustCompile(`(?i)\bto of the Patents Act\.?`)
	partIVStubRe  = regexp.MustCompile(`(?i)\s*-\s*IV\s*:?\s*/?\s*$`)
	sentenceSepRe = regexp.MustCompile(`([.!?])\s+`)
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

type splitCue struct {
	category string
	re       *regexp.Regexp
}

var splitCues = []splitCue{
	{"Form 1", regexp.MustCompile(`(?i)\bWhile filing the instant application,\s*in Form\s*1\b`)},
	{"Form 2", regexp.MustCompile(`(?i)\bIn Form\s*2\b`)},
	{"Form 28", regexp.MustCompile(`(?i)\bApplicant is required to submit Form 28\b`)},
}

func categoryFromFormalLine(line string) string {
	s := strings.Trim(line, " /:-")
	if s == "" {
		return ""
	}

	// Strong line-level cues first.
	for _, cat := range strongFormSeq {
		if formHintRes[cat].MatchString(s) {
			return cat
		}
	}
	if form2Re.MatchString(s) && form2HintRe.MatchString(s) {
		return "Form 2"
	}
	if form1Re.MatchString(s) && form1HintRe.MatchString(s) {
		return "Form 1"
	}

	for _, fc := range formalCategories {
		if fc.re.MatchString(s) {
			return fc.name
		}
	}
	return ""
}

func cleanFormalLine(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimSpace(leadingSlashRe.ReplaceAllString(s, ""))
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(s, " "))
}

// splitSentences cuts after terminal punctuation followed by whitespace,
// keeping the punctuation with its sentence.
func splitSentences(t string) []string {
	var parts []string
	prev := 0
	for _, m := range sentenceSepRe.FindAllStringSubmatchIndex(t, -1) {
		parts = append(parts, strings.TrimSpace(t[prev:m[3]]))
		prev = m[1]
	}
	if prev < len(t) {
		parts = append(parts, strings.TrimSpace(t[prev:]))
	}
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cleanFormalRemark repairs OCR fragments common in FER formal tables and
// deduplicates repeated sentences.
func cleanFormalRemark(remark string) string {
	t := strings.TrimSpace(multiSpaceRe.ReplaceAllString(remark, " "))
	if t == "" {
		return ""
	}

	t = strings.ReplaceAll(t, `words ""`, `words "We Claim"`)
	t = drawnToActRe.ReplaceAllString(t, "Applicant attention is drawn to section 78(2) of the Patents Act.")
	t = toOfActRe.ReplaceAllString(t, "to section 78(2) of the Patents Act.")
	t = strings.TrimSpace(multiSpaceRe.ReplaceAllString(t, " "))
	t = strings.TrimSpace(partIVStubRe.ReplaceAllString(t, ""))

	seen := map[string]bool{}
	var dedup []string
	for _, p := range splitSentences(t) {
		key := nonAlnumRe.ReplaceAllString(strings.ToLower(p), "")
		if key != "" && !seen[key] {
			seen[key] = true
			dedup = append(dedup, p)
		}
	}
	if len(dedup) > 0 {
		t = strings.Join(dedup, " ")
	}
	return t
}

// splitMixedRows breaks a remark that glued two table rows together into
// its own categories.
func splitMixedRows(rows []FormalRow) []FormalRow {
	var out []FormalRow
	for _, row := range rows {
		split := false
		for _, cue := range splitCues {
			m := cue.re.FindStringIndex(row.Remark)
			if m == nil || cue.category == row.Category {
				continue
			}
			head := cleanFormalRemark(strings.TrimSpace(row.Remark[:m[0]]))
			tail := cleanFormalRemark(strings.TrimSpace(row.Remark[m[0]:]))
			if head != "" {
				out = append(out, FormalRow{Category: row.Category, Remark: head})
			}
			if tail != "" {
				out = append(out, FormalRow{Category: cue.category, Remark: tail})
			}
			split = true
			break
		}
		if !split {
			out = append(out, FormalRow{Category: row.Category, Remark: cleanFormalRemark(row.Remark)})
		}
	}
	return out
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ParseFormalRows turns the FER's PART-III text into (category, remark)
// table rows. The source is a flattened two-column table, so rows are
// reconstructed by category cues.
func ParseFormalRows(text string) []FormalRow {
	if text == "" {
		return nil
	}

	tableText := text
	if m := formalHeaderRe.FindStringIndex(text); m != nil {
		tableText = strings.TrimSpace(text[m[1]:])
	}
	tableText = pageFurnitureRe.ReplaceAllString(tableText, "\n")
	tableText = strings.TrimSpace(partIVTailRe.ReplaceAllString(tableText, ""))

	var lines []string
	for _, ln := range strings.Split(tableText, "\n") {
		if s := cleanFormalLine(ln); s != "" && len(s) > 2 {
			lines = append(lines, s)
		}
	}

	var rows []FormalRow
	currentCat := ""
	var currentParts []string

	flush := func() {
		if currentCat == "" {
			currentParts = nil
			return
		}
		remark := strings.TrimSpace(multiSpaceRe.ReplaceAllString(strings.Join(currentParts, " "), " "))
		if remark != "" {
			rows = append(rows, FormalRow{Category: currentCat, Remark: truncateRunes(cleanFormalRemark(remark), 1200)})
		}
		currentCat = ""
		currentParts = nil
	}

	for _, ln := range lines {
		if docsOnRecordRe.MatchString(ln) || partIVLineRe.MatchString(ln) {
			break
		}

		if cat := categoryFromFormalLine(ln); cat != "" {
			flush()
			currentCat = cat
			stripped := ln
			for _, fc := range formalCategories {
				if fc.name == cat {
					stripped = fc.re.ReplaceAllString(stripped, "")
					break
				}
			}
			if stripped = strings.Trim(stripped, " :-"); stripped != "" {
				currentParts = append(currentParts, stripped)
			}
			continue
		}

		if currentCat != "" {
			currentParts = append(currentParts, ln)
		}
	}
	flush()

	rows = splitMixedRows(rows)

	// Merge duplicate categories, preserving discovery order.
	merged := map[string][]string{}
	var order []string
	for _, row := range rows {
		if _, ok := merged[row.Category]; !ok {
			order = append(order, row.Category)
		}
		merged[row.Category] = append(merged[row.Category], row.Remark)
	}

	var final []FormalRow
	for _, cat := range order {
		joined := strings.TrimSpace(multiSpaceRe.ReplaceAllString(strings.Join(merged[cat], " "), " "))
		if joined != "" {
			final = append(final, FormalRow{Category: cat, Remark: truncateRunes(joined, 900)})
		}
	}

	if len(final) == 0 && tableText != "" {
		return []FormalRow{{Category: "Formal Requirements", Remark: truncateRunes(tableText, 1200)}}
	}
	return final
}
