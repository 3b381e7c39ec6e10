package fer

import (
	"regexp"
	"sort"
	"strings"
)

// Canonical objection headings after normalization.
const (
	HeadingNovelty          = "NOVELTY"
	HeadingInventiveStep    = "INVENTIVE STEP"
	HeadingNonPatentability = "NON PATENTABILITY"
	HeadingRegardingClaims  = "REGARDING CLAIMS"
	HeadingSufficiency      = "SUFFICIENCY OF DISCLOSURE"
	HeadingClarity          = "CLARITY AND CONCISENESS"
	HeadingDefinitiveness   = "DEFINITIVENESS"
	HeadingScope            = "SCOPE"
	HeadingOthers           = "OTHERS REQUIREMENTS"
)

const headingPat = `(?P<head>NOVELTY|INVENTIVE STEP|NON[\s\-]PATENTABILITY|REGARDING CLAIMS|` +
	`SUFFICIENCY OF DISCLOSURE|CLARITY AND CONCISENESS|DEFINITIVENESS|` +
	`SCOPE(?:\s+OF(?:\s+THE)?\s+CLAIMS?)?|OTHERS?\s+REQUIREMENTS?)`

var (
	objSplitStrictRe   = regexp.MustCompile(`(?im)^\s*(?:\(\d+\)\.)?\s*/?\s*` + headingPat + `\s*[:\-]?\s*$`)
	objSplitFallbackRe = regexp.MustCompile(`(?i)` + headingPat + `\s*:`)
	formalBoundaryRe   = regexp.MustCompile(`(?i)(?:PART\s*[-–]\s*III|FORMAL\s+REQUIREMENTS)`)
	scopeHeadingRe     = regexp.MustCompile(`(?i)^SCOPE(?:\s+OF(?:\s+THE)?\s+CLAIMS?)?$`)

	priorArtCiteRe = regexp.MustCompile(`(?i)\b(D\d{1,3})\s*[:\-]\s*([A-Z]{2}[A-Z0-9]{4,})\s*(?:\(|Pub\s*Date\s*[:\-]?\s*)?([0-9]{2}[-/][0-9]{2}[-/][0-9]{4})`)

	sectionRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d+\(\d+\)\([a-z]{1,2}\)|\d+\([a-z]\)|\d+\(\d+\))`),
		regexp.MustCompile(`(?i)\b(3\([a-z]\))`),
	}
	ruleRefRe = regexp.MustCompile(`(?i)\bRule\s*\d+[A-Z]?\s*\(?\d*\)?`)

	claimsParenRe = regexp.MustCompile(`(?i)Claim\(s\)\s*\(([^)]+)\)`)
	claimsPlainRe = regexp.MustCompile(`(?i)Claims?\s*[:\-]?\s*([0-9,\-\s]+)`)
)

// NormalizeHeading canonicalizes an objection heading variant.
func NormalizeHeading(raw string) string {
	h := strings.TrimSpace(multiSpaceRe.ReplaceAllString(strings.ToUpper(raw), " "))
	h = strings.ReplaceAll(h, "NON-PATENTABILITY", HeadingNonPatentability)
	if scopeHeadingRe.MatchString(h) {
		return HeadingScope
	}
	if strings.HasPrefix(h, "OTHER REQUIREMENT") || strings.HasPrefix(h, "OTHERS REQUIREMENT") {
		return HeadingOthers
	}
	return h
}

// headingBody is one split objection before numbering.
type headingBody struct {
	heading string
	body    string
}

// splitObjections splits detailed-observations text into (heading, body)
// pairs. Headings on their own line win; an inline "HEADING:" scan is the
// fallback for flattened scans. Text past PART-III is never considered.
func splitObjections(text string) []headingBody {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil
	}

	if m := formalBoundaryRe.FindStringIndex(t); m != nil {
		t = t[:m[0]]
	}

	matches := objSplitStrictRe.FindAllStringSubmatchIndex(t, -1)
	re := objSplitStrictRe
	if len(matches) == 0 {
		matches = objSplitFallbackRe.FindAllStringSubmatchIndex(t, -1)
		re = objSplitFallbackRe
	}
	if len(matches) == 0 {
		return nil
	}

	headIdx := re.SubexpIndex("head")
	var parts []headingBody
	for i, m := range matches {
		head := NormalizeHeading(t[m[2*headIdx]:m[2*headIdx+1]])
		start := m[1]
		end := len(t)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(t[start:end])
		if body != "" {
			parts = append(parts, headingBody{heading: head, body: body})
		}
	}
	return parts
}

// sectionsFromText collects statute references like 2(1)(j), 3(k), 10(4)(c)
// and Rule 24B mentioned in an objection body, sorted and deduplicated.
func sectionsFromText(body string) []string {
	seen := map[string]bool{}
	for _, re := range sectionRes {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			seen[m[1]] = true
		}
	}
	for _, m := range ruleRefRe.FindAllString(body, -1) {
		seen[strings.TrimSpace(m)] = true
	}

	secs := make([]string, 0, len(seen))
	for s := range seen {
		secs = append(secs, s)
	}
	sort.Strings(secs)
	return secs
}

// extractPriorArts finds cited documents in "D1: US1234567A (01-01-2020)"
// form, deduplicated by label and sorted.
func extractPriorArts(text string) []PriorArt {
	arts := map[string]PriorArt{}
	for _, m := range priorArtCiteRe.FindAllStringSubmatch(text, -1) {
		label := strings.ToUpper(m[1])
		if _, ok := arts[label]; !ok {
			arts[label] = PriorArt{Label: label, DocNo: m[2], PubDate: m[3]}
		}
	}

	out := make([]PriorArt, 0, len(arts))
	for _, a := range arts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// claimsFromBody pulls the claim references an objection mentions.
func claimsFromBody(body string) string {
	if m := claimsParenRe.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := claimsPlainRe.FindStringSubmatch(body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
