package fer

import (
	"regexp"
	"sort"
	"strings"
)

// Corporate and institutional suffixes end the interesting part of an
// applicant line; everything after them is address spillover.
const (
	corpSuffixPat = `(?:Private\s+Limited|Public\s+Limited|Pvt\.?\s*Ltd\.?|Limited|Ltd\.?|LLP|Inc\.?|Corporation|Corp\.?|Company)`
	instSuffixPat = `(?:University|Institute|College|Academy|School|Laborator(?:y|ies)|Centre|Center|Foundation|Trust|Society|Hospital)`
)

var (
	corpSuffixRe    = regexp.MustCompile(`(?i)\b` + corpSuffixPat + `\b`)
	instSuffixRe    = regexp.MustCompile(`(?i)` + instSuffixPat)
	hasLetterRe     = regexp.MustCompile(`[A-Za-z]`)
	hasDigitRe      = regexp.MustCompile(`[0-9]`)
	wordRe          = regexp.MustCompile(`[A-Za-z]+`)
	tokenRe         = regexp.MustCompile(`[A-Za-z0-9&().'/+-]+`)
	nonLowerRe      = regexp.MustCompile(`[^a-z]`)
	multiSpaceRe    = regexp.MustCompile(`\s+`)
	metaBoundaryRe  = regexp.MustCompile(`(?i)\b(Application|Date|Dispatch|Filing|Priority|Controller|Examiner|Title|Ref\.?\s*No|Letter\s*No|PCT|Patent\s+Office|Report|FER|Claim)\b`)
	addrKeywordRe   = regexp.MustCompile(`(?i)\b(?:road|street|lane|nagar|city|state|district|post|pin|postcode|building|floor|sector|circle|park|block|phase|enclave|miles?|karnataka|telangana|india)\b`)
	addrLabelRe     = regexp.MustCompile(`(?i)\b(?:Nationality|Address|Name)\b\s*[:\-]?`)
	longDigitRunRe  = regexp.MustCompile(`[0-9]{3,}`)
	applicantWordRe = regexp.MustCompile(`(?i)\bApplicant\b`)

	nameLabelPrefixRe = regexp.MustCompile(`(?i)^(?:Name\s+and\s+Address\s+of\s+the\s+Applicant|Applicants?\s*(?:\(\s*s\s*\))?)\s*[:\-]?\s*`)
	nameHeaderRowRe   = regexp.MustCompile(`(?i)^(?:Name\s+Nationality\s+Address)\s*`)
	parenSPrefixRe    = regexp.MustCompile(`(?i)^\(\s*s\s*\)\s*`)
	nameTailMetaRe    = regexp.MustCompile(`(?i)\s*(?:Request|Exam(?:ination)?|PCT|Date|Filing|Priority|Controller|Examiner)\b.*$`)
	nameTailAddrRe    = regexp.MustCompile(`(?i)\s*(?:Nationality|Address)\s*[:\-].*$`)
	nameTailSpecRe    = regexp.MustCompile(`(?i)\s*The\s+following\s+specification\b.*$`)

	applicantInlineRe = regexp.MustCompile(`(?i)\bApplicant\b(?:\s*/\s*[\x{0900}-\x{097F}]+)?\s*[:\-]?\s*(.*)$`)
	applicantLineRe   = regexp.MustCompile(`(?im)^\s*Applicant\s*[:\-]\s*(.+?)$`)
	applicantHindiRe  = regexp.MustCompile(`(?i)Applicant\s*/\s*[\x{0900}-\x{097F}]+\s*[:\-]?\s*(.+?)(?:\n|$)`)

	labeledStopsAlt = `\n\s*The\s+following\s+specification|\n\s*FIELD\s+OF\s+INVENTION\b|\n\s*TECHNICAL\s+FIELD\b|\n\s*BACKGROUND\b|\n\s*OBJECT(?:S|IVE)?\s+OF\s+THE\s+INVENTION\b|\z`
	labeledBlockRe  = regexp.MustCompile(`(?is)\bAPPLICANTS?\s*(?:\(\s*s\s*\))?\s*[:\-]?\s*(.+?)(?:` + labeledStopsAlt + `)`)
	labeledNameRe   = regexp.MustCompile(`(?is)\bName\s*[:\-]\s*(.+?)(?:\n\s*(?:Nationality|Address)\s*[:\-]|` + labeledStopsAlt + `)`)
	labeledApplRe   = regexp.MustCompile(`(?is)\bApplicants?\s*(?:\(\s*s\s*\))?\s*[:\-]?\s*(.+?)(?:\n\s*(?:Nationality|Address)\s*[:\-]?|` + labeledStopsAlt + `)`)
)

// addressStopWords mark tokens that belong to an address, not a name.
var addressStopWords = map[string]bool{
	"unit": true, "floor": true, "sector": true, "road": true, "street": true,
	"lane": true, "nagar": true, "building": true, "tower": true, "towers": true,
	"pin": true, "postcode": true, "state": true, "district": true, "city": true,
	"village": true, "plot": true, "door": true, "flat": true, "apartment": true,
	"block": true, "phase": true, "extension": true, "enclave": true,
	"no": true, "number": true,
}

var institutionStopWords = func() map[string]bool {
	m := map[string]bool{
		"name": true, "nationality": true, "address": true, "indian": true,
		"post": true, "mile": true,
		"bengaluru": true, "bangalore": true, "hyderabad": true, "chennai": true,
		"karnataka": true, "telangana": true, "india": true,
	}
	for k := range addressStopWords {
		m[k] = true
	}
	return m
}()

// HasCorporateSuffix reports whether s ends in (or contains) a corporate
// entity suffix such as "Private Limited" or "LLP".
func HasCorporateSuffix(s string) bool {
	return corpSuffixRe.MatchString(s)
}

// LooksLikeMetaBoundary reports whether a line belongs to FER metadata
// rather than a continuing applicant name.
func LooksLikeMetaBoundary(line string) bool {
	return metaBoundaryRe.MatchString(line)
}

// NormalizeApplicantName strips labels, address tails and punctuation from a
// raw applicant capture. Returns "" when nothing name-like remains.
func NormalizeApplicantName(text string) string {
	s := strings.Trim(strings.ReplaceAll(text, "|", " "), " /:;,.-|")
	if s == "" {
		return ""
	}
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = cidRe.ReplaceAllString(s, "")
	s = nameLabelPrefixRe.ReplaceAllString(s, "")
	s = parenSPrefixRe.ReplaceAllString(s, "")
	s = nameHeaderRowRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(nameTailMetaRe.ReplaceAllString(s, ""))
	s = strings.TrimSpace(nameTailAddrRe.ReplaceAllString(s, ""))
	s = strings.TrimSpace(nameTailSpecRe.ReplaceAllString(s, ""))

	if loc := corpSuffixRe.FindStringIndex(s); loc != nil {
		s = strings.Trim(s[:loc[1]], " ,;.")
	}

	s = strings.Trim(s, " ,;.|")
	if !hasLetterRe.MatchString(s) {
		return ""
	}
	return s
}

func looksLikeAddressOrMeta(text string) bool {
	if text == "" {
		return false
	}
	return addrLabelRe.MatchString(text) ||
		addrKeywordRe.MatchString(text) ||
		longDigitRunRe.MatchString(text)
}

// PickBestApplicantName turns a raw captured block into the most plausible
// applicant name, preferring compact normalized phrases and falling back to
// corporate- and institutional-suffix extraction.
func PickBestApplicantName(raw string) string {
	normalized := NormalizeApplicantName(raw)
	if normalized != "" {
		words := wordRe.FindAllString(normalized, -1)
		if len(words) > 0 && len(words) <= 14 && !looksLikeAddressOrMeta(normalized) {
			return normalized
		}
	}

	if c := extractCompanyName(raw); c != "" {
		return c
	}
	if c := extractInstitutionName(raw); c != "" {
		return c
	}
	return normalized
}

// keepPrefixTokens walks backwards from a suffix match collecting the name
// tokens in front of it, stopping at address words and digit runs.
func keepPrefixTokens(prefix string, stopWords map[string]bool, max int) []string {
	tokens := tokenRe.FindAllString(prefix, -1)
	var kept []string
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		low := strings.Trim(strings.ToLower(tok), ".,")
		lowAlpha := nonLowerRe.ReplaceAllString(low, "")
		if hasDigitRe.MatchString(tok) {
			if len(kept) > 0 {
				break
			}
			continue
		}
		stopped := stopWords[low]
		if !stopped {
			for sw := range stopWords {
				if lowAlpha != "" && strings.HasPrefix(lowAlpha, sw) {
					stopped = true
					break
				}
			}
		}
		if stopped {
			if len(kept) > 0 {
				break
			}
			continue
		}
		kept = append(kept, strings.Trim(tok, ".,"))
		if len(kept) >= max {
			break
		}
	}
	// kept is reversed
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}

var leadingInitialsRe = regexp.MustCompile(`^(?:[A-Z]{1,2}\s+){1,2}`)

func extractCompanyName(block string) string {
	s := strings.TrimSpace(multiSpaceRe.ReplaceAllString(block, " "))
	if s == "" {
		return ""
	}

	firstToken := ""
	if m := regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9&'-]+)`).FindStringSubmatch(s); m != nil {
		firstToken = m[1]
	}

	type scored struct {
		score int
		name  string
	}
	var candidates []scored

	for _, loc := range regexp.MustCompile(`(?i)`+corpSuffixPat).FindAllStringIndex(s, -1) {
		kept := keepPrefixTokens(s[:loc[0]], addressStopWords, 10)
		if len(kept) == 0 {
			continue
		}
		cand := strings.Join(kept, " ") + " " + s[loc[0]:loc[1]]
		cand = strings.Trim(multiSpaceRe.ReplaceAllString(cand, " "), " ,;.")
		cand = strings.TrimSpace(leadingInitialsRe.ReplaceAllString(cand, ""))

		words := wordRe.FindAllString(cand, -1)
		if len(words) < 2 {
			continue
		}
		score := len(words) * 3
		for _, w := range words {
			if addressStopWords[strings.ToLower(w)] {
				score -= 4
			}
		}
		if hasDigitRe.MatchString(cand) {
			score -= 6
		}
		candidates = append(candidates, scored{score, cand})
	}

	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	best := candidates[0].name

	// Reattach a leading brand token when OCR dropped it near the suffix.
	if firstToken != "" && !strings.Contains(strings.ToLower(best), strings.ToLower(firstToken)) {
		if len(strings.Fields(best)) <= 6 {
			best = firstToken + " " + best
		}
	}

	return NormalizeApplicantName(best)
}

func extractInstitutionName(block string) string {
	s := strings.TrimSpace(multiSpaceRe.ReplaceAllString(block, " "))
	if s == "" {
		return ""
	}

	seen := map[string]bool{}
	var candidates []string
	for _, loc := range instSuffixRe.FindAllStringIndex(s, -1) {
		kept := keepPrefixTokens(s[:loc[0]], institutionStopWords, 8)
		if len(kept) == 0 {
			continue
		}
		cand := NormalizeApplicantName(strings.Join(kept, " ") + " " + s[loc[0]:loc[1]])
		if cand != "" && !seen[cand] {
			seen[cand] = true
			candidates = append(candidates, cand)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	// Prefer the shortest clean institutional name to avoid address spillover.
	sort.SliceStable(candidates, func(i, j int) bool {
		wi, wj := len(strings.Fields(candidates[i])), len(strings.Fields(candidates[j]))
		if wi != wj {
			return wi < wj
		}
		return len(candidates[i]) < len(candidates[j])
	})
	return candidates[0]
}

// ApplicantFromLabeledBlock extracts the applicant from an
// "APPLICANT(S): Name: ... Nationality: ..." style block, as found in
// Complete Specification front pages.
func ApplicantFromLabeledBlock(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	block := text
	if m := labeledBlockRe.FindStringSubmatch(text); m != nil {
		block = m[1]
	}

	var rawName string
	if m := labeledNameRe.FindStringSubmatch(block); m != nil {
		rawName = m[1]
	} else if m := labeledApplRe.FindStringSubmatch(block); m != nil {
		rawName = m[1]
	}
	if rawName == "" {
		return ""
	}

	rawName = strings.Trim(multiSpaceRe.ReplaceAllString(strings.ReplaceAll(rawName, "\n", " "), " "), " ,;:-")
	if rawName == "" {
		return ""
	}

	candidate := PickBestApplicantName(rawName)
	if candidate == "" || !hasLetterRe.MatchString(candidate) {
		return ""
	}
	return candidate
}

// ApplicantFromText finds the applicant from free-form FER text using
// "Applicant" labeled lines, accumulating continuation lines up to a
// metadata boundary or a corporate suffix.
func ApplicantFromText(text string) string {
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		ln = strings.TrimSpace(ln)
		if !applicantWordRe.MatchString(ln) {
			continue
		}

		var parts []string
		if m := applicantInlineRe.FindStringSubmatch(ln); m != nil && strings.TrimSpace(m[1]) != "" {
			parts = append(parts, strings.TrimSpace(m[1]))
		}

		limit := i + 6
		if limit > len(lines) {
			limit = len(lines)
		}
		for _, nxt := range lines[i+1 : limit] {
			s := strings.Trim(nxt, " /:;-")
			if s == "" {
				if len(parts) > 0 {
					break
				}
				continue
			}
			if !hasLetterRe.MatchString(s) {
				continue
			}
			if LooksLikeMetaBoundary(s) {
				break
			}
			parts = append(parts, s)
			if HasCorporateSuffix(strings.Join(parts, " ")) {
				break
			}
		}

		candidate := NormalizeApplicantName(strings.Join(parts, " "))
		if len(candidate) > 3 {
			return candidate
		}
	}

	for _, re := range []*regexp.Regexp{applicantLineRe, applicantHindiRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			candidate := NormalizeApplicantName(m[1])
			if len(candidate) > 3 {
				return candidate
			}
		}
	}

	return ""
}
