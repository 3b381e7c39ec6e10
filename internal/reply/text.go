package reply

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	hindiRe       = regexp.MustCompile(`[\x{0900}-\x{097F}]+`)
	multiSpaceRe  = regexp.MustCompile(`\s+`)
	doubleSpaceRe = regexp.MustCompile(`[ \t]{2,}`)

	spaceBeforePunctRe = regexp.MustCompile(`\s+([,.;:!?])`)
	openParenSpaceRe   = regexp.MustCompile(`\(\s+`)
	closeParenSpaceRe  = regexp.MustCompile(`\s+\)`)
	openBracketSpaceRe = regexp.MustCompile(`\[\s+`)
	closeBracketSpace  = regexp.MustCompile(`\s+\]`)
	spaceBeforeQuoteRe = regexp.MustCompile(`\s+"`)
	spaceAfterQuoteRe  = regexp.MustCompile(`"\s+`)

	dLabelRe      = regexp.MustCompile(`^D(\d{1,3})$`)
	dxSeparatorRe = regexp.MustCompile(`[,\n;/]+`)
	dxTokenRe     = regexp.MustCompile(`^D\d+$`)

	claimMarkerRe   = regexp.MustCompile(`(?m)^\s*(\d+)[\.\):]\s*`)
	claimPrefixRe   = regexp.MustCompile(`^\s*\d+[\.\):]\s+`)
	nonHindiCruftRe = regexp.MustCompile(`[\x{0900}-\x{097F}\s/\-()\[\].,;:0-9]`)
)

// StripHindi removes Devanagari runs while preserving the line layout of
// the bilingual FER text.
func StripHindi(text string) string {
	t := hindiRe.ReplaceAllString(text, "")
	var lines []string
	for _, ln := range strings.Split(t, "\n") {
		lines = append(lines, strings.TrimRight(doubleSpaceRe.ReplaceAllString(ln, " "), " \t"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// CompactClaimQuote flattens a claim block to one line with tight
// punctuation, suitable for quoting inside an argument paragraph.
func CompactClaimQuote(text string) string {
	t := StripHindi(text)
	t = strings.NewReplacer("\r", " ", "\n", " ").Replace(t)
	t = strings.TrimSpace(multiSpaceRe.ReplaceAllString(t, " "))
	t = spaceBeforePunctRe.ReplaceAllString(t, "$1")
	t = openParenSpaceRe.ReplaceAllString(t, "(")
	t = closeParenSpaceRe.ReplaceAllString(t, ")")
	t = openBracketSpaceRe.ReplaceAllString(t, "[")
	t = closeBracketSpace.ReplaceAllString(t, "]")
	t = spaceBeforeQuoteRe.ReplaceAllString(t, `"`)
	t = spaceAfterQuoteRe.ReplaceAllString(t, `"`)
	return t
}

// NormalizeDXRange cleans a user-entered prior-art range like "d1, d2".
func NormalizeDXRange(dxRange string) string {
	raw := strings.TrimSpace(dxRange)
	if raw == "" {
		return "D1-Dn"
	}

	var cleaned []string
	for _, tok := range dxSeparatorRe.Split(raw, -1) {
		s := strings.ToUpper(strings.TrimSpace(tok))
		if s == "" {
			continue
		}
		if dxTokenRe.MatchString(s) {
			cleaned = append(cleaned, s)
		} else {
			cleaned = append(cleaned, strings.TrimSpace(tok))
		}
	}
	if len(cleaned) == 0 {
		return "D1-Dn"
	}
	return strings.Join(cleaned, ", ")
}

// FormatDLabelRanges folds sorted D-labels into ranges: D1,D2,D3,D5 becomes
// "D1-D3, D5". Any non-D label falls back to a plain join.
func FormatDLabelRanges(labels []string) string {
	var nums []int
	for _, lbl := range labels {
		m := dLabelRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(lbl)))
		if m == nil {
			var kept []string
			for _, x := range labels {
				if x != "" {
					kept = append(kept, x)
				}
			}
			return strings.Join(kept, ", ")
		}
		n := 0
		for _, r := range m[1] {
			n = n*10 + int(r-'0')
		}
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return ""
	}

	sort.Ints(nums)
	uniq := nums[:1]
	for _, n := range nums[1:] {
		if n != uniq[len(uniq)-1] {
			uniq = append(uniq, n)
		}
	}

	var parts []string
	start, prev := uniq[0], uniq[0]
	flush := func() {
		if start == prev {
			parts = append(parts, fmt.Sprintf("D%d", start))
		} else {
			parts = append(parts, fmt.Sprintf("D%d-D%d", start, prev))
		}
	}
	for _, n := range uniq[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		flush()
		start, prev = n, n
	}
	flush()
	return strings.Join(parts, ", ")
}

// ResolveDXDisplay picks the display form of the cited-art set: actual
// labels win over the free-form range string.
func ResolveDXDisplay(priorLabels []string, dxRange string) string {
	var lbls []string
	for _, x := range priorLabels {
		if s := strings.ToUpper(strings.TrimSpace(x)); s != "" {
			lbls = append(lbls, s)
		}
	}
	if len(lbls) > 0 {
		if ranged := FormatDLabelRanges(lbls); ranged != "" {
			return ranged
		}
		return strings.Join(lbls, ", ")
	}
	return NormalizeDXRange(dxRange)
}

func completeSentence(text string) string {
	raw := strings.TrimSpace(multiSpaceRe.ReplaceAllString(text, " "))
	if raw == "" {
		return ""
	}
	switch raw[len(raw)-1] {
	case '.', '!', '?':
		return raw
	}
	return raw + "."
}

// numberedClaim keeps the claim block verbatim, numbering prefix included.
type numberedClaim struct {
	no   int
	text string
}

func extractNumberedClaims(amendedClaims string) []numberedClaim {
	text := amendedClaims
	if strings.TrimSpace(text) == "" {
		return nil
	}

	matches := claimMarkerRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var claims []numberedClaim
	for i, m := range matches {
		no := 0
		for _, r := range text[m[2]:m[3]] {
			no = no*10 + int(r-'0')
		}
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		block := strings.TrimSpace(text[m[0]:end])
		if block != "" {
			claims = append(claims, numberedClaim{no: no, text: block})
		}
	}
	return claims
}

func claimNumbersScopeLabel(claims []numberedClaim) string {
	var nums []int
	seen := map[int]bool{}
	for _, c := range claims {
		if c.no >= 1 && !seen[c.no] {
			seen[c.no] = true
			nums = append(nums, c.no)
		}
	}
	if len(nums) == 0 {
		return "[INSERT CLAIM NUMBER(S)]"
	}
	sort.Ints(nums)
	if len(nums) == 1 {
		return fmt.Sprintf("%d", nums[0])
	}
	return fmt.Sprintf("%d-%d", nums[0], nums[len(nums)-1])
}

// claimTextForTechnicalSections returns claim 1 without its numbering plus
// all claims with numbering stripped.
func claimTextForTechnicalSections(amendedClaims string) (string, []numberedClaim) {
	claims := extractNumberedClaims(amendedClaims)
	if len(claims) == 0 {
		raw := strings.TrimSpace(claimPrefixRe.ReplaceAllString(CompactClaimQuote(amendedClaims), ""))
		if raw != "" {
			return raw, []numberedClaim{{no: 1, text: raw}}
		}
		return "", nil
	}

	claim1Raw := claims[0].text
	for _, c := range claims {
		if c.no == 1 {
			claim1Raw = c.text
			break
		}
	}
	claim1 := strings.TrimSpace(claimPrefixRe.ReplaceAllString(CompactClaimQuote(claim1Raw), ""))

	var entries []numberedClaim
	for _, c := range claims {
		body := strings.TrimSpace(claimPrefixRe.ReplaceAllString(CompactClaimQuote(c.text), ""))
		if body != "" {
			entries = append(entries, numberedClaim{no: c.no, text: body})
		}
	}
	return claim1, entries
}

func claimsSingleParagraph(entries []numberedClaim) string {
	var bodies []string
	for _, c := range entries {
		body := strings.TrimSpace(multiSpaceRe.ReplaceAllString(c.text, " "))
		body = strings.TrimSpace(claimPrefixRe.ReplaceAllString(body, ""))
		if body != "" {
			bodies = append(bodies, body)
		}
	}
	if len(bodies) == 0 {
		return ""
	}
	merged := strings.Join(bodies, " ")
	merged = spaceBeforePunctRe.ReplaceAllString(merged, "$1")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(merged, " "))
}
