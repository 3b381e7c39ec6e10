// Package priorart extracts a usable abstract from cited prior-art
// documents, typically Espacenet printouts or patent front pages. These
// PDFs are noisy, so extraction is heading-based with a paragraph-scoring
// fallback.
package priorart

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/patentdesk/fer-reply/internal/docext"
)

// Abstracts past this length are cut at a sentence boundary. Kept high so
// multi-page abstracts survive intact.
const maxAbstractWords = 1200

const abstractScanPages = 8

var (
	labelRe = regexp.MustCompile(`^D\d{1,3}$`)

	cidRe       = regexp.MustCompile(`\(cid:\d+\)`)
	urlRe       = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
	bannerRe    = regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/\d{2,4},?\s+\d{1,2}:\d{2}\s*(?:AM|PM)\s+Espacenet\s*[–-]\s*search\s+results\b`)
	espacenetRe = regexp.MustCompile(`(?i)\bEspacenet\s*[–-]\s*search\s+results\b`)
	searchResRe = regexp.MustCompile(`(?i)\bsearch\s+results\b`)
	hyphenNLRe  = regexp.MustCompile(`(\w)-\s*\n\s*(\w)`)

	multiSpaceRe  = regexp.MustCompile(`\s+`)
	doubleSpaceRe = regexp.MustCompile(`[ \t]{2,}`)
	wordTokenRe   = regexp.MustCompile(`\S+`)
	letterRe      = regexp.MustCompile(`[A-Za-z]`)
	alphaWordRe   = regexp.MustCompile(`[A-Za-z]+`)
	lastWordRe    = regexp.MustCompile(`\b\w+\b`)

	noiseRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bsearch\s+results\b`),
		regexp.MustCompile(`(?i)\bEspacenet\b`),
		regexp.MustCompile(`(?i)https?://|www\.|espacenet\.com`),
		regexp.MustCompile(`(?i)^Page\s+\d+\s+of\s+\d+$`),
		regexp.MustCompile(`^\[\d{1,4}\]$`),
		regexp.MustCompile(`^\d{1,4}$`),
		regexp.MustCompile(`^[A-Z]{1,3}\d{5,}[A-Z0-9]*$`),
		regexp.MustCompile(`^\d{2,4}[/-]\d{2}[/-]\d{2,4}$`),
		regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:AM|PM)\b`),
		regexp.MustCompile(`(?i)^THE\s+PATENT\s+OFFICE$`),
		regexp.MustCompile(`(?i)\bDocument\s+generated\s+on\b`),
	}

	stopHeadingRe = regexp.MustCompile(`(?i)^(?:what\s+is\s+claimed|claims?|we\s+claim|claim\s*\d+|` +
		`detailed\s+description|description(?:\s+of\s+the\s+drawings?)?|` +
		`brief\s+description(?:\s+of\s+the\s+drawings?)?|` +
		`technical\s+field|field\s+of\s+the\s+invention|background(?:\s+of\s+the\s+invention)?|` +
		`summary(?:\s+of\s+the\s+invention)?|examples?|drawings?)\b`)

	numberedHeadingRe = regexp.MustCompile(`^\d+[\.\)]\s+[A-Z][A-Za-z ]{2,80}$`)

	abstractHeadRe   = regexp.MustCompile(`(?i)^(?:\[\d{1,3}\]\s*)?abstract(?:\s+of\s+the\s+disclosure)?\b\s*[:\-]?\s*(.*)$`)
	abstractInlineRe = regexp.MustCompile(`(?i)\babstract\s*[:\-]\s*(.+)$`)

	enumTailRe  = regexp.MustCompile(`\(\d{2,4}\)`)
	enumTail2Re = regexp.MustCompile(`;\s*\([A-Za-z0-9,]+\)\s*[A-Za-z]`)
	residueRe   = regexp.MustCompile(`(?:\s+[A-Za-z])+$`)
	sentEndRe   = regexp.MustCompile(`[.!?](?:\s|$)`)
	whereinRe   = regexp.MustCompile(`\bwherein\b`)
	comprisingRe = regexp.MustCompile(`\bcomprising\b`)
)

var headingStarts = []string{
	"abstract",
	"technical field",
	"field of the invention",
	"background",
	"summary",
	"brief description",
	"detailed description",
	"claims",
	"what is claimed",
	"drawings",
	"examples",
}

// NormalizeLabel canonicalizes a user-supplied prior-art label, falling
// back to the positional D-number.
func NormalizeLabel(label string, index int) string {
	raw := strings.ToUpper(strings.TrimSpace(label))
	if labelRe.MatchString(raw) {
		return raw
	}
	return fmt.Sprintf("D%d", index)
}

// IsScanned reports whether the PDF at path has no usable text layer.
func IsScanned(path string) (bool, error) {
	info, err := docext.AnalyzePDF(path)
	if err != nil {
		return false, err
	}
	return info.ContentType == docext.ContentTypeScanned ||
		info.ContentType == docext.ContentTypeNone, nil
}

// ExtractAbstract pulls the abstract from a prior-art PDF. Only the first
// few pages matter; abstracts live on the front page of patent documents.
func ExtractAbstract(path string) (string, error) {
	text, err := docext.ExtractPDFPages(path, abstractScanPages)
	if err != nil {
		return "", fmt.Errorf("extracting prior-art text: %w", err)
	}
	return AbstractFromText(text), nil
}

// AbstractFromText applies the abstract heuristics to extracted text.
func AbstractFromText(text string) string {
	lines := buildLines(text)
	if len(lines) == 0 {
		return ""
	}

	abstract := extractHeadingBased(lines)
	if abstract == "" {
		abstract = extractBestParagraph(lines)
	}
	if abstract == "" {
		var nonEmpty []string
		for _, ln := range lines {
			if ln != "" {
				nonEmpty = append(nonEmpty, ln)
			}
		}
		abstract = trimWords(strings.Join(nonEmpty, " "), 160)
	}

	return CleanText(abstract)
}

// CleanText strips Espacenet banners, URLs and page noise, re-joins
// hyphenated line breaks and re-flows paragraphs.
func CleanText(text string) string {
	t := strings.ReplaceAll(text, "­", "")
	t = cidRe.ReplaceAllString(t, "")
	t = urlRe.ReplaceAllString(t, "")
	t = bannerRe.ReplaceAllString(t, " ")
	t = espacenetRe.ReplaceAllString(t, " ")
	t = searchResRe.ReplaceAllString(t, " ")
	t = hyphenNLRe.ReplaceAllString(t, "$1$2")

	var lines []string
	for _, raw := range strings.Split(t, "\n") {
		line := normalizeLine(raw)
		if line == "" {
			if len(lines) > 0 && lines[len(lines)-1] != "" {
				lines = append(lines, "")
			}
			continue
		}
		if isNoiseLine(line) {
			continue
		}
		lines = append(lines, line)
	}

	var paragraphs []string
	var cur []string
	for _, line := range lines {
		if line == "" {
			if len(cur) > 0 {
				paragraphs = append(paragraphs, strings.TrimSpace(strings.Join(cur, " ")))
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		paragraphs = append(paragraphs, strings.TrimSpace(strings.Join(cur, " ")))
	}

	var kept []string
	for _, p := range paragraphs {
		if p != "" {
			kept = append(kept, p)
		}
	}
	cleaned := strings.TrimSpace(doubleSpaceRe.ReplaceAllString(strings.Join(kept, "\n\n"), " "))
	return polishAbstractTail(cleaned)
}

func normalizeLine(line string) string {
	return strings.Trim(multiSpaceRe.ReplaceAllString(strings.TrimSpace(line), " "), " \t")
}

func isNoiseLine(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return true
	}
	for _, re := range noiseRes {
		if re.MatchString(s) {
			return true
		}
	}
	if len(letterRe.FindAllString(s, -1)) < 2 && len(s) < 8 {
		return true
	}
	return false
}

func isSectionHeading(line string) bool {
	s := strings.Trim(line, " :-")
	if s == "" {
		return false
	}

	lower := strings.ToLower(s)
	for _, h := range headingStarts {
		if strings.HasPrefix(lower, h) {
			return true
		}
	}

	if len(s) <= 85 && s == strings.ToUpper(s) {
		words := alphaWordRe.FindAllString(s, -1)
		if len(words) >= 1 && len(words) <= 12 {
			return true
		}
	}

	return numberedHeadingRe.MatchString(s)
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// trimWords caps text at maxWords, preferring to finish the sentence in
// flight over a hard cut.
func trimWords(text string, maxWords int) string {
	raw := strings.TrimSpace(multiSpaceRe.ReplaceAllString(text, " "))
	words := wordTokenRe.FindAllString(raw, -1)
	if len(words) <= maxWords {
		return raw
	}

	cut := strings.TrimSpace(strings.Join(words[:maxWords], " "))
	if strings.HasSuffix(cut, ".") || strings.HasSuffix(cut, "!") || strings.HasSuffix(cut, "?") {
		return cut
	}

	tailEnd := maxWords + 80
	if tailEnd > len(words) {
		tailEnd = len(words)
	}
	if tailEnd > maxWords {
		probe := strings.TrimSpace(strings.Join(words[maxWords:tailEnd], " "))
		if m := sentEndRe.FindStringIndex(probe); m != nil {
			return strings.TrimSpace(cut + " " + strings.TrimSpace(probe[:m[1]]))
		}
	}

	backCut := lastIndexAny(cut, ".!?")
	if backCut >= int(float64(len(cut))*0.35) {
		return strings.TrimSpace(cut[:backCut+1])
	}

	return cut + "."
}

func lastIndexAny(s, chars string) int {
	best := -1
	for _, c := range chars {
		if i := strings.LastIndexByte(s, byte(c)); i > best {
			best = i
		}
	}
	return best
}

// polishAbstractTail repairs OCR residue and truncation at the end of an
// extracted abstract.
func polishAbstractTail(text string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return ""
	}

	t = strings.TrimSpace(residueRe.ReplaceAllString(t, ""))
	if t == "" {
		return ""
	}

	last := t[len(t)-1]
	if last == '.' || last == '!' || last == '?' {
		return t
	}

	// Enumerated reference-sign tails like ";(210) ...;(212) ..." are
	// complete; just terminate them.
	if enumTailRe.MatchString(t) || enumTail2Re.MatchString(t) {
		return t + "."
	}

	words := lastWordRe.FindAllString(t, -1)
	lastWord := ""
	if len(words) > 0 {
		lastWord = words[len(words)-1]
	}
	if len(lastWord) <= 2 {
		if cut := lastIndexAny(t, ".!?"); cut >= int(float64(len(t))*0.4) {
			return strings.TrimSpace(t[:cut+1])
		}
	}

	return t + "."
}

func buildLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := normalizeLine(raw)
		if line == "" {
			lines = append(lines, "")
			continue
		}
		if isNoiseLine(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func collectCandidate(lines []string, startIdx int, inlineText string) string {
	var parts []string
	if inline := normalizeLine(inlineText); inline != "" && !isNoiseLine(inline) {
		parts = append(parts, inline)
	}

	limit := startIdx + 220
	if limit > len(lines) {
		limit = len(lines)
	}
	for i := startIdx; i < limit; i++ {
		line := lines[i]
		if line == "" {
			if len(parts) > 0 && wordCount(strings.Join(parts, " ")) >= 45 {
				break
			}
			continue
		}
		if isNoiseLine(line) {
			continue
		}
		if stopHeadingRe.MatchString(line) {
			if len(parts) > 0 {
				break
			}
			continue
		}
		if isSectionHeading(line) && len(parts) >= 2 {
			break
		}
		parts = append(parts, line)

		joined := strings.TrimSpace(strings.Join(parts, " "))
		wc := wordCount(joined)
		if wc >= maxAbstractWords && endsWithSentence(joined) {
			break
		}
		if wc >= maxAbstractWords+90 {
			break
		}
	}

	candidate := strings.TrimSpace(strings.Join(parts, " "))
	if candidate == "" {
		return ""
	}
	return trimWords(candidate, maxAbstractWords)
}

func endsWithSentence(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

func extractHeadingBased(lines []string) string {
	for i, line := range lines {
		if m := abstractHeadRe.FindStringSubmatch(line); m != nil {
			abstract := collectCandidate(lines, i+1, m[1])
			if wordCount(abstract) >= 28 {
				return abstract
			}
		}
		if m := abstractInlineRe.FindStringSubmatch(line); m != nil {
			abstract := collectCandidate(lines, i+1, m[1])
			if wordCount(abstract) >= 28 {
				return abstract
			}
		}
	}
	return ""
}

func scoreParagraph(text string) int {
	t := strings.TrimSpace(multiSpaceRe.ReplaceAllString(text, " "))
	if t == "" {
		return -999
	}

	words := wordCount(t)
	if words < 35 {
		return -999
	}

	score := 0
	switch {
	case words >= 55 && words <= 220:
		score += 7
	case words >= 35 && words <= 320:
		score += 3
	default:
		score -= 3
	}

	low := strings.ToLower(t)
	for _, kw := range []string{
		"present invention", "relates to", "discloses", "provides",
		"method", "system", "apparatus", "problem", "solution",
	} {
		if strings.Contains(low, kw) {
			score += 2
		}
	}

	score -= strings.Count(low, "claim") * 3
	score -= strings.Count(low, "figure") * 2
	score -= strings.Count(low, "embodiment")

	if whereinRe.MatchString(low) {
		score -= 2
	}
	if comprisingRe.MatchString(low) {
		score--
	}

	return score
}

func extractBestParagraph(lines []string) string {
	var paragraphs []string
	var cur []string

	flush := func() {
		if len(cur) == 0 {
			return
		}
		if para := strings.TrimSpace(strings.Join(cur, " ")); para != "" {
			paragraphs = append(paragraphs, para)
		}
		cur = nil
	}

	for _, line := range lines {
		if line == "" {
			flush()
			continue
		}
		if isSectionHeading(line) {
			flush()
			continue
		}
		if isNoiseLine(line) {
			continue
		}
		cur = append(cur, line)
		if wordCount(strings.Join(cur, " ")) >= 320 {
			flush()
		}
	}
	flush()

	if len(paragraphs) == 0 {
		return ""
	}

	best := paragraphs[0]
	bestScore := scoreParagraph(best)
	for _, p := range paragraphs[1:] {
		if s := scoreParagraph(p); s > bestScore {
			best, bestScore = p, s
		}
	}
	if bestScore < 1 {
		for _, p := range paragraphs {
			if wordCount(p) > wordCount(best) {
				best = p
			}
		}
	}
	return trimWords(best, maxAbstractWords)
}
