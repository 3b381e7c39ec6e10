package fer

import (
	"regexp"
	"strings"
)

var (
	cidRe       = regexp.MustCompile(`\(cid:\d+\)`)
	nonDigitRe  = regexp.MustCompile(`[^0-9]`)
	anyDateRe   = regexp.MustCompile(`([0-9]{2}[-/][0-9]{2}[-/][0-9]{4})`)
	twelveDigRe = regexp.MustCompile(`\b(\d{12})\b`)
	longNumRe   = regexp.MustCompile(`\b(\d{10,18})\b`)

	appNoLineRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Application\s*No[/.]?\s*[:\-]?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Application\s*Number\s*[:\-]?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)Ref\.?\s*No[^\n]*?Application\s*No[/.]?\s*/?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)[\x{0900}-\x{097F}]+[^\n]*?Application\s*No[/.]?\s*/?\s*([^\n]+)`),
	}
	appNoKeyRe = regexp.MustCompile(`(?i)Application\s*(?:No|Number)|Ref\.?\s*No`)

	appNoSnippetRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d{10,18})\b`),
		regexp.MustCompile(`(?i)\b((?:\d[\s-]){10,30}\d)\b`),
		regexp.MustCompile(`(?i)\b(\d{1,6}\s*/\s*[A-Za-z]{2,10}\s*/\s*\d{2,4})\b`),
		regexp.MustCompile(`(?i)\b([A-Za-z]{2,10}\s*/\s*[A-Za-z0-9]{3,20}\s*/\s*\d{2,4})\b`),
	}

	filingKeyRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bDate\s*of\s*Filing\b`),
		regexp.MustCompile(`(?i)\bFiling\s*Date\b`),
	}
	filingInlineRe = regexp.MustCompile(`(?i)(?:Date\s*of\s*Filing|Filing\s*Date)\s*[:\-]?\s*([0-9]{2}[-/][0-9]{2}[-/][0-9]{4})`)

	dispatchRe = regexp.MustCompile(`(?i)Date\s*of\s*Dispatch(?:/Email)?\s*[:\-]?\s*([0-9]{2}[-/][0-9]{2}[-/][0-9]{4})`)
	deadlineRe = regexp.MustCompile(`(?i)Last\s*date\s*for\s*filing\s*response(?:\s*to\s*the\s*Examination\s*Report)?\s*[:\-]?\s*([0-9]{2}[-/][0-9]{2}[-/][0-9]{4})`)

	controllerSigRe   = regexp.MustCompile(`(?i)\n\s*([A-Z][A-Za-z .]+)\s*\n\s*Controller\s+of\s+Patents\b`)
	controllerLabelRe = regexp.MustCompile(`(?i)(?:Name\s*of\s*the\s*Controller|Controller.*?Name)\s*[:\-]?\s*([A-Z][A-Za-z .]+)`)
	examinerRe        = regexp.MustCompile(`(?i)Name\s*of\s*the\s*Examiner\s*[:\-]?\s*([A-Z][A-Za-z .]+)`)
)

// metadata carries the scalar fields of the FER header.
type metadata struct {
	ApplicationNo   string
	FilingDate      string
	FERDispatchDate string
	Applicant       string
	ControllerName  string
	ExaminerName    string
	ReplyDeadline   string
}

func firstDate(text string) string {
	if m := anyDateRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// NormalizeApplicationNo canonicalizes an application number. Runs of ten
// or more digits win over legacy slash formats; short legacy numbers keep
// their letters upper-cased with spacing removed.
func NormalizeApplicationNo(raw string) string {
	value := strings.Trim(strings.TrimSpace(raw), "/:-|")
	if value == "" {
		return ""
	}
	digits := nonDigitRe.ReplaceAllString(value, "")
	if len(digits) >= 10 {
		return digits
	}
	value = multiSpaceRe.ReplaceAllString(value, "")
	return strings.Trim(strings.ToUpper(value), "/:-|")
}

func applicationNoFromSnippet(snippet string) string {
	s := strings.ReplaceAll(snippet, "|", " ")
	if s == "" {
		return ""
	}
	for _, re := range appNoSnippetRes {
		if m := re.FindStringSubmatch(s); m != nil {
			if appNo := NormalizeApplicationNo(m[1]); appNo != "" {
				return appNo
			}
		}
	}
	return ""
}

func extractApplicationNo(text string) string {
	for _, re := range appNoLineRes {
		if m := re.FindStringSubmatch(text); m != nil {
			if appNo := applicationNoFromSnippet(m[1]); appNo != "" {
				return appNo
			}
		}
	}

	lines := strings.Split(text, "\n")
	head := lines
	if len(head) > 40 {
		head = head[:40]
	}
	for _, ln := range head {
		if appNoKeyRe.MatchString(ln) {
			if appNo := applicationNoFromSnippet(ln); appNo != "" {
				return appNo
			}
		}
	}

	top := lines
	if len(top) > 30 {
		top = top[:30]
	}
	if m := twelveDigRe.FindStringSubmatch(strings.Join(top, "\n")); m != nil {
		return m[1]
	}
	if m := longNumRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func extractFilingDate(text string) string {
	lines := strings.Split(text, "\n")
	head := lines
	if len(head) > 120 {
		head = head[:120]
	}

	// Prefer explicit "Date of Filing" lines in the FER metadata region.
	for i, ln := range head {
		matched := false
		for _, re := range filingKeyRes {
			if re.MatchString(ln) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		if d := firstDate(ln); d != "" {
			return d
		}
		end := i + 3
		if end > len(lines) {
			end = len(lines)
		}
		if d := firstDate(strings.Join(lines[i:end], " ")); d != "" {
			return d
		}
	}

	if m := filingInlineRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func extractMeta(text string) metadata {
	meta := metadata{
		ApplicationNo: NormalizeApplicationNo(extractApplicationNo(text)),
		FilingDate:    extractFilingDate(text),
		Applicant:     ApplicantFromText(text),
	}

	if m := dispatchRe.FindStringSubmatch(text); m != nil {
		meta.FERDispatchDate = m[1]
	}
	if m := controllerSigRe.FindStringSubmatch("\n" + text); m != nil {
		meta.ControllerName = strings.TrimSpace(m[1])
	} else if m := controllerLabelRe.FindStringSubmatch(text); m != nil {
		meta.ControllerName = strings.TrimSpace(m[1])
	}
	if m := examinerRe.FindStringSubmatch(text); m != nil {
		meta.ExaminerName = strings.TrimSpace(m[1])
	}
	if m := deadlineRe.FindStringSubmatch(text); m != nil {
		meta.ReplyDeadline = m[1]
	}
	return meta
}
