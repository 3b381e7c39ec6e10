package fer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/patentdesk/fer-reply/internal/docext"
)

// Parse reads a FER PDF and returns the normalized record.
func Parse(path string) (*Record, error) {
	text, err := docext.ExtractPDFText(path)
	if err != nil {
		return nil, fmt.Errorf("extracting FER text: %w", err)
	}
	return ParseText(text), nil
}

// ParseText parses already-extracted FER text. Text input keeps the
// heuristics testable without PDF fixtures.
func ParseText(text string) *Record {
	text = docext.CleanText(text)

	meta := extractMeta(text)
	arts := extractPriorArts(text)

	obsBlock := DetailedObservationsBlock(text)
	if obsBlock == "" {
		obsBlock = text
	}
	splits := splitObjections(obsBlock)

	objections := make([]Objection, 0, len(splits))
	for i, part := range splits {
		objections = append(objections, Objection{
			Number:    i + 1,
			Heading:   titleCase(part.heading),
			Body:      part.body,
			Sections:  sectionsFromText(part.body),
			Claims:    claimsFromBody(part.body),
			PriorArts: arts,
		})
	}

	return &Record{
		ApplicationNo:   meta.ApplicationNo,
		FilingDate:      meta.FilingDate,
		FERDispatchDate: meta.FERDispatchDate,
		Applicant:       meta.Applicant,
		ControllerName:  meta.ControllerName,
		ExaminerName:    meta.ExaminerName,
		ReplyDeadline:   meta.ReplyDeadline,
		PriorArts:       arts,
		Objections:      objections,
	}
}

// titleCase renders an upper-case heading as "Inventive Step".
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
