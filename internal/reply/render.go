package reply

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fumiama/go-docx"
)

// 11pt in half-points, the body size of office correspondence drafts.
const bodySize = "22"

// Draft-attention text is rendered in dark red so nothing provisional
// survives an unreviewed filing.
const draftRed = "C00000"

var (
	pageOfRe       = regexp.MustCompile(`(?i)^Page\s+\d+\s+of\s+\d+`)
	patentOfficeRe = regexp.MustCompile(`(?i)^THE\s+PATENT\s+OFFICE\s*$`)
	enumStartRe    = regexp.MustCompile(`^(?:\(?\d+[.)]|[A-Za-z][.)]|[-*])\s+`)
)

type builder struct {
	doc *docx.Docx
}

func newBuilder() *builder {
	return &builder{doc: docx.New().WithDefaultTheme()}
}

func (b *builder) para(text string) *docx.Paragraph {
	p := b.doc.AddParagraph().Justification("both")
	if text != "" {
		p.AddText(text).Size(bodySize)
	}
	return p
}

func (b *builder) paraBold(text string) *docx.Paragraph {
	p := b.doc.AddParagraph().Justification("both")
	p.AddText(text).Size(bodySize).Bold()
	return p
}

func (b *builder) paraBoldUnderline(text string) *docx.Paragraph {
	p := b.doc.AddParagraph().Justification("both")
	p.AddText(text).Size(bodySize).Bold().Underline("single")
	return p
}

func (b *builder) paraRed(text string) *docx.Paragraph {
	p := b.doc.AddParagraph().Justification("both")
	p.AddText(text).Size(bodySize).Color(draftRed)
	return p
}

func (b *builder) heading(text string) {
	p := b.doc.AddParagraph().Justification("both")
	p.AddText(text).Size(bodySize).Bold()
}

func (b *builder) objLabel(text string) {
	b.paraBoldUnderline(text)
}

func (b *builder) replyLabel() {
	b.paraBold("OUR REPLY:")
}

func (b *builder) placeholder(text string) {
	b.paraRed(text)
}

func (b *builder) gap() {
	b.doc.AddParagraph()
}

// blocktext renders FER body text: bilingual noise dropped, wrapped lines
// merged back into paragraphs, enumerated lines kept on their own line.
func (b *builder) blocktext(text string) {
	raw := StripHindi(text)
	if raw == "" {
		return
	}

	var merged []string
	flush := func() {
		if len(merged) > 0 {
			b.para(strings.TrimSpace(strings.Join(merged, " ")))
			merged = nil
		}
	}

	for _, rawLine := range strings.Split(raw, "\n") {
		s := strings.TrimSpace(rawLine)
		if s == "" {
			flush()
			continue
		}

		latin := nonHindiCruftRe.ReplaceAllString(s, "")
		if len(s) > 3 && latin == "" {
			continue
		}
		if pageOfRe.MatchString(s) || patentOfficeRe.MatchString(s) {
			continue
		}

		if enumStartRe.MatchString(s) {
			flush()
			b.para(s)
			continue
		}
		if strings.HasSuffix(s, ":") && len(s) <= 90 {
			flush()
			b.para(s)
			continue
		}

		merged = append(merged, s)
	}
	flush()
}

func (b *builder) inlineImage(path, label string) {
	p := b.doc.AddParagraph().Justification("center")
	if _, err := p.AddInlineDrawingFrom(path); err != nil {
		b.placeholder(fmt.Sprintf("[%s DIAGRAM COULD NOT BE INSERTED]", label))
	}
}

func cellText(cell *docx.WTableCell, text string) {
	cell.AddParagraph().Justification("both").AddText(text).Size(bodySize)
}

func cellTextBold(cell *docx.WTableCell, text string) {
	cell.AddParagraph().Justification("both").AddText(text).Size(bodySize).Bold()
}

func cellPlaceholder(cell *docx.WTableCell, text string) {
	cell.AddParagraph().Justification("both").AddText(text).Size(bodySize).Color(draftRed)
}

// buildPriorArtDisclosure renders one "DX discloses ..." line per entry.
func buildPriorArtDisclosure(priorArts []PriorArtEntry) string {
	var lines []string
	for _, row := range priorArts {
		label := strings.TrimSpace(row.Label)
		abstract := strings.TrimSpace(multiSpaceRe.ReplaceAllString(row.Abstract, " "))
		if label == "" || abstract == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s discloses %s", label, completeSentence(abstract)))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func buildCombinedDifferenceText(claim1Text string, priorArts []PriorArtEntry, dxDisplay string) string {
	cleanedClaim := strings.TrimSpace(multiSpaceRe.ReplaceAllString(claim1Text, " "))
	fallback := fmt.Sprintf("Combined difference over %s: [INSERT CLAIM-1 VS %s COMBINED DIFFERENCE ANALYSIS].", dxDisplay, dxDisplay)
	if len(priorArts) == 0 {
		return fallback
	}

	var contrastParts []string
	for _, row := range priorArts {
		label := strings.TrimSpace(row.Label)
		if label == "" {
			continue
		}
		abstract := strings.TrimSpace(multiSpaceRe.ReplaceAllString(row.Abstract, " "))
		disclosed := "[INSERT PRIOR-ART ABSTRACT DISCLOSURE]"
		if abstract != "" {
			disclosed = completeSentence(abstract)
		}
		contrastParts = append(contrastParts, fmt.Sprintf("%s discloses %s", label, disclosed))
	}
	if len(contrastParts) == 0 {
		return fallback
	}

	contrasted := strings.Join(contrastParts, "; ")
	contrastEnd := ""
	if !strings.HasSuffix(contrasted, ".") && !strings.HasSuffix(contrasted, "!") && !strings.HasSuffix(contrasted, "?") {
		contrastEnd = "."
	}
	return fmt.Sprintf(
		"Combined difference over %s: The claimed invention requires the combined feature set of Claim 1 "+
			"(%s). In contrast, %s%s Accordingly, %s do not individually or in "+
			"combination disclose the complete claimed combination.",
		dxDisplay, cleanedClaim, contrasted, contrastEnd, dxDisplay,
	)
}
