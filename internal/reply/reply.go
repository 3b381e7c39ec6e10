// Package reply assembles the FER response draft as a DOCX document. The
// draft mirrors the structure agents file with the Indian Patent Office:
// letterhead block, amended claims, per-objection submissions, a formal
// requirements table and the closing formalities. Anything the generator
// cannot derive is emitted as a red placeholder for the reviewing agent.
package reply

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/patentdesk/fer-reply/internal/fer"
)

const (
	defaultAgentName = "Adv. Pranav Bhat"
	defaultAgentReg  = "(Patent Agent - IN/PA 4580)"
)

// PriorArtEntry is one cited document with its extracted abstract and
// optional diagram material.
type PriorArtEntry struct {
	Label       string `json:"label"`
	Abstract    string `json:"abstract"`
	Diagram     string `json:"diagram"`
	DiagramPath string `json:"-"`
	SourceName  string `json:"source_name,omitempty"`
}

// Input carries everything the draft needs. Only FER is required; every
// other field degrades to a placeholder in the output document.
type Input struct {
	FER *fer.Record

	CSTitle       string
	AmendedClaims string

	FormalReqsText string
	FormalReqsRows []FormalRow

	Agent         string
	AgentReg      string
	OfficeAddress string

	DXRange             string
	DXDisclosedFeatures string
	PriorArts           []PriorArtEntry

	CSBackground      string
	CSSummary         string
	CSTechnicalEffect string

	TechnicalEffectImagePaths []string

	// Date overrides the letter date, for reproducible output.
	Date time.Time
}

var priorLabelRe = regexp.MustCompile(`^D\d{1,3}$`)

func normalizePriorArtEntries(entries []PriorArtEntry) []PriorArtEntry {
	var normalized []PriorArtEntry
	for i, row := range entries {
		label := strings.ToUpper(strings.TrimSpace(row.Label))
		if !priorLabelRe.MatchString(label) {
			label = fmt.Sprintf("D%d", i+1)
		}

		abstract := strings.TrimSpace(StripHindi(row.Abstract))
		abstract = doubleSpaceRe.ReplaceAllString(abstract, " ")
		abstract = regexp.MustCompile(`\n{3,}`).ReplaceAllString(abstract, "\n\n")

		diagram := strings.TrimSpace(StripHindi(row.Diagram))
		diagram = doubleSpaceRe.ReplaceAllString(diagram, " ")
		diagramPath := strings.TrimSpace(row.DiagramPath)

		if abstract == "" && diagram == "" && diagramPath == "" {
			continue
		}
		normalized = append(normalized, PriorArtEntry{
			Label:       label,
			Abstract:    abstract,
			Diagram:     diagram,
			DiagramPath: diagramPath,
			SourceName:  row.SourceName,
		})
	}
	return normalized
}

// Generate renders the reply draft and returns the DOCX bytes.
func Generate(in Input) ([]byte, error) {
	if in.FER == nil {
		return nil, fmt.Errorf("FER record is required")
	}

	b := newBuilder()

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	b.para(date.Format("02 January 2006")).Justification("right")
	b.para("To,")

	if strings.TrimSpace(in.OfficeAddress) != "" {
		for _, ln := range strings.Split(in.OfficeAddress, "\n") {
			if s := strings.TrimSpace(ln); s != "" {
				b.para(s)
			}
		}
	} else {
		b.placeholder("[INSERT PATENT OFFICE ADDRESS HERE]")
	}
	b.gap()

	controller := orPlaceholder(in.FER.ControllerName, "[Controller Name]")
	b.para(fmt.Sprintf("Kind Attention: %s, Controller of Patents", controller))
	b.gap()

	appNo := orPlaceholder(in.FER.ApplicationNo, "[Application No]")
	filing := orPlaceholder(in.FER.FilingDate, "[Filing Date]")
	ferDate := orPlaceholder(in.FER.FERDispatchDate, "[FER Date]")
	applicant := orPlaceholder(in.FER.Applicant, "[Applicant]")
	title := in.CSTitle
	if title == "" {
		title = in.FER.Title
	}
	title = orPlaceholder(title, "[Title of Invention]")

	b.para(fmt.Sprintf("Re: Response to FER dated %s, with respect to Patent Application No: %s filed on %s", ferDate, appNo, filing))
	b.para(fmt.Sprintf("Applicant(s): %s", applicant))
	b.para(fmt.Sprintf("Title: %q", title))
	b.para(fmt.Sprintf("Letter No: Ref.No/Application No /%s Dated: %s", appNo, ferDate))
	b.gap()
	b.para("Dear Sir,")
	b.para(fmt.Sprintf("With reference to your letter No Ref/Application No /%s dated %s, "+
		"our humble submissions in the FER matter are as follows for and on behalf of applicant herein:", appNo, ferDate))

	b.heading("AMENDMENTS MADE TO THE CLAIMS ARE AS FOLLOWS")
	b.paraBold("We Claim:")
	claimsBlocks := extractNumberedClaims(in.AmendedClaims)
	claimScopeLabel := claimNumbersScopeLabel(claimsBlocks)
	if len(claimsBlocks) > 0 {
		for _, c := range claimsBlocks {
			b.para(CompactClaimQuote(c.text))
		}
	} else {
		var claimsLines []string
		for _, l := range strings.Split(in.AmendedClaims, "\n") {
			if s := strings.TrimSpace(l); s != "" {
				claimsLines = append(claimsLines, s)
			}
		}
		if len(claimsLines) > 0 {
			b.para(CompactClaimQuote(strings.Join(claimsLines, "\n")))
		} else {
			b.placeholder("[PASTE AMENDED CLAIMS HERE - upload the Amended Claims PDF]")
		}
	}
	b.gap()

	hasRegardingClaimsObjection := false
	regardingClaimsRendered := false
	nonPatSectionsRendered := false

	if len(in.FER.Objections) == 0 {
		for i := 1; i <= 6; i++ {
			b.heading(fmt.Sprintf("SUBMISSION TO OBJECTION %d", i))
			b.placeholder(fmt.Sprintf("[PASTE EXAMINER'S OBJECTION %d TEXT HERE]", i))
			b.replyLabel()
			b.placeholder(fmt.Sprintf("[INSERT REPLY TO OBJECTION %d HERE]", i))
		}
	} else {
		for _, obj := range in.FER.Objections {
			h := strings.ToUpper(obj.Heading)
			if strings.Contains(h, "REGARDING CLAIMS") {
				b.objLabel("REGARDING CLAIMS:")
			} else {
				b.heading(fmt.Sprintf("SUBMISSION TO OBJECTION %d", obj.Number))
				b.objLabel(h + ":")
			}
			b.blocktext(obj.Body)
			b.gap()
			b.replyLabel()

			switch {
			case strings.Contains(h, "INVENTIVE STEP"):
				if len(claimsBlocks) > 0 {
					b.addRegardingClaimsBlock(in)
					regardingClaimsRendered = true
					hasRegardingClaimsObjection = true
				} else {
					b.placeholder("[EXPLAIN HOW AMENDED CLAIM OVERCOMES D1, D2, etc.]")
					b.placeholder("[ADD INSTANT INVENTION vs PRIOR ART TABLE IF NEEDED]")
				}
			case strings.Contains(h, "NOVELTY"):
				b.placeholder("[INSERT NOVELTY ARGUMENT AGAINST CITED PRIOR ART HERE]")
				b.placeholder("[EXPLAIN DISTINGUISHING FEATURES OF AMENDED CLAIMS HERE]")
			case strings.Contains(h, "NON PATENTABILITY"):
				nonPatText := obj.Heading + "\n" + obj.Body
				if !b.addNonPatentabilityStaticParas(nonPatText, claimScopeLabel) {
					b.placeholder("[INSERT SECTION 3(f)/3(o)/3(k) ARGUMENT HERE]")
				}
				b.placeholder("[EXPLAIN WHY INVENTION IS NOT EXCLUDED UNDER CITED CLAUSE]")
				if !nonPatSectionsRendered {
					b.addNonPatentabilityTechnicalSections(in)
					nonPatSectionsRendered = true
				}
			case strings.Contains(h, "REGARDING CLAIMS"):
				hasRegardingClaimsObjection = true
				if regardingClaimsRendered {
					b.para("Detailed claim-wise distinction over cited prior art is already submitted above under the Inventive Step reply.")
				} else {
					b.addRegardingClaimsBlock(in)
					regardingClaimsRendered = true
				}
			case strings.Contains(h, "SUFFICIENCY"):
				b.placeholder("[INSERT ABSTRACT / SUFFICIENCY COMPLIANCE STATEMENT HERE]")
			case strings.Contains(h, "CLARITY"):
				b.placeholder("[INSERT CLARITY RESPONSE - EXPLAIN HOW AMENDMENTS ADDRESS EACH POINT]")
			case strings.Contains(h, "DEFINITIVENESS"):
				b.placeholder("[INSERT DEFINITIVENESS RESPONSE (Sec 10(4)(c), 10(5)) HERE]")
			case strings.Contains(h, "SCOPE"):
				b.placeholder("[INSERT SCOPE RESPONSE - EXPLAIN HOW CLAIMS DEFINE CLEAR BOUNDARIES]")
			case strings.Contains(h, "OTHERS"):
				b.placeholder("[INSERT RESPONSE TO OTHER REQUIREMENTS HERE]")
			default:
				b.placeholder(fmt.Sprintf("[INSERT REPLY TO OBJECTION %d HERE]", obj.Number))
			}
			b.gap()
		}
	}

	if !hasRegardingClaimsObjection && !regardingClaimsRendered && len(claimsBlocks) > 0 {
		b.objLabel("REGARDING CLAIMS:")
		b.replyLabel()
		b.addRegardingClaimsBlock(in)
		regardingClaimsRendered = true
		b.gap()
	}

	if !nonPatSectionsRendered {
		b.heading("SUBMISSION TO NON PATENTABILITY U/S 3")
		b.objLabel("NON PATENTABILITY U/S 3:")
		b.replyLabel()
		b.placeholder("[INSERT SECTION 3(k)/3(m) ARGUMENT HERE]")
		b.placeholder("[EXPLAIN WHY INVENTION IS NOT EXCLUDED UNDER CITED CLAUSE]")
		b.addNonPatentabilityTechnicalSections(in)
		b.gap()
	}

	b.heading("FORMAL REQUIREMENTS:")
	b.addFormalTable(in.FormalReqsText, in.FormalReqsRows)

	b.gap()
	b.para("In the event above submissions are not found to be persuasive, a further hearing/an opportunity for " +
		"clarification (through telephone, meeting or the like), preferably in view of Section 80 or Section 14 " +
		"may please be granted before taking any adverse decision.")
	b.gap()
	b.para("Yours faithfully,")
	b.para(orPlaceholder(in.Agent, defaultAgentName))
	b.para(orPlaceholder(in.AgentReg, defaultAgentReg))
	b.gap()
	b.para("Enclosure:")
	b.placeholder("1. [List enclosures here]")

	var buf bytes.Buffer
	if _, err := b.doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing DOCX: %w", err)
	}
	return buf.Bytes(), nil
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func (b *builder) addNonPatentabilityStaticParas(objectionText, claimScopeLabel string) bool {
	added := false
	if ContainsSectionClause(objectionText, "k") {
		b.para(nonPatentability3kText(claimScopeLabel))
		added = true
	}
	if ContainsSectionClause(objectionText, "m") {
		b.para(nonPatentability3mPara)
		added = true
	}
	return added
}

func (b *builder) addNonPatentabilityTechnicalSections(in Input) {
	bg := strings.TrimSpace(in.CSBackground)
	sm := strings.TrimSpace(in.CSSummary)
	te := strings.TrimSpace(in.CSTechnicalEffect)
	claim1Text, claimEntries := claimTextForTechnicalSections(in.AmendedClaims)

	b.gap()
	b.objLabel("TECHNICAL PROBLEM SOLVED BY THE INVENITON:")
	if bg != "" {
		b.blocktext(bg)
	} else {
		b.placeholder("[INSERT 'BACKGROUND OF THE INVENTION' FROM CS HERE]")
	}

	b.gap()
	b.objLabel("TECHNICAL SOLUTION SOLVED BY THE INVENITON:")
	b.paraBoldUnderline(techSolutionLeadPara)
	if claim1Text != "" {
		b.para(claim1Text)
	} else {
		b.placeholder("[INSERT CLAIM-1 FEATURES HERE]")
	}
	b.paraBoldUnderline(techHardwareFeaturePara)
	b.para(tech3kRegulationPara)
	b.para(techCRIUpdatePara)
	b.para(techCRIQuote1)
	b.para(techCRIQuote2)
	b.para(techPresentsSolutionPara)
	if claim1Text != "" {
		b.para(claim1Text)
	} else {
		b.placeholder("[INSERT CLAIM-1 FEATURES HERE]")
	}
	if sm != "" {
		b.blocktext(sm)
	} else {
		b.placeholder("[INSERT 'SUMMARY OF THE INVENTION' FROM CS HERE]")
	}

	b.para(feridAllaniIntroPara)
	b.para(feridAllaniQuotePara)
	b.para(techEffectBullet1)
	b.para(techEffectBullet2)
	b.para(techEffectGuidelinePara)
	b.gap()
	b.objLabel("Technical Effect:")
	b.para(techEffectDefinitionPara)

	teResolved := te
	if teResolved == "" {
		teResolved = sm
	}
	if teResolved == "" {
		teResolved = bg
	}
	if teResolved != "" {
		b.blocktext(teResolved)
	} else {
		b.placeholder("[INSERT TECHNICAL EFFECT HERE]")
	}

	if claimsPara := claimsSingleParagraph(claimEntries); claimsPara != "" {
		b.para(claimsPara)
	} else {
		b.placeholder("[INSERT AMENDED CLAIMS HERE - SINGLE PARAGRAPH, NO NUMBERING]")
	}

	if !b.addTechnicalEffectImages(in.TechnicalEffectImagePaths) {
		b.placeholder("[INSERT TECH_SOLUTION_IMAGES HERE]")
	}
	b.para(nonPatentabilityWrapupPara)
}

func (b *builder) addTechnicalEffectImages(paths []string) bool {
	var kept []string
	for _, p := range paths {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	if len(kept) == 0 {
		return false
	}

	b.doc.AddParagraph().AddPageBreaks()
	for i, path := range kept {
		b.inlineImage(path, "TECHNICAL EFFECT")
		caption := b.doc.AddParagraph().Justification("center")
		caption.AddText(fmt.Sprintf("FIG. %d", i+1)).Size(bodySize)
		desc := b.doc.AddParagraph().Justification("center")
		desc.AddText("[Enter Description of the diagram]").Size(bodySize).Color(draftRed)
	}
	return true
}

func (b *builder) addRegardingClaimsBlock(in Input) {
	claims := extractNumberedClaims(in.AmendedClaims)
	if len(claims) == 0 {
		b.placeholder("[INSERT REGARDING-CLAIMS ARGUMENTS HERE]")
		return
	}

	priorArts := normalizePriorArtEntries(in.PriorArts)
	var priorLabels []string
	for _, p := range priorArts {
		if p.Label != "" {
			priorLabels = append(priorLabels, p.Label)
		}
	}
	dxDisplay := ResolveDXDisplay(priorLabels, in.DXRange)

	dxFeatures := strings.TrimSpace(in.DXDisclosedFeatures)
	if dxFeatures == "" {
		dxFeatures = buildPriorArtDisclosure(priorArts)
	}
	if dxFeatures == "" {
		dxFeatures = "[D1-Dn_DISCLOSURE]"
	}

	claim1Text := "[INSERT AMENDED CLAIM 1 TEXT]"
	for _, c := range claims {
		if c.no == 1 {
			claim1Text = CompactClaimQuote(c.text)
			break
		}
	}

	b.paraBold("Regarding Claim 1:")
	b.para("The claim 1 is amended to more clearly articulate the subject matter and also to overcome the objections " +
		"raised in the first examination report. The amendments are fully supported in the specification on record.")
	b.para("In determining the differences between the prior art and the claims, the question is not whether the " +
		"differences themselves would have been obvious, but whether the claimed invention as a whole would have " +
		"been obvious. A prior art reference must be considered in its entirety, as a whole.")
	b.para("[Emphasis Added] To establish a prima facie case of obviousness, three basic criteria must be met: " +
		"(1) there must be some suggestion or motivation to modify the reference or to combine reference teachings; " +
		"(2) there must be reasonable expectation of success; and (3) the prior art reference must teach or suggest " +
		"all the claim limitations.")
	b.para(fmt.Sprintf("Thus, Applicant respectfully traverses the rejection because the approach disclosed in %s and "+
		"the approach claimed in the instant application are not only different, but portions of %s relied "+
		"upon do not render the claimed invention obvious.", dxDisplay, dxDisplay))
	b.para("Claim 1 has been amended to recite:")
	b.para(claim1Text)
	b.gap()

	if len(priorArts) > 0 {
		for _, row := range priorArts {
			if abstract := strings.TrimSpace(multiSpaceRe.ReplaceAllString(row.Abstract, " ")); abstract != "" {
				b.para(fmt.Sprintf("%s discloses %s", row.Label, abstract))
			}
			if row.DiagramPath != "" {
				b.inlineImage(row.DiagramPath, row.Label)
			} else if row.Diagram != "" {
				b.para(row.Diagram)
			}
		}

		b.paraRed(buildCombinedDifferenceText(claim1Text, priorArts, dxDisplay))

		b.para(fmt.Sprintf("[Emphasis Added] %s discloses a completely different solution and does not set motivation to combine %s "+
			"to arrive at the Applicant claimed invention. Even the problem statement, and the solution of %s and Applicant "+
			"claimed invention is different and hence the solutions. The problem statement is clearly evident from background "+
			"of %s and Applicant claimed invention. It is to be noted that %s discloses completely different method and does "+
			"not disclose the following features of the applicant claimed invention:",
			dxDisplay, dxDisplay, dxDisplay, dxDisplay, dxDisplay))
	} else {
		b.placeholder(fmt.Sprintf("[INSERT %s ABSTRACT(S) HERE]", dxDisplay))
		b.placeholder(fmt.Sprintf("[EXPLAIN HOW INSTANT INVENTION DIFFERS FROM COMBINED %s]", dxDisplay))
	}

	table := b.doc.AddTable(2, 2, 8400, nil)
	cellTextBold(table.TableRows[0].TableCells[0], "Applicant claimed feature")
	cellTextBold(table.TableRows[0].TableCells[1], fmt.Sprintf("%s disclosed features", dxDisplay))
	cellText(table.TableRows[1].TableCells[0], claim1Text)
	right := table.TableRows[1].TableCells[1]
	cellText(right, StripHindi(dxFeatures))
	cellText(right, fmt.Sprintf("Hence, %s fail to disclose %s.", dxDisplay, claim1Text))
	right.AddParagraph()
	cellText(right, fmt.Sprintf("A person with combining skills cannot combine the teachings provided in the prior arts (%s). "+
		"Hence, %s fails to disclose the features present in the invention. The interpretation asserted by the examiner is "+
		"not supported by the cited portions of the %s. Thus, reconsideration is respectfully requested.",
		dxDisplay, dxDisplay, dxDisplay))

	b.para(fmt.Sprintf("[Emphasis added] It is important to consider the functions and underlying essence of the invention as "+
		"described in all steps mentioned in the claims. Therefore, it is respectfully submitted that the interpretation "+
		"asserted by the Examiner is not supported by the disclosure of %[1]s. Further, Applicant believe the interpretation "+
		"asserted by the Examiner regarding the claimed steps is not supported by the disclosure of %[1]s. Nowhere in the "+
		"cited portions and the whole document does %[1]s describe or reasonably suggest the above indicated features claimed "+
		"in the amended independent claim 1. Therefore, the steps of %[1]s are different from that of Applicant's claimed "+
		"subject matter. Additionally, a prima facie obviousness has not been established. Merely recitation of portions from "+
		"prior art does not sustain the rejection of obviousness unless the prior art reasonably teaches and provides "+
		"articulated reasoning with rational underpinning to support the legal conclusion of obviousness. Thus, based on the "+
		"above, to the extent %[1]s does not disclose, reasonably teach or suggest the features of the amended independent "+
		"claim 1, and hence it is respectfully submitted that independent claim 1 is patentable over the cited prior art. "+
		"Nor does %[1]s motivate one of ordinary skill in the art to combine %[1]s with another reference to arrive at the "+
		"claimed invention. Reconsideration is respectfully requested.", dxDisplay))

	for _, c := range claims {
		if c.no == 1 {
			continue
		}
		depText := strings.TrimSpace(claimPrefixRe.ReplaceAllString(CompactClaimQuote(c.text), ""))
		if depText != "" && !(strings.HasPrefix(depText, `"`) && strings.HasSuffix(depText, `"`)) {
			depText = `"` + depText + `"`
		}
		b.gap()
		b.paraBold(fmt.Sprintf("Regarding Claim %d:", c.no))
		b.para(fmt.Sprintf("Applicant has reviewed the entire application of %s and found that nowhere in the entire "+
			"applications does %s describe or reasonably suggest the following features:", dxDisplay, dxDisplay))
		b.para(depText)
		b.para(fmt.Sprintf("Apart from the above, Applicant believes that dependent claim %d is allowable not only by virtue of "+
			"dependency from patentable independent claim 1, but also by virtue of the additional features the claim "+
			"defines.", c.no))
	}
}

func (b *builder) addFormalTable(formalText string, rows []FormalRow) {
	rowCount := len(rows)
	if rowCount == 0 {
		rowCount = 1
	}

	table := b.doc.AddTable(rowCount+1, 3, 8400, nil)
	header := table.TableRows[0]
	cellTextBold(header.TableCells[0], "Objections")
	cellTextBold(header.TableCells[1], "Remarks")
	cellTextBold(header.TableCells[2], "Our Reply")

	if len(rows) > 0 {
		for i, row := range rows {
			cells := table.TableRows[i+1].TableCells
			cellText(cells[0], StripHindi(row.Category))
			cellText(cells[1], StripHindi(row.Remark))
			cellPlaceholder(cells[2], "[INSERT COMPLIANCE STATEMENT / REPLY HERE]")
		}
		return
	}

	cells := table.TableRows[1].TableCells
	if raw := strings.TrimSpace(formalText); raw != "" {
		cellText(cells[0], "As in FER")
		cellText(cells[1], StripHindi(raw))
		cellPlaceholder(cells[2], "[INSERT COMPLIANCE STATEMENT / REPLY HERE]")
	} else {
		cellText(cells[0], "[FORMAL OBJECTION CATEGORY]")
		cellText(cells[1], "[PASTE REMARKS FROM FER HERE]")
		cellPlaceholder(cells[2], "[INSERT COMPLIANCE STATEMENT HERE]")
	}
}
