package reply

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patentdesk/fer-reply/internal/fer"
)

func TestStripHindi(t *testing.T) {
	in := "Applicant / आवेदक : Acme Robotics\nधारा 3(k)  applies  here"
	got := StripHindi(in)
	assert.Equal(t, "Applicant / : Acme Robotics\n 3(k) applies here", got)
}

func TestCompactClaimQuote(t *testing.T) {
	in := "1. A method , comprising :\nreceiving data ;\nprocessing ( the data ) ."
	got := CompactClaimQuote(in)
	assert.Equal(t, "1. A method, comprising: receiving data; processing (the data).", got)
}

func TestNormalizeDXRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty defaults", "", "D1-Dn"},
		{"lowercase labels upcased", "d1, d2", "D1, D2"},
		{"mixed tokens kept", "D1; D2-D4", "D1, D2-D4"},
		{"free text kept", "the cited documents", "the cited documents"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDXRange(tt.input))
		})
	}
}

func TestFormatDLabelRanges(t *testing.T) {
	tests := []struct {
		name     string
		labels   []string
		expected string
	}{
		{"consecutive folded", []string{"D1", "D2", "D3", "D5"}, "D1-D3, D5"},
		{"single label", []string{"D2"}, "D2"},
		{"duplicates collapsed", []string{"D1", "D1", "D2"}, "D1-D2"},
		{"non-d label falls back to join", []string{"D1", "EP123"}, "D1, EP123"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDLabelRanges(tt.labels))
		})
	}
}

func TestResolveDXDisplay(t *testing.T) {
	assert.Equal(t, "D1-D2", ResolveDXDisplay([]string{"d1", "d2"}, ""))
	assert.Equal(t, "D3", ResolveDXDisplay(nil, "d3"))
	assert.Equal(t, "D1-Dn", ResolveDXDisplay(nil, ""))
}

func TestContainsSectionClause(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		clause string
		want   bool
	}{
		{"section 3(k)", "rejected under section 3(k) of the Act", "k", true},
		{"spaced parens", "objection under Section 3 ( k ) applies", "k", true},
		{"bare 3(k)", "falls under 3(k) being a computer programme", "k", true},
		{"clause form", "clause (k) of section 3 excludes it", "k", true},
		{"section 3(m)", "excluded by section 3(m)", "m", true},
		{"wrong clause", "rejected under section 3(k)", "m", false},
		{"no digit bleed", "paragraph 13(k) of the manual", "k", false},
		{"unsupported clause", "section 3(d)", "d", false},
		{"empty", "", "k", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsSectionClause(tt.text, tt.clause))
		})
	}
}

func TestExtractNumberedClaims(t *testing.T) {
	text := "1. A method of testing.\n2. The method of claim 1.\n10. A system."
	claims := extractNumberedClaims(text)
	require.Len(t, claims, 3)
	assert.Equal(t, 1, claims[0].no)
	assert.Equal(t, "1. A method of testing.", claims[0].text)
	assert.Equal(t, 10, claims[2].no)

	assert.Equal(t, "1-10", claimNumbersScopeLabel(claims))
	assert.Equal(t, "[INSERT CLAIM NUMBER(S)]", claimNumbersScopeLabel(nil))
}

func TestClaimsSingleParagraph(t *testing.T) {
	_, entries := claimTextForTechnicalSections("1. A method , with steps.\n2. The method of claim 1 .")
	got := claimsSingleParagraph(entries)
	assert.Equal(t, "A method, with steps. The method of claim 1.", got)
}

func TestParseFormalRows(t *testing.T) {
	text := `Objections Remarks
Form 3 Details regarding corresponding applications abroad has not been filed.
The same must be filed within the prescribed time.
Form 26 /
Power of Attorney Original Power of Attorney has not been filed.
PART-IV
DOCUMENTS ON RECORD`

	rows := ParseFormalRows(text)
	require.GreaterOrEqual(t, len(rows), 2)

	assert.Equal(t, "Form 3", rows[0].Category)
	assert.Contains(t, rows[0].Remark, "corresponding applications abroad")
	assert.Contains(t, rows[0].Remark, "prescribed time")

	var powCat bool
	for _, r := range rows {
		if r.Category == "Power of Attorney" {
			powCat = true
			assert.Contains(t, r.Remark, "Original Power of Attorney")
		}
	}
	assert.True(t, powCat, "expected a Power of Attorney row")
}

func TestParseFormalRows_Fallback(t *testing.T) {
	rows := ParseFormalRows("Some unstructured formal text without category markers here.")
	require.Len(t, rows, 1)
	assert.Equal(t, "Formal Requirements", rows[0].Category)
}

func TestParseFormalRows_Empty(t *testing.T) {
	assert.Empty(t, ParseFormalRows(""))
}

func TestCleanFormalRemark_DedupesSentences(t *testing.T) {
	in := "The fee must be paid. The fee must be paid. A second point follows."
	got := cleanFormalRemark(in)
	assert.Equal(t, "The fee must be paid. A second point follows.", got)
}

func TestSplitMixedRows(t *testing.T) {
	rows := []FormalRow{{
		Category: "Form 3",
		Remark:   "Details must be filed. While filing the instant application, in Form 1 the category is wrong.",
	}}
	out := splitMixedRows(rows)
	require.Len(t, out, 2)
	assert.Equal(t, "Form 3", out[0].Category)
	assert.Equal(t, "Form 1", out[1].Category)
	assert.Contains(t, out[1].Remark, "category is wrong")
}

func testFER() *fer.Record {
	return &fer.Record{
		ApplicationNo:   "202241012345",
		FilingDate:      "05/03/2022",
		FERDispatchDate: "10-01-2024",
		Applicant:       "Acme Robotics Private Limited",
		ExaminerName:    "R Kumar",
		PriorArts: []fer.PriorArt{
			{Label: "D1", DocNo: "US20190012345A1", PubDate: "14-02-2019"},
		},
		Objections: []fer.Objection{
			{
				Number:   1,
				Heading:  "Inventive Step",
				Body:     "Claims 1-2 lack inventive step in view of D1.",
				Sections: []string{"2(1)(ja)"},
				Claims:   "1-2",
			},
			{
				Number:   2,
				Heading:  "Non Patentability",
				Body:     "Claims fall under section 3(k) of the Act.",
				Sections: []string{"3(k)"},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	out, err := Generate(Input{
		FER:           testFER(),
		CSTitle:       "Adaptive Route Planning",
		AmendedClaims: "1. A method of testing.\n2. The method of claim 1.",
		PriorArts: []PriorArtEntry{
			{Label: "D1", Abstract: "a robot control scheme with centralized scheduling"},
		},
		CSBackground:      "Robots follow fixed routes.",
		CSSummary:         "A planner reassigns aisles.",
		CSTechnicalEffect: "Average pick time is reduced.",
		FormalReqsRows:    []FormalRow{{Category: "Form 3", Remark: "Must be filed."}},
		Date:              time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)

	// DOCX output is a ZIP container.
	assert.Equal(t, byte('P'), out[0])
	assert.Equal(t, byte('K'), out[1])
}

// documentXML unzips the generated DOCX and returns word/document.xml.
func documentXML(t *testing.T, out []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatal("word/document.xml not found in output")
	return ""
}

func TestGenerate_FixedHeadings(t *testing.T) {
	out, err := Generate(Input{
		FER:           testFER(),
		CSTitle:       "Adaptive Route Planning",
		AmendedClaims: "1. A method of testing.\n2. The method of claim 1.",
	})
	require.NoError(t, err)

	doc := documentXML(t, out)
	for _, heading := range []string{
		"AMENDMENTS MADE TO THE CLAIMS ARE AS FOLLOWS",
		"We Claim:",
		"SUBMISSION TO OBJECTION 1",
		"INVENTIVE STEP:",
		"SUBMISSION TO OBJECTION 2",
		"NON PATENTABILITY:",
		"FORMAL REQUIREMENTS:",
		"Yours faithfully,",
	} {
		assert.Contains(t, doc, heading)
	}
	assert.Less(t,
		strings.Index(doc, "SUBMISSION TO OBJECTION 1"),
		strings.Index(doc, "SUBMISSION TO OBJECTION 2"))
}

func TestGenerate_FixedHeadingsEmptyRecord(t *testing.T) {
	out, err := Generate(Input{FER: &fer.Record{}})
	require.NoError(t, err)

	doc := documentXML(t, out)
	for _, heading := range []string{
		"AMENDMENTS MADE TO THE CLAIMS ARE AS FOLLOWS",
		"SUBMISSION TO OBJECTION 1",
		"SUBMISSION TO OBJECTION 6",
		"SUBMISSION TO NON PATENTABILITY U/S 3",
		"FORMAL REQUIREMENTS:",
		"Yours faithfully,",
	} {
		assert.Contains(t, doc, heading)
	}
	assert.Contains(t, doc, "[INSERT PATENT OFFICE ADDRESS HERE]")
}

func TestGenerate_ObjectionOrder(t *testing.T) {
	rec := &fer.Record{
		ApplicationNo: "202241012345",
		Objections: []fer.Objection{
			{Number: 1, Heading: "Novelty", Body: "Claims 1-2 lack novelty in view of D1."},
			{Number: 2, Heading: "Inventive Step", Body: "Claims 1-2 lack inventive step in view of D1."},
		},
	}
	out, err := Generate(Input{FER: rec})
	require.NoError(t, err)

	doc := documentXML(t, out)
	novelty := strings.Index(doc, "NOVELTY:")
	inventive := strings.Index(doc, "INVENTIVE STEP:")
	require.GreaterOrEqual(t, novelty, 0)
	require.GreaterOrEqual(t, inventive, 0)
	assert.Less(t, novelty, inventive)
}

func TestGenerate_RequiresFER(t *testing.T) {
	_, err := Generate(Input{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FER record")
}

func TestNormalizePriorArtEntries(t *testing.T) {
	in := []PriorArtEntry{
		{Label: "d1", Abstract: "something"},
		{Label: "bogus", Abstract: "else"},
		{Label: "D9"}, // nothing usable, dropped
	}
	out := normalizePriorArtEntries(in)
	require.Len(t, out, 2)
	assert.Equal(t, "D1", out[0].Label)
	assert.Equal(t, "D2", out[1].Label)
}
