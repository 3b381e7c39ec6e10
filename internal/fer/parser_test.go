package fer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFER = `GOVERNMENT OF INDIA
THE PATENT OFFICE
FIRST EXAMINATION REPORT

Application No.: 202241012345
Date of Filing: 05/03/2022
Date of Dispatch: 10-01-2024
Applicant: Acme Robotics Private Limited
Last date for filing response: 10-07-2024
Name of the Examiner: R Kumar

Reference cited:
D1: US20190012345A1 (14-02-2019)
D2: EP3456789B1 (01-06-2018)

PART-II
B. Detailed observations on the requirements under the Act

INVENTIVE STEP
Claims 1-10 lack inventive step under section 2(1)(ja) in view of
teaching of D1 and D2.

NON PATENTABILITY
Claims 1-5 fall under section 3(k) of the Act being a computer
programme per se. See also Rule 24B of the Patent Rules.

PART-III: FORMAL REQUIREMENTS
Form 3 Details regarding corresponding applications abroad must be filed.
PART-IV
DOCUMENTS ON RECORD
`

func TestParseText_Metadata(t *testing.T) {
	rec := ParseText(sampleFER)

	assert.Equal(t, "202241012345", rec.ApplicationNo)
	assert.Equal(t, "05/03/2022", rec.FilingDate)
	assert.Equal(t, "10-01-2024", rec.FERDispatchDate)
	assert.Equal(t, "Acme Robotics Private Limited", rec.Applicant)
	assert.Equal(t, "10-07-2024", rec.ReplyDeadline)
	assert.Equal(t, "R Kumar", rec.ExaminerName)
}

func TestParseText_PriorArts(t *testing.T) {
	rec := ParseText(sampleFER)

	require.Len(t, rec.PriorArts, 2)
	assert.Equal(t, PriorArt{Label: "D1", DocNo: "US20190012345A1", PubDate: "14-02-2019"}, rec.PriorArts[0])
	assert.Equal(t, PriorArt{Label: "D2", DocNo: "EP3456789B1", PubDate: "01-06-2018"}, rec.PriorArts[1])
}

func TestParseText_Objections(t *testing.T) {
	rec := ParseText(sampleFER)

	require.Len(t, rec.Objections, 2)

	first := rec.Objections[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "Inventive Step", first.Heading)
	assert.Contains(t, first.Body, "lack inventive step")
	assert.Contains(t, first.Sections, "2(1)(ja)")
	assert.Equal(t, "1-10", first.Claims)

	second := rec.Objections[1]
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, "Non Patentability", second.Heading)
	assert.Contains(t, second.Sections, "3(k)")
	assert.Contains(t, second.Sections, "Rule 24B")

	// Formal requirements text never leaks into objection bodies.
	assert.NotContains(t, second.Body, "Form 3")
}

func TestParseText_NoObjections(t *testing.T) {
	rec := ParseText("Application No.: 202241012345\nNothing else here.")
	assert.Empty(t, rec.Objections)
	assert.Equal(t, "202241012345", rec.ApplicationNo)
}

func TestNormalizeApplicationNo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"long digit run wins", "2022 4101 2345", "202241012345"},
		{"digits inside punctuation", "/202241012345/", "202241012345"},
		{"legacy slash format kept", "123/del/2004", "123/DEL/2004"},
		{"legacy with spaces compacted", "123 / DEL / 2004", "123/DEL/2004"},
		{"empty", "", ""},
		{"punctuation only", "/:-|", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeApplicationNo(tt.input))
		})
	}
}

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NON-PATENTABILITY", "NON PATENTABILITY"},
		{"non patentability", "NON PATENTABILITY"},
		{"SCOPE OF THE CLAIMS", "SCOPE"},
		{"Scope of Claims", "SCOPE"},
		{"OTHER REQUIREMENTS", "OTHERS REQUIREMENTS"},
		{"OTHERS  REQUIREMENT", "OTHERS REQUIREMENTS"},
		{"INVENTIVE  STEP", "INVENTIVE STEP"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeHeading(tt.input))
		})
	}
}

func TestDetailedObservationsBlock(t *testing.T) {
	block := DetailedObservationsBlock(sampleFER)
	require.NotEmpty(t, block)
	assert.Contains(t, block, "INVENTIVE STEP")
	assert.NotContains(t, block, "Form 3")
}

func TestFormalRequirementsBlock(t *testing.T) {
	block := FormalRequirementsBlock(sampleFER)
	require.NotEmpty(t, block)
	assert.Contains(t, block, "Form 3")
	assert.NotContains(t, block, "INVENTIVE STEP")
	assert.NotContains(t, block, "DOCUMENTS ON RECORD")
}

func TestSplitObjections_InlineFallback(t *testing.T) {
	text := "Some intro. NOVELTY: claims 1-3 are anticipated by D1. " +
		"CLARITY AND CONCISENESS: claim 4 is unclear."
	parts := splitObjections(text)
	require.Len(t, parts, 2)
	assert.Equal(t, "NOVELTY", parts[0].heading)
	assert.Equal(t, "CLARITY AND CONCISENESS", parts[1].heading)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Inventive Step", titleCase("INVENTIVE STEP"))
	assert.Equal(t, "Sufficiency Of Disclosure", titleCase("SUFFICIENCY OF DISCLOSURE"))
	assert.Equal(t, "Non Patentability", titleCase("NON PATENTABILITY"))
}
