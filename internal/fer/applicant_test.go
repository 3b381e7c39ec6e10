package fer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeApplicantName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips applicant label",
			input:    "Applicant(s): Acme Robotics Private Limited",
			expected: "Acme Robotics Private Limited",
		},
		{
			name:     "truncates after corporate suffix",
			input:    "Acme Robotics Private Limited, 4th Floor, Tower B, Bengaluru",
			expected: "Acme Robotics Private Limited",
		},
		{
			name:     "drops nationality tail",
			input:    "Acme Robotics LLP Nationality: Indian",
			expected: "Acme Robotics LLP",
		},
		{
			name:     "drops meta tail",
			input:    "Acme Robotics Examination report follows",
			expected: "Acme Robotics",
		},
		{
			name:     "empty when no letters remain",
			input:    "12345 / : -",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeApplicantName(tt.input))
		})
	}
}

func TestPickBestApplicantName_CompanyFromAddressBlock(t *testing.T) {
	block := "Acme Robotics Private Limited Unit 12, 4th Floor, Innovation Tower, " +
		"Outer Ring Road, Bengaluru 560103 Karnataka India"

	got := PickBestApplicantName(block)
	assert.Equal(t, "Acme Robotics Private Limited", got)
}

func TestPickBestApplicantName_Institution(t *testing.T) {
	block := "Department of Computer Science Indian Institute Road No 5 Hyderabad 500032"

	got := PickBestApplicantName(block)
	assert.Contains(t, got, "Institute")
}

func TestPickBestApplicantName_CompactPhraseKeptAsIs(t *testing.T) {
	got := PickBestApplicantName("Innovation Centre, Manipal University")
	assert.Equal(t, "Innovation Centre, Manipal University", got)
}

func TestApplicantFromText(t *testing.T) {
	t.Run("inline value", func(t *testing.T) {
		text := "Some header\nApplicant: Acme Robotics Private Limited\nDate of Filing: 01/01/2020"
		assert.Equal(t, "Acme Robotics Private Limited", ApplicantFromText(text))
	})

	t.Run("continuation lines up to corporate suffix", func(t *testing.T) {
		text := "Applicant:\nAcme Robotics\nPrivate Limited\nSome Street"
		assert.Equal(t, "Acme Robotics Private Limited", ApplicantFromText(text))
	})

	t.Run("stops at meta boundary", func(t *testing.T) {
		text := "Applicant:\nZenith Labs LLP\nDate of Dispatch: 01/01/2020"
		assert.Equal(t, "Zenith Labs LLP", ApplicantFromText(text))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Equal(t, "", ApplicantFromText("No names here.\nJust text."))
	})
}

func TestApplicantFromLabeledBlock(t *testing.T) {
	text := `FORM 2
APPLICANT(S):
Name: Zenith Pharma Limited
Nationality: Indian
Address: 12 MG Road, Chennai
The following specification particularly describes the invention.`

	assert.Equal(t, "Zenith Pharma Limited", ApplicantFromLabeledBlock(text))
}

func TestApplicantFromLabeledBlock_NoBlock(t *testing.T) {
	assert.Equal(t, "", ApplicantFromLabeledBlock("BACKGROUND\nNothing labeled here."))
}
