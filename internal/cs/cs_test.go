package cs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCS = `FORM 2
THE PATENTS ACT, 1970
COMPLETE SPECIFICATION

TITLE OF THE INVENTION
A SYSTEM AND METHOD FOR ADAPTIVE ROUTE
PLANNING IN WAREHOUSE ROBOTS

NAME AND ADDRESS OF THE APPLICANT
Acme Robotics Private Limited
Unit 12, Innovation Tower, Bengaluru 560103

The following specification particularly describes the invention.

BACKGROUND OF THE INVENTION
[0001] Warehouse robots typically follow fixed routes between
picking stations.
[0002] Fixed routes cause congestion when many robots share aisles.
Page 2 of 14

SUMMARY OF THE INVENTION
[0003] The present invention provides a route planner that reassigns
aisles based on live congestion data.

TECHNICAL EFFECT OF THE INVENTION
[0004] The planner reduces average pick time by avoiding congested
aisles in real time.

BRIEF DESCRIPTION OF DRAWINGS
Figure 1 shows the planner.

DETAILED DESCRIPTION OF THE INVENTION
[0005] In one embodiment the planner runs on an edge gateway.

WE CLAIM:
1. A route planning method.
`

func TestTitleFromText(t *testing.T) {
	got := TitleFromText(sampleCS)
	assert.Equal(t, "A SYSTEM AND METHOD FOR ADAPTIVE ROUTE PLANNING IN WAREHOUSE ROBOTS", got)
}

func TestTitleFromText_InlineFallback(t *testing.T) {
	got := TitleFromText("Some header\nTitle: Adaptive Route Planner For Robots\nMore text")
	assert.Equal(t, "Adaptive Route Planner For Robots", got)
}

func TestTitleFromText_Absent(t *testing.T) {
	assert.Equal(t, "", TitleFromText("No heading here.\nJust prose."))
}

func TestApplicantFromText_NameAddressBlock(t *testing.T) {
	got := ApplicantFromText(sampleCS)
	assert.Equal(t, "Acme Robotics Private Limited", got)
}

func TestApplicantFromText_LabeledBlockWins(t *testing.T) {
	text := `FORM 2
APPLICANT(S):
Name: Zenith Pharma Limited
Nationality: Indian
Address: 12 MG Road, Chennai
The following specification particularly describes the invention.`
	assert.Equal(t, "Zenith Pharma Limited", ApplicantFromText(text))
}

func TestExtractFromText(t *testing.T) {
	secs := ExtractFromText(sampleCS)
	require.NotNil(t, secs)

	assert.Contains(t, secs.Background, "fixed routes")
	assert.Contains(t, secs.Background, "congestion when many robots")
	// Paragraph numbering and page furniture are stripped.
	assert.NotContains(t, secs.Background, "[0001]")
	assert.NotContains(t, secs.Background, "Page 2 of 14")
	// The next section never bleeds in.
	assert.NotContains(t, secs.Background, "route planner that reassigns")

	assert.Contains(t, secs.Summary, "reassigns")
	assert.NotContains(t, secs.Summary, "TECHNICAL EFFECT")

	assert.Contains(t, secs.TechnicalEffect, "reduces average pick time")
	assert.NotContains(t, secs.TechnicalEffect, "Figure 1")
}

func TestExtractFromText_Empty(t *testing.T) {
	secs := ExtractFromText("   ")
	require.NotNil(t, secs)
	assert.Empty(t, secs.Background)
	assert.Empty(t, secs.Summary)
	assert.Empty(t, secs.TechnicalEffect)
}

func TestCleanSectionText(t *testing.T) {
	in := "[0012] First paragraph line.\nPage 3 of 10\n2. Second numbered point here.\n\n\n\nTail."
	out := cleanSectionText(in)
	assert.Contains(t, out, "First paragraph line.")
	assert.Contains(t, out, "Second numbered point here.")
	assert.NotContains(t, out, "Page 3 of 10")
	assert.NotContains(t, out, "[0012]")
	assert.NotContains(t, out, "\n\n\n")
}
