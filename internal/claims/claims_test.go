package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleClaims = `IN THE MATTER OF Application No. 202241012345

AMENDED CLAIMS

WE CLAIM:
1. A method of adaptive route planning for a warehouse robot, the
method comprising:
receiving congestion data; and
reassigning an aisle to the robot.
2. The method as claimed in claim 1, wherein the congestion data is
received from an edge gateway.
3. The method as claimed in claim 2, wherein reassigning comprises:
1) scoring each aisle; and
2) selecting the lowest scored aisle.

Dated this 12th day of June 2024

Yours faithfully
`

func TestFromText(t *testing.T) {
	got := FromText(sampleClaims)
	require.Len(t, got, 3)

	assert.Equal(t, 1, got[0].Number)
	assert.Contains(t, got[0].Text, "adaptive route planning")
	assert.Contains(t, got[0].Text, "reassigning an aisle")

	assert.Equal(t, 2, got[1].Number)
	assert.Contains(t, got[1].Text, "edge gateway")

	// Claim-internal enumeration stays inside claim 3.
	assert.Equal(t, 3, got[2].Number)
	assert.Contains(t, got[2].Text, "scoring each aisle")
	assert.Contains(t, got[2].Text, "selecting the lowest scored aisle")

	// Trailing boilerplate never becomes claim text.
	assert.NotContains(t, got[2].Text, "Dated this")
	assert.NotContains(t, got[2].Text, "faithfully")
}

func TestBlock_NumberedFallback(t *testing.T) {
	text := "Cover letter text.\n\n1. A widget comprising a frame.\n2. The widget of claim 1.\n"
	block := Block(text)
	require.NotEmpty(t, block)

	got := Split(block)
	require.Len(t, got, 2)
	assert.Equal(t, "A widget comprising a frame.", got[0].Text)
}

func TestBlock_EndsAtSubmissions(t *testing.T) {
	text := "WE CLAIM:\n1. A widget.\nSUBMISSIONS TO THE OBJECTIONS\nSection 3(k) does not apply.\n"
	got := FromText(text)
	require.Len(t, got, 1)
	assert.Equal(t, "A widget.", got[0].Text)
}

func TestSplit_IgnoresNonSequentialMarkers(t *testing.T) {
	got := Split("1. First claim text.\n5. Stray marker inside.\n2. Second claim.")
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Text, "Stray marker inside.")
	assert.Equal(t, 2, got[1].Number)
}

func TestFromText_Empty(t *testing.T) {
	assert.Nil(t, FromText("No claims heading or numbering here."))
}
