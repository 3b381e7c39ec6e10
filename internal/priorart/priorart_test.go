package priorart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		index    int
		expected string
	}{
		{"valid label kept", "D1", 3, "D1"},
		{"lowercase upcased", "d12", 3, "D12"},
		{"whitespace trimmed", "  D2  ", 3, "D2"},
		{"empty falls back to index", "", 3, "D3"},
		{"garbage falls back to index", "exhibit A", 5, "D5"},
		{"too many digits falls back", "D12345", 2, "D2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLabel(tt.label, tt.index))
		})
	}
}

const espacenetSample = `3/14/2024, 10:22 AM Espacenet - search results
US20190012345A1
https://worldwide.espacenet.com/patent/search
ABSTRACT
A control system for a mobile robot is disclosed. The system relates to
route planning and provides a method in which congestion data from a
plurality of aisle sensors is aggregated at a gateway. The gateway
computes an updated route assignment and transmits the assignment to each
robot, so that robots avoid congested aisles without central scheduling.
The solution reduces travel time in dense warehouse deployments.

CLAIMS
1. A control system comprising a gateway.
`

func TestAbstractFromText_HeadingBased(t *testing.T) {
	got := AbstractFromText(espacenetSample)

	assert.Contains(t, got, "control system for a mobile robot")
	assert.Contains(t, got, "computes an updated route assignment")
	// Banner, URL and claims never leak in.
	assert.NotContains(t, got, "Espacenet")
	assert.NotContains(t, got, "espacenet.com")
	assert.NotContains(t, got, "A control system comprising")
}

func TestAbstractFromText_BestParagraphFallback(t *testing.T) {
	long := "The present invention relates to a water purification apparatus and " +
		"provides a method in which a membrane stack is backwashed using stored " +
		"permeate. A controller monitors differential pressure across the stack and " +
		"triggers the backwash cycle when fouling is detected, so that throughput " +
		"remains stable over extended operating periods without manual cleaning or " +
		"chemical dosing, and the overall energy consumption of the system is reduced."

	text := "SOME COVER PAGE\nshort line\n\n" + long + "\n\nFIGURE 1 shows the stack.\n"
	got := AbstractFromText(text)

	assert.Contains(t, got, "water purification apparatus")
	assert.NotContains(t, got, "FIGURE 1")
}

func TestCleanText(t *testing.T) {
	in := "Espacenet - search results\nPage 1 of 3\nFirst part of the para\ncontinues here.\n\nSecond para"
	got := CleanText(in)

	assert.NotContains(t, got, "Espacenet")
	assert.NotContains(t, got, "Page 1 of 3")
	assert.Contains(t, got, "First part of the para continues here.")
	// Paragraph break preserved, unterminated tail gets a period.
	assert.Contains(t, got, "\n\nSecond para.")
}

func TestCleanText_HyphenLineBreak(t *testing.T) {
	got := CleanText("The gateway com-\nputes the route.")
	assert.Contains(t, got, "computes")
}

func TestPolishAbstractTail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"terminal period kept", "Done here.", "Done here."},
		{"missing period added", "An apparatus for drying grain", "An apparatus for drying grain."},
		{
			"enumerated tail terminated",
			"A dryer with a hopper (210) and a fan (212) and a duct (214)",
			"A dryer with a hopper (210) and a fan (212) and a duct (214).",
		},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, polishAbstractTail(tt.input))
		})
	}
}

func TestTrimWords(t *testing.T) {
	sentence := "Seven words ending in a clean period."
	long := strings.Repeat(sentence+" ", 40)

	got := trimWords(long, 50)
	assert.LessOrEqual(t, len(strings.Fields(got)), 60)
	assert.True(t, strings.HasSuffix(got, "."))

	short := "Fits under the cap."
	assert.Equal(t, short, trimWords(short, 50))
}
