package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullAddress() ParsedAddress {
	return Parse("1/42 Smith Street, Remuera, Auckland 1050")
}

func TestMatch_Reflexive(t *testing.T) {
	p := fullAddress()
	v := Match(p, p)
	assert.True(t, v.Match)
	assert.Equal(t, ConfidenceHigh, v.Confidence, "suburb+city+postcode present on both sides scores 5")
	assert.False(t, v.UnitFallback)
}

func TestMatch_InvalidPropagation(t *testing.T) {
	valid := Parse("42 Smith Street")

	tests := []struct {
		name  string
		query ParsedAddress
		cand  ParsedAddress
	}{
		{"invalid query", Parse(""), valid},
		{"invalid candidate", valid, Parse("")},
		{"both invalid", Parse(""), Parse("no numbers")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Match(tt.query, tt.cand)
			assert.False(t, v.Match)
			assert.Empty(t, v.Confidence)
		})
	}
}

func TestMatch_HardGates(t *testing.T) {
	tests := []struct {
		name  string
		query string
		cand  string
	}{
		{"house number mismatch", "42 Smith Street", "44 Smith Street"},
		{"house number no numeric coercion", "42 Smith Street", "042 Smith Street"},
		{"unit mismatch", "1/42 Smith Street", "2/42 Smith Street"},
		{"unit-bearing query vs unit-less candidate", "2/42 Smith Street", "42 Smith Street"},
		{"unit-less query vs unit-bearing candidate", "42 Smith Street", "2/42 Smith Street"},
		{"street name mismatch", "42 Smith Street", "42 Smyth Street"},
		{"street type conflict", "42 Smith Street", "42 Smith Road"},
		{"suburb conflict", "42 Smith Street, Remuera", "42 Smith Street, Ponsonby"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Match(Parse(tt.query), Parse(tt.cand))
			assert.False(t, v.Match)
			assert.Empty(t, v.Confidence)
		})
	}
}

func TestMatch_SkippedGates(t *testing.T) {
	tests := []struct {
		name  string
		query string
		cand  string
	}{
		{"street type missing on query", "42 Smith", "42 Smith Street"},
		{"street type missing on candidate", "42 Smith Street", "42 Smith"},
		{"street type unrecognized on one side", "42 Smith Boulevarde", "42 smith boulevarde street"},
		{"suburb missing on query", "42 Smith Street", "42 Smith Street, Remuera"},
		{"suburb missing on candidate", "42 Smith Street, Remuera", "42 Smith Street"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Match(Parse(tt.query), Parse(tt.cand))
			assert.True(t, v.Match)
		})
	}
}

func TestMatch_SuburbSubstringCompatibility(t *testing.T) {
	q := Parse("42 Smith Street, Auckland")
	c := Parse("42 Smith Street, Auckland Central")

	v := Match(q, c)
	assert.True(t, v.Match)
	assert.Equal(t, ConfidenceMedium, v.Confidence, "suburb compatibility alone contributes +2")
}

func TestMatch_SuburbPrefixExpansionInGate(t *testing.T) {
	// Hand-built candidate with an unexpanded suburb: the gate re-applies
	// prefix expansion to both sides.
	q := Parse("42 Smith Street, Saint Heliers")
	c := q
	c.Suburb = "st heliers"

	v := Match(q, c)
	assert.True(t, v.Match)
}

func TestMatch_ConfidenceTiers(t *testing.T) {
	tests := []struct {
		name  string
		query string
		cand  string
		want  Confidence
	}{
		{
			name:  "no locality on either side",
			query: "42 Smith Street",
			cand:  "42 Smith Street",
			want:  ConfidenceLow,
		},
		{
			name:  "suburb only",
			query: "42 Smith Street, Remuera",
			cand:  "42 Smith Street, Remuera",
			want:  ConfidenceMedium,
		},
		{
			name:  "suburb and city",
			query: "42 Smith Street, Remuera, Auckland",
			cand:  "42 Smith Street, Remuera, Auckland",
			want:  ConfidenceHigh,
		},
		{
			name:  "postcode only",
			query: "42 Smith Street, 1050",
			cand:  "42 Smith Street, 1050",
			want:  ConfidenceMedium,
		},
		{
			name:  "everything agrees",
			query: "42 Smith Street, Remuera, Auckland 1050",
			cand:  "42 Smith Street, Remuera, Auckland 1050",
			want:  ConfidenceHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Match(Parse(tt.query), Parse(tt.cand))
			assert.True(t, v.Match)
			assert.Equal(t, tt.want, v.Confidence)
		})
	}
}

func TestMatch_PostcodeMismatchOnlyGradesConfidence(t *testing.T) {
	q := Parse("42 Smith Street, Remuera, Auckland 1050")
	c := Parse("42 Smith Street, Remuera, Auckland 1051")

	v := Match(q, c)
	assert.True(t, v.Match, "postcode disagreement is scored, never gated")
	assert.Equal(t, ConfidenceHigh, v.Confidence, "suburb +2 and city +1 still reach high")
}

func TestMatch_UnitFallbackUnreachableThroughGates(t *testing.T) {
	// The unit gate requires a unit-less query to match only unit-less
	// candidates, so the fallback flag cannot fire through Match today.
	// It is kept for callers ranking result sets; assert it stays false
	// on every verdict Match can actually produce.
	pairs := [][2]string{
		{"42 Smith Street", "42 Smith Street"},
		{"2/42 Smith Street", "2/42 Smith Street"},
		{"42 Smith Street, Remuera", "42 Smith Street, Remuera, Auckland"},
	}
	for _, pair := range pairs {
		v := Match(Parse(pair[0]), Parse(pair[1]))
		assert.True(t, v.Match)
		assert.False(t, v.UnitFallback)
	}
}
