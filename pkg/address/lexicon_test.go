package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalStreetType(t *testing.T) {
	tests := []struct {
		name  string
		word  string
		want  string
		found bool
	}{
		{"common abbreviation", "st", "street", true},
		{"uppercase abbreviation", "RD", "road", true},
		{"many-to-one cres", "cres", "crescent", true},
		{"many-to-one cr", "cr", "crescent", true},
		{"many-to-one ave", "ave", "avenue", true},
		{"many-to-one av", "av", "avenue", true},
		{"already canonical", "street", "street", true},
		{"canonical with no abbreviation", "mews", "mews", true},
		{"unknown word", "knoll", "", false},
		{"empty word", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := canonicalStreetType(tt.word)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAbbreviationsMapToCanonicalSet(t *testing.T) {
	// Every abbreviation must land on a member of the canonical set, or
	// the parser could emit a street type the matcher cannot canonicalize.
	for abbrev, full := range streetTypeAbbreviations {
		_, ok := canonicalStreetTypes[full]
		assert.True(t, ok, "abbreviation %q maps to %q which is not canonical", abbrev, full)
	}
}

func TestExpandLocalityPrefix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"st expands to saint", "st heliers", "saint heliers"},
		{"mt expands to mount", "mt eden", "mount eden"},
		{"pt expands to point", "pt chevalier", "point chevalier"},
		{"case-insensitive match preserves remainder casing", "St Heliers", "saint Heliers"},
		{"no chained expansion", "mt st john", "mount st john"},
		{"no known prefix", "remuera", "remuera"},
		{"prefix word without trailing space", "mt", "mt"},
		{"empty string", "", ""},
		{"prefix mid-string untouched", "west mt eden", "west mt eden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandLocalityPrefix(tt.input))
		})
	}
}
