package address

import "strings"

// streetTypeAbbreviations maps common NZ street-type abbreviations to their
// canonical full word. Many-to-one: several abbreviations collapse to the
// same canonical type.
var streetTypeAbbreviations = map[string]string{
	"st":   "street",
	"rd":   "road",
	"ave":  "avenue",
	"av":   "avenue",
	"cres": "crescent",
	"cr":   "crescent",
	"dr":   "drive",
	"dve":  "drive",
	"pl":   "place",
	"tce":  "terrace",
	"ln":   "lane",
	"hwy":  "highway",
	"gr":   "grove",
	"grv":  "grove",
	"ct":   "court",
	"crt":  "court",
	"pde":  "parade",
	"blvd": "boulevard",
	"esp":  "esplanade",
	"gdns": "gardens",
	"sq":   "square",
	"cl":   "close",
}

// canonicalStreetTypes is the set of full street-type words, including types
// that have no common abbreviation and are only ever written in full.
var canonicalStreetTypes = map[string]struct{}{
	"street":    {},
	"road":      {},
	"avenue":    {},
	"crescent":  {},
	"drive":     {},
	"place":     {},
	"terrace":   {},
	"lane":      {},
	"highway":   {},
	"grove":     {},
	"court":     {},
	"parade":    {},
	"boulevard": {},
	"esplanade": {},
	"gardens":   {},
	"square":    {},
	"close":     {},
	"way":       {},
	"rise":      {},
	"mews":      {},
	"quay":      {},
	"walk":      {},
	"loop":      {},
	"view":      {},
	"heights":   {},
	"glen":      {},
	"green":     {},
	"track":     {},
	"promenade": {},
}

// localityPrefix is one abbreviated-prefix -> full-prefix substitution.
// Order matters: the first matching prefix wins and only one substitution is
// ever applied.
type localityPrefix struct {
	abbrev string
	full   string
}

var localityPrefixes = []localityPrefix{
	{"st ", "saint "},
	{"mt ", "mount "},
	{"pt ", "point "},
}

// canonicalStreetType resolves a single word to its canonical street type.
// It returns the full word and true when the word is a known abbreviation or
// already a canonical type, and ("", false) otherwise.
func canonicalStreetType(word string) (string, bool) {
	w := strings.ToLower(word)
	if full, ok := streetTypeAbbreviations[w]; ok {
		return full, true
	}
	if _, ok := canonicalStreetTypes[w]; ok {
		return w, true
	}
	return "", false
}

// ExpandLocalityPrefix expands an abbreviated locality prefix ("St Heliers"
// -> "saint Heliers", "Mt Eden" -> "mount Eden") at the start of s. Matching
// is case-insensitive; the remainder of the string keeps its original casing.
// At most one substitution is applied and strings with no known prefix are
// returned unchanged.
func ExpandLocalityPrefix(s string) string {
	for _, p := range localityPrefixes {
		if len(s) >= len(p.abbrev) && strings.EqualFold(s[:len(p.abbrev)], p.abbrev) {
			return p.full + s[len(p.abbrev):]
		}
	}
	return s
}
