// Package address parses free-text NZ street addresses into structured
// records and compares two records to decide whether they denote the same
// property. Both operations are pure: no I/O, no shared state, safe for
// concurrent use.
package address

import (
	"regexp"
	"strings"
)

// ParsedAddress is the structured form of a raw address string. Empty string
// means the field is absent. Every present field is trimmed and lowercased;
// StreetType is always a canonical full word, never an abbreviation.
// Valid is false only when no house number could be identified, in which
// case every other field is empty.
type ParsedAddress struct {
	UnitNum    string `json:"unit_num,omitempty"`
	HouseNum   string `json:"house_num,omitempty"`
	StreetName string `json:"street_name,omitempty"`
	StreetType string `json:"street_type,omitempty"`
	Suburb     string `json:"suburb,omitempty"`
	City       string `json:"city,omitempty"`
	Postcode   string `json:"postcode,omitempty"`
	Valid      bool   `json:"valid"`
}

var (
	// Pattern A: "1/42 Smith Street", "1a/42b Smith St".
	unitSlashPattern = regexp.MustCompile(`^(\d+[a-z]?)/(\d+[a-z]?)\s+(.+)$`)
	// Pattern B: "unit 1, 42 Smith Street", "flat 2 8 Jones Road".
	unitKeywordPattern = regexp.MustCompile(`^(?:unit|flat|apartment|apt|lot)\s+(\d+[a-z]?)(?:\s*,\s*|\s+)(\d+[a-z]?)\s+(.+)$`)
	// Pattern C: "42 Smith Street".
	houseOnlyPattern = regexp.MustCompile(`^(\d+[a-z]?)\s+(.+)$`)

	// A street portion that is only a unit prefix plus number means the
	// comma split cut too early ("Unit 2, 8 Jones Road").
	bareUnitPattern = regexp.MustCompile(`^(?:unit|flat|apartment|apt|lot)\s+\d+[a-z]?$`)

	postcodePattern = regexp.MustCompile(`\b\d{4}\b`)
	// Trailing run of 5+ digits on a run-on slug is an appended internal
	// record ID from the source system's valuation database.
	trailingIDPattern = regexp.MustCompile(`\s*\d{5,}\s*$`)
	// Some sources append a qualifier to a locality part ("Auckland - City").
	qualifierPattern = regexp.MustCompile(`\s+-\s+\S+$`)
)

// Parse converts a raw address string into a ParsedAddress. It never panics;
// malformed input yields the canonical invalid record.
func Parse(raw string) ParsedAddress {
	return ParseWithHints(raw, "", "")
}

// ParseWithHints parses raw using pre-split locality hints when the source
// already provides suburb/city as separate fields. A non-empty hint takes
// the place of locality resolution from the string itself; locality parts
// are then only scanned for a postcode.
func ParseWithHints(raw, suburbHint, cityHint string) ParsedAddress {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ParsedAddress{}
	}

	var (
		streetPortion string
		localityParts []string
		postcode      string
	)

	if strings.ContainsAny(s, ",;") {
		idx := strings.IndexAny(s, ",;")
		streetPortion = strings.TrimSpace(s[:idx])
		for _, part := range strings.FieldsFunc(s[idx+1:], isLocalityDelim) {
			if p := strings.TrimSpace(part); p != "" {
				localityParts = append(localityParts, p)
			}
		}
	} else if sp, parts, pc, ok := splitRunOnSlug(s); ok {
		streetPortion, localityParts, postcode = sp, parts, pc
	} else {
		// No delimiters and no recognizable street type: the whole
		// string is the street portion with no locality.
		streetPortion = s
	}

	if bareUnitPattern.MatchString(streetPortion) && len(localityParts) > 0 {
		streetPortion = streetPortion + ", " + localityParts[0]
		localityParts = localityParts[1:]
	}

	unit, house, body, ok := extractNumbers(streetPortion)
	if !ok {
		return ParsedAddress{}
	}

	name, streetType := splitStreetType(body)
	suburb, city, postcode := resolveLocality(localityParts, suburbHint, cityHint, postcode)

	return ParsedAddress{
		UnitNum:    unit,
		HouseNum:   house,
		StreetName: name,
		StreetType: streetType,
		Suburb:     suburb,
		City:       city,
		Postcode:   postcode,
		Valid:      true,
	}
}

func isLocalityDelim(r rune) bool { return r == ',' || r == ';' }

// splitRunOnSlug handles delimiter-free slugs such as
// "865 Waikaretu Valley Road Tuakau Tuakau 2121 1971506": the first 4-digit
// token is the postcode, a trailing 5+ digit run is a source-system record
// ID, and everything after the rightmost street-type word is locality.
// ok is false when no street-type word is found; the caller then falls back
// to standard splitting and all partial captures here are discarded.
func splitRunOnSlug(s string) (street string, locality []string, postcode string, ok bool) {
	working := s
	if tok := postcodePattern.FindString(working); tok != "" {
		postcode = tok
		loc := postcodePattern.FindStringIndex(working)
		working = working[:loc[0]] + working[loc[1]:]
	}
	working = trailingIDPattern.ReplaceAllString(working, "")

	words := strings.Fields(working)
	for i := len(words) - 1; i >= 1; i-- {
		if _, isType := canonicalStreetType(words[i]); isType {
			return strings.Join(words[:i+1], " "), words[i+1:], postcode, true
		}
	}
	return "", nil, "", false
}

// extractNumbers runs the unit/house pattern cascade against the street
// portion, first match wins. ok is false when no pattern matches, which
// makes the whole address invalid.
func extractNumbers(street string) (unit, house, body string, ok bool) {
	if m := unitSlashPattern.FindStringSubmatch(street); m != nil {
		return m[1], m[2], m[3], true
	}
	if m := unitKeywordPattern.FindStringSubmatch(street); m != nil {
		return m[1], m[2], m[3], true
	}
	if m := houseOnlyPattern.FindStringSubmatch(street); m != nil {
		return "", m[1], m[2], true
	}
	return "", "", "", false
}

// splitStreetType peels a recognized street-type word off the end of the
// street body. Unrecognized last words stay part of the name.
func splitStreetType(body string) (name, streetType string) {
	words := strings.Fields(body)
	if len(words) == 0 {
		return "", ""
	}
	if full, isType := canonicalStreetType(words[len(words)-1]); isType {
		streetType = full
		words = words[:len(words)-1]
	}
	// Expansion handles names like "Mt Eden Road" where the abbreviation
	// prefixes the street name itself, not a locality field.
	return ExpandLocalityPrefix(strings.Join(words, " ")), streetType
}

// resolveLocality assigns suburb/city/postcode from the locality parts.
// A postcode already captured by run-on detection is kept; otherwise the
// first 4-digit token found in scan order wins and later ones are ignored.
func resolveLocality(parts []string, suburbHint, cityHint, postcode string) (suburb, city, pc string) {
	pc = postcode

	if strings.TrimSpace(suburbHint) != "" || strings.TrimSpace(cityHint) != "" {
		suburb = strings.ToLower(strings.TrimSpace(suburbHint))
		city = strings.ToLower(strings.TrimSpace(cityHint))
		if pc == "" {
			for _, part := range parts {
				if tok := postcodePattern.FindString(part); tok != "" {
					pc = tok
					break
				}
			}
		}
		return suburb, city, pc
	}

	for _, part := range parts {
		part = qualifierPattern.ReplaceAllString(part, "")
		if tok := postcodePattern.FindString(part); tok != "" {
			if pc == "" {
				pc = tok
			}
			part = postcodePattern.ReplaceAllString(part, " ")
		}
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		switch {
		case suburb == "":
			suburb = ExpandLocalityPrefix(part)
		case city == "":
			city = ExpandLocalityPrefix(part)
		}
	}
	return suburb, city, pc
}
