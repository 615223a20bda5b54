package address

import "strings"

// Confidence grades the locality agreement of an established match.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Verdict is the result of comparing two parsed addresses. Confidence is
// empty when Match is false. UnitFallback signals that the candidate is a
// unit-level record for a building-level query, so a caller ranking a result
// set should prefer a unit-less record if one exists.
type Verdict struct {
	Match        bool       `json:"match"`
	Confidence   Confidence `json:"confidence,omitempty"`
	UnitFallback bool       `json:"unit_fallback,omitempty"`
}

// Match decides whether query and candidate denote the same property.
//
// Identity is gated, not scored: an invalid record on either side, a house
// number mismatch, a unit mismatch (a query without a unit only matches a
// candidate without one, and vice versa), a street name mismatch, or a
// conflict between two recognized street types or two present suburbs is an
// immediate non-match. Once the gates pass, suburb/city/postcode agreement
// only grades the confidence tier, never revokes the match.
func Match(query, candidate ParsedAddress) Verdict {
	if !query.Valid || !candidate.Valid {
		return Verdict{}
	}

	if query.HouseNum != candidate.HouseNum {
		return Verdict{}
	}

	if query.UnitNum != "" {
		if candidate.UnitNum != query.UnitNum {
			return Verdict{}
		}
	} else if candidate.UnitNum != "" {
		// A building-level query must not loosely match an arbitrary
		// unit inside that building.
		return Verdict{}
	}

	if query.StreetName != candidate.StreetName {
		return Verdict{}
	}

	// Street type only gates when both sides recognized one; a missing or
	// unrecognized type never blocks a match on its own.
	if query.StreetType != "" && candidate.StreetType != "" && query.StreetType != candidate.StreetType {
		return Verdict{}
	}

	if query.Suburb != "" && candidate.Suburb != "" && !SuburbCompatible(query.Suburb, candidate.Suburb) {
		return Verdict{}
	}

	score := 0
	if query.Suburb != "" && candidate.Suburb != "" && SuburbCompatible(query.Suburb, candidate.Suburb) {
		score += 2
	}
	if query.City != "" && candidate.City != "" && containsEither(query.City, candidate.City) {
		score++
	}
	if query.Postcode != "" && candidate.Postcode != "" && query.Postcode == candidate.Postcode {
		score += 2
	}

	v := Verdict{Match: true}
	switch {
	case score >= 3:
		v.Confidence = ConfidenceHigh
	case score >= 1:
		v.Confidence = ConfidenceMedium
	default:
		v.Confidence = ConfidenceLow
	}
	v.UnitFallback = query.UnitNum == "" && candidate.UnitNum != ""
	return v
}

// SuburbCompatible reports whether two suburb values denote the same
// locality: equal after prefix expansion, or one contains the other
// ("auckland" vs "auckland central").
func SuburbCompatible(a, b string) bool {
	a = ExpandLocalityPrefix(a)
	b = ExpandLocalityPrefix(b)
	return containsEither(a, b)
}

func containsEither(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
