package lookup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/sells-group/propmatch/pkg/address"
)

// Fingerprint derives a stable cache key from the structured fields of a
// parsed address, so that different raw spellings of the same address share
// one cache entry.
func Fingerprint(p address.ParsedAddress) string {
	joined := strings.Join([]string{
		p.UnitNum,
		p.HouseNum,
		p.StreetName,
		p.StreetType,
		p.Suburb,
		p.City,
		p.Postcode,
	}, "\x1f")
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}
