package model

import (
	"time"

	"github.com/sells-group/propmatch/pkg/address"
)

// Estimate is one provider's value estimate for a property. Providers return
// candidate rows with Confidence unset; the lookup layer fills Confidence and
// UnitFallback after matching the row against the query address.
type Estimate struct {
	Provider      string                `json:"provider"`
	SourceAddress string                `json:"source_address"`
	Parsed        address.ParsedAddress `json:"parsed"`
	SourceID      string                `json:"source_id,omitempty"`
	URL           string                `json:"url,omitempty"`
	ValueLow      int64                 `json:"value_low,omitempty"`
	ValueMid      int64                 `json:"value_mid,omitempty"`
	ValueHigh     int64                 `json:"value_high,omitempty"`
	Confidence    address.Confidence    `json:"confidence,omitempty"`
	UnitFallback  bool                  `json:"unit_fallback,omitempty"`
}

// LookupResult is the outcome of a lookup across all enabled providers.
type LookupResult struct {
	Query     string                `json:"query"`
	Parsed    address.ParsedAddress `json:"parsed"`
	Estimates []Estimate            `json:"estimates"`
	FromCache bool                  `json:"from_cache"`
	CreatedAt time.Time             `json:"created_at"`
}

// ProviderToggle is the persisted enabled/disabled state of a provider.
type ProviderToggle struct {
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LookupRecord is one row of lookup history.
type LookupRecord struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	CreatedAt   time.Time `json:"created_at"`
}
