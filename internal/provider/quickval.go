package provider

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/sells-group/propmatch/internal/config"
	"github.com/sells-group/propmatch/internal/model"
	"github.com/sells-group/propmatch/pkg/address"
)

// QuickVal queries the QuickVal valuation search API. Its rows carry a
// single run-on display slug — street, locality and postcode joined by
// whitespace, sometimes with the valuation record ID appended — which the
// parser's run-on handling splits apart.
type QuickVal struct {
	client  *client
	baseURL string
}

// NewQuickVal creates a QuickVal provider from configuration.
func NewQuickVal(cfg config.ProviderConfig) *QuickVal {
	return &QuickVal{
		client:  newClient(cfg),
		baseURL: cfg.BaseURL,
	}
}

// Name implements Provider.
func (p *QuickVal) Name() string { return "quickval" }

// Available implements Provider.
func (p *QuickVal) Available() bool { return p.baseURL != "" }

type quickValResponse struct {
	Results []struct {
		ValuationID    string `json:"valuation_id"`
		DisplayAddress string `json:"display_address"`
		ValueLow       int64  `json:"value_low"`
		ValueMid       int64  `json:"value_mid"`
		ValueHigh      int64  `json:"value_high"`
	} `json:"results"`
}

// Search implements Provider.
func (p *QuickVal) Search(ctx context.Context, query string) ([]model.Estimate, error) {
	searchURL := fmt.Sprintf("%s/search?query=%s", p.baseURL, url.QueryEscape(query))

	var resp quickValResponse
	if err := p.client.getJSON(ctx, searchURL, &resp); err != nil {
		return nil, err
	}

	estimates := make([]model.Estimate, 0, len(resp.Results))
	for _, row := range resp.Results {
		parsed := address.Parse(row.DisplayAddress)
		if !parsed.Valid {
			zap.L().Debug("quickval: skipping unparseable row",
				zap.String("address", row.DisplayAddress),
			)
			continue
		}
		estimates = append(estimates, model.Estimate{
			Provider:      p.Name(),
			SourceAddress: row.DisplayAddress,
			Parsed:        parsed,
			SourceID:      row.ValuationID,
			ValueLow:      row.ValueLow,
			ValueMid:      row.ValueMid,
			ValueHigh:     row.ValueHigh,
		})
	}

	zap.L().Debug("quickval search complete",
		zap.String("query", query),
		zap.Int("rows", len(resp.Results)),
		zap.Int("parsed", len(estimates)),
	)
	return estimates, nil
}
