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

// HomeEstimate queries the HomeEstimate property search API. Its responses
// are structured: address, suburb and city arrive as separate fields, so
// parsing passes them through as locality hints.
type HomeEstimate struct {
	client  *client
	baseURL string
}

// NewHomeEstimate creates a HomeEstimate provider from configuration.
func NewHomeEstimate(cfg config.ProviderConfig) *HomeEstimate {
	return &HomeEstimate{
		client:  newClient(cfg),
		baseURL: cfg.BaseURL,
	}
}

// Name implements Provider.
func (p *HomeEstimate) Name() string { return "homeestimate" }

// Available implements Provider.
func (p *HomeEstimate) Available() bool { return p.baseURL != "" }

type homeEstimateResponse struct {
	Properties []struct {
		ID          string `json:"id"`
		Address     string `json:"address"`
		Suburb      string `json:"suburb"`
		City        string `json:"city"`
		URL         string `json:"url"`
		EstimateLow int64  `json:"estimate_low"`
		EstimateMid int64  `json:"estimate_mid"`
		EstimateHi  int64  `json:"estimate_high"`
	} `json:"properties"`
}

// Search implements Provider.
func (p *HomeEstimate) Search(ctx context.Context, query string) ([]model.Estimate, error) {
	searchURL := fmt.Sprintf("%s/properties/search?q=%s", p.baseURL, url.QueryEscape(query))

	var resp homeEstimateResponse
	if err := p.client.getJSON(ctx, searchURL, &resp); err != nil {
		return nil, err
	}

	estimates := make([]model.Estimate, 0, len(resp.Properties))
	for _, prop := range resp.Properties {
		parsed := address.ParseWithHints(prop.Address, prop.Suburb, prop.City)
		if !parsed.Valid {
			zap.L().Debug("homeestimate: skipping unparseable row",
				zap.String("address", prop.Address),
			)
			continue
		}
		estimates = append(estimates, model.Estimate{
			Provider:      p.Name(),
			SourceAddress: prop.Address,
			Parsed:        parsed,
			SourceID:      prop.ID,
			URL:           prop.URL,
			ValueLow:      prop.EstimateLow,
			ValueMid:      prop.EstimateMid,
			ValueHigh:     prop.EstimateHi,
		})
	}

	zap.L().Debug("homeestimate search complete",
		zap.String("query", query),
		zap.Int("rows", len(resp.Properties)),
		zap.Int("parsed", len(estimates)),
	)
	return estimates, nil
}
