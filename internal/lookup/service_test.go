package lookup

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/propmatch/internal/model"
	"github.com/sells-group/propmatch/internal/provider"
	"github.com/sells-group/propmatch/pkg/address"
)

type mockProvider struct {
	name string
	rows []model.Estimate
	err  error
	up   bool
}

func (m *mockProvider) Name() string    { return m.name }
func (m *mockProvider) Available() bool { return m.up }
func (m *mockProvider) Search(ctx context.Context, query string) ([]model.Estimate, error) {
	return m.rows, m.err
}

type mockStore struct {
	cache    map[string]*model.LookupResult
	disabled map[string]bool
	history  []string
}

func newMockStore() *mockStore {
	return &mockStore{
		cache:    make(map[string]*model.LookupResult),
		disabled: make(map[string]bool),
	}
}

func (m *mockStore) GetCachedLookup(ctx context.Context, fp string) (*model.LookupResult, bool, error) {
	r, ok := m.cache[fp]
	return r, ok, nil
}

func (m *mockStore) PutCachedLookup(ctx context.Context, fp string, r *model.LookupResult, ttl time.Duration) error {
	m.cache[fp] = r
	return nil
}

func (m *mockStore) ProviderEnabled(ctx context.Context, name string) (bool, error) {
	return !m.disabled[name], nil
}

func (m *mockStore) RecordLookup(ctx context.Context, query string, n int) error {
	m.history = append(m.history, query)
	return nil
}

func row(providerName, sourceAddr string, mid int64) model.Estimate {
	return model.Estimate{
		Provider:      providerName,
		SourceAddress: sourceAddr,
		Parsed:        address.Parse(sourceAddr),
		ValueMid:      mid,
	}
}

func TestLookup_UnparseableQuery(t *testing.T) {
	svc := New(nil, nil)
	_, err := svc.Lookup(context.Background(), "not an address")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestLookup_BestEstimatePerProvider(t *testing.T) {
	he := &mockProvider{name: "homeestimate", up: true, rows: []model.Estimate{
		row("homeestimate", "44 Smith Street, Remuera, Auckland 1050", 1),
		row("homeestimate", "42 Smith Street, Remuera, Auckland 1050", 1250000),
	}}
	qv := &mockProvider{name: "quickval", up: true, rows: []model.Estimate{
		row("quickval", "42 Smith Street, Remuera", 905000),
	}}

	svc := New([]provider.Provider{he, qv}, nil)

	result, err := svc.Lookup(context.Background(), "42 Smith Street, Remuera, Auckland 1050")
	require.NoError(t, err)
	require.Len(t, result.Estimates, 2)

	assert.Equal(t, "homeestimate", result.Estimates[0].Provider)
	assert.EqualValues(t, 1250000, result.Estimates[0].ValueMid, "house-number mismatch filtered out")
	assert.Equal(t, address.ConfidenceHigh, result.Estimates[0].Confidence)

	assert.Equal(t, "quickval", result.Estimates[1].Provider)
	assert.Equal(t, address.ConfidenceMedium, result.Estimates[1].Confidence, "suburb only scores medium")
}

func TestLookup_ConfidenceOutranksSimilarity(t *testing.T) {
	p := &mockProvider{name: "homeestimate", up: true, rows: []model.Estimate{
		// Similar raw text but no locality agreement at all.
		row("homeestimate", "42 Smith Street", 1),
		// Less similar display text but full locality agreement.
		row("homeestimate", "42 Smith St, Remuera, Auckland 1050", 2),
	}}

	svc := New([]provider.Provider{p}, nil)

	result, err := svc.Lookup(context.Background(), "42 Smith Street, Remuera, Auckland 1050")
	require.NoError(t, err)
	require.Len(t, result.Estimates, 1)
	assert.EqualValues(t, 2, result.Estimates[0].ValueMid)
	assert.Equal(t, address.ConfidenceHigh, result.Estimates[0].Confidence)
}

func TestLookup_ProviderFailureDoesNotFailLookup(t *testing.T) {
	bad := &mockProvider{name: "quickval", up: true, err: eris.New("boom")}
	good := &mockProvider{name: "homeestimate", up: true, rows: []model.Estimate{
		row("homeestimate", "42 Smith Street", 500000),
	}}

	svc := New([]provider.Provider{bad, good}, nil)

	result, err := svc.Lookup(context.Background(), "42 Smith Street")
	require.NoError(t, err)
	require.Len(t, result.Estimates, 1)
	assert.Equal(t, "homeestimate", result.Estimates[0].Provider)
}

func TestLookup_UnavailableAndDisabledProvidersSkipped(t *testing.T) {
	down := &mockProvider{name: "homeestimate", up: false, rows: []model.Estimate{
		row("homeestimate", "42 Smith Street", 1),
	}}
	toggledOff := &mockProvider{name: "quickval", up: true, rows: []model.Estimate{
		row("quickval", "42 Smith Street", 2),
	}}

	st := newMockStore()
	st.disabled["quickval"] = true

	svc := New([]provider.Provider{down, toggledOff}, st)

	result, err := svc.Lookup(context.Background(), "42 Smith Street")
	require.NoError(t, err)
	assert.Empty(t, result.Estimates)
}

func TestLookup_CacheHitSkipsProviders(t *testing.T) {
	p := &mockProvider{name: "homeestimate", up: true, rows: []model.Estimate{
		row("homeestimate", "42 Smith Street", 500000),
	}}
	st := newMockStore()

	svc := New([]provider.Provider{p}, st)

	first, err := svc.Lookup(context.Background(), "42 Smith Street")
	require.NoError(t, err)
	require.Len(t, st.cache, 1)
	require.Len(t, st.history, 1)

	// Different raw spelling of the same address hits the same entry.
	p.rows = nil
	second, err := svc.Lookup(context.Background(), "42 SMITH ST")
	require.NoError(t, err)
	assert.Equal(t, first.Estimates, second.Estimates)
	assert.Len(t, st.history, 1, "cache hits are not re-recorded")
}

func TestFingerprint(t *testing.T) {
	a := address.Parse("42 Smith Street, Remuera")
	b := address.Parse("42 smith st,remuera")
	c := address.Parse("44 Smith Street, Remuera")

	assert.Equal(t, Fingerprint(a), Fingerprint(b), "raw spelling does not change the fingerprint")
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}

func TestSelectBest_NoMatches(t *testing.T) {
	query := address.Parse("42 Smith Street")
	rows := []model.Estimate{row("homeestimate", "44 Smith Street", 1)}
	assert.Nil(t, selectBest(query, "42 Smith Street", rows))
}
