package rates

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"profitcalc/internal/engine"
	"profitcalc/pkg/api"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type mockCache struct {
	data map[string][]byte
	sets int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := m.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return data, nil
}

func (m *mockCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.data[key] = data
	m.sets++
	return nil
}

func rateClient(t *testing.T, body string, status int, fetches *int) *api.Client {
	t.Helper()
	client := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			*fetches++
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     make(http.Header),
			}, nil
		}),
	}
	return api.NewClient("https://rates.test/exchangeRate.json", client, zap.NewNop())
}

func TestRateFetchesAndAdjusts(t *testing.T) {
	var fetches int
	client := rateClient(t, `{"base":"JPY","rates":{"USD":147.2,"GBP":186.5}}`, http.StatusOK, &fetches)
	cache := newMockCache()

	p := NewProvider(client, cache, "USD", 1.5, 10*time.Minute, zap.NewNop())

	rate, err := p.Rate(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 145.7, rate, 1e-9)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, 1, cache.sets)
}

func TestRateCacheHitSkipsFetch(t *testing.T) {
	var fetches int
	client := rateClient(t, `{"base":"JPY","rates":{"USD":147.2}}`, http.StatusOK, &fetches)
	cache := newMockCache()
	cache.data["rate:USD"] = []byte("150.25")

	p := NewProvider(client, cache, "USD", 1.5, 10*time.Minute, zap.NewNop())

	rate, err := p.Rate(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 150.25, rate, 1e-9)
	assert.Zero(t, fetches)
}

func TestRateMissingCurrency(t *testing.T) {
	var fetches int
	client := rateClient(t, `{"base":"JPY","rates":{"EUR":160.0}}`, http.StatusOK, &fetches)

	p := NewProvider(client, newMockCache(), "USD", 1.5, 10*time.Minute, zap.NewNop())

	_, err := p.Rate(context.Background())
	assert.ErrorIs(t, err, engine.ErrMissingRate)
}

func TestRateZeroUpstreamRate(t *testing.T) {
	var fetches int
	client := rateClient(t, `{"base":"JPY","rates":{"USD":0}}`, http.StatusOK, &fetches)

	p := NewProvider(client, newMockCache(), "USD", 1.5, 10*time.Minute, zap.NewNop())

	_, err := p.Rate(context.Background())
	assert.ErrorIs(t, err, engine.ErrMissingRate)
}

func TestRateSpreadSwallowsRate(t *testing.T) {
	var fetches int
	client := rateClient(t, `{"base":"JPY","rates":{"USD":1.0}}`, http.StatusOK, &fetches)

	p := NewProvider(client, newMockCache(), "USD", 1.5, 10*time.Minute, zap.NewNop())

	_, err := p.Rate(context.Background())
	assert.ErrorIs(t, err, engine.ErrMissingRate)
}
