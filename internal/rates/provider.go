// Package rates supplies the engine's exchange rate: fetched from the
// published rate document, validated, adjusted for the payout provider's
// spread, and cached with a TTL so keystroke-frequency recomputes don't
// hammer the upstream.
package rates

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"profitcalc/internal/engine"
	"profitcalc/pkg/api"
)

// Cache is the TTL store the provider keeps the last fetched rate in.
// pkg/redis satisfies it; tests use an in-memory fake.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type Provider struct {
	client   *api.Client
	cache    Cache
	currency string
	spread   float64 // subtracted from the raw rate, settlement units per transaction unit
	ttl      time.Duration
	logger   *zap.Logger
}

func NewProvider(client *api.Client, cache Cache, currency string, spread float64, ttl time.Duration, logger *zap.Logger) *Provider {
	return &Provider{
		client:   client,
		cache:    cache,
		currency: currency,
		spread:   spread,
		ttl:      ttl,
		logger:   logger,
	}
}

// Rate returns the current spread-adjusted exchange rate for the
// provider's transaction currency. A zero or missing upstream rate is
// engine.ErrMissingRate; the engine never sees an unvalidated rate.
func (p *Provider) Rate(ctx context.Context) (float64, error) {
	key := "rate:" + p.currency

	if data, err := p.cache.Get(ctx, key); err == nil {
		if rate, err := strconv.ParseFloat(string(data), 64); err == nil && rate > 0 {
			return rate, nil
		}
	}

	var resp *api.RateResponse
	operation := func() error {
		var err error
		resp, err = p.client.FetchRates(ctx)
		return err
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		return 0, fmt.Errorf("fetch rates: %w", err)
	}

	raw, ok := resp.Rates[p.currency]
	if !ok || raw <= 0 {
		return 0, engine.ErrMissingRate
	}

	adjusted := raw - p.spread
	if adjusted <= 0 {
		return 0, engine.ErrMissingRate
	}

	data := strconv.FormatFloat(adjusted, 'f', -1, 64)
	if err := p.cache.Set(ctx, key, []byte(data), p.ttl); err != nil {
		p.logger.Warn("Failed to cache exchange rate", zap.Error(err))
	}

	p.logger.Info("Exchange rate refreshed",
		zap.String("currency", p.currency),
		zap.Float64("raw", raw),
		zap.Float64("adjusted", adjusted))

	return adjusted, nil
}
