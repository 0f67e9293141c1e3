package processors

import (
	"context"
	"fmt"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/username/bugetto/backend/src/logger"
	"github.com/username/bugetto/backend/src/models"
	"golang.org/x/sync/singleflight"
)

// RateCache memoizes conversion rates per ordered currency pair for the
// lifetime of the instance. Failed lookups are never cached. Concurrent
// misses on one pair share a single provider call.
type RateCache struct {
	provider RateProvider
	rates    *cache.Cache
	inflight singleflight.Group
}

func NewRateCache(provider RateProvider) *RateCache {
	return &RateCache{
		provider: provider,
		rates:    cache.New(cache.NoExpiration, 0),
	}
}

// Lookup resolves the rate from -> to. Identical currencies resolve to 1.0
// without touching the provider.
func (c *RateCache) Lookup(ctx context.Context, from, to string) models.RateInfo {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == to {
		return models.RateInfo{Status: models.StatusOK, Rate: 1.0}
	}

	cacheKey := fmt.Sprintf("rate-%s-%s", from, to)
	if rate, found := c.rates.Get(cacheKey); found {
		return models.RateInfo{Status: models.StatusOK, Rate: rate.(float64)}
	}

	v, _, _ := c.inflight.Do(cacheKey, func() (any, error) {
		if rate, found := c.rates.Get(cacheKey); found {
			return models.RateInfo{Status: models.StatusOK, Rate: rate.(float64)}, nil
		}
		rate, err := c.provider.Rate(ctx, from, to)
		if err == nil && rate <= 0 {
			err = fmt.Errorf("non-positive rate %g", rate)
		}
		if err != nil {
			logger.FromContext(ctx).Warn("Could not find exchange rate, defaulting to 1.0", "from", from, "to", to, "error", err)
			return models.RateInfo{Status: models.StatusUnavailable}, nil
		}
		c.rates.Set(cacheKey, rate, cache.NoExpiration)
		return models.RateInfo{Status: models.StatusOK, Rate: rate}, nil
	})
	return v.(models.RateInfo)
}

// Get is Lookup coerced to a plain number, 1.0 when unavailable.
func (c *RateCache) Get(ctx context.Context, from, to string) float64 {
	return c.Lookup(ctx, from, to).Value()
}

// ToReporting is the rate from currency into EUR.
func (c *RateCache) ToReporting(ctx context.Context, currency string) float64 {
	return c.Get(ctx, currency, models.ReportingCurrency)
}
