package processors

import (
	"context"
	"strings"

	"github.com/username/bugetto/backend/src/logger"
	"github.com/username/bugetto/backend/src/models"
)

// PriceResolver wraps the quote provider. It keeps no state between calls.
type PriceResolver struct {
	quotes QuoteProvider
}

func NewPriceResolver(quotes QuoteProvider) *PriceResolver {
	return &PriceResolver{quotes: quotes}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// CurrentPrice asks the provider for the latest price of symbol.
func (r *PriceResolver) CurrentPrice(ctx context.Context, symbol string) models.PriceInfo {
	symbol = normalizeSymbol(symbol)
	price, err := r.quotes.CurrentPrice(ctx, symbol)
	if err != nil || price <= 0 {
		logger.FromContext(ctx).Warn("Current price unavailable", "symbol", symbol, "error", err)
		return models.PriceInfo{Status: models.StatusUnavailable}
	}
	return models.PriceInfo{Status: models.StatusOK, Price: price}
}

// DayPrices asks the provider for the day's close, high and low of symbol.
func (r *PriceResolver) DayPrices(ctx context.Context, symbol string) models.DayPrices {
	symbol = normalizeSymbol(symbol)
	closePrice, high, low, err := r.quotes.DayPrices(ctx, symbol)
	if err != nil || (closePrice == 0 && high == 0 && low == 0) {
		logger.FromContext(ctx).Warn("Day prices unavailable", "symbol", symbol, "error", err)
		return models.DayPrices{Status: models.StatusUnavailable}
	}
	return models.DayPrices{Status: models.StatusOK, Close: closePrice, High: high, Low: low}
}

// AssetPrice is CurrentPrice with the liquidity rule applied: cash is worth
// 1.0 in its own currency and the provider is not called. asset may be nil.
func (r *PriceResolver) AssetPrice(ctx context.Context, asset *models.Asset, symbol string) models.PriceInfo {
	if models.IsLiquidity(asset, symbol) {
		return models.PriceInfo{Status: models.StatusOK, Price: 1.0}
	}
	return r.CurrentPrice(ctx, symbol)
}

// AssetDayPrices is DayPrices with the liquidity rule applied.
func (r *PriceResolver) AssetDayPrices(ctx context.Context, asset *models.Asset, symbol string) models.DayPrices {
	if models.IsLiquidity(asset, symbol) {
		return models.DayPrices{Status: models.StatusOK, Close: 1.0, High: 1.0, Low: 1.0}
	}
	return r.DayPrices(ctx, symbol)
}
