// backend/src/processors/interfaces.go
package processors

import (
	"context"

	"github.com/username/bugetto/backend/src/models"
)

// QuoteProvider returns market prices for an uppercase ticker-like symbol.
// Symbols are forwarded untouched, so FX pairs ("USDEUR=X") and crypto
// ("BTC-USD") work as the provider names them.
type QuoteProvider interface {
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
	DayPrices(ctx context.Context, symbol string) (close, high, low float64, err error)
}

// RateProvider returns how many units of `to` one unit of `from` buys.
type RateProvider interface {
	Rate(ctx context.Context, from, to string) (float64, error)
}

// AssetRegistry finds an asset by symbol, case-insensitively. A missing
// asset is (nil, nil).
type AssetRegistry interface {
	FindAsset(ctx context.Context, symbol string) (*models.Asset, error)
}
