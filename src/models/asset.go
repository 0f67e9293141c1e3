package models

import "strings"

// Asset is a row of the asset registry. Symbol is unique, case-insensitive,
// and always stored uppercase.
type Asset struct {
	ID       int64  `json:"id"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Type     string `json:"type"`
	Category string `json:"category"`
	ISIN     string `json:"isin"`
	Visible  bool   `json:"visible"`
}

// AssetInput is the upsert payload. Nil fields are left untouched on an
// existing asset.
type AssetInput struct {
	Symbol   string  `json:"symbol"`
	Name     *string `json:"name"`
	Currency *string `json:"currency"`
	Type     *string `json:"type"`
	Category *string `json:"category"`
	ISIN     *string `json:"isin"`
	Visible  *bool   `json:"visible"`
}

// AssetGuess is the metadata suggested by the quote provider for a symbol.
type AssetGuess struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// NativeCurrency returns the asset's currency, defaulting to the reporting currency.
func (a *Asset) NativeCurrency() string {
	if a == nil || strings.TrimSpace(a.Currency) == "" {
		return ReportingCurrency
	}
	return strings.ToUpper(strings.TrimSpace(a.Currency))
}

// Liquidity type and category labels found in the ledger.
var (
	liquidityTypes      = map[string]bool{"liquidity": true, "liquidi": true}
	liquidityCategories = map[string]bool{"liquidità": true, "liquidity": true}
)

// IsLiquidity reports whether a holding of symbol is cash or a cash
// equivalent, always priced at 1.0 in its own currency. asset may be nil.
func IsLiquidity(asset *Asset, symbol string) bool {
	if strings.EqualFold(strings.TrimSpace(symbol), ReportingCurrency) {
		return true
	}
	if asset == nil {
		return false
	}
	return liquidityTypes[strings.ToLower(strings.TrimSpace(asset.Type))] ||
		liquidityCategories[strings.ToLower(strings.TrimSpace(asset.Category))]
}
