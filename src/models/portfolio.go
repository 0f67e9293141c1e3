package models

// CategoryAllocation is one category's share of the current market value.
type CategoryAllocation struct {
	Category      string  `json:"category"`
	Value         float64 `json:"value"`
	AllocationPct float64 `json:"allocation_pct"`
}

// AssetAllocation is one asset's share of the current market value.
type AssetAllocation struct {
	Symbol        string  `json:"symbol"`
	Category      string  `json:"category"`
	Quantity      float64 `json:"quantity"`
	Price         float64 `json:"price"`
	ExchangeRate  float64 `json:"exchange_rate"`
	Value         float64 `json:"value"`
	AllocationPct float64 `json:"allocation_pct"`
}

// HistoricalAllocation maps categories to percentages for one year-month.
type HistoricalAllocation struct {
	Date       string             `json:"date"`
	Categories map[string]float64 `json:"categories"`
}

// InvestedAllocation is a cost-basis share built from stored EUR totals.
// Key is a symbol or an asset type depending on the grouping.
type InvestedAllocation struct {
	Key           string  `json:"key"`
	Value         float64 `json:"value"`
	AllocationPct float64 `json:"allocation_pct"`
}

// AssetDelta compares the blended cost of a holding with its current price.
type AssetDelta struct {
	Symbol          string  `json:"symbol"`
	AveragePrice    float64 `json:"average_price"`
	CurrentPrice    float64 `json:"current_price"`
	Quantity        float64 `json:"quantity"`
	DeltaValue      float64 `json:"delta_value"`
	DeltaPercentage float64 `json:"delta_percentage"`
}

// DashboardSummary is the headline view of the portfolio in EUR.
type DashboardSummary struct {
	TotalValue  float64 `json:"total_value"`
	Liquidity   float64 `json:"liquidity"`
	MarketValue float64 `json:"market_value"`
}
