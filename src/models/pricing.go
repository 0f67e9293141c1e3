package models

// Lookup status of a provider-backed value.
const (
	StatusOK          = "OK"
	StatusUnavailable = "UNAVAILABLE"
)

// PriceInfo is a resolved or unavailable reference price.
type PriceInfo struct {
	Status string  `json:"status"`
	Price  float64 `json:"price"`
}

// Resolved reports whether the provider returned real data.
func (p PriceInfo) Resolved() bool { return p.Status == StatusOK }

// Value coerces the result to a plain number, 0 when unavailable.
func (p PriceInfo) Value() float64 {
	if !p.Resolved() {
		return 0
	}
	return p.Price
}

// DayPrices holds the day's close/high/low for a symbol.
type DayPrices struct {
	Status string  `json:"status"`
	Close  float64 `json:"close"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
}

func (d DayPrices) Resolved() bool { return d.Status == StatusOK }

// Values coerces the result to (close, high, low), zeros when unavailable.
func (d DayPrices) Values() (float64, float64, float64) {
	if !d.Resolved() {
		return 0, 0, 0
	}
	return d.Close, d.High, d.Low
}

// RateInfo is a resolved or unavailable conversion rate.
type RateInfo struct {
	Status string  `json:"status"`
	Rate   float64 `json:"rate"`
}

func (r RateInfo) Resolved() bool { return r.Status == StatusOK }

// Value coerces the result to a plain rate, 1.0 when unavailable.
func (r RateInfo) Value() float64 {
	if !r.Resolved() {
		return 1.0
	}
	return r.Rate
}
