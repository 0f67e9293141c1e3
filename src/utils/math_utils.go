package utils

import "github.com/shopspring/decimal"

// RoundFloat rounds a float64 half away from zero to the given decimal places.
func RoundFloat(val float64, precision int32) float64 {
	f, _ := decimal.NewFromFloat(val).Round(precision).Float64()
	return f
}

// Percentage returns part/total*100 rounded to 2 decimals, 0 when total is 0.
func Percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return RoundFloat(part/total*100, 2)
}
