package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber decodes a number that may carry legacy formatting: currency
// symbols, spaces, thousands separators or a decimal comma.
//
//	"1,234.50" -> 1234.5   "1.234,50" -> 1234.5   "12,5" -> 12.5
//	"1,234"    -> 1234     "€ 10"     -> 10     "0,125" -> 0.125
func ParseNumber(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '€', '$', '£', ' ', '\t', '\u00a0', '\'':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if cleaned == "" {
		return 0, fmt.Errorf("empty numeric value")
	}

	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastDot >= 0 && strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	case lastComma >= 0:
		if strings.Count(cleaned, ",") == 1 && !isThousandsGroup(cleaned, lastComma) {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value %q: %w", s, err)
	}
	f, _ := d.Float64()
	return f, nil
}

// isThousandsGroup reports whether the lone comma at idx separates a leading
// 1-3 digit group without a leading zero from exactly three digits.
func isThousandsGroup(s string, idx int) bool {
	head := strings.TrimLeft(s[:idx], "+-")
	if len(s)-idx-1 != 3 || len(head) == 0 || len(head) > 3 || head[0] == '0' {
		return false
	}
	return strings.Trim(head, "0123456789") == ""
}

// ToFloat normalizes a value scanned from a loosely-typed column.
// ok is false for NULL and for values that cannot be decoded.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case []byte:
		f, err := ParseNumber(string(n))
		return f, err == nil
	case string:
		f, err := ParseNumber(n)
		return f, err == nil
	default:
		return 0, false
	}
}
