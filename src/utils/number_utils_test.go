package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"12.5":      12.5,
		"1,234.50":  1234.5,
		"1.234,50":  1234.5,
		"12,5":      12.5,
		"1,234":     1234,
		"1.234.567": 1234567,
		"€ 10":      10,
		"-3,25":     -3.25,
		"1'000.5":   1000.5,
		"  7 ":      7,
		"1,234,567": 1234567,
		"0,000123":  0.000123,
		"0,125":     0.125,
		"-0,250":    -0.25,
		"-1,500":    -1500,
	}
	for in, want := range cases {
		got, err := ParseNumber(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-12, in)
	}

	for _, bad := range []string{"", "  ", "n/a", "12abc"} {
		_, err := ParseNumber(bad)
		assert.Error(t, err, bad)
	}
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat(nil)
	assert.False(t, ok)
	assert.Zero(t, f)

	f, ok = ToFloat(int64(4))
	assert.True(t, ok)
	assert.Equal(t, 4.0, f)

	f, ok = ToFloat([]byte("2,5"))
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = ToFloat("garbage")
	assert.False(t, ok)

	_, ok = ToFloat(struct{}{})
	assert.False(t, ok)
}

func TestRoundingHelpers(t *testing.T) {
	assert.Equal(t, 1.23, RoundFloat(1.2345, 2))
	assert.Equal(t, 0.123457, RoundFloat(0.1234567, 6))
	assert.Equal(t, -2.5, RoundFloat(-2.45, 1))

	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.Equal(t, 33.33, Percentage(1, 3))
}

func TestYearMonth(t *testing.T) {
	ym, err := YearMonth("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", ym)

	ym, err = YearMonth("2023-12-31 10:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2023-12", ym)

	_, err = YearMonth("15/03/2024")
	assert.Error(t, err)
}

