package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "monthly top-up", SanitizeText("  <b>monthly</b> top-up "))
	assert.Equal(t, "Mario's & Co", SanitizeText("Mario's & Co"))
	assert.Equal(t, "", SanitizeText("<script>alert(1)</script>"))
}

func TestStripUnprintable(t *testing.T) {
	assert.Equal(t, "ab\tc\n", StripUnprintable("a\x00b\tc\x07\n"))
}

func TestValidateDateString(t *testing.T) {
	d, err := ValidateDateString("2024-02-29", "date")
	assert.NoError(t, err)
	assert.Equal(t, 29, d.Day())

	for _, bad := range []string{"", "2024-02-30", "29-02-2024", "2024/02/01"} {
		_, err := ValidateDateString(bad, "date")
		assert.ErrorIs(t, err, ErrValidationFailed, bad)
	}
}

func TestValidateSymbol(t *testing.T) {
	for _, ok := range []string{"ACN", "BTC-USD", "USDEUR=X", "^GSPC", "VWCE.DE"} {
		assert.NoError(t, ValidateSymbol(ok), ok)
	}
	for _, bad := range []string{"", "acn", "A B", "DROP;TABLE"} {
		assert.ErrorIs(t, ValidateSymbol(bad), ErrValidationFailed, bad)
	}
}

func TestValidateCurrencyAndISIN(t *testing.T) {
	assert.NoError(t, ValidateCurrencyCode(""))
	assert.NoError(t, ValidateCurrencyCode("usd"))
	assert.Error(t, ValidateCurrencyCode("US"))

	assert.NoError(t, ValidateISIN(""))
	assert.NoError(t, ValidateISIN("IE00BK5BQT80"))
	assert.Error(t, ValidateISIN("IE00BK5BQT8"))
}

func TestValidateNumbers(t *testing.T) {
	assert.NoError(t, ValidateFiniteNonNegative(0, "fees"))
	assert.Error(t, ValidateFiniteNonNegative(-0.01, "fees"))
	assert.NoError(t, ValidateFinite(-5, "quantity"))
}
