package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/bugetto/backend/src/models"
)

func entry(opType models.OperationType, symbol string, qty, price float64) models.Operation {
	return models.Operation{
		Date: "2024-01-15", OperationType: opType, AssetSymbol: symbol, Quantity: qty,
		Price: price, ExchangeRate: 1, Accounting: true, TotalValue: qty * price,
	}
}

func TestHeldQuantity(t *testing.T) {
	w1, w2 := int64(1), int64(2)
	buy := entry(models.OpPurchase, "ACN", 10, 100)
	buy.WalletID = &w1
	sell := entry(models.OpSale, "acn", -4, 120)
	sell.WalletID = &w2
	ignored := entry(models.OpPurchase, "ACN", 100, 1)
	ignored.Accounting = false
	other := entry(models.OpPurchase, "BTC-USD", 1, 1)

	ops := []models.Operation{buy, sell, ignored, other}
	assert.Equal(t, 6.0, HeldQuantity(ops, "ACN", nil))
	assert.Equal(t, 10.0, HeldQuantity(ops, "acn", &w1))
	assert.Equal(t, -4.0, HeldQuantity(ops, "ACN", &w2))
	assert.Equal(t, 0.0, HeldQuantity(nil, "ACN", nil))

	// adding an equal and opposite entry returns to the prior holding
	offset := entry(models.OpSale, "ACN", -2.5, 0)
	restore := entry(models.OpPurchase, "ACN", 2.5, 0)
	assert.Equal(t, 6.0, HeldQuantity(append(ops, offset, restore), "ACN", nil))

	tiny := []models.Operation{entry(models.OpPurchase, "BTC", 0.1, 1), entry(models.OpPurchase, "BTC", 0.2, 1)}
	assert.Equal(t, 0.3, HeldQuantity(tiny, "BTC", nil))
}

func TestAverageAcquisitionRate(t *testing.T) {
	ops := []models.Operation{
		entry(models.OpPurchase, "ACN", 10, 100),
		entry(models.OpPurchase, "ACN", 10, 200),
		entry(models.OpDonationReceived, "acn", 5, 999),
		entry(models.OpSale, "ACN", -3, 500),
		entry(models.OpSaving, "ACN", 7, 50),
	}
	// (10*100 + 10*200) / (10 + 10 + 5)
	assert.Equal(t, 120.0, AverageAcquisitionRate(ops, "ACN"))

	reversed := make([]models.Operation, len(ops))
	for i, op := range ops {
		reversed[len(ops)-1-i] = op
	}
	assert.Equal(t, AverageAcquisitionRate(ops, "ACN"), AverageAcquisitionRate(reversed, "ACN"))

	assert.Equal(t, 0.0, AverageAcquisitionRate(ops[3:], "ACN"))
	assert.Equal(t, 0.0, AverageAcquisitionRate(nil, "ACN"))

	third := []models.Operation{entry(models.OpPurchase, "X", 3, 1), entry(models.OpPurchase, "X", 0, 0)}
	assert.Equal(t, 1.0, AverageAcquisitionRate(third, "X"))
	assert.Equal(t, 0.333333, AverageAcquisitionRate([]models.Operation{
		entry(models.OpPurchase, "Y", 1, 1), entry(models.OpDonationReceived, "Y", 2, 0),
	}, "Y"))
}

func TestTotalDividends(t *testing.T) {
	div1 := entry(models.OpDividend, "ACN", 0, 0)
	div1.TotalValue = 12.341
	div2 := entry(models.OpDividend, "acn", 0, 0)
	div2.TotalValue = 7.5
	excluded := entry(models.OpDividend, "ACN", 0, 0)
	excluded.TotalValue = 100
	excluded.Accounting = false

	ops := []models.Operation{div1, div2, excluded, entry(models.OpPurchase, "ACN", 1, 50)}
	assert.Equal(t, 19.84, TotalDividends(ops, "ACN"))
	assert.Equal(t, 0.0, TotalDividends(ops, "BTC-USD"))
}

func TestDelta(t *testing.T) {
	d := Delta("acn", 100, 120, 10)
	assert.Equal(t, "ACN", d.Symbol)
	assert.Equal(t, 200.0, d.DeltaValue)
	assert.Equal(t, 20.0, d.DeltaPercentage)

	zero := Delta("NEW", 0, 50, 2)
	assert.Equal(t, 100.0, zero.DeltaValue)
	assert.Equal(t, 0.0, zero.DeltaPercentage)
}
