package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/bugetto/backend/src/models"
)

// seedPortfolio registers three assets and a small ledger:
// VWCE 10 bought at 100, 4 sold at 120 (EUR)
// ACN 2 bought at 200 USD, 2 received as a donation, one 12.5 EUR dividend
// EUR 500 saved as cash
func seedPortfolio(t *testing.T, f *fixture) int64 {
	t.Helper()
	f.asset(t, "VWCE", "EUR", "etf", "equity")
	f.asset(t, "ACN", "USD", "stock", "stocks")
	f.asset(t, "EUR", "EUR", "liquidity", "liquidità")

	wallet, err := f.store.CreateWallet(context.Background(), "Degiro", "")
	require.NoError(t, err)

	f.insert(t, models.Operation{Date: "2024-01-02", OperationType: models.OpSaving, AssetSymbol: "EUR", Quantity: 500, Price: 1})
	f.insert(t, models.Operation{Date: "2024-01-05", OperationType: models.OpPurchase, AssetSymbol: "VWCE", Quantity: 10, Price: 100, WalletID: &wallet.ID})
	f.insert(t, models.Operation{Date: "2024-01-20", OperationType: models.OpPurchase, AssetSymbol: "ACN", Quantity: 2, Price: 200, PurchaseCurrency: "USD", ExchangeRate: 0.9})
	f.insert(t, models.Operation{Date: "2024-02-05", OperationType: models.OpSale, AssetSymbol: "VWCE", Quantity: -4, Price: 120})
	f.insert(t, models.Operation{Date: "2024-02-10", OperationType: models.OpDonationReceived, AssetSymbol: "ACN", Quantity: 2})
	f.insert(t, models.Operation{Date: "2024-03-01", OperationType: models.OpDividend, AssetSymbol: "ACN", TotalValue: 12.5})
	return wallet.ID
}

func TestPortfolio_QuantitiesAndCosts(t *testing.T) {
	f := newFixture(t)
	walletID := seedPortfolio(t, f)
	ctx := context.Background()

	qty, err := f.portfolio.HeldQuantity(ctx, "vwce", nil)
	require.NoError(t, err)
	assert.Equal(t, 6.0, qty)

	qty, err = f.portfolio.HeldQuantity(ctx, "VWCE", &walletID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, qty)

	qty, err = f.portfolio.HeldQuantity(ctx, "ACN", nil)
	require.NoError(t, err)
	assert.Equal(t, 4.0, qty)

	avg, err := f.portfolio.AverageAcquisitionRate(ctx, "ACN")
	require.NoError(t, err)
	assert.Equal(t, 100.0, avg)

	avg, err = f.portfolio.AverageAcquisitionRate(ctx, "NONE")
	require.NoError(t, err)
	assert.Zero(t, avg)

	dividends, err := f.portfolio.TotalDividends(ctx, "acn")
	require.NoError(t, err)
	assert.Equal(t, 12.5, dividends)

	_, err = f.portfolio.HeldQuantity(ctx, "  ", nil)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestPortfolio_AssetDelta(t *testing.T) {
	f := newFixture(t)
	seedPortfolio(t, f)

	delta, err := f.portfolio.AssetDelta(context.Background(), "ACN")
	require.NoError(t, err)
	assert.Equal(t, "ACN", delta.Symbol)
	assert.Equal(t, 100.0, delta.AveragePrice)
	assert.Equal(t, 250.0, delta.CurrentPrice)
	assert.Equal(t, 4.0, delta.Quantity)
	assert.Equal(t, 600.0, delta.DeltaValue)
	assert.Equal(t, 150.0, delta.DeltaPercentage)
}

func TestPortfolio_CurrentAllocations(t *testing.T) {
	f := newFixture(t)
	seedPortfolio(t, f)
	ctx := context.Background()

	byCategory, err := f.portfolio.CurrentAllocationByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, byCategory, 3)
	assert.Equal(t, "stocks", byCategory[0].Category)
	assert.InDelta(t, 900.0, byCategory[0].Value, 1e-9)
	assert.Equal(t, "equity", byCategory[1].Category)
	assert.InDelta(t, 660.0, byCategory[1].Value, 1e-9)
	assert.Equal(t, "liquidità", byCategory[2].Category)
	assert.InDelta(t, 500.0, byCategory[2].Value, 1e-9)

	var pct float64
	for _, c := range byCategory {
		pct += c.AllocationPct
	}
	assert.InDelta(t, 100.0, pct, 0.05)

	byAsset, err := f.portfolio.CurrentAllocationByAsset(ctx)
	require.NoError(t, err)
	require.Len(t, byAsset, 3)
	assert.Equal(t, "ACN", byAsset[0].Symbol)
	assert.Equal(t, 4.0, byAsset[0].Quantity)
	assert.InDelta(t, 0.9, byAsset[0].ExchangeRate, 1e-9)
	assert.Equal(t, "EUR", byAsset[2].Symbol)
	assert.Equal(t, 1.0, byAsset[2].Price)
}

func TestPortfolio_HistoricalAllocation(t *testing.T) {
	f := newFixture(t)
	seedPortfolio(t, f)

	history, err := f.portfolio.HistoricalAllocationByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-01", history[0].Date)
	assert.Equal(t, "2024-02", history[1].Date)

	january := history[0].Categories
	assert.Equal(t, 24.39, january["liquidità"])
	assert.Equal(t, 53.66, january["equity"])
	assert.Equal(t, 21.95, january["stocks"])
}

func TestPortfolio_InvestedAllocations(t *testing.T) {
	f := newFixture(t)
	seedPortfolio(t, f)
	ctx := context.Background()

	byAsset, err := f.portfolio.InvestedAllocationByAsset(ctx)
	require.NoError(t, err)
	require.Len(t, byAsset, 3)
	assert.Equal(t, "VWCE", byAsset[0].Key)
	assert.Equal(t, 520.0, byAsset[0].Value)
	assert.Equal(t, "EUR", byAsset[1].Key)
	assert.Equal(t, "ACN", byAsset[2].Key)
	assert.Equal(t, 372.5, byAsset[2].Value)

	byType, err := f.portfolio.InvestedAllocationByType(ctx)
	require.NoError(t, err)
	require.Len(t, byType, 3)
	assert.Equal(t, "etf", byType[0].Key)
	assert.Equal(t, "liquidity", byType[1].Key)
	assert.Equal(t, "stock", byType[2].Key)
}

func TestPortfolio_DashboardSummary(t *testing.T) {
	f := newFixture(t)
	seedPortfolio(t, f)

	summary, err := f.portfolio.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1392.5, summary.TotalValue)
	assert.Equal(t, 500.0, summary.Liquidity)
	assert.Equal(t, 2060.0, summary.MarketValue)
}

func TestPortfolio_CurrentPriceAndConvert(t *testing.T) {
	f := newFixture(t)
	f.asset(t, "EUR", "EUR", "liquidity", "liquidità")
	ctx := context.Background()

	cash, err := f.portfolio.CurrentPrice(ctx, "eur")
	require.NoError(t, err)
	assert.Equal(t, models.PriceInfo{Status: models.StatusOK, Price: 1.0}, cash)
	assert.Zero(t, f.quotes.calls)

	acn, err := f.portfolio.CurrentPrice(ctx, "ACN")
	require.NoError(t, err)
	assert.Equal(t, 250.0, acn.Value())

	missing, err := f.portfolio.CurrentPrice(ctx, "ZZZ")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnavailable, missing.Status)

	_, err = f.portfolio.CurrentPrice(ctx, "")
	assert.ErrorIs(t, err, models.ErrValidation)

	rate, err := f.portfolio.Convert(ctx, "usd", "EUR")
	require.NoError(t, err)
	assert.True(t, rate.Resolved())
	assert.InDelta(t, 0.9, rate.Rate, 1e-9)

	unknown, err := f.portfolio.Convert(ctx, "GBP", "EUR")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnavailable, unknown.Status)
	assert.Equal(t, 1.0, unknown.Value())

	_, err = f.portfolio.Convert(ctx, "EURO", "USD")
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = f.portfolio.Convert(ctx, "", "USD")
	assert.ErrorIs(t, err, models.ErrValidation)
}
