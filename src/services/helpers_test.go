package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/username/bugetto/backend/src/database"
	"github.com/username/bugetto/backend/src/model"
	"github.com/username/bugetto/backend/src/models"
	"github.com/username/bugetto/backend/src/processors"
)

type dayQuote struct{ close, high, low float64 }

type stubQuotes struct {
	mu      sync.Mutex
	current map[string]float64
	day     map[string]dayQuote
	calls   int
}

func (q *stubQuotes) CurrentPrice(_ context.Context, symbol string) (float64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls++
	p, ok := q.current[symbol]
	if !ok {
		return 0, errors.New("no quote")
	}
	return p, nil
}

func (q *stubQuotes) DayPrices(_ context.Context, symbol string) (float64, float64, float64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls++
	d, ok := q.day[symbol]
	if !ok {
		return 0, 0, 0, errors.New("no quote")
	}
	return d.close, d.high, d.low, nil
}

type stubRates map[string]float64

func (r stubRates) Rate(_ context.Context, from, to string) (float64, error) {
	rate, ok := r[from+to]
	if !ok {
		return 0, errors.New("unknown pair")
	}
	return rate, nil
}

type stubGuesser struct{ guess models.AssetGuess }

func (g stubGuesser) GuessAssetMetadata(_ context.Context, symbol string) models.AssetGuess {
	out := g.guess
	out.Symbol = symbol
	return out
}

// fixture wires the services over an in-memory ledger.
type fixture struct {
	store      *model.Store
	quotes     *stubQuotes
	operations OperationService
	assets     AssetService
	portfolio  PortfolioService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db))

	store := model.NewStore(db)
	quotes := &stubQuotes{
		current: map[string]float64{"ACN": 250, "VWCE": 110},
		day:     map[string]dayQuote{"ACN": {close: 100, high: 110, low: 90}},
	}
	rates := processors.NewRateCache(stubRates{"USDEUR": 0.9})
	prices := processors.NewPriceResolver(quotes)
	builder := processors.NewOperationBuilder(store, prices, rates)

	return &fixture{
		store:      store,
		quotes:     quotes,
		operations: NewOperationService(store, builder, rates),
		assets:     NewAssetService(store, stubGuesser{guess: models.AssetGuess{Name: "Accenture plc", Currency: "USD"}}),
		portfolio:  NewPortfolioService(store, prices, rates),
	}
}

func (f *fixture) asset(t *testing.T, symbol, currency, assetType, category string) {
	t.Helper()
	_, err := f.store.UpsertAsset(context.Background(), models.AssetInput{
		Symbol: symbol, Currency: &currency, Type: &assetType, Category: &category,
	})
	require.NoError(t, err)
}

func (f *fixture) insert(t *testing.T, op models.Operation) models.Operation {
	t.Helper()
	if op.PurchaseCurrency == "" {
		op.PurchaseCurrency = "EUR"
	}
	if op.ExchangeRate == 0 {
		op.ExchangeRate = 1
	}
	op.Accounting = true
	if op.TotalValue == 0 {
		op.TotalValue = op.ComputeTotal()
	}
	saved, err := f.store.InsertOperation(context.Background(), op)
	require.NoError(t, err)
	return saved
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }
func int64Ptr(i int64) *int64     { return &i }
