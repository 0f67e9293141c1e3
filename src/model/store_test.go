package model

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/bugetto/backend/src/database"
	"github.com/username/bugetto/backend/src/models"
)

func newTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	db, err := database.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return NewStore(db), db
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpsertAsset_InsertDefaultsAndPartialUpdate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.UpsertAsset(ctx, models.AssetInput{Symbol: " acn ", Name: strPtr("Accenture")})
	require.NoError(t, err)
	assert.Equal(t, "ACN", created.Symbol)
	assert.Equal(t, "EUR", created.Currency)
	assert.True(t, created.Visible)
	assert.NotZero(t, created.ID)

	updated, err := store.UpsertAsset(ctx, models.AssetInput{Symbol: "Acn", Currency: strPtr("usd"), Category: strPtr("equity")})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Accenture", updated.Name)
	assert.Equal(t, "USD", updated.Currency)
	assert.Equal(t, "equity", updated.Category)

	found, err := store.FindAsset(ctx, "acn")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "USD", found.Currency)
	assert.Equal(t, "equity", found.Category)
	assert.Equal(t, "Accenture", found.Name)
}

func TestUpsertAsset_RequiresSymbol(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.UpsertAsset(context.Background(), models.AssetInput{Symbol: "  "})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestFindAsset_Missing(t *testing.T) {
	store, _ := newTestStore(t)
	a, err := store.FindAsset(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestListAssets_VisibleOnly(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	_, err := store.UpsertAsset(ctx, models.AssetInput{Symbol: "BTC-USD", Name: strPtr("Bitcoin")})
	require.NoError(t, err)
	_, err = store.UpsertAsset(ctx, models.AssetInput{Symbol: "OLD", Name: strPtr("Archived"), Visible: boolPtr(false)})
	require.NoError(t, err)

	all, err := store.ListAssets(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "OLD", all[0].Symbol)

	visible, err := store.ListAssets(ctx, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "BTC-USD", visible[0].Symbol)
}

func TestCreateWallet_IsIdempotentAndCaseInsensitive(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	w1, err := store.CreateWallet(ctx, "Degiro", "")
	require.NoError(t, err)
	w2, err := store.CreateWallet(ctx, "DEGIRO", "ignored")
	require.NoError(t, err)
	assert.Equal(t, w1.ID, w2.ID)
	assert.Equal(t, "Degiro", w2.Name)

	wallets, err := store.ListWallets(ctx)
	require.NoError(t, err)
	assert.Len(t, wallets, 1)

	_, err = store.GetWallet(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = store.CreateWallet(ctx, " ", "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestOperations_InsertGetUpdate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	w, err := store.CreateWallet(ctx, "Main", "")
	require.NoError(t, err)

	manual := 42.0
	op, err := store.InsertOperation(ctx, models.Operation{
		Date: "2024-03-01", OperationType: models.OpPurchase, Quantity: 2, AssetSymbol: "ACN",
		WalletID: &w.ID, Accounting: true, Price: 42, PriceManual: &manual, PurchaseCurrency: "USD",
		ExchangeRate: 0.9, Fees: 1, TotalValue: 2*42*0.9 - 0.9,
	})
	require.NoError(t, err)
	require.NotZero(t, op.ID)

	got, err := store.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OpPurchase, got.OperationType)
	require.NotNil(t, got.WalletID)
	assert.Equal(t, w.ID, *got.WalletID)
	require.NotNil(t, got.PriceManual)
	assert.Equal(t, 42.0, *got.PriceManual)
	assert.Nil(t, got.DividendValue)
	assert.True(t, got.Accounting)
	assert.InDelta(t, 74.7, got.TotalValue, 1e-9)

	got.Comment = "fixed"
	got.Accounting = false
	require.NoError(t, store.UpdateOperation(ctx, got))
	again, err := store.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, "fixed", again.Comment)
	assert.False(t, again.Accounting)

	_, err = store.GetOperation(ctx, 12345)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, store.UpdateOperation(ctx, models.Operation{ID: 12345}), models.ErrNotFound)
}

func TestListOperations_AccountingOnlyMatchesDecodedFlag(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO operations (date, operation_type, quantity, asset_symbol, accounting, price, total_value, purchase_currency)
		VALUES
		('2024-01-10', 'Acquisto', 1, 'ACN', 1, 10, 10, 'EUR'),
		('2024-01-11', 'Acquisto', 1, 'ACN', 'true', 10, 10, 'EUR'),
		('2024-01-12', 'Acquisto', 1, 'ACN', ' T ', 10, 10, 'EUR'),
		('2024-01-13', 'Acquisto', 1, 'ACN', 'yes', 10, 10, 'EUR'),
		('2024-01-14', 'Acquisto', 1, 'ACN', 0, 10, 10, 'EUR'),
		('2024-01-15', 'Acquisto', 1, 'ACN', 'false', 10, 10, 'EUR'),
		('2024-01-16', 'Acquisto', 1, 'ACN', 'No', 10, 10, 'EUR')`)
	require.NoError(t, err)

	all, err := store.ListOperations(ctx, models.OperationFilter{Symbol: "ACN"})
	require.NoError(t, err)
	require.Len(t, all, 7)
	decoded := 0
	for _, op := range all {
		if op.Accounting {
			decoded++
		}
	}
	assert.Equal(t, 4, decoded)

	accounting, err := store.ListOperations(ctx, models.OperationFilter{Symbol: "ACN", AccountingOnly: true})
	require.NoError(t, err)
	assert.Len(t, accounting, decoded)
	for _, op := range accounting {
		assert.True(t, op.Accounting, op.Date)
	}
}

func TestListOperations_LegacyNumbersAndFilters(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO operations (date, operation_type, quantity, asset_symbol, accounting, price, total_value, purchase_currency)
		VALUES
		('2024-01-10', 'acquisto', '1,234.50', 'acn', 1, '12,5', '€ 10', 'EUR'),
		('2024-02-10', 'Vendita', -3, 'ACN', 0, 10, -30, 'EUR'),
		('2024-03-10', 'Acquisto', 'n/a', 'ACN', 1, 10, 10, 'EUR'),
		('2024-04-10', 'Dividendo', 0, 'BTC-USD', 1, 0, 5.5, 'EUR')`)
	require.NoError(t, err)

	ops, err := store.ListOperations(ctx, models.OperationFilter{Symbol: "ACN"})
	require.NoError(t, err)
	require.Len(t, ops, 2, "the row with an undecodable quantity is skipped")
	assert.Equal(t, models.OpPurchase, ops[0].OperationType)
	assert.InDelta(t, 1234.5, ops[0].Quantity, 1e-9)
	assert.InDelta(t, 12.5, ops[0].Price, 1e-9)
	assert.InDelta(t, 10.0, ops[0].TotalValue, 1e-9)

	accounting, err := store.ListOperations(ctx, models.OperationFilter{Symbol: "acn", AccountingOnly: true})
	require.NoError(t, err)
	assert.Len(t, accounting, 1)

	typed, err := store.ListOperations(ctx, models.OperationFilter{Types: []models.OperationType{models.OpDividend}})
	require.NoError(t, err)
	require.Len(t, typed, 1)
	assert.Equal(t, "BTC-USD", typed[0].AssetSymbol)

	ranged, err := store.ListOperations(ctx, models.OperationFilter{DateFrom: "2024-02-01", DateTo: "2024-03-31"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "2024-02-10", ranged[0].Date)

	paged, err := store.ListOperations(ctx, models.OperationFilter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "2024-02-10", paged[0].Date)
}

func TestLastPurchase(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	meta, err := store.LastPurchase(ctx, "ACN")
	require.NoError(t, err)
	assert.Nil(t, meta)

	w1, err := store.CreateWallet(ctx, "Old", "")
	require.NoError(t, err)
	w2, err := store.CreateWallet(ctx, "New", "")
	require.NoError(t, err)

	for _, op := range []models.Operation{
		{Date: "2024-01-01", OperationType: models.OpPurchase, Quantity: 1, AssetSymbol: "ACN", WalletID: &w1.ID, User: "ann", Accounting: true},
		{Date: "2024-05-01", OperationType: models.OpPurchase, Quantity: 1, AssetSymbol: "ACN", WalletID: &w2.ID, User: "bob", Accounting: true},
		{Date: "2024-06-01", OperationType: models.OpSale, Quantity: -1, AssetSymbol: "ACN", WalletID: &w1.ID, User: "ann", Accounting: true},
	} {
		_, err := store.InsertOperation(ctx, op)
		require.NoError(t, err)
	}

	meta, err = store.LastPurchase(ctx, "acn")
	require.NoError(t, err)
	require.NotNil(t, meta)
	require.NotNil(t, meta.WalletID)
	assert.Equal(t, w2.ID, *meta.WalletID)
	assert.Equal(t, "New", meta.WalletName)
	assert.Equal(t, "bob", meta.User)
}
