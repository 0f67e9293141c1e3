// backend/src/services/interfaces.go
package services

import (
	"context"

	"github.com/username/bugetto/backend/src/models"
)

// LedgerStore is the persistence the services need. model.Store implements it.
type LedgerStore interface {
	FindAsset(ctx context.Context, symbol string) (*models.Asset, error)
	ListAssets(ctx context.Context, visibleOnly bool) ([]models.Asset, error)
	UpsertAsset(ctx context.Context, in models.AssetInput) (models.Asset, error)

	GetWallet(ctx context.Context, id int64) (*models.Wallet, error)
	FindWalletByName(ctx context.Context, name string) (*models.Wallet, error)
	CreateWallet(ctx context.Context, name, description string) (models.Wallet, error)
	ListWallets(ctx context.Context) ([]models.Wallet, error)

	InsertOperation(ctx context.Context, op models.Operation) (models.Operation, error)
	GetOperation(ctx context.Context, id int64) (models.Operation, error)
	UpdateOperation(ctx context.Context, op models.Operation) error
	ListOperations(ctx context.Context, filter models.OperationFilter) ([]models.Operation, error)
	LastPurchase(ctx context.Context, symbol string) (*models.LastPurchaseMeta, error)
}

// AssetGuesser suggests metadata for a symbol. YahooQuoteService implements it.
type AssetGuesser interface {
	GuessAssetMetadata(ctx context.Context, symbol string) models.AssetGuess
}

// OperationService is the ledger write path and its read-back.
type OperationService interface {
	CreateOperation(ctx context.Context, req models.OperationRequest) (models.Operation, error)
	PreviewOperation(ctx context.Context, req models.OperationRequest) (models.OperationPreview, error)
	ListOperations(ctx context.Context, skip, limit int) ([]models.Operation, error)
	GetOperation(ctx context.Context, id int64) (models.Operation, error)
	UpdateOperation(ctx context.Context, id int64, patch models.OperationPatch) (models.Operation, error)
	DuplicateOperation(ctx context.Context, id int64) (models.Operation, error)
}

// AssetService manages the asset registry and wallets.
type AssetService interface {
	UpsertAsset(ctx context.Context, in models.AssetInput) (models.Asset, error)
	ListAssets(ctx context.Context) ([]models.Asset, error)
	ListVisibleAssets(ctx context.Context) ([]models.Asset, error)
	GuessAsset(ctx context.Context, symbol string) (models.AssetGuess, error)
	ListWallets(ctx context.Context) ([]models.Wallet, error)
	CreateWallet(ctx context.Context, name string) (models.Wallet, error)
	LastPurchaseMeta(ctx context.Context, symbol string) (models.LastPurchaseMeta, error)
}

// PortfolioService derives quantities, costs and allocations from the ledger.
type PortfolioService interface {
	HeldQuantity(ctx context.Context, symbol string, walletID *int64) (float64, error)
	AverageAcquisitionRate(ctx context.Context, symbol string) (float64, error)
	TotalDividends(ctx context.Context, symbol string) (float64, error)
	AssetDelta(ctx context.Context, symbol string) (models.AssetDelta, error)
	CurrentAllocationByCategory(ctx context.Context) ([]models.CategoryAllocation, error)
	CurrentAllocationByAsset(ctx context.Context) ([]models.AssetAllocation, error)
	HistoricalAllocationByCategory(ctx context.Context) ([]models.HistoricalAllocation, error)
	InvestedAllocationByAsset(ctx context.Context) ([]models.InvestedAllocation, error)
	InvestedAllocationByType(ctx context.Context) ([]models.InvestedAllocation, error)
	DashboardSummary(ctx context.Context) (models.DashboardSummary, error)
	CurrentPrice(ctx context.Context, symbol string) (models.PriceInfo, error)
	Convert(ctx context.Context, from, to string) (models.RateInfo, error)
}
