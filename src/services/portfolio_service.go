// backend/src/services/portfolio_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/username/bugetto/backend/src/models"
	"github.com/username/bugetto/backend/src/processors"
	"github.com/username/bugetto/backend/src/security/validation"
	"github.com/username/bugetto/backend/src/utils"
)

type portfolioServiceImpl struct {
	store       LedgerStore
	prices      *processors.PriceResolver
	rates       *processors.RateCache
	allocations *processors.AllocationAggregator
}

func NewPortfolioService(store LedgerStore, prices *processors.PriceResolver, rates *processors.RateCache) PortfolioService {
	return &portfolioServiceImpl{
		store:       store,
		prices:      prices,
		rates:       rates,
		allocations: processors.NewAllocationAggregator(prices, rates),
	}
}

func requireSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("%w: symbol is required", models.ErrValidation)
	}
	return symbol, nil
}

func (s *portfolioServiceImpl) HeldQuantity(ctx context.Context, symbol string, walletID *int64) (float64, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return 0, err
	}
	ops, err := s.store.ListOperations(ctx, models.OperationFilter{Symbol: symbol, WalletID: walletID, AccountingOnly: true})
	if err != nil {
		return 0, err
	}
	return processors.HeldQuantity(ops, symbol, walletID), nil
}

func (s *portfolioServiceImpl) AverageAcquisitionRate(ctx context.Context, symbol string) (float64, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return 0, err
	}
	ops, err := s.store.ListOperations(ctx, models.OperationFilter{
		Symbol:         symbol,
		AccountingOnly: true,
		Types:          []models.OperationType{models.OpPurchase, models.OpDonationReceived},
	})
	if err != nil {
		return 0, err
	}
	return processors.AverageAcquisitionRate(ops, symbol), nil
}

func (s *portfolioServiceImpl) TotalDividends(ctx context.Context, symbol string) (float64, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return 0, err
	}
	ops, err := s.store.ListOperations(ctx, models.OperationFilter{
		Symbol:         symbol,
		AccountingOnly: true,
		Types:          []models.OperationType{models.OpDividend},
	})
	if err != nil {
		return 0, err
	}
	return processors.TotalDividends(ops, symbol), nil
}

// AssetDelta compares the blended cost of symbol with its current price.
func (s *portfolioServiceImpl) AssetDelta(ctx context.Context, symbol string) (models.AssetDelta, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return models.AssetDelta{}, err
	}
	ops, err := s.store.ListOperations(ctx, models.OperationFilter{Symbol: symbol, AccountingOnly: true})
	if err != nil {
		return models.AssetDelta{}, err
	}
	asset, err := s.store.FindAsset(ctx, symbol)
	if err != nil {
		return models.AssetDelta{}, err
	}

	average := processors.AverageAcquisitionRate(ops, symbol)
	quantity := processors.HeldQuantity(ops, symbol, nil)
	current := s.prices.AssetPrice(ctx, asset, symbol).Value()
	return processors.Delta(symbol, average, current, quantity), nil
}

// ledger loads the visible assets and the accounting entries of the whole ledger.
func (s *portfolioServiceImpl) ledger(ctx context.Context, types []models.OperationType) ([]models.Asset, []models.Operation, error) {
	assets, err := s.store.ListAssets(ctx, true)
	if err != nil {
		return nil, nil, err
	}
	ops, err := s.store.ListOperations(ctx, models.OperationFilter{AccountingOnly: true, Types: types})
	if err != nil {
		return nil, nil, err
	}
	return assets, ops, nil
}

func (s *portfolioServiceImpl) CurrentAllocationByCategory(ctx context.Context) ([]models.CategoryAllocation, error) {
	assets, ops, err := s.ledger(ctx, models.SignedTypes())
	if err != nil {
		return nil, err
	}
	return s.allocations.CurrentByCategory(ctx, assets, ops), nil
}

func (s *portfolioServiceImpl) CurrentAllocationByAsset(ctx context.Context) ([]models.AssetAllocation, error) {
	assets, ops, err := s.ledger(ctx, models.SignedTypes())
	if err != nil {
		return nil, err
	}
	return s.allocations.CurrentByAsset(ctx, assets, ops), nil
}

func (s *portfolioServiceImpl) HistoricalAllocationByCategory(ctx context.Context) ([]models.HistoricalAllocation, error) {
	assets, ops, err := s.ledger(ctx, models.SignedTypes())
	if err != nil {
		return nil, err
	}
	return s.allocations.HistoricalByCategory(ctx, assets, ops), nil
}

func (s *portfolioServiceImpl) InvestedAllocationByAsset(ctx context.Context) ([]models.InvestedAllocation, error) {
	ops, err := s.store.ListOperations(ctx, models.OperationFilter{AccountingOnly: true})
	if err != nil {
		return nil, err
	}
	return processors.InvestedByAsset(ops), nil
}

func (s *portfolioServiceImpl) InvestedAllocationByType(ctx context.Context) ([]models.InvestedAllocation, error) {
	assets, err := s.store.ListAssets(ctx, false)
	if err != nil {
		return nil, err
	}
	ops, err := s.store.ListOperations(ctx, models.OperationFilter{AccountingOnly: true})
	if err != nil {
		return nil, err
	}
	return processors.InvestedByType(assets, ops), nil
}

// DashboardSummary reports the invested total, the cash on hand and the
// current market value of the categorized holdings.
func (s *portfolioServiceImpl) DashboardSummary(ctx context.Context) (models.DashboardSummary, error) {
	assets, ops, err := s.ledger(ctx, nil)
	if err != nil {
		return models.DashboardSummary{}, err
	}

	var market float64
	for _, c := range s.allocations.CurrentByCategory(ctx, assets, ops) {
		market += c.Value
	}
	return models.DashboardSummary{
		TotalValue:  processors.InvestedTotal(ops),
		Liquidity:   s.allocations.LiquidityValue(ctx, assets, ops),
		MarketValue: utils.RoundFloat(market, 2),
	}, nil
}

func (s *portfolioServiceImpl) CurrentPrice(ctx context.Context, symbol string) (models.PriceInfo, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return models.PriceInfo{}, err
	}
	asset, err := s.store.FindAsset(ctx, symbol)
	if err != nil {
		return models.PriceInfo{}, err
	}
	return s.prices.AssetPrice(ctx, asset, symbol), nil
}

func (s *portfolioServiceImpl) Convert(ctx context.Context, from, to string) (models.RateInfo, error) {
	for _, code := range []string{from, to} {
		if err := validation.ValidateStringNotEmpty(code, "currency"); err != nil {
			return models.RateInfo{}, err
		}
		if err := validation.ValidateCurrencyCode(code); err != nil {
			return models.RateInfo{}, err
		}
	}
	return s.rates.Lookup(ctx, from, to), nil
}
