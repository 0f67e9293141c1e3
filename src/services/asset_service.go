// backend/src/services/asset_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/username/bugetto/backend/src/models"
	"github.com/username/bugetto/backend/src/security/validation"
)

type assetServiceImpl struct {
	store   LedgerStore
	guesser AssetGuesser
}

func NewAssetService(store LedgerStore, guesser AssetGuesser) AssetService {
	return &assetServiceImpl{store: store, guesser: guesser}
}

// UpsertAsset validates in and creates or partially updates the asset.
func (s *assetServiceImpl) UpsertAsset(ctx context.Context, in models.AssetInput) (models.Asset, error) {
	in.Symbol = strings.ToUpper(strings.TrimSpace(in.Symbol))
	if in.Symbol == "" {
		return models.Asset{}, fmt.Errorf("%w: symbol is required", models.ErrValidation)
	}
	if err := validation.ValidateSymbol(in.Symbol); err != nil {
		return models.Asset{}, err
	}
	if in.Currency != nil {
		if err := validation.ValidateCurrencyCode(*in.Currency); err != nil {
			return models.Asset{}, err
		}
	}
	if in.ISIN != nil {
		if err := validation.ValidateISIN(strings.ToUpper(*in.ISIN)); err != nil {
			return models.Asset{}, err
		}
	}
	in.Name = sanitizeOptional(in.Name)
	in.Type = sanitizeOptional(in.Type)
	in.Category = sanitizeOptional(in.Category)
	for _, field := range []*string{in.Name, in.Type, in.Category} {
		if field == nil {
			continue
		}
		if err := validation.ValidateStringMaxLength(*field, validation.DefaultMaxStringLength, "asset field"); err != nil {
			return models.Asset{}, err
		}
	}
	return s.store.UpsertAsset(ctx, in)
}

func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := validation.SanitizeText(*s)
	return &clean
}

func (s *assetServiceImpl) ListAssets(ctx context.Context) ([]models.Asset, error) {
	return s.store.ListAssets(ctx, false)
}

func (s *assetServiceImpl) ListVisibleAssets(ctx context.Context) ([]models.Asset, error) {
	return s.store.ListAssets(ctx, true)
}

func (s *assetServiceImpl) GuessAsset(ctx context.Context, symbol string) (models.AssetGuess, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if err := validation.ValidateSymbol(symbol); err != nil {
		return models.AssetGuess{}, err
	}
	return s.guesser.GuessAssetMetadata(ctx, symbol), nil
}

func (s *assetServiceImpl) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	return s.store.ListWallets(ctx)
}

// CreateWallet returns the wallet with that name, creating it if needed.
func (s *assetServiceImpl) CreateWallet(ctx context.Context, name string) (models.Wallet, error) {
	name = validation.SanitizeText(name)
	if err := validation.ValidateStringNotEmpty(name, "wallet name"); err != nil {
		return models.Wallet{}, err
	}
	if err := validation.ValidateStringMaxLength(name, validation.DefaultMaxStringLength, "wallet name"); err != nil {
		return models.Wallet{}, err
	}
	return s.store.CreateWallet(ctx, name, "")
}

// LastPurchaseMeta is empty when symbol was never bought.
func (s *assetServiceImpl) LastPurchaseMeta(ctx context.Context, symbol string) (models.LastPurchaseMeta, error) {
	meta, err := s.store.LastPurchase(ctx, symbol)
	if err != nil {
		return models.LastPurchaseMeta{}, err
	}
	if meta == nil {
		return models.LastPurchaseMeta{}, nil
	}
	return *meta, nil
}
