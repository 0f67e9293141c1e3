// backend/src/services/operation_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/username/bugetto/backend/src/logger"
	"github.com/username/bugetto/backend/src/models"
	"github.com/username/bugetto/backend/src/processors"
	"github.com/username/bugetto/backend/src/security/validation"
)

// DefaultListLimit is the page size used when a listing names none.
const DefaultListLimit = 100

type operationServiceImpl struct {
	store   LedgerStore
	builder *processors.OperationBuilder
	rates   *processors.RateCache
}

func NewOperationService(store LedgerStore, builder *processors.OperationBuilder, rates *processors.RateCache) OperationService {
	return &operationServiceImpl{store: store, builder: builder, rates: rates}
}

// resolveWallet fills req.WalletID, creating the named wallet on first use.
func (s *operationServiceImpl) resolveWallet(ctx context.Context, req *models.OperationRequest) error {
	if req.WalletID != nil {
		return s.checkWallet(ctx, *req.WalletID)
	}
	name := validation.SanitizeText(req.WalletName)
	if name == "" {
		return nil
	}
	wallet, err := s.store.CreateWallet(ctx, name, "")
	if err != nil {
		return err
	}
	req.WalletID = &wallet.ID
	return nil
}

func (s *operationServiceImpl) checkWallet(ctx context.Context, id int64) error {
	if _, err := s.store.GetWallet(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: wallet %d does not exist", models.ErrValidation, id)
		}
		return err
	}
	return nil
}

func (s *operationServiceImpl) CreateOperation(ctx context.Context, req models.OperationRequest) (models.Operation, error) {
	if err := processors.ValidateRequest(req); err != nil {
		return models.Operation{}, err
	}
	if err := s.resolveWallet(ctx, &req); err != nil {
		return models.Operation{}, err
	}

	op, err := s.builder.Build(ctx, req)
	if err != nil {
		return models.Operation{}, err
	}
	saved, err := s.store.InsertOperation(ctx, op)
	if err != nil {
		return models.Operation{}, err
	}
	logger.FromContext(ctx).Info("Operation created",
		"operationID", saved.ID, "symbol", saved.AssetSymbol, "type", saved.OperationType, "totalValue", saved.TotalValue)
	return saved, nil
}

// PreviewOperation prices req without saving it. With a manual price the
// day's average/high/low still come from an override-free pass.
func (s *operationServiceImpl) PreviewOperation(ctx context.Context, req models.OperationRequest) (models.OperationPreview, error) {
	op, err := s.builder.Build(ctx, req)
	if err != nil {
		return models.OperationPreview{}, err
	}
	market := op
	if req.PriceManual != nil {
		market, err = s.builder.Build(ctx, req.WithoutManualPrice())
		if err != nil {
			return models.OperationPreview{}, err
		}
	}
	return models.OperationPreview{
		Price:            op.Price,
		PriceAvgDay:      market.PriceAvgDay,
		PriceHighDay:     market.PriceHighDay,
		PriceLowDay:      market.PriceLowDay,
		ExchangeRate:     op.ExchangeRate,
		TotalValue:       op.TotalValue,
		Quantity:         op.Quantity,
		PurchaseCurrency: op.PurchaseCurrency,
	}, nil
}

func (s *operationServiceImpl) ListOperations(ctx context.Context, skip, limit int) ([]models.Operation, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.store.ListOperations(ctx, models.OperationFilter{Offset: skip, Limit: limit})
}

func (s *operationServiceImpl) GetOperation(ctx context.Context, id int64) (models.Operation, error) {
	return s.store.GetOperation(ctx, id)
}

// UpdateOperation replaces the fields named in patch and re-derives the
// quantity sign and the EUR total. The exchange rate is looked up again only
// when the purchase currency changes.
func (s *operationServiceImpl) UpdateOperation(ctx context.Context, id int64, patch models.OperationPatch) (models.Operation, error) {
	op, err := s.store.GetOperation(ctx, id)
	if err != nil {
		return models.Operation{}, err
	}

	if patch.Date != nil {
		if _, err := validation.ValidateDateString(*patch.Date, "date"); err != nil {
			return models.Operation{}, err
		}
		op.Date = strings.TrimSpace(*patch.Date)
	}
	if patch.OperationType != nil {
		t, err := models.ParseOperationType(*patch.OperationType)
		if err != nil {
			return models.Operation{}, err
		}
		op.OperationType = t
	}
	if patch.Quantity != nil {
		if err := validation.ValidateFinite(*patch.Quantity, "quantity"); err != nil {
			return models.Operation{}, err
		}
		op.Quantity = *patch.Quantity
	}
	if patch.WalletID != nil {
		if err := s.checkWallet(ctx, *patch.WalletID); err != nil {
			return models.Operation{}, err
		}
		walletID := *patch.WalletID
		op.WalletID = &walletID
	}
	if patch.User != nil {
		op.User = validation.SanitizeText(*patch.User)
	}
	if patch.Broker != nil {
		op.Broker = validation.SanitizeText(*patch.Broker)
	}
	if patch.Comment != nil {
		if err := validation.ValidateStringMaxLength(*patch.Comment, validation.MaxCommentLength, "comment"); err != nil {
			return models.Operation{}, err
		}
		op.Comment = validation.SanitizeText(*patch.Comment)
	}
	if patch.Accounting != nil {
		op.Accounting = *patch.Accounting
	}
	if patch.PriceManual != nil {
		if err := validation.ValidateFiniteNonNegative(*patch.PriceManual, "price_manual"); err != nil {
			return models.Operation{}, err
		}
		manual := *patch.PriceManual
		op.PriceManual = &manual
		op.Price = manual
	}
	if patch.PurchaseCurrency != nil {
		if err := validation.ValidateCurrencyCode(*patch.PurchaseCurrency); err != nil {
			return models.Operation{}, err
		}
		currency := strings.ToUpper(strings.TrimSpace(*patch.PurchaseCurrency))
		if currency != "" && currency != op.PurchaseCurrency {
			op.PurchaseCurrency = currency
			op.ExchangeRate = s.rates.ToReporting(ctx, currency)
		}
	}
	if patch.Fees != nil {
		if err := validation.ValidateFiniteNonNegative(*patch.Fees, "fees"); err != nil {
			return models.Operation{}, err
		}
		op.Fees = *patch.Fees
	}

	op.Quantity = op.OperationType.ApplySign(op.Quantity)
	op.TotalValue = op.ComputeTotal()

	if err := s.store.UpdateOperation(ctx, op); err != nil {
		return models.Operation{}, err
	}
	logger.FromContext(ctx).Info("Operation updated", "operationID", op.ID)
	return op, nil
}

// DuplicateOperation stores a copy of every field of id under a new identity.
func (s *operationServiceImpl) DuplicateOperation(ctx context.Context, id int64) (models.Operation, error) {
	op, err := s.store.GetOperation(ctx, id)
	if err != nil {
		return models.Operation{}, err
	}
	op.ID = 0
	copied, err := s.store.InsertOperation(ctx, op)
	if err != nil {
		return models.Operation{}, err
	}
	logger.FromContext(ctx).Info("Operation duplicated", "sourceID", id, "operationID", copied.ID)
	return copied, nil
}
