// backend/src/processors/operation_processor.go
package processors

import (
	"context"
	"fmt"
	"strings"

	"github.com/username/bugetto/backend/src/models"
	"github.com/username/bugetto/backend/src/security/validation"
)

// OperationBuilder turns a submitted request into a fully priced ledger entry.
// It never persists anything.
type OperationBuilder struct {
	assets AssetRegistry
	prices *PriceResolver
	rates  *RateCache
}

func NewOperationBuilder(assets AssetRegistry, prices *PriceResolver, rates *RateCache) *OperationBuilder {
	return &OperationBuilder{assets: assets, prices: prices, rates: rates}
}

// ValidateRequest rejects structurally invalid requests. It does no I/O.
func ValidateRequest(req models.OperationRequest) error {
	if err := validation.ValidateSymbol(normalizeSymbol(req.AssetSymbol)); err != nil {
		return err
	}
	if _, err := models.ParseOperationType(req.OperationType); err != nil {
		return err
	}
	if _, err := validation.ValidateDateString(req.Date, "date"); err != nil {
		return err
	}
	if err := validation.ValidateCurrencyCode(req.PurchaseCurrency); err != nil {
		return err
	}
	if err := validation.ValidateFinite(req.Quantity, "quantity"); err != nil {
		return err
	}
	if req.Fees != nil {
		if err := validation.ValidateFiniteNonNegative(*req.Fees, "fees"); err != nil {
			return err
		}
	}
	if req.PriceManual != nil {
		if err := validation.ValidateFiniteNonNegative(*req.PriceManual, "price_manual"); err != nil {
			return err
		}
	}
	if err := validation.ValidateStringMaxLength(req.Comment, validation.MaxCommentLength, "comment"); err != nil {
		return err
	}
	if err := validation.ValidateStringMaxLength(req.Broker, validation.DefaultMaxStringLength, "broker"); err != nil {
		return err
	}
	return validation.ValidateStringMaxLength(req.User, validation.DefaultMaxStringLength, "user")
}

// Build runs the pricing pipeline for req. Sign is resolved before price.
func (b *OperationBuilder) Build(ctx context.Context, req models.OperationRequest) (models.Operation, error) {
	if err := ValidateRequest(req); err != nil {
		return models.Operation{}, err
	}
	opType, _ := models.ParseOperationType(req.OperationType)

	// 1. Symbol and asset
	symbol := normalizeSymbol(req.AssetSymbol)
	asset, err := b.assets.FindAsset(ctx, symbol)
	if err != nil {
		return models.Operation{}, fmt.Errorf("failed to look up asset %s: %w", symbol, err)
	}

	// 2. Purchase currency
	currency := strings.ToUpper(strings.TrimSpace(req.PurchaseCurrency))
	if currency == "" {
		currency = asset.NativeCurrency()
	}

	// 3. Signed quantity
	quantity := opType.ApplySign(req.Quantity)

	// 4. Price basis
	var price, closePrice, high, low float64
	switch {
	case req.PriceManual != nil:
		price = *req.PriceManual
		closePrice, high, low = price, price, price
	case models.IsLiquidity(asset, symbol):
		price = 1.0
		closePrice, high, low = 1.0, 1.0, 1.0
	default:
		closePrice, high, low = b.prices.DayPrices(ctx, symbol).Values()
		price = closePrice
		if price == 0 {
			price = b.prices.CurrentPrice(ctx, symbol).Value()
		}
	}

	// 5. Exchange rate
	rate := b.rates.ToReporting(ctx, currency)

	var fees float64
	if req.Fees != nil {
		fees = *req.Fees
	}

	accounting := true
	if req.Accounting != nil {
		accounting = *req.Accounting
	}

	op := models.Operation{
		User:             validation.SanitizeText(req.User),
		Date:             strings.TrimSpace(req.Date),
		OperationType:    opType,
		Quantity:         quantity,
		AssetSymbol:      symbol,
		WalletID:         req.WalletID,
		Broker:           validation.SanitizeText(req.Broker),
		Accounting:       accounting,
		Comment:          validation.SanitizeText(req.Comment),
		Price:            price,
		PriceManual:      req.PriceManual,
		PriceAvgDay:      closePrice,
		PriceHighDay:     high,
		PriceLowDay:      low,
		PurchaseCurrency: currency,
		ExchangeRate:     rate,
		Fees:             fees,
	}
	// 6. EUR total
	op.TotalValue = op.ComputeTotal()
	return op, nil
}
