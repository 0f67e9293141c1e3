package processors

import (
	"strings"

	"github.com/username/bugetto/backend/src/models"
	"github.com/username/bugetto/backend/src/utils"
)

func matchesSymbol(op models.Operation, symbol string) bool {
	return strings.EqualFold(strings.TrimSpace(op.AssetSymbol), strings.TrimSpace(symbol))
}

// HeldQuantity sums the signed quantities of the accounting entries of symbol,
// restricted to one wallet when walletID is set. Rounded to 6 decimals.
func HeldQuantity(ops []models.Operation, symbol string, walletID *int64) float64 {
	var total float64
	for _, op := range ops {
		if !op.Accounting || !matchesSymbol(op, symbol) {
			continue
		}
		if walletID != nil && (op.WalletID == nil || *op.WalletID != *walletID) {
			continue
		}
		total += op.Quantity
	}
	return utils.RoundFloat(total, 6)
}

// AverageAcquisitionRate is the blended cost of symbol: purchases contribute
// price*quantity and quantity, received donations contribute quantity only.
// It is 0 when nothing was acquired. Rounded to 6 decimals.
func AverageAcquisitionRate(ops []models.Operation, symbol string) float64 {
	var cost, quantity float64
	for _, op := range ops {
		if !op.Accounting || !matchesSymbol(op, symbol) {
			continue
		}
		switch op.OperationType {
		case models.OpPurchase:
			cost += op.Price * op.Quantity
			quantity += op.Quantity
		case models.OpDonationReceived:
			quantity += op.Quantity
		}
	}
	if quantity == 0 {
		return 0
	}
	return utils.RoundFloat(cost/quantity, 6)
}

// TotalDividends sums the EUR totals of the accounting dividend entries of
// symbol. Rounded to 2 decimals.
func TotalDividends(ops []models.Operation, symbol string) float64 {
	var total float64
	for _, op := range ops {
		if op.Accounting && matchesSymbol(op, symbol) && op.OperationType == models.OpDividend {
			total += op.TotalValue
		}
	}
	return utils.RoundFloat(total, 2)
}

// Delta compares the blended cost of a holding with a current price.
func Delta(symbol string, averagePrice, currentPrice, quantity float64) models.AssetDelta {
	d := models.AssetDelta{
		Symbol:       strings.ToUpper(strings.TrimSpace(symbol)),
		AveragePrice: averagePrice,
		CurrentPrice: currentPrice,
		Quantity:     quantity,
		DeltaValue:   utils.RoundFloat((currentPrice-averagePrice)*quantity, 2),
	}
	if averagePrice != 0 {
		d.DeltaPercentage = utils.RoundFloat((currentPrice-averagePrice)/averagePrice*100, 2)
	}
	return d
}
