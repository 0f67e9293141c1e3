// backend/src/processors/allocation_processor.go
package processors

import (
	"context"
	"sort"
	"strings"

	"github.com/username/bugetto/backend/src/logger"
	"github.com/username/bugetto/backend/src/models"
	"github.com/username/bugetto/backend/src/utils"
)

// allocationNoise is the absolute EUR value at or below which a bucket is dropped.
const allocationNoise = 0.01

// AllocationAggregator values holdings in EUR and breaks them down by asset
// and by category.
type AllocationAggregator struct {
	prices *PriceResolver
	rates  *RateCache
}

func NewAllocationAggregator(prices *PriceResolver, rates *RateCache) *AllocationAggregator {
	return &AllocationAggregator{prices: prices, rates: rates}
}

// valuation holds the price memo of a single aggregation pass.
type valuation struct {
	agg    *AllocationAggregator
	prices map[string]float64
}

func (a *AllocationAggregator) newValuation() *valuation {
	return &valuation{agg: a, prices: make(map[string]float64)}
}

func (v *valuation) price(ctx context.Context, asset models.Asset) float64 {
	symbol := strings.ToUpper(asset.Symbol)
	if p, ok := v.prices[symbol]; ok {
		return p
	}
	p := v.agg.prices.AssetPrice(ctx, &asset, symbol).Value()
	v.prices[symbol] = p
	return p
}

func (v *valuation) rate(ctx context.Context, asset models.Asset) float64 {
	return v.agg.rates.ToReporting(ctx, asset.NativeCurrency())
}

// eligibleAssets indexes the visible, categorized assets by uppercase symbol.
func eligibleAssets(assets []models.Asset) map[string]models.Asset {
	out := make(map[string]models.Asset, len(assets))
	for _, a := range assets {
		if a.Visible && strings.TrimSpace(a.Category) != "" {
			out[strings.ToUpper(strings.TrimSpace(a.Symbol))] = a
		}
	}
	return out
}

// holdingEntries yields the accounting entries of signed types that belong
// to an eligible asset.
func holdingEntries(ops []models.Operation, eligible map[string]models.Asset, fn func(models.Operation, models.Asset)) {
	for _, op := range ops {
		if !op.Accounting || op.OperationType.Sign() == models.SignNeutral {
			continue
		}
		asset, ok := eligible[strings.ToUpper(strings.TrimSpace(op.AssetSymbol))]
		if !ok {
			continue
		}
		fn(op, asset)
	}
}

// netHoldings sums signed quantities per eligible asset symbol.
func netHoldings(ops []models.Operation, eligible map[string]models.Asset) map[string]float64 {
	holdings := make(map[string]float64)
	holdingEntries(ops, eligible, func(op models.Operation, asset models.Asset) {
		holdings[strings.ToUpper(asset.Symbol)] += op.Quantity
	})
	return holdings
}

// CurrentByCategory values every eligible holding at current prices and
// sums it per category, largest first.
func (a *AllocationAggregator) CurrentByCategory(ctx context.Context, assets []models.Asset, ops []models.Operation) []models.CategoryAllocation {
	eligible := eligibleAssets(assets)
	v := a.newValuation()

	totals := make(map[string]float64)
	for symbol, qty := range netHoldings(ops, eligible) {
		asset := eligible[symbol]
		totals[asset.Category] += qty * v.price(ctx, asset) * v.rate(ctx, asset)
	}

	var total float64
	for category, value := range totals {
		if absFloat(value) <= allocationNoise {
			delete(totals, category)
			continue
		}
		total += value
	}

	result := make([]models.CategoryAllocation, 0, len(totals))
	for category, value := range totals {
		result = append(result, models.CategoryAllocation{
			Category:      category,
			Value:         utils.RoundFloat(value, 2),
			AllocationPct: utils.Percentage(value, total),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Value != result[j].Value {
			return result[i].Value > result[j].Value
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// CurrentByAsset values every eligible holding at current prices, largest first.
func (a *AllocationAggregator) CurrentByAsset(ctx context.Context, assets []models.Asset, ops []models.Operation) []models.AssetAllocation {
	eligible := eligibleAssets(assets)
	v := a.newValuation()

	var (
		result []models.AssetAllocation
		values []float64
		total  float64
	)
	for symbol, qty := range netHoldings(ops, eligible) {
		asset := eligible[symbol]
		price := v.price(ctx, asset)
		rate := v.rate(ctx, asset)
		value := qty * price * rate
		if absFloat(value) <= allocationNoise {
			continue
		}
		total += value
		values = append(values, value)
		result = append(result, models.AssetAllocation{
			Symbol:       symbol,
			Category:     asset.Category,
			Quantity:     utils.RoundFloat(qty, 6),
			Price:        price,
			ExchangeRate: rate,
			Value:        utils.RoundFloat(value, 2),
		})
	}
	for i := range result {
		result[i].AllocationPct = utils.Percentage(values[i], total)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Value != result[j].Value {
			return result[i].Value > result[j].Value
		}
		return result[i].Symbol < result[j].Symbol
	})
	return result
}

// HistoricalByCategory buckets the flows of each calendar month by category
// and reports each category's share of that month, valued at current prices.
// Months whose retained total is not positive are omitted.
func (a *AllocationAggregator) HistoricalByCategory(ctx context.Context, assets []models.Asset, ops []models.Operation) []models.HistoricalAllocation {
	eligible := eligibleAssets(assets)
	v := a.newValuation()
	log := logger.FromContext(ctx)

	months := make(map[string]map[string]float64)
	holdingEntries(ops, eligible, func(op models.Operation, asset models.Asset) {
		month, err := utils.YearMonth(op.Date)
		if err != nil {
			log.Debug("Skipping operation with unparseable date", "operationID", op.ID, "date", op.Date)
			return
		}
		if months[month] == nil {
			months[month] = make(map[string]float64)
		}
		months[month][strings.ToUpper(asset.Symbol)] += op.Quantity
	})

	result := make([]models.HistoricalAllocation, 0, len(months))
	for month, quantities := range months {
		totals := make(map[string]float64)
		for symbol, qty := range quantities {
			asset := eligible[symbol]
			totals[asset.Category] += qty * v.price(ctx, asset) * v.rate(ctx, asset)
		}

		var total float64
		for category, value := range totals {
			if absFloat(value) <= allocationNoise {
				delete(totals, category)
				continue
			}
			total += value
		}
		if total <= 0 {
			continue
		}

		categories := make(map[string]float64, len(totals))
		for category, value := range totals {
			categories[category] = utils.Percentage(value, total)
		}
		result = append(result, models.HistoricalAllocation{Date: month, Categories: categories})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

// LiquidityValue is the EUR value of every visible cash holding, counting
// all accounting entries of those assets.
func (a *AllocationAggregator) LiquidityValue(ctx context.Context, assets []models.Asset, ops []models.Operation) float64 {
	var total float64
	for _, asset := range assets {
		if !asset.Visible || !models.IsLiquidity(&asset, asset.Symbol) {
			continue
		}
		qty := HeldQuantity(ops, asset.Symbol, nil)
		if qty == 0 {
			continue
		}
		total += qty * a.rates.ToReporting(ctx, asset.NativeCurrency())
	}
	return utils.RoundFloat(total, 2)
}

// InvestedByAsset groups the stored EUR totals of accounting entries by
// symbol, largest first.
func InvestedByAsset(ops []models.Operation) []models.InvestedAllocation {
	return investedBy(ops, func(op models.Operation) (string, bool) {
		return strings.ToUpper(strings.TrimSpace(op.AssetSymbol)), true
	})
}

// InvestedByType groups the stored EUR totals of accounting entries by the
// type of their asset. Entries without a registered asset count toward the
// grand total only.
func InvestedByType(assets []models.Asset, ops []models.Operation) []models.InvestedAllocation {
	types := make(map[string]string, len(assets))
	for _, a := range assets {
		types[strings.ToUpper(strings.TrimSpace(a.Symbol))] = a.Type
	}
	return investedBy(ops, func(op models.Operation) (string, bool) {
		t, ok := types[strings.ToUpper(strings.TrimSpace(op.AssetSymbol))]
		return t, ok
	})
}

func investedBy(ops []models.Operation, key func(models.Operation) (string, bool)) []models.InvestedAllocation {
	var total float64
	values := make(map[string]float64)
	for _, op := range ops {
		if !op.Accounting {
			continue
		}
		total += op.TotalValue
		if k, ok := key(op); ok {
			values[k] += op.TotalValue
		}
	}

	result := make([]models.InvestedAllocation, 0, len(values))
	for k, value := range values {
		result = append(result, models.InvestedAllocation{
			Key:           k,
			Value:         utils.RoundFloat(value, 2),
			AllocationPct: utils.Percentage(value, total),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Value != result[j].Value {
			return result[i].Value > result[j].Value
		}
		return result[i].Key < result[j].Key
	})
	return result
}

// InvestedTotal sums the stored EUR totals of accounting entries.
func InvestedTotal(ops []models.Operation) float64 {
	var total float64
	for _, op := range ops {
		if op.Accounting {
			total += op.TotalValue
		}
	}
	return utils.RoundFloat(total, 2)
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
