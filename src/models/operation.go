package models

import (
	"fmt"
	"strings"
)

// OperationType is the canonical ledger label of an operation.
type OperationType string

const (
	OpPurchase         OperationType = "Acquisto"
	OpDonationReceived OperationType = "Donazione (ricevuta)"
	OpSaving           OperationType = "Saving"
	OpConsolidation    OperationType = "Consolidamento"

	OpSale          OperationType = "Vendita"
	OpDonationGiven OperationType = "Donazione (effettuata)"
	OpExpense       OperationType = "Spesa"

	OpDividend OperationType = "Dividendo"
	OpTransfer OperationType = "Trasferimento"
)

// Sign is the effect an operation type has on the held quantity.
type Sign int

const (
	SignNeutral Sign = iota
	SignPositive
	SignNegative
)

var operationSigns = map[OperationType]Sign{
	OpPurchase:         SignPositive,
	OpDonationReceived: SignPositive,
	OpSaving:           SignPositive,
	OpConsolidation:    SignPositive,
	OpSale:             SignNegative,
	OpDonationGiven:    SignNegative,
	OpExpense:          SignNegative,
	OpDividend:         SignNeutral,
	OpTransfer:         SignNeutral,
}

// AllOperationTypes lists the closed set of operation types in display order.
var AllOperationTypes = []OperationType{
	OpPurchase, OpDonationReceived, OpSaving, OpConsolidation,
	OpSale, OpDonationGiven, OpExpense,
	OpDividend, OpTransfer,
}

// ParseOperationType matches s case-insensitively against the closed set.
func ParseOperationType(s string) (OperationType, error) {
	trimmed := strings.TrimSpace(s)
	for _, t := range AllOperationTypes {
		if strings.EqualFold(trimmed, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown operation type %q", ErrValidation, s)
}

// Sign classifies the type. Unknown types are neutral.
func (t OperationType) Sign() Sign {
	return operationSigns[t]
}

// TypesWithSign returns every operation type of the given classification.
func TypesWithSign(sign Sign) []OperationType {
	var out []OperationType
	for _, t := range AllOperationTypes {
		if t.Sign() == sign {
			out = append(out, t)
		}
	}
	return out
}

// SignedTypes returns the POSITIVE and NEGATIVE types, the ones that move holdings.
func SignedTypes() []OperationType {
	return append(TypesWithSign(SignPositive), TypesWithSign(SignNegative)...)
}

// ApplySign turns a user-supplied quantity into the ledger quantity for t.
// The supplied sign is ignored for POSITIVE and NEGATIVE types.
func (t OperationType) ApplySign(quantity float64) float64 {
	abs := quantity
	if abs < 0 {
		abs = -abs
	}
	switch t.Sign() {
	case SignPositive:
		return abs
	case SignNegative:
		return -abs
	default:
		return quantity
	}
}

// Operation is one ledger entry. Invariant:
// TotalValue = Quantity*Price*ExchangeRate - Fees*ExchangeRate.
type Operation struct {
	ID               int64         `json:"id"`
	User             string        `json:"user,omitempty"`
	Date             string        `json:"date"`
	OperationType    OperationType `json:"operation_type"`
	Quantity         float64       `json:"quantity"`
	AssetSymbol      string        `json:"asset_symbol"`
	WalletID         *int64        `json:"wallet_id"`
	Broker           string        `json:"broker,omitempty"`
	Accounting       bool          `json:"accounting"`
	Comment          string        `json:"comment,omitempty"`
	Price            float64       `json:"price"`
	PriceManual      *float64      `json:"price_manual"`
	PriceAvgDay      float64       `json:"price_avg_day"`
	PriceHighDay     float64       `json:"price_high_day"`
	PriceLowDay      float64       `json:"price_low_day"`
	PurchaseCurrency string        `json:"purchase_currency"`
	ExchangeRate     float64       `json:"exchange_rate"`
	TotalValue       float64       `json:"total_value"`
	Fees             float64       `json:"fees"`
	DividendValue    *float64      `json:"dividend_value"`
}

// ComputeTotal returns the EUR total implied by the entry's own fields.
func (o Operation) ComputeTotal() float64 {
	return o.Quantity*o.Price*o.ExchangeRate - o.Fees*o.ExchangeRate
}

// OperationRequest is a user-submitted operation before pricing.
type OperationRequest struct {
	Date             string   `json:"date"`
	OperationType    string   `json:"operation_type"`
	AssetSymbol      string   `json:"asset_symbol"`
	Quantity         float64  `json:"quantity"`
	WalletID         *int64   `json:"wallet_id"`
	WalletName       string   `json:"wallet_name,omitempty"`
	User             string   `json:"user,omitempty"`
	Broker           string   `json:"broker,omitempty"`
	Accounting       *bool    `json:"accounting"`
	PriceManual      *float64 `json:"price_manual"`
	PurchaseCurrency string   `json:"purchase_currency,omitempty"`
	Fees             *float64 `json:"fees"`
	Comment          string   `json:"comment,omitempty"`
}

// WithoutManualPrice returns a copy of the request with the override cleared.
func (r OperationRequest) WithoutManualPrice() OperationRequest {
	r.PriceManual = nil
	return r
}

// OperationPatch names the fields an update replaces. Nil means unchanged.
type OperationPatch struct {
	Date             *string  `json:"date"`
	OperationType    *string  `json:"operation_type"`
	Quantity         *float64 `json:"quantity"`
	WalletID         *int64   `json:"wallet_id"`
	User             *string  `json:"user"`
	Broker           *string  `json:"broker"`
	Accounting       *bool    `json:"accounting"`
	Comment          *string  `json:"comment"`
	PriceManual      *float64 `json:"price_manual"`
	PurchaseCurrency *string  `json:"purchase_currency"`
	Fees             *float64 `json:"fees"`
}

// OperationPreview is the priced view of a request shown before saving.
type OperationPreview struct {
	Price            float64 `json:"price"`
	PriceAvgDay      float64 `json:"price_avg_day"`
	PriceHighDay     float64 `json:"price_high_day"`
	PriceLowDay      float64 `json:"price_low_day"`
	ExchangeRate     float64 `json:"exchange_rate"`
	TotalValue       float64 `json:"total_value"`
	Quantity         float64 `json:"quantity"`
	PurchaseCurrency string  `json:"purchase_currency"`
}

// OperationFilter narrows a ledger scan. Zero values disable a criterion.
type OperationFilter struct {
	Symbol         string
	WalletID       *int64
	AccountingOnly bool
	Types          []OperationType
	DateFrom       string
	DateTo         string
	Offset         int
	Limit          int
}
