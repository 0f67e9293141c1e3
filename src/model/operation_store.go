package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/username/bugetto/backend/src/logger"
	"github.com/username/bugetto/backend/src/models"
	"github.com/username/bugetto/backend/src/utils"
)

// ErrUndecodableQuantity marks a stored row whose quantity is not a number.
var ErrUndecodableQuantity = errors.New("undecodable quantity")

const operationColumns = `id, user, date, operation_type, quantity, asset_symbol, wallet_id, broker,
	accounting, comment, price, price_manual, price_avg_day, price_high_day, price_low_day,
	purchase_currency, exchange_rate, total_value, fees, dividend_value`

func scanOperation(row interface{ Scan(...any) error }) (models.Operation, error) {
	var (
		op                         models.Operation
		user, date, opType, symbol sql.NullString
		broker, comment, currency  sql.NullString
		walletID                   sql.NullInt64
		quantity, accounting       any
		price, priceManual, avgDay any
		highDay, lowDay, rate      any
		total, fees, dividend      any
	)
	err := row.Scan(&op.ID, &user, &date, &opType, &quantity, &symbol, &walletID, &broker,
		&accounting, &comment, &price, &priceManual, &avgDay, &highDay, &lowDay,
		&currency, &rate, &total, &fees, &dividend)
	if err != nil {
		return models.Operation{}, err
	}

	q, ok := utils.ToFloat(quantity)
	if !ok {
		return models.Operation{ID: op.ID}, fmt.Errorf("operation %d: %w (%v)", op.ID, ErrUndecodableQuantity, quantity)
	}

	op.User = user.String
	op.Date = date.String
	op.OperationType = canonicalType(opType.String)
	op.Quantity = q
	op.AssetSymbol = symbol.String
	if walletID.Valid {
		id := walletID.Int64
		op.WalletID = &id
	}
	op.Broker = broker.String
	op.Accounting = flag(accounting, true)
	op.Comment = comment.String
	op.Price = numeric(price)
	op.PriceManual = optionalNumeric(priceManual)
	op.PriceAvgDay = numeric(avgDay)
	op.PriceHighDay = numeric(highDay)
	op.PriceLowDay = numeric(lowDay)
	op.PurchaseCurrency = currency.String
	op.ExchangeRate = numeric(rate)
	op.TotalValue = numeric(total)
	op.Fees = numeric(fees)
	op.DividendValue = optionalNumeric(dividend)
	return op, nil
}

// canonicalType maps a stored label onto the closed set, keeping unknown
// legacy labels as they are.
func canonicalType(s string) models.OperationType {
	if t, err := models.ParseOperationType(s); err == nil {
		return t
	}
	return models.OperationType(s)
}

// InsertOperation stores op and returns it with its new identity.
func (s *Store) InsertOperation(ctx context.Context, op models.Operation) (models.Operation, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO operations (user, date, operation_type, quantity, asset_symbol, wallet_id, broker,
			accounting, comment, price, price_manual, price_avg_day, price_high_day, price_low_day,
			purchase_currency, exchange_rate, total_value, fees, dividend_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullIfEmpty(op.User), op.Date, string(op.OperationType), op.Quantity, op.AssetSymbol, nullableID(op.WalletID), nullIfEmpty(op.Broker),
		op.Accounting, nullIfEmpty(op.Comment), op.Price, nullableFloat(op.PriceManual), op.PriceAvgDay, op.PriceHighDay, op.PriceLowDay,
		op.PurchaseCurrency, op.ExchangeRate, op.TotalValue, op.Fees, nullableFloat(op.DividendValue))
	if err != nil {
		return models.Operation{}, fmt.Errorf("failed to insert operation: %w", err)
	}
	op.ID, err = res.LastInsertId()
	if err != nil {
		return models.Operation{}, fmt.Errorf("failed to read operation id: %w", err)
	}
	return op, nil
}

func (s *Store) GetOperation(ctx context.Context, id int64) (models.Operation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = ?`, id)
	op, err := scanOperation(row)
	if err == sql.ErrNoRows {
		return models.Operation{}, fmt.Errorf("operation %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Operation{}, fmt.Errorf("failed to get operation %d: %w", id, err)
	}
	return op, nil
}

// UpdateOperation rewrites every stored field of op.ID.
func (s *Store) UpdateOperation(ctx context.Context, op models.Operation) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE operations SET user = ?, date = ?, operation_type = ?, quantity = ?, asset_symbol = ?, wallet_id = ?,
			broker = ?, accounting = ?, comment = ?, price = ?, price_manual = ?, price_avg_day = ?,
			price_high_day = ?, price_low_day = ?, purchase_currency = ?, exchange_rate = ?, total_value = ?,
			fees = ?, dividend_value = ?
		WHERE id = ?`,
		nullIfEmpty(op.User), op.Date, string(op.OperationType), op.Quantity, op.AssetSymbol, nullableID(op.WalletID),
		nullIfEmpty(op.Broker), op.Accounting, nullIfEmpty(op.Comment), op.Price, nullableFloat(op.PriceManual), op.PriceAvgDay,
		op.PriceHighDay, op.PriceLowDay, op.PurchaseCurrency, op.ExchangeRate, op.TotalValue,
		op.Fees, nullableFloat(op.DividendValue), op.ID)
	if err != nil {
		return fmt.Errorf("failed to update operation %d: %w", op.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("operation %d: %w", op.ID, models.ErrNotFound)
	}
	return nil
}

// ListOperations scans the ledger in (date, id) order. Rows whose quantity
// cannot be decoded are logged and skipped.
func (s *Store) ListOperations(ctx context.Context, filter models.OperationFilter) ([]models.Operation, error) {
	var (
		where []string
		args  []any
	)
	if sym := strings.TrimSpace(filter.Symbol); sym != "" {
		where = append(where, `asset_symbol = ? COLLATE NOCASE`)
		args = append(args, sym)
	}
	if filter.WalletID != nil {
		where = append(where, `wallet_id = ?`)
		args = append(args, *filter.WalletID)
	}
	if filter.AccountingOnly {
		where = append(where, accountingTrueSQL)
	}
	if len(filter.Types) > 0 {
		where = append(where, `operation_type COLLATE NOCASE IN (?`+strings.Repeat(",?", len(filter.Types)-1)+`)`)
		for _, t := range filter.Types {
			args = append(args, string(t))
		}
	}
	if filter.DateFrom != "" {
		where = append(where, `substr(date, 1, 10) >= ?`)
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		where = append(where, `substr(date, 1, 10) <= ?`)
		args = append(args, filter.DateTo)
	}

	query := `SELECT ` + operationColumns + ` FROM operations`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY date, id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	ops := []models.Operation{}
	for rows.Next() {
		op, err := scanOperation(rows)
		if errors.Is(err, ErrUndecodableQuantity) {
			logger.FromContext(ctx).Warn("Skipping ledger row with undecodable quantity", "operationID", op.ID, "error", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// LastPurchase returns the wallet and user of the most recent purchase of
// symbol, or nil when it was never bought.
func (s *Store) LastPurchase(ctx context.Context, symbol string) (*models.LastPurchaseMeta, error) {
	var (
		walletID   sql.NullInt64
		walletName sql.NullString
		user       sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT o.wallet_id, w.name, o.user
		FROM operations o
		LEFT JOIN wallets w ON w.id = o.wallet_id
		WHERE o.asset_symbol = ? COLLATE NOCASE AND o.operation_type = ?
		ORDER BY o.date DESC, o.id DESC
		LIMIT 1`, strings.TrimSpace(symbol), string(models.OpPurchase)).Scan(&walletID, &walletName, &user)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last purchase of %s: %w", symbol, err)
	}

	meta := &models.LastPurchaseMeta{WalletName: walletName.String, User: user.String}
	if walletID.Valid {
		id := walletID.Int64
		meta.WalletID = &id
	}
	return meta, nil
}
