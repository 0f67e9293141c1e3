package model

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/username/bugetto/backend/src/models"
)

const assetColumns = `id, symbol, name, currency, type, category, isin, visible`

func scanAsset(row interface{ Scan(...any) error }) (models.Asset, error) {
	var (
		a       models.Asset
		visible any
	)
	var name, currency, typ, category, isin sql.NullString
	if err := row.Scan(&a.ID, &a.Symbol, &name, &currency, &typ, &category, &isin, &visible); err != nil {
		return models.Asset{}, err
	}
	a.Name = name.String
	a.Currency = currency.String
	a.Type = typ.String
	a.Category = category.String
	a.ISIN = isin.String
	a.Visible = flag(visible, true)
	return a, nil
}

// FindAsset looks up an asset by symbol, case-insensitively. It returns nil
// without error when no such asset exists.
func (s *Store) FindAsset(ctx context.Context, symbol string) (*models.Asset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM asset_info WHERE symbol = ? COLLATE NOCASE`,
		strings.TrimSpace(symbol))
	a, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find asset %s: %w", symbol, err)
	}
	return &a, nil
}

// ListAssets returns the registry ordered by name then symbol.
func (s *Store) ListAssets(ctx context.Context, visibleOnly bool) ([]models.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset_info`
	if visibleOnly {
		query += ` WHERE visible = 1`
	}
	query += ` ORDER BY name COLLATE NOCASE, symbol`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets := []models.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// UpsertAsset inserts a new asset or replaces the non-nil fields of the
// existing one with the same symbol.
func (s *Store) UpsertAsset(ctx context.Context, in models.AssetInput) (models.Asset, error) {
	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	if symbol == "" {
		return models.Asset{}, fmt.Errorf("%w: symbol is required", models.ErrValidation)
	}

	existing, err := s.FindAsset(ctx, symbol)
	if err != nil {
		return models.Asset{}, err
	}

	if existing == nil {
		a := models.Asset{Symbol: symbol, Currency: models.ReportingCurrency, Visible: true}
		applyAssetInput(&a, in)
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO asset_info (symbol, name, currency, type, category, isin, visible) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.Symbol, nullIfEmpty(a.Name), a.Currency, nullIfEmpty(a.Type), nullIfEmpty(a.Category), nullIfEmpty(a.ISIN), a.Visible)
		if err != nil {
			return models.Asset{}, fmt.Errorf("failed to insert asset %s: %w", symbol, err)
		}
		a.ID, err = res.LastInsertId()
		if err != nil {
			return models.Asset{}, fmt.Errorf("failed to read asset id: %w", err)
		}
		return a, nil
	}

	a := *existing
	applyAssetInput(&a, in)
	_, err = s.db.ExecContext(ctx,
		`UPDATE asset_info SET name = ?, currency = ?, type = ?, category = ?, isin = ?, visible = ? WHERE id = ?`,
		nullIfEmpty(a.Name), a.NativeCurrency(), nullIfEmpty(a.Type), nullIfEmpty(a.Category), nullIfEmpty(a.ISIN), a.Visible, a.ID)
	if err != nil {
		return models.Asset{}, fmt.Errorf("failed to update asset %s: %w", symbol, err)
	}
	a.Currency = a.NativeCurrency()
	return a, nil
}

func applyAssetInput(a *models.Asset, in models.AssetInput) {
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Currency != nil && strings.TrimSpace(*in.Currency) != "" {
		a.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.Type != nil {
		a.Type = strings.TrimSpace(*in.Type)
	}
	if in.Category != nil {
		a.Category = strings.TrimSpace(*in.Category)
	}
	if in.ISIN != nil {
		a.ISIN = strings.ToUpper(strings.TrimSpace(*in.ISIN))
	}
	if in.Visible != nil {
		a.Visible = *in.Visible
	}
}
