package model

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/username/bugetto/backend/src/models"
)

func (s *Store) GetWallet(ctx context.Context, id int64) (*models.Wallet, error) {
	var (
		w    models.Wallet
		desc sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, name, description FROM wallets WHERE id = ?`, id).
		Scan(&w.ID, &w.Name, &desc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("wallet %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet %d: %w", id, err)
	}
	w.Description = desc.String
	return &w, nil
}

// FindWalletByName matches case-insensitively. It returns nil without error
// when no wallet has that name.
func (s *Store) FindWalletByName(ctx context.Context, name string) (*models.Wallet, error) {
	var (
		w    models.Wallet
		desc sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, name, description FROM wallets WHERE name = ? COLLATE NOCASE`,
		strings.TrimSpace(name)).Scan(&w.ID, &w.Name, &desc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find wallet %q: %w", name, err)
	}
	w.Description = desc.String
	return &w, nil
}

// CreateWallet returns the existing wallet with the same name or inserts a new one.
func (s *Store) CreateWallet(ctx context.Context, name, description string) (models.Wallet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Wallet{}, fmt.Errorf("%w: wallet name is required", models.ErrValidation)
	}

	existing, err := s.FindWalletByName(ctx, name)
	if err != nil {
		return models.Wallet{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO wallets (name, description) VALUES (?, ?)`, name, nullIfEmpty(description))
	if err != nil {
		return models.Wallet{}, fmt.Errorf("failed to create wallet %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Wallet{}, fmt.Errorf("failed to read wallet id: %w", err)
	}
	return models.Wallet{ID: id, Name: name, Description: description}, nil
}

func (s *Store) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM wallets ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	wallets := []models.Wallet{}
	for rows.Next() {
		var (
			w    models.Wallet
			desc sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.Name, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		w.Description = desc.String
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}
