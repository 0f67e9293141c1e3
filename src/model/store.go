package model

import (
	"database/sql"
	"strings"

	"github.com/username/bugetto/backend/src/utils"
)

// Store is the sqlite-backed ledger: assets, wallets and operations.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// numeric decodes a loosely typed numeric column, 0 when NULL or undecodable.
func numeric(v any) float64 {
	f, _ := utils.ToFloat(v)
	return f
}

// optionalNumeric keeps NULL as nil.
func optionalNumeric(v any) *float64 {
	f, ok := utils.ToFloat(v)
	if !ok {
		return nil
	}
	return &f
}

// flag decodes a boolean column that may hold 0/1, true/false or their text forms.
func flag(v any, fallback bool) bool {
	switch b := v.(type) {
	case nil:
		return fallback
	case bool:
		return b
	case string:
		return parseFlagText(b, fallback)
	case []byte:
		return parseFlagText(string(b), fallback)
	}
	f, ok := utils.ToFloat(v)
	if !ok {
		return fallback
	}
	return f != 0
}

// accountingTrueSQL selects the rows flag(accounting, true) decodes as true.
const accountingTrueSQL = `(accounting IS NULL
	OR (typeof(accounting) IN ('integer', 'real') AND accounting <> 0)
	OR (typeof(accounting) IN ('text', 'blob') AND LOWER(TRIM(CAST(accounting AS TEXT))) NOT IN ('0', 'false', 'f', 'no')))`

func parseFlagText(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes":
		return true
	case "0", "false", "f", "no":
		return false
	}
	return fallback
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
