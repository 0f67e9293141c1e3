package models

import (
	"errors"

	"github.com/username/bugetto/backend/src/security/validation"
)

// ReportingCurrency is the single settlement currency of every aggregation.
const ReportingCurrency = "EUR"

var (
	// ErrValidation marks a structurally invalid request. It is the same
	// sentinel used by the field validators so errors.Is works for both.
	ErrValidation = validation.ErrValidationFailed
	ErrNotFound   = errors.New("not found")
)
