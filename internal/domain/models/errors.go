package models

import "errors"

var (
	// ErrSymbolNotFound means the data provider knows nothing about the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrDataUnavailable means a provider fetch failed or returned nothing.
	// Fatal to the single request; not retried internally.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrInsufficientData means the history is too short to evaluate any rule.
	// Distinct from a computed hold.
	ErrInsufficientData = errors.New("insufficient data for recommendation")
)
