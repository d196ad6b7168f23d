package domain

import "errors"

// Expected conditions are modeled as sentinel errors so callers can match
// with errors.Is instead of string comparison.
var (
	// ErrInsufficientShares is returned when a sell exceeds the held quantity.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrInvalidQuantity is returned for non-positive buy/sell quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidPrice is returned for non-positive buy prices.
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrQuoteUnavailable is returned by quote providers when a symbol is
	// unknown. Valuation never propagates it; it falls back to cost basis.
	ErrQuoteUnavailable = errors.New("quote unavailable")
)
