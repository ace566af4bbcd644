package wallet

import "errors"

var (
	// ErrInvalidAmount is returned when a quantity or a price is negative,
	// zero where it must be positive, or not a number. Nothing is modified.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidAsset is returned when an asset has no identifier.
	ErrInvalidAsset = errors.New("invalid asset")
	// ErrStorageCorrupt reports a persisted slot that cannot be decoded. The
	// ledger recovers from it as an empty ledger.
	ErrStorageCorrupt = errors.New("storage corrupt")
	// ErrFeedUnavailable reports a price feed failure. Prices are left unchanged.
	ErrFeedUnavailable = errors.New("price feed unavailable")
)
