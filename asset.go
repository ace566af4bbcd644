package wallet

import (
	"fmt"
	"strings"
)

// DefaultImage is the image reference used for assets that come without one.
const DefaultImage = "/placeholder.svg"

// Asset describes a tradable asset. Only the ID identifies it, the other
// fields are descriptive.
type Asset struct {
	ID     string
	Symbol string
	Name   string
	Image  string
}

// Validate checks the asset and fills the defaults.
func (a Asset) Validate() (Asset, error) {
	a.ID = strings.TrimSpace(a.ID)
	if a.ID == "" {
		return a, fmt.Errorf("%w: missing identifier", ErrInvalidAsset)
	}
	if a.Image == "" {
		a.Image = DefaultImage
	}
	return a, nil
}

// Ticker returns the upper case symbol, or the ID when the symbol is unknown.
func (a Asset) Ticker() string {
	if a.Symbol == "" {
		return a.ID
	}
	return strings.ToUpper(a.Symbol)
}

// Listing is an asset as offered by a Catalog, with its current price.
type Listing struct {
	Asset Asset
	Price Price
}
