package wallet

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Holding is the position held in a single asset.
//
// AverageCost is the weighted average of the unit prices paid over all the
// deposits of the asset. LastPrice is the most recently observed market price.
type Holding struct {
	Asset       Asset
	Quantity    Quantity
	AverageCost Price
	LastPrice   Price
}

// ID returns the asset identifier of the holding.
func (h Holding) ID() string { return h.Asset.ID }

// MarshalJSON writes the holding in the persisted wallet layout.
func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", h.Asset.ID).
		Append("symbol", h.Asset.Symbol).
		Append("name", h.Asset.Name).
		Append("amount", h.Quantity).
		Append("averagePrice", h.AverageCost).
		Append("currentPrice", h.LastPrice).
		Append("image", h.Asset.Image)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a holding from the persisted wallet layout and checks
// its invariants.
func (h *Holding) UnmarshalJSON(data []byte) error {
	// jholding is the object read from the file using json parser.
	type jholding struct {
		ID           string           `json:"id"`
		Symbol       string           `json:"symbol"`
		Name         string           `json:"name"`
		Amount       *decimal.Decimal `json:"amount"`
		AveragePrice *decimal.Decimal `json:"averagePrice"`
		CurrentPrice *decimal.Decimal `json:"currentPrice"`
		Image        string           `json:"image"`
	}
	var j jholding
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if j.ID == "" {
		return fmt.Errorf("holding without %q", "id")
	}
	for name, v := range map[string]*decimal.Decimal{"amount": j.Amount, "averagePrice": j.AveragePrice, "currentPrice": j.CurrentPrice} {
		if v == nil {
			return fmt.Errorf("holding %q: missing %q", j.ID, name)
		}
		if v.IsNegative() {
			return fmt.Errorf("holding %q: negative %q %v", j.ID, name, v)
		}
	}
	if j.Amount.IsZero() {
		return fmt.Errorf("holding %q: zero %q", j.ID, "amount")
	}
	image := j.Image
	if image == "" {
		image = DefaultImage
	}
	*h = Holding{
		Asset:       Asset{ID: j.ID, Symbol: j.Symbol, Name: j.Name, Image: image},
		Quantity:    Quantity{value: *j.Amount},
		AverageCost: Price{value: *j.AveragePrice},
		LastPrice:   Price{value: *j.CurrentPrice},
	}
	return nil
}
