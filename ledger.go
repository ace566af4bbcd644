package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"slices"
)

// Ledger is the authoritative record of the wallet holdings.
//
// It is a write-through cache of its Slot: every successful mutation is
// persisted before the call returns, and a mutation that cannot be persisted
// is rolled back. Holdings keep their insertion order.
type Ledger struct {
	slot     Slot
	holdings []Holding
	index    map[string]int // index holdings by asset ID
}

// NewLedger creates an empty ledger persisted into slot. Call Load to restore
// the persisted holdings.
func NewLedger(slot Slot) *Ledger {
	return &Ledger{
		slot:     slot,
		holdings: make([]Holding, 0),
		index:    make(map[string]int),
	}
}

// Open creates a ledger and loads it from slot.
//
// A corrupt slot is logged and recovered as an empty ledger; the corrupt
// content is overwritten by the next successful mutation.
func Open(slot Slot) (*Ledger, error) {
	l := NewLedger(slot)
	err := l.Load()
	if errors.Is(err, ErrStorageCorrupt) {
		log.Printf("warning, %v: starting with an empty wallet", err)
		return l, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Load replaces the in-memory holdings with the persisted ones.
//
// A missing or empty slot loads an empty ledger. A slot that cannot be
// decoded also leaves the ledger empty, and returns an error wrapping
// ErrStorageCorrupt.
func (l *Ledger) Load() error {
	l.restore(nil)
	data, err := l.slot.Read()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read wallet: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	holdings, err := decodeHoldings(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
	}
	l.restore(holdings)
	return nil
}

// decodeHoldings parses the persisted layout: a JSON array of holdings.
func decodeHoldings(data []byte) ([]Holding, error) {
	var holdings []Holding
	if err := json.Unmarshal(data, &holdings); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		if seen[h.ID()] {
			return nil, fmt.Errorf("holding %q is defined twice", h.ID())
		}
		seen[h.ID()] = true
	}
	return holdings, nil
}

// Save persists all the holdings into the slot.
func (l *Ledger) Save() error {
	data, err := json.Marshal(l.holdings)
	if err != nil {
		return fmt.Errorf("cannot encode wallet: %w", err)
	}
	if err := l.slot.Write(data); err != nil {
		return fmt.Errorf("cannot save wallet: %w", err)
	}
	return nil
}

// commit saves the ledger, or rolls it back to prev if it cannot.
func (l *Ledger) commit(prev []Holding) error {
	if err := l.Save(); err != nil {
		l.restore(prev)
		return err
	}
	return nil
}

// restore sets the holdings and rebuilds the index.
func (l *Ledger) restore(holdings []Holding) {
	l.holdings = slices.Clone(holdings)
	if l.holdings == nil {
		l.holdings = make([]Holding, 0)
	}
	l.index = make(map[string]int, len(l.holdings))
	for i, h := range l.holdings {
		l.index[h.ID()] = i
	}
}

// Deposit adds qty units of the asset bought at unit price.
//
// The average cost becomes the weighted average of the previous cost basis and
// of this purchase, and unit becomes the last known price. The asset
// description is only recorded on the first deposit.
func (l *Ledger) Deposit(a Asset, qty Quantity, unit Price) (Holding, error) {
	a, err := a.Validate()
	if err != nil {
		return Holding{}, err
	}
	if !qty.IsPositive() {
		return Holding{}, fmt.Errorf("%w: deposit quantity must be positive, got %v", ErrInvalidAmount, qty)
	}
	if unit.IsNegative() {
		return Holding{}, fmt.Errorf("%w: unit price must not be negative, got %v", ErrInvalidAmount, unit)
	}

	prev := slices.Clone(l.holdings)
	var h Holding
	if i, exists := l.index[a.ID]; exists {
		h = l.holdings[i]
		total := h.Quantity.Add(qty)
		cost := h.AverageCost.Mul(h.Quantity).Add(unit.Mul(qty))
		h.Quantity = total
		h.AverageCost = cost.Div(total)
		h.LastPrice = unit
		l.holdings[i] = h
	} else {
		h = Holding{Asset: a, Quantity: qty, AverageCost: unit, LastPrice: unit}
		l.index[a.ID] = len(l.holdings)
		l.holdings = append(l.holdings, h)
	}
	if err := l.commit(prev); err != nil {
		return Holding{}, err
	}
	return h, nil
}

// Withdraw removes qty units of the asset identified by id.
//
// Withdrawing more than held sells the whole position. When the position is
// exhausted the holding is removed, and held is false; the returned holding
// then has a zero quantity. Withdrawing an asset that is not held does
// nothing.
//
// The average cost of the remaining units is unchanged.
func (l *Ledger) Withdraw(id string, qty Quantity) (h Holding, held bool, err error) {
	if !qty.IsPositive() {
		return Holding{}, false, fmt.Errorf("%w: withdraw quantity must be positive, got %v", ErrInvalidAmount, qty)
	}
	i, exists := l.index[id]
	if !exists {
		return Holding{}, false, nil
	}

	prev := slices.Clone(l.holdings)
	h = l.holdings[i]
	h.Quantity = h.Quantity.Sub(qty)
	if h.Quantity.IsPositive() {
		l.holdings[i] = h
		held = true
	} else {
		h.Quantity = Quantity{}
		l.restore(slices.Delete(l.holdings, i, i+1))
	}
	if err := l.commit(prev); err != nil {
		return Holding{}, false, err
	}
	return h, held, nil
}

// Reprice sets the last known price of the held assets present in prices.
// Other holdings are left unchanged, and unknown assets are ignored.
func (l *Ledger) Reprice(prices map[string]Price) error {
	for id, p := range prices {
		if p.IsNegative() {
			return fmt.Errorf("%w: price of %q must not be negative, got %v", ErrInvalidAmount, id, p)
		}
	}
	prev := slices.Clone(l.holdings)
	for i, h := range l.holdings {
		if p, ok := prices[h.ID()]; ok {
			l.holdings[i].LastPrice = p
		}
	}
	return l.commit(prev)
}

// TotalValue returns the market value of the wallet at the last known prices.
func (l *Ledger) TotalValue() Price {
	var total Price
	for _, h := range l.holdings {
		total = total.Add(CurrentValue(h))
	}
	return total
}

// Holdings returns a copy of the holdings in insertion order.
func (l *Ledger) Holdings() []Holding {
	return slices.Clone(l.holdings)
}

// Holding returns the holding of the asset identified by id.
func (l *Ledger) Holding(id string) (Holding, bool) {
	i, ok := l.index[id]
	if !ok {
		return Holding{}, false
	}
	return l.holdings[i], true
}

// IDs returns the identifiers of the held assets.
func (l *Ledger) IDs() []string {
	ids := make([]string, 0, len(l.holdings))
	for _, h := range l.holdings {
		ids = append(ids, h.ID())
	}
	return ids
}

// Len returns the number of held assets.
func (l *Ledger) Len() int { return len(l.holdings) }
