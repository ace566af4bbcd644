package renderer

import (
	"fmt"

	"github.com/etnz/wallet"
)

// TradeKind tells a purchase from a sale.
type TradeKind int

const (
	Bought TradeKind = iota
	Sold
)

func (k TradeKind) String() string {
	if k == Sold {
		return "Sold"
	}
	return "Bought"
}

// Trade is the outcome of a buy or a sell.
type Trade struct {
	Kind     TradeKind
	Asset    wallet.Asset
	Quantity wallet.Quantity
	Price    wallet.Price // unit price
	Currency string
	// Remaining is the position after the trade, zero if it was closed.
	Remaining wallet.Quantity
}

// TradeMarkdown renders a one paragraph confirmation of the trade.
func TradeMarkdown(t Trade) string {
	total := t.Price.Mul(t.Quantity)
	s := fmt.Sprintf("**%s** %s %s for %s (%s each).",
		t.Kind, t.Quantity.StringFixed(6), t.Asset.Ticker(), total.Format(t.Currency), t.Price.Format(t.Currency))
	if t.Remaining.IsZero() {
		return s + " The position is closed.\n"
	}
	return s + fmt.Sprintf(" You now hold %s %s.\n", t.Remaining.StringFixed(6), t.Asset.Ticker())
}
