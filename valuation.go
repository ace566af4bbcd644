package wallet

import "fmt"

// CurrentValue returns the market value of the holding at its last known price.
func CurrentValue(h Holding) Price {
	return h.LastPrice.Mul(h.Quantity)
}

// Cost returns the amount paid for the held quantity, at the average cost.
func Cost(h Holding) Price {
	return h.AverageCost.Mul(h.Quantity)
}

// UnrealizedPnL returns the paper gain (or loss, when negative) of the holding.
func UnrealizedPnL(h Holding) Price {
	return h.LastPrice.Sub(h.AverageCost).Mul(h.Quantity)
}

// UnrealizedPnLPercent returns UnrealizedPnL relative to the cost of the
// holding. It is 0 when the holding cost nothing.
func UnrealizedPnLPercent(h Holding) Percent {
	return percent(UnrealizedPnL(h), Cost(h))
}

func percent(pnl, cost Price) Percent {
	if !cost.IsPositive() {
		return 0
	}
	return Percent(pnl.value.Div(cost.value).Shift(2).InexactFloat64())
}

// Summary aggregates the valuation of several holdings.
type Summary struct {
	Value      Price
	Cost       Price
	PnL        Price
	PnLPercent Percent
}

// Summarize computes the valuation of a whole wallet.
func Summarize(holdings []Holding) Summary {
	var s Summary
	for _, h := range holdings {
		s.Value = s.Value.Add(CurrentValue(h))
		s.Cost = s.Cost.Add(Cost(h))
	}
	s.PnL = s.Value.Sub(s.Cost)
	s.PnLPercent = percent(s.PnL, s.Cost)
	return s
}

// QuantityFor returns the quantity that budget buys at unit price.
func QuantityFor(budget, unit Price) (Quantity, error) {
	if !budget.IsPositive() {
		return Quantity{}, fmt.Errorf("%w: budget must be positive, got %v", ErrInvalidAmount, budget)
	}
	if !unit.IsPositive() {
		return Quantity{}, fmt.Errorf("%w: cannot buy at a unit price of %v", ErrInvalidAmount, unit)
	}
	return budget.DivPrice(unit), nil
}
