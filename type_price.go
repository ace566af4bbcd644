package wallet

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Price is an amount in the wallet currency. It is used both for unit prices
// and for values (quantity times unit price) and can be negative when it
// represents a loss.
type Price struct {
	value decimal.Decimal
}

// P returns a Price. It panics on NaN or infinite floats, use
// NewPriceFromFloat for values that were not checked.
func P[T float64 | int | int64 | decimal.Decimal](value T) Price {
	return Price{value: newDecimal(value)}
}

// NewPriceFromFloat returns a Price or ErrInvalidAmount if v is not a number.
func NewPriceFromFloat(v float64) (Price, error) {
	if err := checkFloat(v); err != nil {
		return Price{}, err
	}
	return P(v), nil
}

// ParsePrice parses a decimal amount like "1234.5".
func ParsePrice(s string) (Price, error) {
	d, err := parseDecimal(s)
	return Price{value: d}, err
}

func (p Price) Equal(o Price) bool            { return p.value.Equal(o.value) }
func (p Price) LessThan(o Price) bool         { return p.value.LessThan(o.value) }
func (p Price) GreaterThan(o Price) bool      { return p.value.GreaterThan(o.value) }
func (p Price) Add(o Price) Price             { return Price{value: p.value.Add(o.value)} }
func (p Price) Sub(o Price) Price             { return Price{value: p.value.Sub(o.value)} }
func (p Price) Neg() Price                    { return Price{value: p.value.Neg()} }
func (p Price) Mul(q Quantity) Price          { return Price{value: p.value.Mul(q.value)} }
func (p Price) Div(q Quantity) Price          { return Price{value: p.value.Div(q.value)} }
func (p Price) DivPrice(o Price) Quantity     { return Quantity{value: p.value.Div(o.value)} }
func (p Price) IsNegative() bool              { return p.value.IsNegative() }
func (p Price) IsPositive() bool              { return p.value.IsPositive() }
func (p Price) IsZero() bool                  { return p.value.IsZero() }
func (p Price) Decimal() decimal.Decimal      { return p.value }
func (p Price) Float() float64                { return p.value.InexactFloat64() }
func (p Price) String() string                { return p.value.String() }
func (p Price) MarshalJSON() ([]byte, error)  { return []byte(p.value.String()), nil }
func (p *Price) UnmarshalJSON(b []byte) error { return p.value.UnmarshalJSON(b) }

// smallFraction is the number of digits shown for amounts below one unit.
const smallFraction = 6

// Format returns the amount formatted in the currency with the given ISO code,
// e.g. "$1,234.50". Amounts below one unit keep 6 digits so that cheap assets
// remain readable.
func (p Price) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	fraction := cur.Fraction
	if p.value.Abs().LessThan(decimal.NewFromInt(1)) && !p.value.IsZero() {
		fraction = smallFraction
	}
	f := money.NewFormatter(fraction, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(p.value.Shift(int32(fraction)).Round(0).IntPart())
}

// SignedFormat is like Format with an explicit "+" for positive amounts.
func (p Price) SignedFormat(currency string) string {
	if p.IsPositive() {
		return "+" + p.Format(currency)
	}
	return p.Format(currency)
}
