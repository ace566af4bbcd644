package wallet

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// checkFloat rejects the float values that have no decimal representation.
func checkFloat(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v is not a number", ErrInvalidAmount, v)
	}
	return nil
}

// parseDecimal parses user input, accepting a comma as decimal separator.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	return d, nil
}

// Quantity is an amount of asset units.
type Quantity struct {
	value decimal.Decimal
}

// Q returns a Quantity. It panics on NaN or infinite floats, use
// NewQuantityFromFloat for values that were not checked.
func Q[T float64 | int | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// NewQuantityFromFloat returns a Quantity or ErrInvalidAmount if v is not a number.
func NewQuantityFromFloat(v float64) (Quantity, error) {
	if err := checkFloat(v); err != nil {
		return Quantity{}, err
	}
	return Q(v), nil
}

// ParseQuantity parses a decimal quantity like "0.25".
func ParseQuantity(s string) (Quantity, error) {
	d, err := parseDecimal(s)
	return Quantity{value: d}, err
}

func (q Quantity) Equal(p Quantity) bool       { return q.value.Equal(p.value) }
func (q Quantity) LessThan(p Quantity) bool    { return q.value.LessThan(p.value) }
func (q Quantity) GreaterThan(p Quantity) bool { return q.value.GreaterThan(p.value) }
func (q Quantity) Add(p Quantity) Quantity     { return Quantity{value: q.value.Add(p.value)} }
func (q Quantity) Sub(p Quantity) Quantity     { return Quantity{value: q.value.Sub(p.value)} }
func (q Quantity) IsNegative() bool            { return q.value.IsNegative() }
func (q Quantity) IsPositive() bool            { return q.value.IsPositive() }
func (q Quantity) IsZero() bool                { return q.value.IsZero() }
func (q Quantity) Decimal() decimal.Decimal    { return q.value }
func (q Quantity) Float() float64              { return q.value.InexactFloat64() }
func (q Quantity) String() string              { return q.value.String() }

// StringFixed returns the quantity with exactly places digits after the point.
func (q Quantity) StringFixed(places int32) string { return q.value.StringFixed(places) }

// MarshalJSON writes the quantity as a JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) { return []byte(q.value.String()), nil }

// UnmarshalJSON reads a JSON number or a quoted decimal.
func (q *Quantity) UnmarshalJSON(b []byte) error { return q.value.UnmarshalJSON(b) }
