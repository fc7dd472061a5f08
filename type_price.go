package casefolio

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Price is an exact per-unit or notional amount, without currency.
//
// It is persisted as a bare JSON number, the way the backend stores it.
type Price struct {
	value decimal.Decimal
}

func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Price {
	return Price{value: newDecimal(value)}
}

// ParsePrice parses a decimal string like "12.5".
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Price{value: d}, nil
}

func (p Price) Decimal() decimal.Decimal { return p.value }
func (p Price) Equal(q Price) bool       { return p.value.Equal(q.value) }
func (p Price) IsZero() bool             { return p.value.IsZero() }
func (p Price) IsNegative() bool         { return p.value.IsNegative() }
func (p Price) Add(q Price) Price        { return Price{value: p.value.Add(q.value)} }
func (p Price) Sub(q Price) Price        { return Price{value: p.value.Sub(q.value)} }
func (p Price) Mul(quantity int) Price {
	return Price{value: p.value.Mul(decimal.NewFromInt(int64(quantity)))}
}
func (p Price) In(currency string) Money { return Money{value: p.value, cur: currency} }
func (p Price) InexactFloat64() float64  { return p.value.InexactFloat64() }
func (p Price) String() string           { return p.value.StringFixed(2) }
func (p Price) IsInteger() bool          { return p.value.IsInteger() }
func (p Price) IntPart() int64           { return p.value.IntPart() }

// MarshalJSON writes the price as a bare number.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.value.String()), nil
}

// UnmarshalJSON accepts bare and quoted numbers. null decodes to zero.
func (p *Price) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		p.value = decimal.Zero
		return nil
	}
	return p.value.UnmarshalJSON(b)
}
