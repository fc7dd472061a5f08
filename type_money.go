package casefolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency prices are quoted in when none is configured.
const DefaultCurrency = "USD"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, rounded to the
// currency fraction, like "$1,234.50" or "-$17.00".
func (m Money) String() string {
	cur := m.currency()
	if cur.Template == "" {
		// unknown currency code, go-money has no formatter for it.
		return m.value.StringFixed(2)
	}
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Equal reports whether m and n have the same value and currency.
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// Tone classifies the sign of m for display coloring.
func (m Money) Tone() Tone {
	switch {
	case m.value.IsPositive():
		return Gain
	case m.value.IsNegative():
		return Loss
	default:
		return Neutral
	}
}

// Tone is the display polarity of an amount.
type Tone string

const (
	Gain    Tone = "gain"
	Loss    Tone = "loss"
	Neutral Tone = "neutral"
)
