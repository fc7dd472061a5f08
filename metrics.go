package casefolio

import "github.com/shopspring/decimal"

// This file holds the derived figures of the board. None of them is persisted,
// they are recomputed on every render.

// HasPrice reports whether the current market price is known.
func (inv Investment) HasPrice() bool { return inv.LowestPrice != nil }

// CurrentPrice returns the market price, zero when unknown.
func (inv Investment) CurrentPrice() Price {
	if inv.LowestPrice == nil {
		return Price{}
	}
	return *inv.LowestPrice
}

// CostBasis returns quantity × purchase price.
func (inv Investment) CostBasis() Price { return inv.PurchasePrice.Mul(inv.Quantity) }

// MarketValue returns quantity × current price, zero when the price is unknown.
func (inv Investment) MarketValue() Price { return inv.CurrentPrice().Mul(inv.Quantity) }

// ProfitLoss returns quantity × (current price − purchase price), zero when
// the price is unknown.
func (inv Investment) ProfitLoss() Price {
	if !inv.HasPrice() {
		return Price{}
	}
	return inv.LowestPrice.Sub(inv.PurchasePrice).Mul(inv.Quantity)
}

// ROI returns (current − purchase) / purchase in percent. It is 0 when the price
// is unknown or the purchase price is zero.
func (inv Investment) ROI() Percent {
	if !inv.HasPrice() || inv.PurchasePrice.IsZero() {
		return 0
	}
	ratio := inv.LowestPrice.Sub(inv.PurchasePrice).Decimal().
		DivRound(inv.PurchasePrice.Decimal(), 8).
		Mul(decimal.NewFromInt(100))
	return Percent(ratio.InexactFloat64())
}

// Totals are the aggregated figures of a list of investments.
type Totals struct {
	Invested   Price // Σ quantity × purchase price
	Value      Price // Σ quantity × current price, unknown prices count as 0
	ProfitLoss Price // Value − Invested
}

// ComputeTotals sums the investments.
func ComputeTotals(investments []Investment) Totals {
	var t Totals
	for _, inv := range investments {
		t.Invested = t.Invested.Add(inv.CostBasis())
		t.Value = t.Value.Add(inv.MarketValue())
	}
	t.ProfitLoss = t.Value.Sub(t.Invested)
	return t
}
