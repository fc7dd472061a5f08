package renderer

import (
	"strconv"

	"github.com/etnz/casefolio"
)

// NewBoard creates the board view of a state. Every figure is recomputed from
// the investments, nothing is cached between two renders.
func NewBoard(s *casefolio.State, currency string) *Board {
	t := casefolio.ComputeTotals(s.Investments)
	b := &Board{
		Currency: currency,
		Totals: Totals{
			Invested:   t.Invested.In(currency),
			Value:      t.Value.In(currency),
			ProfitLoss: t.ProfitLoss.In(currency),
			Tone:       t.ProfitLoss.In(currency).Tone(),
		},
		Cards: make([]Card, 0, len(s.Investments)),
	}
	for i, inv := range s.Investments {
		b.Cards = append(b.Cards, NewCard(i+1, inv, s.Catalog, currency))
	}
	return b
}

// NewCard creates both faces of the card of inv at the given 1-based position.
func NewCard(position int, inv casefolio.Investment, catalog casefolio.Catalog, currency string) Card {
	pl := inv.ProfitLoss().In(currency)
	c := Card{
		Position:        position,
		Name:            inv.ItemName,
		Image:           casefolio.ImagePath(inv.ItemName),
		Release:         "N/A",
		DropStatus:      casefolio.DropStatusOf(inv.ItemName),
		Quantity:        inv.Quantity,
		PurchasePrice:   inv.PurchasePrice.In(currency),
		Cost:            inv.CostBasis().In(currency),
		HasPrice:        inv.HasPrice(),
		CurrentPrice:    inv.CurrentPrice().In(currency),
		Value:           inv.MarketValue().In(currency),
		ProfitLoss:      pl,
		ProfitLossLabel: profitLossLabel(pl),
		ROI:             inv.ROI(),
		Tone:            pl.Tone(),
		Ledger:          newLedger(inv.Transactions, currency),
	}
	if y, ok := catalog.ReleaseYear(inv.ItemName); ok {
		c.Release = strconv.Itoa(y)
	}
	return c
}

func profitLossLabel(pl casefolio.Money) string {
	switch pl.Tone() {
	case casefolio.Gain:
		return "Profit"
	case casefolio.Loss:
		return "Loss"
	default:
		return "Profit/Loss"
	}
}

func newLedger(transactions []casefolio.Transaction, currency string) Ledger {
	l := casefolio.NewLedger(transactions)
	v := Ledger{
		Rows:       make([]LedgerRow, 0, len(l.Rows)),
		Bought:     l.Bought.In(currency),
		Sold:       l.Sold.In(currency),
		Scrollable: l.Scrollable,
	}
	for _, r := range l.Rows {
		if r.Placeholder {
			v.Rows = append(v.Rows, LedgerRow{Placeholder: true})
			continue
		}
		v.Rows = append(v.Rows, LedgerRow{
			Date:     r.Date,
			Type:     r.Type,
			Quantity: r.Quantity,
			Bought:   r.Bought.In(currency),
			Sold:     r.Sold.In(currency),
		})
	}
	return v
}

// NewCatalog lists every case of the catalog with its latest price, in catalog
// order.
func NewCatalog(s *casefolio.State, currency string) *Catalog {
	c := &Catalog{Entries: make([]CatalogEntry, 0, len(s.CaseNames))}
	for _, name := range s.CaseNames {
		c.Entries = append(c.Entries, CatalogEntry{
			Name:       name,
			Released:   s.ReleaseDate(name),
			DropStatus: casefolio.DropStatusOf(name),
			Price:      s.PriceOf(name).In(currency),
			Held:       s.Held(name),
		})
	}
	return c
}
