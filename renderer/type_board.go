package renderer

import (
	"github.com/etnz/casefolio"
	"github.com/etnz/casefolio/date"
)

// Board is the view of the whole portfolio: totals and one card per investment.
// Amounts are already converted to Money so that templates only have to print
// them (String, SignedString).
type Board struct {
	Currency string `json:"currency"`
	// Totals of all investments.
	Totals Totals `json:"totals"`
	// Cards in list order.
	Cards []Card `json:"cards"`
}

// Totals are the aggregated figures shown above the cards.
type Totals struct {
	Invested   casefolio.Money `json:"invested"`
	Value      casefolio.Money `json:"value"`
	ProfitLoss casefolio.Money `json:"profitLoss"`
	Tone       casefolio.Tone  `json:"tone"`
}

// Card is a single investment. It has two faces, the summary (metrics) and the
// ledger (transactions).
type Card struct {
	// Position is the 1-based position in the list.
	Position   int                  `json:"position"`
	Name       string               `json:"name"`
	Image      string               `json:"image"`
	Release    string               `json:"release"` // release year or "N/A"
	DropStatus casefolio.DropStatus `json:"dropStatus"`

	Quantity      int             `json:"quantity"`
	PurchasePrice casefolio.Money `json:"purchasePrice"`
	Cost          casefolio.Money `json:"cost"`
	HasPrice      bool            `json:"hasPrice"`
	CurrentPrice  casefolio.Money `json:"currentPrice"`
	Value         casefolio.Money `json:"value"`

	ProfitLoss      casefolio.Money   `json:"profitLoss"`
	ProfitLossLabel string            `json:"profitLossLabel"` // "Profit", "Loss" or "Profit/Loss"
	ROI             casefolio.Percent `json:"roi"`
	Tone            casefolio.Tone    `json:"tone"`

	Ledger Ledger `json:"ledger"`
}

// Ledger is the back face of a card.
type Ledger struct {
	Rows       []LedgerRow     `json:"rows"`
	Bought     casefolio.Money `json:"bought"`
	Sold       casefolio.Money `json:"sold"`
	Scrollable bool            `json:"scrollable,omitempty"`
}

type LedgerRow struct {
	Placeholder bool             `json:"placeholder,omitempty"`
	Date        date.Date        `json:"date"`
	Type        casefolio.TxType `json:"type,omitempty"`
	Quantity    int              `json:"quantity,omitempty"`
	Bought      casefolio.Money  `json:"bought"`
	Sold        casefolio.Money  `json:"sold"`
}

// Catalog is the list of every trackable case, held or not.
type Catalog struct {
	Entries []CatalogEntry `json:"entries"`
}

type CatalogEntry struct {
	Name       string               `json:"name"`
	Released   string               `json:"released"` // human release date or "N/A"
	DropStatus casefolio.DropStatus `json:"dropStatus"`
	Price      casefolio.Money      `json:"price"`
	Held       bool                 `json:"held"`
}
