package casefolio

import (
	"slices"

	"github.com/etnz/casefolio/date"
)

// MinLedgerRows is the minimum number of rows a ledger face displays.
const MinLedgerRows = 8

// LedgerRow is a single line of the ledger face of a card.
//
// Placeholder rows pad short ledgers and carry no value.
type LedgerRow struct {
	Placeholder bool
	Date        date.Date
	Type        TxType
	Quantity    int
	Bought      Price // notional when Type is Buy, 0 otherwise
	Sold        Price // notional when Type is Sell, 0 otherwise
}

// Ledger is the chronological view of an investment's transactions.
type Ledger struct {
	Rows       []LedgerRow
	Bought     Price // Σ buy notional
	Sold       Price // Σ sell notional
	Scrollable bool  // more transactions than MinLedgerRows
}

// NewLedger sorts the transactions by date (stable for equal dates), pads the
// result up to MinLedgerRows with leading placeholders and sums both columns.
//
// The input slice is not modified.
func NewLedger(transactions []Transaction) Ledger {
	sorted := slices.Clone(transactions)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})

	l := Ledger{Scrollable: len(sorted) > MinLedgerRows}
	for i := len(sorted); i < MinLedgerRows; i++ {
		l.Rows = append(l.Rows, LedgerRow{Placeholder: true})
	}
	for _, tx := range sorted {
		row := LedgerRow{Date: tx.Date, Type: tx.Type, Quantity: tx.Quantity}
		switch tx.Type {
		case Buy:
			row.Bought = tx.Notional()
			l.Bought = l.Bought.Add(row.Bought)
		case Sell:
			row.Sold = tx.Notional()
			l.Sold = l.Sold.Add(row.Sold)
		}
		l.Rows = append(l.Rows, row)
	}
	return l
}

// Transactions returns the number of real (non placeholder) rows.
func (l Ledger) Transactions() int {
	n := 0
	for _, r := range l.Rows {
		if !r.Placeholder {
			n++
		}
	}
	return n
}
