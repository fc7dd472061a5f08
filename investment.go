package casefolio

import (
	"fmt"

	"github.com/etnz/casefolio/date"
)

// TxType is the side of a ledger transaction.
type TxType string

const (
	Buy  TxType = "buy"
	Sell TxType = "sell"
)

// ParseTxType parses "buy" or "sell".
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case Buy, Sell:
		return TxType(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q, want %q or %q", s, Buy, Sell)
}

// Transaction is one ledger entry of an investment.
type Transaction struct {
	Date         date.Date `json:"date"`
	Type         TxType    `json:"type"`
	Quantity     int       `json:"quantity"`
	PricePerCase Price     `json:"price_per_case"`
	Total        Price     `json:"total"`
}

// Notional returns quantity × price per case.
func (t Transaction) Notional() Price { return t.PricePerCase.Mul(t.Quantity) }

// Investment is a holding of a single case, as stored by the backend.
//
// Fields the presenter does not use are still decoded so that sending the
// list back (reorder) does not lose them.
type Investment struct {
	ItemName       string        `json:"item_name"`
	Quantity       int           `json:"quantity"`
	PurchasePrice  Price         `json:"purchase_price"`
	PurchaseDate   string        `json:"purchase_date,omitempty"`
	LowestPrice    *Price        `json:"lowest_price"`
	LastUpdated    string        `json:"last_updated"`
	Transactions   []Transaction `json:"transactions"`
	TotalSoldValue Price         `json:"total_sold_value"`
}

// normalize fills the defaults the backend applies when loading old records.
func (inv *Investment) normalize() {
	if inv.Transactions == nil {
		inv.Transactions = []Transaction{}
	}
}

// Index returns the position of the investment named name.
func Index(investments []Investment, name string) (int, error) {
	for i, inv := range investments {
		if inv.ItemName == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownInvestment, name)
}

// Names returns the item names in list order.
func Names(investments []Investment) []string {
	names := make([]string, 0, len(investments))
	for _, inv := range investments {
		names = append(names, inv.ItemName)
	}
	return names
}

// cloneInvestments returns a deep copy so callers never share transaction slices.
func cloneInvestments(investments []Investment) []Investment {
	out := make([]Investment, len(investments))
	for i, inv := range investments {
		if inv.LowestPrice != nil {
			p := *inv.LowestPrice
			inv.LowestPrice = &p
		}
		inv.Transactions = append([]Transaction{}, inv.Transactions...)
		out[i] = inv
	}
	return out
}
