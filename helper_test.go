package casefolio

import "github.com/etnz/casefolio/date"

// price is a helper for test to create a price pointer from a const.
func price(v float64) *Price {
	p := P(v)
	return &p
}

// tx is a helper for test to create a transaction.
func tx(on string, typ TxType, quantity int, pricePerCase float64) Transaction {
	return Transaction{
		Date:         date.MustParse(on),
		Type:         typ,
		Quantity:     quantity,
		PricePerCase: P(pricePerCase),
		Total:        P(pricePerCase).Mul(quantity),
	}
}
