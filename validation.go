package casefolio

import (
	"errors"
	"fmt"
)

// Local validation errors. A request failing one of them is never sent.
var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrDuplicate         = errors.New("case is already in the portfolio")
	ErrOversell          = errors.New("cannot sell more than the held quantity")
	ErrUnknownInvestment = errors.New("no such investment")
	ErrUnknownField      = errors.New("field cannot be edited")
	ErrIndexOutOfRange   = errors.New("index out of range")
)

// Field is an editable investment field.
type Field string

const (
	FieldQuantity      Field = "quantity"
	FieldPurchasePrice Field = "purchase_price"
)

// ValidateAdd checks a new holding before it is sent to the backend.
func ValidateAdd(investments []Investment, name string, quantity int, price Price) error {
	if quantity < 1 {
		return fmt.Errorf("add %q: %w (got %d)", name, ErrInvalidQuantity, quantity)
	}
	if price.IsNegative() {
		return fmt.Errorf("add %q: %w (got %s)", name, ErrInvalidPrice, price)
	}
	if _, err := Index(investments, name); err == nil {
		return fmt.Errorf("add %q: %w", name, ErrDuplicate)
	}
	return nil
}

// ValidateTransaction checks a buy or sell on inv.
func ValidateTransaction(inv Investment, typ TxType, quantity int, price Price) error {
	if _, err := ParseTxType(string(typ)); err != nil {
		return err
	}
	if quantity < 1 {
		return fmt.Errorf("%s %q: %w (got %d)", typ, inv.ItemName, ErrInvalidQuantity, quantity)
	}
	if price.IsNegative() {
		return fmt.Errorf("%s %q: %w (got %s)", typ, inv.ItemName, ErrInvalidPrice, price)
	}
	if typ == Sell && quantity > inv.Quantity {
		return fmt.Errorf("sell %d %q: %w (%d held)", quantity, inv.ItemName, ErrOversell, inv.Quantity)
	}
	return nil
}

// ValidateEdit checks a direct field edit. Quantity must be a whole number of at
// least 1, the purchase price must not be negative.
func ValidateEdit(field Field, value Price) error {
	switch field {
	case FieldQuantity:
		if !value.IsInteger() || value.IntPart() < 1 {
			return fmt.Errorf("edit %s: %w (got %s)", field, ErrInvalidQuantity, value.Decimal())
		}
	case FieldPurchasePrice:
		if value.IsNegative() {
			return fmt.Errorf("edit %s: %w (got %s)", field, ErrInvalidPrice, value)
		}
	default:
		return fmt.Errorf("edit %q: %w", field, ErrUnknownField)
	}
	return nil
}
