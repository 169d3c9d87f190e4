// Package money provides currency-aware decimal amounts for the
// Transaction.Cloud API. Amounts are arbitrary-precision decimals
// (shopspring/decimal) tied to an ISO 4217 currency.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Currency is a resolved ISO 4217 currency code.
type Currency struct {
	code       string
	minorUnits int32
}

// ParseCurrency resolves an ISO 4217 code. Unknown codes fail.
func ParseCurrency(code string) (Currency, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Currency{}, fmt.Errorf("money: unknown currency code %q: %w", code, err)
	}

	scale, _ := currency.Standard.Rounding(unit)
	return Currency{
		code:       unit.String(),
		minorUnits: int32(scale),
	}, nil
}

// Code returns the ISO 4217 code, e.g. "USD".
func (c Currency) Code() string {
	return c.code
}

// MinorUnits returns the number of decimal digits of the currency's
// minor unit (2 for USD, 0 for JPY).
func (c Currency) MinorUnits() int32 {
	return c.minorUnits
}

// IsZero reports whether the currency is the zero value, i.e. not a
// resolved code.
func (c Currency) IsZero() bool {
	return c.code == ""
}

func (c Currency) String() string {
	return c.code
}

// Money is an immutable decimal amount in a specific currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New builds a Money from an already-parsed amount.
func New(amount decimal.Decimal, cur Currency) Money {
	return Money{amount: amount, currency: cur}
}

// Parse builds a Money from a decimal string such as "10.30".
func Parse(value string, cur Currency) (Money, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("money: invalid amount %q: %w", value, err)
	}
	return Money{amount: amount, currency: cur}, nil
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency the amount is denominated in.
func (m Money) Currency() Currency {
	return m.currency
}

// Equal reports whether two amounts have the same currency and the same
// numeric value ("10.3" equals "10.30").
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// StringFixed formats the amount with the currency's minor-unit
// precision, e.g. "10.30" for USD.
func (m Money) StringFixed() string {
	return m.amount.StringFixed(m.currency.minorUnits)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency.code)
}
