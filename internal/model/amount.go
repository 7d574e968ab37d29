package model

import (
	"github.com/shopspring/decimal"
)

type Currency string

const EUR Currency = "EUR"

// DefaultCurrency is the only currency accounts are held in.
const DefaultCurrency = EUR

// AmountScale is the number of decimal places an amount may carry.
const AmountScale = 2

func ParseCurrency(s string) (Currency, error) {
	if Currency(s) != EUR {
		return "", ErrUnsupportedCurrency
	}
	return EUR, nil
}

// Amount is a non-negative sum of money.
type Amount struct {
	value    decimal.Decimal
	currency Currency
}

func NewAmount(value decimal.Decimal, currency Currency) (Amount, error) {
	if _, err := ParseCurrency(string(currency)); err != nil {
		return Amount{}, err
	}
	if value.IsNegative() {
		return Amount{}, ErrNegativeAmount
	}
	if !HasScale(value, AmountScale) {
		return Amount{}, ErrTooManyDecimals
	}
	return Amount{value: value, currency: currency}, nil
}

// HasScale reports whether value has no significant digits beyond places
// decimals. Trailing zeros do not count, so 1.500 has scale 2.
func HasScale(value decimal.Decimal, places int32) bool {
	return value.Equal(value.Truncate(places))
}

// EuroAmount is NewAmount in EUR.
func EuroAmount(value decimal.Decimal) (Amount, error) {
	return NewAmount(value, EUR)
}

// RestoreAmount rebuilds an amount read from storage without validation.
func RestoreAmount(value decimal.Decimal, currency Currency) Amount {
	return Amount{value: value, currency: currency}
}

// ZeroAmount returns 0 in the given currency.
func ZeroAmount(currency Currency) Amount {
	return Amount{value: decimal.Zero, currency: currency}
}

func (a Amount) Value() decimal.Decimal { return a.value }

func (a Amount) Currency() Currency {
	if a.currency == "" {
		return DefaultCurrency
	}
	return a.currency
}

func (a Amount) IsZero() bool { return a.value.IsZero() }

func (a Amount) IsPositive() bool { return a.value.IsPositive() }

func (a Amount) Add(other Amount) (Amount, error) {
	if a.Currency() != other.Currency() {
		return Amount{}, ErrCurrencyMismatch
	}
	return Amount{value: a.value.Add(other.value), currency: a.Currency()}, nil
}

// Sub fails with ErrInsufficientBalance when other exceeds a.
func (a Amount) Sub(other Amount) (Amount, error) {
	if a.Currency() != other.Currency() {
		return Amount{}, ErrCurrencyMismatch
	}
	if a.value.LessThan(other.value) {
		return Amount{}, ErrInsufficientBalance
	}
	return Amount{value: a.value.Sub(other.value), currency: a.Currency()}, nil
}

func (a Amount) LessThan(other Amount) bool { return a.value.LessThan(other.value) }

func (a Amount) Equal(other Amount) bool {
	return a.Currency() == other.Currency() && a.value.Equal(other.value)
}

// String renders the amount with two decimals, e.g. "10.50 EUR".
func (a Amount) String() string {
	return a.value.StringFixed(2) + " " + string(a.Currency())
}
