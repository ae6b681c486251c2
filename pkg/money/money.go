// Package money formats the API's decimal-string amounts for display.
//
// Amounts cross the wire as strings to preserve precision; formatting here
// is display-only and never feeds back into calculations.
package money

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// ErrInvalidAmount indicates the amount string is not a decimal number.
	ErrInvalidAmount = errors.New("money: invalid amount")

	// ErrUnknownCurrency indicates the currency code is not ISO 4217.
	ErrUnknownCurrency = errors.New("money: unknown currency")
)

// Option configures formatting.
type Option func(*formatter)

type formatter struct {
	tag language.Tag
}

// WithLanguage sets the locale used for digit grouping and symbol placement.
func WithLanguage(tag language.Tag) Option {
	return func(f *formatter) {
		f.tag = tag
	}
}

// Format renders a decimal-string amount with its currency symbol, e.g.
// Format("1234.50", "USD") -> "$1,234.50".
func Format(amount, currencyCode string, opts ...Option) (string, error) {
	f := &formatter{tag: language.AmericanEnglish}
	for _, opt := range opts {
		opt(f)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return "", errors.Join(ErrInvalidAmount, err)
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return "", errors.Join(ErrUnknownCurrency, err)
	}

	p := message.NewPrinter(f.tag)
	return p.Sprint(currency.Symbol(unit.Amount(value))), nil
}
