// Package exchange converts monetary amounts between currencies through a
// single base-currency pivot. Rates are loaded once and immutable; there is
// no direct cross-rate table.
package exchange

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// BaseCurrency is the pivot for all conversions.
const BaseCurrency = "EUR"

// amountPattern accepts non-negative decimal numbers, optionally without an
// integer part ("0.5", ".5", "100").
var amountPattern = regexp.MustCompile(`^\d*\.?\d+$`)

// Converter holds the two rate tables keyed by currency code. Zero value is
// not usable; build one with NewConverter.
type Converter struct {
	ratesTo   map[string]decimal.Decimal
	ratesFrom map[string]decimal.Decimal
}

// NewConverter builds a converter from [code, rateToBase, rateFromBase] rows.
// Rows whose code does not resolve to an ISO 4217 currency are skipped;
// unparseable rate text is an error.
func NewConverter(rows [][]string) (*Converter, error) {
	c := &Converter{
		ratesTo:   make(map[string]decimal.Decimal, len(rows)),
		ratesFrom: make(map[string]decimal.Decimal, len(rows)),
	}
	for _, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("rate row needs 3 fields, got %d", len(row))
		}
		code, err := resolveCurrency(row[0])
		if err != nil {
			continue
		}
		rateTo, err := decimal.NewFromString(row[1])
		if err != nil {
			return nil, fmt.Errorf("rate to base for %s: %w", code, err)
		}
		rateFrom, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, fmt.Errorf("rate from base for %s: %w", code, err)
		}
		c.ratesTo[code] = rateTo
		c.ratesFrom[code] = rateFrom
	}
	return c, nil
}

// resolveCurrency maps raw input to a canonical ISO 4217 code.
func resolveCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", err
	}
	return unit.String(), nil
}

func (c *Converter) Base() string {
	return BaseCurrency
}

// RateToBase returns the rate multiplying an amount in the given currency
// into the base currency.
func (c *Converter) RateToBase(code string) (decimal.Decimal, error) {
	if err := c.validateCurrency(code); err != nil {
		return decimal.Decimal{}, err
	}
	return c.ratesTo[code], nil
}

// RateFromBase returns the rate multiplying a base-currency amount into the
// given currency.
func (c *Converter) RateFromBase(code string) (decimal.Decimal, error) {
	if err := c.validateCurrency(code); err != nil {
		return decimal.Decimal{}, err
	}
	if _, ok := c.ratesFrom[code]; !ok {
		return decimal.Decimal{}, &CurrencyError{Code: code}
	}
	return c.ratesFrom[code], nil
}

// ToBase converts a textual amount in the given currency to the base
// currency, rounded to 2 decimal places.
func (c *Converter) ToBase(amount, code string) (decimal.Decimal, error) {
	value, err := ParseAmount(amount)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rate, err := c.RateToBase(code)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return value.Mul(rate).Round(2), nil
}

// FromBase converts a textual base-currency amount to the given currency,
// rounded to 2 decimal places.
func (c *Converter) FromBase(amount, code string) (decimal.Decimal, error) {
	value, err := ParseAmount(amount)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rate, err := c.RateFromBase(code)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return value.Mul(rate).Round(2), nil
}

// Convert converts a textual amount between two currencies, pivoting through
// the base currency. A same-currency conversion returns the amount as given.
func (c *Converter) Convert(amount, from, to string) (decimal.Decimal, error) {
	value, err := ParseAmount(amount)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return c.ConvertAmount(value, from, to)
}

// ConvertAmount is Convert for already-parsed amounts. A same-currency
// conversion returns value verbatim, without rescaling.
func (c *Converter) ConvertAmount(value decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if err := ValidateAmount(value); err != nil {
		return decimal.Decimal{}, err
	}
	if err := c.validateCurrency(from); err != nil {
		return decimal.Decimal{}, err
	}
	if err := c.validateCurrency(to); err != nil {
		return decimal.Decimal{}, err
	}
	if from == to {
		return value, nil
	}
	return value.Mul(c.ratesTo[from]).Mul(c.ratesFrom[to]).Round(2), nil
}

// Currencies returns the sorted codes present in the rate-from-base table.
func (c *Converter) Currencies() []string {
	codes := make([]string, 0, len(c.ratesFrom))
	for code := range c.ratesFrom {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (c *Converter) validateCurrency(code string) error {
	if _, err := currency.ParseISO(code); err != nil {
		return &CurrencyError{Code: code}
	}
	if _, ok := c.ratesTo[code]; !ok {
		return &CurrencyError{Code: code}
	}
	return nil
}

// ValidateAmount rejects negative amounts and amounts with more than 2
// fractional digits.
func ValidateAmount(value decimal.Decimal) error {
	if value.Exponent() < -2 || value.Sign() < 0 {
		return &AmountError{Value: value.String()}
	}
	return nil
}

// ParseAmount parses a textual amount, enforcing the non-negative
// two-decimal shape.
func ParseAmount(amount string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(amount) {
		return decimal.Decimal{}, &AmountError{Value: amount}
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, &AmountError{Value: amount}
	}
	if err := ValidateAmount(value); err != nil {
		return decimal.Decimal{}, err
	}
	return value, nil
}
