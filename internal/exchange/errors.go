package exchange

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// CurrencyError reports a currency code that does not resolve to a tracked
// currency.
type CurrencyError struct {
	Code string
}

func (e *CurrencyError) Error() string {
	return fmt.Sprintf("unknown currency: %s", e.Code)
}

func (e *CurrencyError) Unwrap() error {
	return ErrUnknownCurrency
}

// AmountError reports a malformed or negative monetary amount.
type AmountError struct {
	Value string
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("invalid amount: %s", e.Value)
}

func (e *AmountError) Unwrap() error {
	return ErrInvalidAmount
}
