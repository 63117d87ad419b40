package banking

import (
	"errors"
	"fmt"
)

var (
	ErrBankNotFound     = errors.New("bank not found")
	ErrWrongAccountType = errors.New("wrong account type")

	// ErrNoFunds means a debit or conversion was requested against a
	// non-positive or insufficient balance.
	ErrNoFunds = errors.New("no funds")

	// ErrAccountAction means the operation is forbidden by the account
	// variant: a savings debit, or a second credit-account credit.
	ErrAccountAction = errors.New("account action forbidden")
)

// BankNotFoundError reports a (country, code) pair absent from the directory.
type BankNotFoundError struct {
	Country string
	Code    int
}

func (e *BankNotFoundError) Error() string {
	return fmt.Sprintf("Bank (%s-%d) was not found.", e.Country, e.Code)
}

func (e *BankNotFoundError) Unwrap() error {
	return ErrBankNotFound
}

// WrongAccountTypeError reports an IBAN already registered under a different
// account variant than requested.
type WrongAccountTypeError struct {
	Kind Kind
}

func (e *WrongAccountTypeError) Error() string {
	return fmt.Sprintf("Account type was %s", e.Kind)
}

func (e *WrongAccountTypeError) Unwrap() error {
	return ErrWrongAccountType
}
