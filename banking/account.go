package banking

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/baltikpay/ledger-playground/internal/exchange"
	"github.com/baltikpay/ledger-playground/internal/iban"
)

// Kind names an account variant. The set is closed: an account's kind never
// changes after creation.
type Kind string

const (
	KindCurrent Kind = "CurrentAccount"
	KindSavings Kind = "SavingsAccount"
	KindCredit  Kind = "CreditAccount"
)

// Account is the capability surface shared by all variants. Which mutations
// are legal depends on the variant; balance reads, in-account conversion and
// the string identity are common behavior.
//
// Accounts are not safe for concurrent mutation; callers serialize operations
// against a single account.
type Account interface {
	IBAN() iban.IBAN
	Bank() *Bank
	Kind() Kind
	Number() *big.Int

	Balance(code string) decimal.Decimal
	BalanceAll(code string) (decimal.Decimal, error)
	Balances() map[string]decimal.Decimal
	Credit(amount decimal.Decimal, code string) error
	Debit(amount decimal.Decimal, code string) error
	Transfer(amount decimal.Decimal, code string, to Account) error
	Convert(amount decimal.Decimal, from, to string) error

	String() string
}

// base is the state composed into every variant: the owning IBAN, the bank
// reference and the per-currency balance map.
type base struct {
	iban      iban.IBAN
	bank      *Bank
	converter *exchange.Converter
	funds     map[string]decimal.Decimal
}

func newBase(id iban.IBAN, bank *Bank, converter *exchange.Converter) *base {
	return &base{
		iban:      id,
		bank:      bank,
		converter: converter,
		funds:     make(map[string]decimal.Decimal),
	}
}

func (b *base) IBAN() iban.IBAN {
	return b.iban
}

func (b *base) Bank() *Bank {
	return b.bank
}

func (b *base) Number() *big.Int {
	return b.iban.Number
}

func (b *base) String() string {
	return b.iban.Raw
}

// Balance returns the stored balance for one currency, zero when absent,
// rounded to 2 decimal places.
func (b *base) Balance(code string) decimal.Decimal {
	return b.funds[code].Round(2)
}

// BalanceAll sums every stored balance converted into code.
func (b *base) BalanceAll(code string) (decimal.Decimal, error) {
	total := decimal.Zero
	for stored, amount := range b.funds {
		converted, err := b.converter.ConvertAmount(amount, stored, code)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total = total.Add(converted)
	}
	return total.Round(2), nil
}

// Balances returns an independent snapshot of every stored balance, rounded
// to 2 decimal places.
func (b *base) Balances() map[string]decimal.Decimal {
	snapshot := make(map[string]decimal.Decimal, len(b.funds))
	for code, amount := range b.funds {
		snapshot[code] = amount.Round(2)
	}
	return snapshot
}

// setBalance overwrites one currency balance unconditionally. Variant
// implementations only.
func (b *base) setBalance(amount decimal.Decimal, code string) {
	b.funds[code] = amount
}

// Convert moves amount between two currencies inside this account. The
// balance writes are direct and bypass the variant's credit/debit rules.
func (b *base) Convert(amount decimal.Decimal, from, to string) error {
	balanceFrom := b.Balance(from)
	if balanceFrom.Sign() <= 0 || balanceFrom.LessThan(amount) {
		return ErrNoFunds
	}
	converted, err := b.converter.ConvertAmount(amount, from, to)
	if err != nil {
		return err
	}
	b.setBalance(balanceFrom.Sub(amount), from)
	b.setBalance(b.Balance(to).Add(converted), to)
	return nil
}

// credit is the unrestricted deposit shared by Current and Savings.
func (b *base) credit(amount decimal.Decimal, code string) error {
	if err := exchange.ValidateAmount(amount); err != nil {
		return err
	}
	b.setBalance(b.Balance(code).Add(amount), code)
	return nil
}

// debit is the funds-checked withdrawal shared by Current and Credit. It
// fails only when the balance is non-positive; an overdraft past zero is the
// caller's risk.
func (b *base) debit(amount decimal.Decimal, code string) error {
	if err := exchange.ValidateAmount(amount); err != nil {
		return err
	}
	balance := b.Balance(code)
	if balance.Sign() <= 0 {
		return ErrNoFunds
	}
	b.setBalance(balance.Sub(amount), code)
	return nil
}

// transfer debits the source through its own variant rules, then credits the
// target. A successful debit stays applied even if the target's credit fails;
// there is no rollback.
func transfer(from Account, amount decimal.Decimal, code string, to Account) error {
	if err := exchange.ValidateAmount(amount); err != nil {
		return err
	}
	if err := from.Debit(amount, code); err != nil {
		return err
	}
	return to.Credit(amount, code)
}

// CurrentAccount permits any credit or debit while funds last.
type CurrentAccount struct {
	*base
}

func newCurrentAccount(id iban.IBAN, bank *Bank, converter *exchange.Converter) *CurrentAccount {
	return &CurrentAccount{base: newBase(id, bank, converter)}
}

func (a *CurrentAccount) Kind() Kind {
	return KindCurrent
}

func (a *CurrentAccount) Credit(amount decimal.Decimal, code string) error {
	return a.credit(amount, code)
}

func (a *CurrentAccount) Debit(amount decimal.Decimal, code string) error {
	return a.debit(amount, code)
}

func (a *CurrentAccount) Transfer(amount decimal.Decimal, code string, to Account) error {
	return transfer(a, amount, code, to)
}

// SavingsAccount accepts deposits but can never be debited, directly or via
// transfer.
type SavingsAccount struct {
	*base
}

func newSavingsAccount(id iban.IBAN, bank *Bank, converter *exchange.Converter) *SavingsAccount {
	return &SavingsAccount{base: newBase(id, bank, converter)}
}

func (a *SavingsAccount) Kind() Kind {
	return KindSavings
}

func (a *SavingsAccount) Credit(amount decimal.Decimal, code string) error {
	return a.credit(amount, code)
}

func (a *SavingsAccount) Debit(amount decimal.Decimal, code string) error {
	if err := exchange.ValidateAmount(amount); err != nil {
		return err
	}
	return ErrAccountAction
}

func (a *SavingsAccount) Transfer(amount decimal.Decimal, code string, to Account) error {
	return transfer(a, amount, code, to)
}

// CreditAccount can be credited exactly once in its lifetime; debits follow
// the Current rules.
type CreditAccount struct {
	*base
	credited bool
}

func newCreditAccount(id iban.IBAN, bank *Bank, converter *exchange.Converter) *CreditAccount {
	return &CreditAccount{base: newBase(id, bank, converter)}
}

func (a *CreditAccount) Kind() Kind {
	return KindCredit
}

func (a *CreditAccount) Credit(amount decimal.Decimal, code string) error {
	if err := exchange.ValidateAmount(amount); err != nil {
		return err
	}
	if a.credited {
		return ErrAccountAction
	}
	a.credited = true
	a.setBalance(a.Balance(code).Add(amount), code)
	return nil
}

func (a *CreditAccount) Debit(amount decimal.Decimal, code string) error {
	return a.debit(amount, code)
}

func (a *CreditAccount) Transfer(amount decimal.Decimal, code string, to Account) error {
	return transfer(a, amount, code, to)
}
