package banking

import (
	"sync"

	"github.com/baltikpay/ledger-playground/internal/exchange"
	"github.com/baltikpay/ledger-playground/internal/iban"
)

// Ledger is the account registry facade. It owns every account, keyed by
// normalized IBAN, and guarantees one instance per key with a stable variant
// for its whole lifetime.
type Ledger struct {
	codec     *iban.Codec
	directory *Directory
	converter *exchange.Converter

	mu       sync.Mutex
	accounts map[string]Account
}

func NewLedger(codec *iban.Codec, directory *Directory, converter *exchange.Converter) *Ledger {
	return &Ledger{
		codec:     codec,
		directory: directory,
		converter: converter,
		accounts:  make(map[string]Account),
	}
}

func (l *Ledger) Directory() *Directory {
	return l.directory
}

func (l *Ledger) Converter() *exchange.Converter {
	return l.converter
}

// CurrentAccount returns the current account registered under the IBAN,
// creating it when the IBAN is unseen.
func (l *Ledger) CurrentAccount(raw string) (*CurrentAccount, error) {
	account, err := l.account(raw, KindCurrent)
	if err != nil {
		return nil, err
	}
	return account.(*CurrentAccount), nil
}

// SavingsAccount returns the savings account registered under the IBAN,
// creating it when the IBAN is unseen.
func (l *Ledger) SavingsAccount(raw string) (*SavingsAccount, error) {
	account, err := l.account(raw, KindSavings)
	if err != nil {
		return nil, err
	}
	return account.(*SavingsAccount), nil
}

// CreditAccount returns the credit account registered under the IBAN,
// creating it when the IBAN is unseen.
func (l *Ledger) CreditAccount(raw string) (*CreditAccount, error) {
	account, err := l.account(raw, KindCredit)
	if err != nil {
		return nil, err
	}
	return account.(*CreditAccount), nil
}

// Find returns the account already registered under the IBAN, of whatever
// variant.
func (l *Ledger) Find(raw string) (Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	account, ok := l.accounts[iban.Normalize(raw)]
	return account, ok
}

func (l *Ledger) account(raw string, kind Kind) (Account, error) {
	normalized := iban.Normalize(raw)

	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.accounts[normalized]; ok {
		if existing.Kind() != kind {
			return nil, &WrongAccountTypeError{Kind: existing.Kind()}
		}
		return existing, nil
	}

	parsed, err := l.codec.Parse(normalized)
	if err != nil {
		return nil, err
	}
	bank := l.directory.BankOrCreate(parsed.Country, parsed.BankCode)

	var account Account
	switch kind {
	case KindCurrent:
		account = newCurrentAccount(parsed, bank, l.converter)
	case KindSavings:
		account = newSavingsAccount(parsed, bank, l.converter)
	case KindCredit:
		account = newCreditAccount(parsed, bank, l.converter)
	}
	l.accounts[normalized] = account
	return account, nil
}
