package banking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baltikpay/ledger-playground/internal/exchange"
)

func TestCurrentAccountCashFlow(t *testing.T) {
	ledger := newTestLedger(t)

	a1, err := ledger.CurrentAccount("LT337300010077211111")
	require.NoError(t, err)

	requireBalance(t, "0.00", a1.Balance("EUR"))

	require.NoError(t, a1.Credit(dec(t, "1000"), "EUR"))
	requireBalance(t, "1000.00", a1.Balance("EUR"))

	all, err := a1.BalanceAll("USD")
	require.NoError(t, err)
	requireBalance(t, "1116.30", all)

	require.NoError(t, a1.Credit(dec(t, "11.11"), "HUF"))
	requireBalance(t, "11.11", a1.Balance("HUF"))

	all, err = a1.BalanceAll("EUR")
	require.NoError(t, err)
	requireBalance(t, "1000.04", all)

	require.NoError(t, a1.Debit(dec(t, "500"), "EUR"))
	requireBalance(t, "500.00", a1.Balance("EUR"))

	balances := a1.Balances()
	requireBalance(t, "500.00", balances["EUR"])
	requireBalance(t, "11.11", balances["HUF"])
}

func TestCurrentAccountDebitRules(t *testing.T) {
	ledger := newTestLedger(t)

	a1, err := ledger.CurrentAccount("LT337300010077211111")
	require.NoError(t, err)

	// Nothing stored yet.
	require.ErrorIs(t, a1.Debit(dec(t, "1.00"), "EUR"), ErrNoFunds)

	require.NoError(t, a1.Credit(dec(t, "5"), "EUR"))

	// A positive balance admits an overdraft past zero.
	require.NoError(t, a1.Debit(dec(t, "10"), "EUR"))
	requireBalance(t, "-5.00", a1.Balance("EUR"))

	// A non-positive balance does not.
	require.ErrorIs(t, a1.Debit(dec(t, "1"), "EUR"), ErrNoFunds)

	// Amount validation runs before the funds check.
	err = a1.Debit(dec(t, "-1"), "EUR")
	require.ErrorIs(t, err, exchange.ErrInvalidAmount)
	err = a1.Credit(dec(t, "1.001"), "EUR")
	require.ErrorIs(t, err, exchange.ErrInvalidAmount)
	requireBalance(t, "-5.00", a1.Balance("EUR"))
}

func TestCurrentAccountLargeAmounts(t *testing.T) {
	ledger := newTestLedger(t)

	a1, err := ledger.CurrentAccount("LT337044010077211111")
	require.NoError(t, err)

	require.NoError(t, a1.Credit(dec(t, "1000000"), "RUB"))

	all, err := a1.BalanceAll("EUR")
	require.NoError(t, err)
	requireBalance(t, "11610.00", all)

	all, err = a1.BalanceAll("USD")
	require.NoError(t, err)
	requireBalance(t, "12960.24", all)
}

func TestSavingsAccountNeverDebits(t *testing.T) {
	ledger := newTestLedger(t)

	a1, err := ledger.SavingsAccount("LT337300010077222112")
	require.NoError(t, err)

	require.NoError(t, a1.Credit(dec(t, "10"), "USD"))

	require.ErrorIs(t, a1.Debit(dec(t, "1"), "USD"), ErrAccountAction)
	requireBalance(t, "10.00", a1.Balance("USD"))

	// Invalid amounts are still rejected as such.
	require.ErrorIs(t, a1.Debit(dec(t, "-1"), "USD"), exchange.ErrInvalidAmount)

	// In-account conversion bypasses the debit restriction.
	require.NoError(t, a1.Convert(dec(t, "1"), "USD", "NOK"))
	requireBalance(t, "9.00", a1.Balance("USD"))
	requireBalance(t, "8.60", a1.Balance("NOK"))

	all, err := a1.BalanceAll("USD")
	require.NoError(t, err)
	requireBalance(t, "10.00", all)

	all, err = a1.BalanceAll("EUR")
	require.NoError(t, err)
	requireBalance(t, "8.97", all)

	// A transfer out needs a debit, so it fails the same way.
	a2, err := ledger.CurrentAccount("LT337300010077211111")
	require.NoError(t, err)
	require.ErrorIs(t, a1.Transfer(dec(t, "1"), "USD", a2), ErrAccountAction)
	requireBalance(t, "9.00", a1.Balance("USD"))
	requireBalance(t, "0.00", a2.Balance("USD"))
}

func TestCreditAccountSingleDeposit(t *testing.T) {
	ledger := newTestLedger(t)

	a1, err := ledger.CreditAccount("LT337300010077211113")
	require.NoError(t, err)

	// Rejected amounts do not consume the one allowed deposit.
	require.ErrorIs(t, a1.Credit(dec(t, "-5"), "EUR"), exchange.ErrInvalidAmount)

	require.NoError(t, a1.Credit(dec(t, "1000"), "EUR"))
	require.ErrorIs(t, a1.Credit(dec(t, "1"), "EUR"), ErrAccountAction)
	require.ErrorIs(t, a1.Credit(dec(t, "1"), "USD"), ErrAccountAction)
	requireBalance(t, "1000.00", a1.Balance("EUR"))

	require.NoError(t, a1.Convert(dec(t, "15"), "EUR", "USD"))
	requireBalance(t, "985.00", a1.Balance("EUR"))
	requireBalance(t, "16.74", a1.Balance("USD"))

	require.NoError(t, a1.Debit(dec(t, "2"), "EUR"))
	require.NoError(t, a1.Debit(dec(t, "1"), "USD"))

	all, err := a1.BalanceAll("USD")
	require.NoError(t, err)
	requireBalance(t, "1113.06", all)
}

func TestConvertChecksFundsFirst(t *testing.T) {
	ledger := newTestLedger(t)

	a1, err := ledger.CurrentAccount("LT337300010077211111")
	require.NoError(t, err)
	require.NoError(t, a1.Credit(dec(t, "10"), "EUR"))

	// Insufficient funds win over an unknown target currency.
	require.ErrorIs(t, a1.Convert(dec(t, "20"), "EUR", "EWR"), ErrNoFunds)

	// An empty source balance wins over an unknown source currency.
	require.ErrorIs(t, a1.Convert(dec(t, "1"), "ABC", "EUR"), ErrNoFunds)

	// With funds in place, currency validation applies.
	err = a1.Convert(dec(t, "5"), "EUR", "EWR")
	require.ErrorIs(t, err, exchange.ErrUnknownCurrency)
	requireBalance(t, "10.00", a1.Balance("EUR"))
}

func TestTransferBetweenAccounts(t *testing.T) {
	ledger := newTestLedger(t)

	a1, err := ledger.CurrentAccount("LT337300010077211111")
	require.NoError(t, err)
	a2, err := ledger.CurrentAccount("FI1212345612345678")
	require.NoError(t, err)

	require.NoError(t, a1.Credit(dec(t, "50"), "EUR"))
	require.NoError(t, a1.Transfer(dec(t, "20"), "EUR", a2))
	requireBalance(t, "30.00", a1.Balance("EUR"))
	requireBalance(t, "20.00", a2.Balance("EUR"))

	// Without funds the debit fails and the target is untouched.
	require.ErrorIs(t, a1.Transfer(dec(t, "5"), "USD", a2), ErrNoFunds)
	requireBalance(t, "0.00", a2.Balance("USD"))

	require.ErrorIs(t, a1.Transfer(dec(t, "-1"), "EUR", a2), exchange.ErrInvalidAmount)
}

func TestTransferHasNoRollback(t *testing.T) {
	ledger := newTestLedger(t)

	a1, err := ledger.CurrentAccount("LT337300010077211111")
	require.NoError(t, err)
	a2, err := ledger.CreditAccount("LT337300010077211113")
	require.NoError(t, err)

	require.NoError(t, a1.Credit(dec(t, "50"), "EUR"))
	require.NoError(t, a2.Credit(dec(t, "100"), "EUR"))

	// The target can no longer be credited; the source debit stays applied.
	err = a1.Transfer(dec(t, "1"), "EUR", a2)
	require.ErrorIs(t, err, ErrAccountAction)
	requireBalance(t, "49.00", a1.Balance("EUR"))
	requireBalance(t, "100.00", a2.Balance("EUR"))
}
