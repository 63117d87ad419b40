package banking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baltikpay/ledger-playground/internal/exchange"
	"github.com/baltikpay/ledger-playground/internal/iban"
)

// API is the HTTP surface over the ledger.
type API struct {
	ledger *Ledger
}

func NewAPI(ledger *Ledger) *API {
	return &API{
		ledger: ledger,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", a.openAccount)
		r.Route("/{iban}", func(r chi.Router) {
			r.Get("/", a.getAccount)
			r.Get("/balance", a.getBalance)
			r.Post("/credit", a.credit)
			r.Post("/debit", a.debit)
			r.Post("/transfer", a.transfer)
			r.Post("/convert", a.convert)
		})
	})
	r.Get("/banks", a.getBanks)
	r.Get("/currencies", a.getCurrencies)
	r.Get("/convert", a.convertAmount)
}

type openAccountRequest struct {
	IBAN string `json:"iban"`
	Type string `json:"type"`
}

type accountResponse struct {
	IBAN     string            `json:"iban"`
	Type     string            `json:"type"`
	Bank     string            `json:"bank"`
	Balances map[string]string `json:"balances"`
}

type amountRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	// To is the target IBAN for transfers.
	To string `json:"to,omitempty"`
	// From/ToCurrency drive in-account conversion.
	From       string `json:"from,omitempty"`
	ToCurrency string `json:"to_currency,omitempty"`
}

func newAccountResponse(account Account) accountResponse {
	balances := make(map[string]string)
	for code, amount := range account.Balances() {
		balances[code] = amount.StringFixed(2)
	}
	return accountResponse{
		IBAN:     account.String(),
		Type:     string(account.Kind()),
		Bank:     account.Bank().String(),
		Balances: balances,
	}
}

func (a *API) openAccount(w http.ResponseWriter, r *http.Request) {
	open := openAccountRequest{}
	if err := json.NewDecoder(r.Body).Decode(&open); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		account Account
		err     error
	)
	switch strings.ToLower(open.Type) {
	case "", "current":
		account, err = a.ledger.CurrentAccount(open.IBAN)
	case "savings":
		account, err = a.ledger.SavingsAccount(open.IBAN)
	case "credit":
		account, err = a.ledger.CreditAccount(open.IBAN)
	default:
		http.Error(w, "unknown account type: "+open.Type, http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newAccountResponse(account))
}

func (a *API) getAccount(w http.ResponseWriter, r *http.Request) {
	account, ok := a.ledger.Find(chi.URLParam(r, "iban"))
	if !ok {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newAccountResponse(account))
}

func (a *API) getBalance(w http.ResponseWriter, r *http.Request) {
	account, ok := a.ledger.Find(chi.URLParam(r, "iban"))
	if !ok {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	code := r.URL.Query().Get("currency")
	if code == "" {
		code = a.ledger.Converter().Base()
	}

	balance := account.Balance(code)
	if r.URL.Query().Get("all") == "true" {
		var err error
		balance, err = account.BalanceAll(code)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"currency": code,
		"balance":  balance.StringFixed(2),
	})
}

func (a *API) credit(w http.ResponseWriter, r *http.Request) {
	a.mutate(w, r, func(account Account, req amountRequest) error {
		amount, err := exchange.ParseAmount(req.Amount)
		if err != nil {
			return err
		}
		return account.Credit(amount, req.Currency)
	})
}

func (a *API) debit(w http.ResponseWriter, r *http.Request) {
	a.mutate(w, r, func(account Account, req amountRequest) error {
		amount, err := exchange.ParseAmount(req.Amount)
		if err != nil {
			return err
		}
		return account.Debit(amount, req.Currency)
	})
}

func (a *API) transfer(w http.ResponseWriter, r *http.Request) {
	a.mutate(w, r, func(account Account, req amountRequest) error {
		amount, err := exchange.ParseAmount(req.Amount)
		if err != nil {
			return err
		}
		target, ok := a.ledger.Find(req.To)
		if !ok {
			return errTargetNotFound
		}
		return account.Transfer(amount, req.Currency, target)
	})
}

func (a *API) convert(w http.ResponseWriter, r *http.Request) {
	a.mutate(w, r, func(account Account, req amountRequest) error {
		amount, err := exchange.ParseAmount(req.Amount)
		if err != nil {
			return err
		}
		return account.Convert(amount, req.From, req.ToCurrency)
	})
}

var errTargetNotFound = errors.New("transfer target not found")

// mutate runs one balance mutation against the account in the URL and
// responds with the account's new state.
func (a *API) mutate(w http.ResponseWriter, r *http.Request, op func(Account, amountRequest) error) {
	account, ok := a.ledger.Find(chi.URLParam(r, "iban"))
	if !ok {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}

	req := amountRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := op(account, req); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newAccountResponse(account))
}

type bankResponse struct {
	Country string `json:"country"`
	Code    int    `json:"code"`
	BIC     string `json:"bic,omitempty"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Display string `json:"display"`
}

func (a *API) getBanks(w http.ResponseWriter, r *http.Request) {
	snapshot := a.ledger.Directory().Banks()

	out := make(map[string][]bankResponse, len(snapshot))
	for country, space := range snapshot {
		for _, bank := range space {
			out[country] = append(out[country], bankResponse{
				Country: bank.Country,
				Code:    bank.Code,
				BIC:     bank.BIC,
				Name:    bank.Name,
				Address: bank.Address,
				Display: bank.String(),
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (a *API) getCurrencies(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"base":       a.ledger.Converter().Base(),
		"currencies": a.ledger.Converter().Currencies(),
	})
}

func (a *API) convertAmount(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := a.ledger.Converter().Convert(q.Get("amount"), q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"amount": result.StringFixed(2),
		"from":   q.Get("from"),
		"to":     q.Get("to"),
	})
}

// writeError maps domain error kinds onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, iban.ErrCountryUnknown),
		errors.Is(err, iban.ErrLengthMismatch),
		errors.Is(err, iban.ErrFormatInvalid),
		errors.Is(err, exchange.ErrInvalidAmount),
		errors.Is(err, exchange.ErrUnknownCurrency):
		status = http.StatusBadRequest
	case errors.Is(err, errTargetNotFound), errors.Is(err, ErrBankNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrNoFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, ErrAccountAction):
		status = http.StatusForbidden
	case errors.Is(err, ErrWrongAccountType):
		status = http.StatusConflict
	}
	http.Error(w, err.Error(), status)
}
