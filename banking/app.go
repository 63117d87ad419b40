package banking

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"github.com/baltikpay/ledger-playground/internal/exchange"
	"github.com/baltikpay/ledger-playground/internal/iban"
	"github.com/baltikpay/ledger-playground/internal/loader"
	"github.com/baltikpay/ledger-playground/internal/middleware"
)

// App is the main application, it wires the seed sources into the ledger
// services and is responsible for starting and stopping the HTTP server.
type App struct {
	srv    *http.Server
	wg     *sync.WaitGroup
	Addr   string
	logger *slog.Logger
	config *Config

	ledger *Ledger
}

func NewApp(logger *slog.Logger, config *Config) *App {
	logger = logger.With(slog.String("app", "ledger"))

	if config == nil {
		config = DefaultConfig()
	}

	return &App{
		wg:     &sync.WaitGroup{},
		logger: logger,
		config: config,
	}
}

// BuildLedger loads the three row sources and constructs the service graph:
// rules -> codec, bank rows -> directory, rate rows -> converter, all owned
// by one Ledger.
func BuildLedger(config *Config) (*Ledger, error) {
	ruleRows, err := loader.FileOrDefault(config.RulesFile, "iban.txt")
	if err != nil {
		return nil, fmt.Errorf("loading iban rules: %w", err)
	}
	rules, err := iban.ParseRules(ruleRows)
	if err != nil {
		return nil, fmt.Errorf("parsing iban rules: %w", err)
	}

	bankRows, err := loader.FileOrDefault(config.BanksFile, "banks.txt")
	if err != nil {
		return nil, fmt.Errorf("loading banks: %w", err)
	}
	directory, err := NewDirectory(bankRows)
	if err != nil {
		return nil, fmt.Errorf("seeding bank directory: %w", err)
	}

	rateRows, err := loader.FileOrDefault(config.RatesFile, "rates.txt")
	if err != nil {
		return nil, fmt.Errorf("loading rates: %w", err)
	}
	converter, err := exchange.NewConverter(rateRows)
	if err != nil {
		return nil, fmt.Errorf("building converter: %w", err)
	}

	return NewLedger(iban.NewCodec(rules), directory, converter), nil
}

func (a *App) Start() error {
	a.logger.Info("starting app...")

	ledger, err := BuildLedger(a.config)
	if err != nil {
		return err
	}
	a.ledger = ledger

	router := chi.NewRouter()
	router.Use(middleware.NewStructuredLogger(a.logger))

	api := NewAPI(ledger)
	api.AppendRoutes(router)

	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	l, err := net.Listen("tcp", a.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}

	a.Addr = l.Addr().String()

	a.srv = &http.Server{
		Handler: router,
	}

	a.wg.Add(1)
	go func() {
		a.logger.Info("http server started", slog.String("addr", a.Addr))

		if err := a.srv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				a.logger.Error("starting http server", "err", err)
			}

			a.logger.Info("http server stopped")
		}

		a.wg.Done()
	}()

	return nil
}

func (a *App) Ledger() *Ledger {
	return a.ledger
}

func (a *App) Shutdown() {
	a.logger.Info("shutting down app...")

	a.srv.Shutdown(context.Background())

	a.wg.Wait()

	a.logger.Info("app stopped")
}
