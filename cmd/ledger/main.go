package main

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"github.com/baltikpay/ledger-playground/banking"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout))

	app := banking.NewApp(logger, configFromEnv())
	if err := app.Start(); err != nil {
		logger.Error("starting app", "err", err)
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	app.Shutdown()
}

func configFromEnv() *banking.Config {
	config := banking.DefaultConfig()
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		config.HTTPAddr = addr
	}
	config.BanksFile = os.Getenv("BANKS_FILE")
	config.RulesFile = os.Getenv("IBAN_RULES_FILE")
	config.RatesFile = os.Getenv("RATES_FILE")
	return config
}
