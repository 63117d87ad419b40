package banking

// Config is a configuration for the ledger application.
type Config struct {
	HTTPAddr string
	// BanksFile, RulesFile and RatesFile point at external seed sources;
	// when empty the embedded seed data is used.
	BanksFile string
	RulesFile string
	RatesFile string
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr: "localhost:9090",
	}
}
