package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"production"`

	MinOpeningBalance float64 `env:"MIN_OPENING_BALANCE" envDefault:"100"`
	TxCeiling         float64 `env:"TX_CEILING" envDefault:"100000"`

	SavingsRatePct    float64 `env:"SAVINGS_RATE_PCT" envDefault:"2.5"`
	OverdraftLimit    float64 `env:"OVERDRAFT_LIMIT" envDefault:"1000"`
	FixedRatePct      float64 `env:"FIXED_RATE_PCT" envDefault:"5"`
	FixedTenureMonths int     `env:"FIXED_TENURE_MONTHS" envDefault:"12"`

	LoanAutoApproveLimit float64 `env:"LOAN_AUTO_APPROVE_LIMIT" envDefault:"5000000"`
	LoanMinTenureMonths  int     `env:"LOAN_MIN_TENURE_MONTHS" envDefault:"1"`
	LoanMaxTenureMonths  int     `env:"LOAN_MAX_TENURE_MONTHS" envDefault:"60"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// Default returns a Config populated with the stock policy parameters,
// without consulting the environment. Intended for tests.
func Default() *Config {
	return &Config{
		Port:                 8080,
		LogLevel:             "info",
		AppEnv:               "production",
		MinOpeningBalance:    100,
		TxCeiling:            100000,
		SavingsRatePct:       2.5,
		OverdraftLimit:       1000,
		FixedRatePct:         5,
		FixedTenureMonths:    12,
		LoanAutoApproveLimit: 5000000,
		LoanMinTenureMonths:  1,
		LoanMaxTenureMonths:  60,
	}
}
