package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces the environment variables, e.g. COINADDR_COIN.
const envPrefix = "coinaddr"

// config holds the defaults read from the environment. Command line flags
// override every value here.
type config struct {
	Coin     string `envconfig:"COIN" default:"btc"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Workers  int    `envconfig:"WORKERS" default:"0"`
	NoColor  bool   `envconfig:"NO_COLOR" default:"false"`
}

func newConfig() (config, error) {
	var cfg config
	err := envconfig.Process(envPrefix, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	return cfg, nil
}
