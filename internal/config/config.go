package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config carries the settings shared by the carmarket binaries. Each binary
// loads it under its own prefix (LISTING_, TRANSACTION_, GATEWAY_), so the
// services can run side by side from one environment.
type Config struct {
	// Addr is the listen address of the binary's HTTP server.
	Addr string `envconfig:"ADDR" default:":8080"`
	// DatabaseURL selects the Postgres store. Empty means the in-memory
	// store, which lets the binaries run standalone.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	// TransactionURL is the base URL of the transaction service, used by
	// the listing service and the gateway.
	TransactionURL string `envconfig:"TRANSACTION_URL" default:"http://localhost:8082"`
	// ListingURL is the base URL of the listing service, used by the
	// gateway.
	ListingURL string `envconfig:"LISTING_URL" default:"http://localhost:8081"`
	// DispatchTimeout bounds the listing service's transaction-create
	// call, independently of the caller's own deadline.
	DispatchTimeout time.Duration `envconfig:"DISPATCH_TIMEOUT" default:"5s"`
	// JWTSecret is the HMAC secret the gateway validates bearer tokens
	// with.
	JWTSecret string `envconfig:"JWT_SECRET"`
}

// Load reads .env when present, then populates a Config from the environment
// under the given prefix.
func Load(prefix string) (*Config, error) {
	// A missing .env is fine; production relies on real env variables.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load %s config: %w", prefix, err)
	}
	return &cfg, nil
}
