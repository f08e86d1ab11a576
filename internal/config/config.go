// Package config resolves runtime configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables consulted for the Stripe API key, in priority
// order. The production key wins when both are set.
const (
	EnvProdAPIKey = "STRIPE_PROD_API_KEY"
	EnvAPIKey     = "STRIPE_API_KEY"
)

// Config holds everything the CLI needs to talk to the billing API.
type Config struct {
	APIKey string
}

// Load reads configuration from the environment, first merging in a
// .env file from the working directory when one exists.
func Load() (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	key := os.Getenv(EnvProdAPIKey)
	if key == "" {
		key = os.Getenv(EnvAPIKey)
	}
	if key == "" {
		return Config{}, fmt.Errorf("neither %s nor %s is set", EnvProdAPIKey, EnvAPIKey)
	}
	return Config{APIKey: key}, nil
}
