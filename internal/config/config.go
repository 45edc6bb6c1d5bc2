// Package config builds the service configuration from the environment
// once at startup. Handlers receive the resulting struct and never read
// environment variables themselves.
package config

import (
	"fmt"

	"github.com/skylane/flight-proxy/internal/env"
)

// Defaults for settings that are optional in the environment.
const (
	DefaultPort        = "3000"
	DefaultEnvironment = "development"
	DefaultAmadeusURL  = "https://test.api.amadeus.com"
)

// Config holds every setting the service recognizes.
type Config struct {
	// Amadeus API credentials for the client-credentials grant.
	ClientID     string
	ClientSecret string

	// BaseURL is the Amadeus API host, without a trailing slash.
	BaseURL string

	// Port the HTTP server listens on.
	Port string

	// Environment name reported by the health endpoint ("development",
	// "production", ...).
	Environment string
}

// Load populates a Config from the environment. It fails if the Amadeus
// credentials are missing; everything else has a default.
func Load() (*Config, error) {
	clientID, ok := env.Get("AMADEUS_CLIENT_ID")
	if !ok {
		return nil, fmt.Errorf("AMADEUS_CLIENT_ID is not set")
	}

	clientSecret, ok := env.Get("AMADEUS_CLIENT_SECRET")
	if !ok {
		return nil, fmt.Errorf("AMADEUS_CLIENT_SECRET is not set")
	}

	return &Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      DefaultAmadeusURL,
		Port:         env.GetOrDefault("PORT", DefaultPort),
		Environment:  env.GetOrDefault("ENV", DefaultEnvironment),
	}, nil
}
