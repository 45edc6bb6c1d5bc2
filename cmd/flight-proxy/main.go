package main

import (
	"context"

	"github.com/skylane/flight-proxy/internal/amadeus"
	"github.com/skylane/flight-proxy/internal/auth"
	"github.com/skylane/flight-proxy/internal/config"
	"github.com/skylane/flight-proxy/internal/httpclient"
	"github.com/skylane/flight-proxy/internal/logger"
	"github.com/skylane/flight-proxy/internal/metrics"
	"github.com/skylane/flight-proxy/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}

	m := metrics.New()

	client := httpclient.New()
	fetcher := auth.NewHTTPFetcher(client, cfg.BaseURL, cfg.ClientID, cfg.ClientSecret)
	tokens := auth.NewTokenSource(fetcher)
	tokens.OnFetch = m.RecordTokenFetch

	flights := amadeus.NewClient(client, tokens, cfg.BaseURL)

	// Perform startup connectivity check
	logger.Get().Info().Msg("Performing startup Amadeus connectivity check...")
	if err := flights.Ping(context.Background()); err != nil {
		logger.Get().Warn().Err(err).Msg("Startup connectivity check failed; the proxy will run but searches will fail until credentials are valid")
	} else {
		logger.Get().Info().Str("environment", cfg.Environment).Msg("Startup connectivity check successful")
	}

	srv := server.NewServer(cfg, flights, m)

	if err := srv.Start(":" + cfg.Port); err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to start server")
	}
}
