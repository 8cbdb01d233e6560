package main

import (
	"errors"
	"net/http"
	"time"

	"exchange/api"
	"exchange/config"
	"exchange/exchange"
	"exchange/logging"
	"exchange/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg)
	reg := metrics.Init(logger)

	x := exchange.New(cfg.Exchange.Symbol, logger)
	server := api.New(x, reg, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	logger.Info().
		Str("addr", cfg.Server.Addr).
		Str("symbol", cfg.Exchange.Symbol).
		Msg("exchange listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
