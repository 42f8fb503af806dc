// The env5001-server binary serves the energy estimation API and dashboard.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/LaurealDente/env5001/internal/api"
	"github.com/LaurealDente/env5001/internal/config"
)

func main() {
	flags := parseFlags()

	level, err := zerolog.ParseLevel(flags.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	config.SetLogger(logger)

	// Fail fast on a broken configuration, even though requests re-read it.
	cfg, err := config.Load(flags.ConfigPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("config", flags.ConfigPath).Msg("Invalid configuration")
	}

	addr := cfg.Server.ListenAddr
	if flags.ListenAddr != "" {
		addr = flags.ListenAddr
	}

	srv := api.New(api.FileSource(flags.ConfigPath, logger), logger)
	server := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
		<-signalChan

		ctx, cancel := context.WithTimeout(context.Background(), flags.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Shutdown failed")
		}
		close(shutdownDone)
	}()

	logger.Info().Str("addr", addr).Str("config", flags.ConfigPath).Msg("Starting energy estimator API")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("Server failed")
	}
	<-shutdownDone
}
