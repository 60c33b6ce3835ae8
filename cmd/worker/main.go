package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"meetspace/config"
	"meetspace/di"
	"meetspace/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("Starting event consumer.")

	di.InitializeConsumer().Run(ctx)

	log.Info().Msg("Event consumer stopped.")
}
