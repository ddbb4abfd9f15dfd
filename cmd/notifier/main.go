package main

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := di.InitializeNotifier()

	if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Notification dispatcher stopped")
	}

	log.Info().Msg("Notification dispatcher stopped. Shutting down now.")
}
