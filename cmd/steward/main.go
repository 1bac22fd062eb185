package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	_ "github.com/stewardbot/steward/internal/command/announcements"
	_ "github.com/stewardbot/steward/internal/command/core"
	_ "github.com/stewardbot/steward/internal/command/gameplay"
	_ "github.com/stewardbot/steward/internal/command/information"
	_ "github.com/stewardbot/steward/internal/command/moderation"
	_ "github.com/stewardbot/steward/internal/command/settings"

	"github.com/stewardbot/steward/internal/config"
	"github.com/stewardbot/steward/internal/discord"
	"github.com/stewardbot/steward/internal/logging"
	"github.com/stewardbot/steward/internal/storage"
	"github.com/stewardbot/steward/internal/version"
)

func main() {
	cfg := config.New()
	logging.Setup(cfg.LogLevel, cfg.LogPath)

	log.Info().Str("version", version.Version).Msgf("starting %s", version.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open storage")
	}
	defer store.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- discord.StartBot(ctx, cfg, store)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("bot stopped")
		}
		cancel()
	}

	log.Info().Msg("bot exited cleanly")
}
