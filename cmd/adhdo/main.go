package main

import (
	"context"
	"log"
	"os"

	"github.com/adhdo-app/adhdo/internal/cli"
	"github.com/adhdo-app/adhdo/internal/config"
	"github.com/adhdo-app/adhdo/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(ctx, "shutdown failed", "err", err)
		}
	}()

	app.Run(ctx)
}
