package main

import (
	"context"
	"log"
	"os"

	"github.com/konega2/portfolio-sub001/internal/logging"
	"github.com/konega2/portfolio-sub001/internal/server"
	"github.com/konega2/portfolio-sub001/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, "auth-server", logging.ParseLevel(cfg.LogLevel))

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
