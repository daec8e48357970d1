// Command devserver serves the built portfolio site for local development.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/konega2/portfolio-sub001/internal/devserver"
	"github.com/konega2/portfolio-sub001/internal/devserver/config"
	"github.com/konega2/portfolio-sub001/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, "devserver", logging.ParseLevel(cfg.LogLevel))

	srv, err := devserver.New(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error(ctx, "dev server stopped", "error", err)
		os.Exit(1)
	}
}
