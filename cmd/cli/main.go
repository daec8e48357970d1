package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/konega2/portfolio-sub001/internal/client/cli"
	"github.com/konega2/portfolio-sub001/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
