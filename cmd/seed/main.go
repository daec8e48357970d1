package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/konega2/portfolio-sub001/internal/cryptox"
	"github.com/konega2/portfolio-sub001/internal/logging"
	"github.com/konega2/portfolio-sub001/internal/server/repositories/repomanager"
	"github.com/konega2/portfolio-sub001/internal/server/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewJSONLogger(os.Stderr, "seed", logging.ParseLevel("info"))
	if err := run(ctx, logger); err != nil {
		logger.Error(ctx, "seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger logging.Logger) error {
	cfg, err := seed.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if cfg.File != "-" {
		f, err := os.Open(cfg.File)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	accounts, err := seed.ReadAccounts(in)
	if err != nil {
		return err
	}

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return err
	}

	created, err := seed.Seed(ctx, db, m, cryptox.NewHasher(cfg.BcryptCost), accounts, logger)
	if err != nil {
		return err
	}
	logger.Info(ctx, "seed complete", "accounts", len(created))
	return nil
}
