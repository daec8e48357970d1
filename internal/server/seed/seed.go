// Package seed loads development accounts into the usuarios table.
package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/konega2/portfolio-sub001/internal/cryptox"
	"github.com/konega2/portfolio-sub001/internal/envx"
	"github.com/konega2/portfolio-sub001/internal/logging"
	"github.com/konega2/portfolio-sub001/internal/server/config"
	"github.com/konega2/portfolio-sub001/internal/server/models"
	"github.com/konega2/portfolio-sub001/internal/server/repositories/repomanager"
	"github.com/konega2/portfolio-sub001/internal/server/services"
)

// ErrEmptySeed is returned when the input holds no accounts.
var ErrEmptySeed = errors.New("seed file contains no accounts")

// Config holds seed tool settings.
type Config struct {
	DatabaseDSN string
	File        string
	BcryptCost  int
}

// LoadConfig reads defaults shared with the server, then the server's DSN and
// bcrypt cost variables, then flags from args.
//
//	-d string   database DSN
//	-f string   path to a JSON array of accounts ("-" for stdin)
//	-cost int   bcrypt cost
func LoadConfig(args []string) (*Config, error) {
	var sc config.Config
	sc.LoadDefaults()

	cfg := &Config{DatabaseDSN: sc.DatabaseDSN, File: "seed.json", BcryptCost: sc.BcryptCost}
	envx.String(config.EnvDatabaseDSN, &cfg.DatabaseDSN)
	if err := envx.Int(config.EnvBcryptCost, &cfg.BcryptCost); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.File, "f", cfg.File, "accounts file")
	fs.IntVar(&cfg.BcryptCost, "cost", cfg.BcryptCost, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadAccounts decodes a JSON array of accounts. Unknown fields are rejected
// so that typos in a seed file do not silently drop data.
func ReadAccounts(r io.Reader) ([]models.NewAccount, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var out []models.NewAccount
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptySeed
	}
	return out, nil
}

// Seed migrates the schema and inserts accounts in one transaction.
func Seed(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.Hasher, accounts []models.NewAccount, log logging.Logger) ([]*models.Account, error) {
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	created, err := services.NewAccountService(db, m, hasher).CreateBatch(ctx, accounts)
	if err != nil {
		return nil, err
	}
	for _, a := range created {
		log.Info(ctx, "account created", "id", a.ID, "usuario", a.Usuario, "rol", a.Rol, "activo", a.Activo)
	}
	return created, nil
}
