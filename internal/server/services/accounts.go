package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/konega2/portfolio-sub001/internal/common"
	"github.com/konega2/portfolio-sub001/internal/cryptox"
	"github.com/konega2/portfolio-sub001/internal/dbx"
	"github.com/konega2/portfolio-sub001/internal/server/models"
	"github.com/konega2/portfolio-sub001/internal/server/repositories/repomanager"
)

// AccountService provisions accounts for development databases.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.Hasher
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.Hasher) *AccountService {
	return &AccountService{db: db, repomanager: m, hasher: hasher}
}

// CreateBatch hashes every password and inserts all accounts in a single
// transaction. Nothing is written if any account is rejected. Accounts
// without an id get a random UUID so seed files can pin ids when they need
// stable tokens across resets.
func (s *AccountService) CreateBatch(ctx context.Context, in []models.NewAccount) ([]*models.Account, error) {
	prepared := make([]*models.Account, 0, len(in))
	for i, n := range in {
		if n.Usuario == "" || n.Password == "" || n.Nombre == "" {
			return nil, fmt.Errorf("account %d: %w", i, common.ErrorValidation)
		}
		id := n.ID
		if id == "" {
			id = uuid.NewString()
		} else if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("account %d: id %q: %w", i, id, common.ErrorValidation)
		}
		hash, err := s.hasher.Hash([]byte(n.Password))
		if err != nil {
			return nil, fmt.Errorf("account %d: hash password: %w", i, err)
		}
		activo := true
		if n.Activo != nil {
			activo = *n.Activo
		}
		rol := n.Rol
		if rol == "" {
			rol = "empleado"
		}
		prepared = append(prepared, &models.Account{
			ID:       id,
			Usuario:  n.Usuario,
			Password: hash,
			Nombre:   n.Nombre,
			Email:    n.Email,
			Rol:      rol,
			Telefono: n.Telefono,
			Activo:   activo,
		})
	}

	created := make([]*models.Account, 0, len(prepared))
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)
		for _, a := range prepared {
			c, err := repo.Create(ctx, a)
			if err != nil {
				return fmt.Errorf("create %q: %w", a.Usuario, err)
			}
			created = append(created, c)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return created, nil
}
