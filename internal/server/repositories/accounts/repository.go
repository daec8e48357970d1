package accounts

import (
	"context"

	"github.com/konega2/portfolio-sub001/internal/server/models"
)

type Repository interface {
	// GetActiveByUsuario returns the active account with that login name or
	// common.ErrorNotFound.
	GetActiveByUsuario(ctx context.Context, usuario string) (*models.Account, error)
	// GetByID returns the account regardless of its activo flag or
	// common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
}
