package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/konega2/portfolio-sub001/internal/common"
	"github.com/konega2/portfolio-sub001/internal/dbx"
	"github.com/konega2/portfolio-sub001/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetActiveByUsuario(ctx context.Context, usuario string) (*models.Account, error) {
	query :=
		`SELECT id, usuario, password, nombre, COALESCE(email, ''), rol, COALESCE(telefono, ''), activo
		 FROM usuarios
		 WHERE usuario = $1 AND activo = TRUE
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, usuario))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT id, usuario, password, nombre, COALESCE(email, ''), rol, COALESCE(telefono, ''), activo
		 FROM usuarios
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO usuarios (id, usuario, password, nombre, email, rol, telefono, activo)
		 VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Usuario, account.Password, account.Nombre, account.Email,
		account.Rol, account.Telefono, account.Activo).Scan(&account.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.Usuario, &a.Password, &a.Nombre, &a.Email, &a.Rol, &a.Telefono, &a.Activo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}
