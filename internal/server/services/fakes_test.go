package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/konega2/portfolio-sub001/internal/common"
	"github.com/konega2/portfolio-sub001/internal/dbx"
	"github.com/konega2/portfolio-sub001/internal/server/models"
	"github.com/konega2/portfolio-sub001/internal/server/repositories/accounts"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeAccountsRepo struct {
	mu        sync.Mutex
	byID      map[string]*models.Account
	lookupErr error
	createErr error
	created   []*models.Account
	calls     int
}

func newFakeAccountsRepo(accs ...*models.Account) *fakeAccountsRepo {
	r := &fakeAccountsRepo{byID: map[string]*models.Account{}}
	for _, a := range accs {
		r.byID[a.ID] = a
	}
	return r
}

func (f *fakeAccountsRepo) GetActiveByUsuario(ctx context.Context, usuario string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, a := range f.byID {
		if a.Usuario == usuario && a.Activo {
			cp := *a
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *a
	if cp.ID == "" {
		cp.ID = "id-" + a.Usuario
	}
	f.created = append(f.created, &cp)
	return &cp, nil
}

type fakeRepoManager struct {
	repo *fakeAccountsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository     { return m.repo }

var errDBDown = errors.New("db error: connection refused")
