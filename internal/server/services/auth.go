// Package services contains server-side business logic. This file implements
// AuthService: credential verification and session introspection.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/konega2/portfolio-sub001/internal/common"
	"github.com/konega2/portfolio-sub001/internal/cryptox"
	"github.com/konega2/portfolio-sub001/internal/logging"
	"github.com/konega2/portfolio-sub001/internal/server/auth"
	"github.com/konega2/portfolio-sub001/internal/server/config"
	"github.com/konega2/portfolio-sub001/internal/server/models"
	"github.com/konega2/portfolio-sub001/internal/server/repositories/repomanager"
)

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token   string
	Profile models.LoginProfile
}

// AuthService verifies credentials, issues session tokens and resolves a
// token back to the account profile. It only reads accounts.
type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	hasher        *cryptox.Hasher
	jwtSecret     []byte
	tokenValidity time.Duration
	dummyHash     string
	log           logging.Logger
	now           func() time.Time
}

// NewAuthService constructs an AuthService using repositories and server config.
// The dummy hash used for unknown accounts is computed once here.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.Hasher, cfg *config.Config, log logging.Logger) (*AuthService, error) {
	if cfg.SecretKey == "" {
		return nil, config.ErrMissingSecret
	}
	dummy, err := hasher.DummyHash()
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return &AuthService{
		db:            db,
		repomanager:   m,
		hasher:        hasher,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		dummyHash:     dummy,
		log:           log.With("module", "auth"),
		now:           time.Now,
	}, nil
}

// Login checks usuario and password against the active account and, on
// success, returns a signed token and the login profile.
//
// An unknown usuario and a wrong password both yield
// common.ErrorInvalidCredentials. For an unknown usuario the password is
// still compared against a dummy hash.
func (s *AuthService) Login(ctx context.Context, usuario, password string) (*LoginResult, error) {
	if usuario == "" || password == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetActiveByUsuario(ctx, usuario)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = s.hasher.Compare(s.dummyHash, []byte(password))
			s.log.Info(ctx, "login rejected", "reason", "unknown usuario")
			return nil, common.ErrorInvalidCredentials
		}
		s.log.Error(ctx, "account lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if err := s.hasher.Compare(account.Password, []byte(password)); err != nil {
		s.log.Info(ctx, "login rejected", "reason", "password mismatch", "account_id", account.ID)
		return nil, common.ErrorInvalidCredentials
	}

	token, err := auth.GenerateToken(auth.Identity{ID: account.ID, Usuario: account.Usuario, Rol: account.Rol},
		s.jwtSecret, s.tokenValidity, s.now())
	if err != nil {
		s.log.Error(ctx, "token signing failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "login succeeded", "account_id", account.ID, "rol", account.Rol)
	return &LoginResult{Token: token, Profile: account.LoginProfile()}, nil
}

// WhoAmI resolves a presented token to the current profile of its account.
// The account row is always re-read, so profile edits are visible before the
// token expires.
func (s *AuthService) WhoAmI(ctx context.Context, token string) (*models.Profile, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	claims, err := auth.ParseToken(token, s.jwtSecret, s.now())
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			s.log.Debug(ctx, "token rejected", "reason", "expired")
		} else {
			s.log.Debug(ctx, "token rejected", "reason", "invalid")
		}
		return nil, err
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "orphaned token", "account_id", claims.AccountID)
			return nil, common.ErrorNotFound
		}
		s.log.Error(ctx, "account lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	profile := account.Profile()
	return &profile, nil
}
