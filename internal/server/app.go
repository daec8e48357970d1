// Package server wires configuration, storage, services and transports into
// the auth server and runs it until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/konega2/portfolio-sub001/internal/cryptox"
	"github.com/konega2/portfolio-sub001/internal/logging"
	"github.com/konega2/portfolio-sub001/internal/server/config"
	gs "github.com/konega2/portfolio-sub001/internal/server/grpc"
	"github.com/konega2/portfolio-sub001/internal/server/httpx"
	"github.com/konega2/portfolio-sub001/internal/server/repositories/repomanager"
	"github.com/konega2/portfolio-sub001/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
	router      *httpx.Router
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repository manager: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	as, err := services.NewAuthService(db, rm, cryptox.NewHasher(c.BcryptCost), c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	router := httpx.NewRouter(httpx.Options{
		Auth:            as,
		Logger:          logger,
		Limiter:         newLimiter(ctx, c, logger),
		LoginRateLimit:  c.LoginRateLimit,
		LoginRateWindow: c.LoginRateWindow,
		Health:          db.PingContext,
		Metrics:         httpx.NewMetrics(),
	})

	return &App{config: c, logger: logger, db: db, authService: as, router: router}, nil
}

// newLimiter prefers Redis when configured and falls back to an in-process
// limiter when Redis is absent or unreachable.
func newLimiter(ctx context.Context, c *config.Config, logger logging.Logger) httpx.RateLimiter {
	if c.LoginRateLimit <= 0 {
		return nil
	}
	if c.RedisAddr != "" {
		rl, err := httpx.NewRedisRateLimiter(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB, logger)
		if err == nil {
			return rl
		}
		logger.Warn(ctx, "redis unavailable, using in-memory rate limiter", "addr", c.RedisAddr, "error", err)
	}
	return httpx.NewMemoryRateLimiter()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	lis, err := net.Listen("tcp", app.config.EndpointAddrHTTP)
	if err != nil {
		app.logger.Error(ctx, "http listen failed", "error", err)
		cancelFunc()
		return
	}
	app.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
	if err := serveHTTP(ctx, &http.Server{Handler: app.router, ReadHeaderTimeout: 5 * time.Second}, lis); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.authService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// serveHTTP serves on lis until ctx is done, then drains in-flight requests.
func serveHTTP(ctx context.Context, srv *http.Server, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves HTTP (and gRPC when configured) until ctx is cancelled or a
// termination signal arrives, then releases resources.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.router.Close()
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
