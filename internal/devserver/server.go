package devserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/konega2/portfolio-sub001/internal/devserver/config"
	"github.com/konega2/portfolio-sub001/internal/logging"
)

type Server struct {
	cfg        *config.Config
	log        logging.Logger
	normalizer *Normalizer
}

// New builds a dev server. The checker comes from the S3 bucket when one is
// configured, otherwise from the static root.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*Server, error) {
	var checker ResourceChecker = DirChecker{Root: cfg.StaticRoot}
	if cfg.S3Bucket != "" {
		c, err := NewS3Checker(ctx, S3Options{
			Bucket:       cfg.S3Bucket,
			KeyPrefix:    cfg.S3KeyPrefix,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		checker = c
	}
	return &Server{
		cfg:        cfg,
		log:        log.With("module", "devserver"),
		normalizer: &Normalizer{Prefix: cfg.Prefix, Checker: checker},
	}, nil
}

// Handler serves the static root behind the normalizer.
func (s *Server) Handler() http.Handler {
	return s.normalizer.Middleware(s.log, http.FileServer(http.Dir(s.cfg.StaticRoot)))
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()
	s.log.Info(ctx, "Starting dev server", "address", lis.Addr().String(), "root", s.cfg.StaticRoot)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
