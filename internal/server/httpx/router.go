// Package httpx exposes the auth service over HTTP/JSON.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/konega2/portfolio-sub001/internal/common"
	"github.com/konega2/portfolio-sub001/internal/logging"
	"github.com/konega2/portfolio-sub001/internal/server/models"
	"github.com/konega2/portfolio-sub001/internal/server/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	maxBodyBytes       = 1 << 20
	healthCheckTimeout = 2 * time.Second
)

// Authenticator is the slice of the auth service the router needs.
type Authenticator interface {
	Login(ctx context.Context, usuario, password string) (*services.LoginResult, error)
	WhoAmI(ctx context.Context, token string) (*models.Profile, error)
}

// Options configures a Router. Limiter, Health and Metrics are optional.
type Options struct {
	Auth            Authenticator
	Logger          logging.Logger
	Limiter         RateLimiter
	LoginRateLimit  int
	LoginRateWindow time.Duration
	Health          func(context.Context) error
	Metrics         *Metrics
}

// Router wires HTTP endpoints to services.
type Router struct {
	mux         *http.ServeMux
	log         logging.Logger
	auth        Authenticator
	limiter     RateLimiter
	loginLimit  int
	loginWindow time.Duration
	health      func(context.Context) error
	metrics     *Metrics
}

// NewRouter assembles routes with dependencies.
func NewRouter(opts Options) *Router {
	r := &Router{
		mux:         http.NewServeMux(),
		log:         opts.Logger,
		auth:        opts.Auth,
		limiter:     opts.Limiter,
		loginLimit:  opts.LoginRateLimit,
		loginWindow: opts.LoginRateWindow,
		health:      opts.Health,
		metrics:     opts.Metrics,
	}
	if r.log == nil {
		r.log = logging.Nop{}
	}
	r.log = r.log.With("module", "http")
	if r.metrics == nil {
		r.metrics = NewMetrics()
	}
	r.register()
	return r
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Close releases background resources.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
}

func (r *Router) register() {
	r.mux.HandleFunc("POST /login", r.audit("login", r.withRateLimit("login", r.loginLimit, r.loginWindow, r.handleLogin)))
	r.mux.HandleFunc("GET /me", r.audit("me", r.handleMe))
	r.mux.HandleFunc("GET /healthz", r.audit("healthz", r.handleHealthz))
	r.mux.Handle("GET /metrics", promhttp.HandlerFor(r.metrics.Registry(), promhttp.HandlerOpts{}))
}

type loginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string              `json:"token"`
	Usuario models.LoginProfile `json:"usuario"`
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var payload loginRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := r.auth.Login(req.Context(), payload.Usuario, payload.Password)
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: res.Token, Usuario: res.Profile})
}

func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) {
	token, err := bearerToken(req.Header.Get("Authorization"))
	if err != nil {
		r.log.Debug(req.Context(), "authorization header rejected", "error", err)
		r.writeServiceError(w, req, common.ErrorUnauthorized)
		return
	}

	profile, err := r.auth.WhoAmI(req.Context(), token)
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if r.health != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.health(ctx); err != nil {
			r.log.Warn(req.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Router) writeServiceError(w http.ResponseWriter, req *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError && !errors.Is(err, common.ErrorInternal) {
		r.log.Error(req.Context(), "unmapped service error", "error", err)
	}
	writeError(w, status, common.PublicMessage(err))
}
