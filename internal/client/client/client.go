// Package client talks to the auth server over gRPC or HTTP.
package client

import (
	"context"
	"sync"
)

// Profile is the account view returned by the server. Telefono is only
// filled by WhoAmI.
type Profile struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Usuario  string `json:"usuario"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
	Telefono string `json:"telefono,omitempty"`
}

// Session is the outcome of a successful login.
type Session struct {
	Token   string
	Profile Profile
}

// AuthClient is implemented by every transport.
type AuthClient interface {
	Login(ctx context.Context, usuario, password string) (*Session, error)
	WhoAmI(ctx context.Context) (*Profile, error)
	SetToken(token string)
	Token() string
	Close() error
}

// tokenHolder keeps the current access token for a transport.
type tokenHolder struct {
	mu    sync.RWMutex
	token string
}

func (h *tokenHolder) SetToken(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

func (h *tokenHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}
