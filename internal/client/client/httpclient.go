package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/konega2/portfolio-sub001/internal/common"
	"github.com/konega2/portfolio-sub001/internal/netx"
)

// HTTPClient uses the REST endpoints POST /login and GET /me.
type HTTPClient struct {
	tokenHolder
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = &http.Client{}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type loginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string  `json:"token"`
	Usuario Profile `json:"usuario"`
}

func (c *HTTPClient) Login(ctx context.Context, usuario, password string) (*Session, error) {
	var out loginResponse
	err := netx.DoJSON(ctx, c.http, http.MethodPost, c.baseURL+"/login", nil,
		loginRequest{Usuario: usuario, Password: password}, &out)
	if err != nil {
		return nil, mapHTTPError(err)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: empty token in response", common.ErrorInternal)
	}
	c.SetToken(out.Token)
	return &Session{Token: out.Token, Profile: out.Usuario}, nil
}

func (c *HTTPClient) WhoAmI(ctx context.Context) (*Profile, error) {
	token := c.Token()
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	h := http.Header{}
	h.Set("Authorization", common.BearerScheme+" "+token)

	var p Profile
	if err := netx.DoJSON(ctx, c.http, http.MethodGet, c.baseURL+"/me", h, nil, &p); err != nil {
		return nil, mapHTTPError(err)
	}
	return &p, nil
}
