// Package cli implements the interactive command-line client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/konega2/portfolio-sub001/internal/client/client"
	"github.com/konega2/portfolio-sub001/internal/client/config"
	"github.com/konega2/portfolio-sub001/internal/common"
)

type App struct {
	client  client.AuthClient
	store   TokenStore
	timeout time.Duration
	reader  *bufio.Reader
	prompt  *Prompter
	out     io.Writer
	usuario string
}

// NewApp picks the transport from cfg and restores a previously saved token.
func NewApp(cfg *config.Config) (*App, error) {
	var (
		c   client.AuthClient
		err error
	)
	switch cfg.Transport {
	case config.TransportHTTP:
		c = client.NewHTTPClient(cfg.ServerHTTPURL, &http.Client{Timeout: cfg.RequestTimeout})
	default:
		c, err = client.NewGRPCClient(cfg.ServerEndpointAddr)
		if err != nil {
			return nil, err
		}
	}

	a := newApp(c, TokenStore{Path: cfg.TokenFile}, cfg.RequestTimeout, os.Stdin, os.Stdout)
	token, err := a.store.Load()
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.SetToken(token)
	return a, nil
}

func newApp(c client.AuthClient, store TokenStore, timeout time.Duration, in io.Reader, out io.Writer) *App {
	r := bufio.NewReader(in)
	return &App{client: c, store: store, timeout: timeout, reader: r, prompt: NewPrompter(r, out), out: out}
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}

func (a *App) status() string {
	switch {
	case a.usuario != "":
		return "(" + a.usuario + ")"
	case a.isLoggedIn():
		return "(session)"
	default:
		return ""
	}
}

func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

// Run starts the REPL on the app's reader and closes the client on return.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	fmt.Fprintln(a.out, "Portfolio auth CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Login(ctx context.Context) error {
	usuario, err := a.prompt.Line("Usuario")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	password, err := a.prompt.Password("Password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer common.WipeByteArray(password)

	cctx, cancel := a.callCtx(ctx)
	defer cancel()

	s, err := a.client.Login(cctx, usuario, string(password))
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return err
	}

	a.usuario = s.Profile.Usuario
	if err := a.store.Save(s.Token); err != nil {
		fmt.Fprintf(a.out, "warning: session not saved: %v\n", err)
	}
	fmt.Fprintf(a.out, "Welcome, %s (%s)\n", s.Profile.Nombre, s.Profile.Rol)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	cctx, cancel := a.callCtx(ctx)
	defer cancel()

	p, err := a.client.WhoAmI(cctx)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) && a.isLoggedIn() {
			a.forget()
			fmt.Fprintln(a.out, "Session is no longer valid, please log in again")
			return err
		}
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	a.usuario = p.Usuario
	fmt.Fprintf(a.out, "id:       %s\nnombre:   %s\nusuario:  %s\nemail:    %s\nrol:      %s\ntelefono: %s\n",
		p.ID, p.Nombre, p.Usuario, p.Email, p.Rol, p.Telefono)
	return nil
}

// Logout only drops the local token; the server keeps no sessions.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	if err := a.forget(); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) forget() error {
	a.client.SetToken("")
	a.usuario = ""
	return a.store.Clear()
}
