package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/api"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

// Session is the slice of api.Client the REPL drives.
type Session interface {
	Register(ctx context.Context, userName string, password []byte) (string, error)
	Login(ctx context.Context, userName string, password []byte) error
	Refresh(ctx context.Context) error
	Protected(ctx context.Context) (string, error)
	Logout()
	LoggedIn() bool
	UserName() string
}

type App struct {
	config  *config.Config
	session Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config:  c,
		session: api.New(c.ServerURL, c.RequestTimeout),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) status() string {
	if a.session.LoggedIn() {
		return a.session.UserName()
	}
	return "guest"
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "gophauth client, server %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.status, a.reader, a.out)
}
