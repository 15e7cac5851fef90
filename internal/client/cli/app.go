package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/fraudcheck/internal/client/client"
	"github.com/dmitrijs2005/fraudcheck/internal/client/config"
	"github.com/dmitrijs2005/fraudcheck/internal/client/records"
	"github.com/dmitrijs2005/fraudcheck/internal/client/session"
	"github.com/dmitrijs2005/fraudcheck/internal/logging"

	sessionrepo "github.com/dmitrijs2005/fraudcheck/internal/client/repositories/session"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	api      client.Client
	sessions *session.Manager
	list     *records.ListView
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	logger := logging.NewTextLogger(os.Stderr, level)

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing session cache: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.PingTimeout)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := newApp(c, logger, apiClient, sessionrepo.NewSQLiteRepository(db), bufio.NewReader(os.Stdin), os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, l logging.Logger, api client.Client, store sessionrepo.Repository, r *bufio.Reader, w io.Writer) *App {
	sessions := session.NewManager(api, store, l)
	a := &App{
		config:   c,
		logger:   l,
		api:      api,
		sessions: sessions,
		list:     records.NewListView(api, sessions),
		reader:   r,
		out:      w,
	}

	sessions.Subscribe(func(e session.Event) {
		switch e.Kind {
		case session.EventSignedIn:
			fmt.Fprintf(a.out, "Signed in as %s\n", e.Identity.Email)
		case session.EventSignedOut:
			fmt.Fprintln(a.out, "Signed out. Use 'login' or 'register' to continue.")
		}
	})
	return a
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Current()
	return ok
}

func (a *App) status() string {
	if id, ok := a.sessions.Current(); ok {
		return id.Email
	}
	return "signed out"
}

// Run restores the cached session and starts the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	fmt.Fprintln(a.out, "Fraud Candidate Checker (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		a.logger.Warn(ctx, "server not reachable", "addr", a.config.ServerEndpointAddr, "error", err.Error())
	}

	if _, ok, err := a.sessions.Restore(ctx); err != nil {
		fmt.Fprintln(a.out, "error:", err)
	} else if ok {
		if err := a.List(ctx); err != nil {
			a.handleError(ctx, err)
		}
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) close() {
	a.list.Close()
	if err := a.api.Close(); err != nil {
		a.logger.Warn(context.Background(), "close api client", "error", err.Error())
	}
	if a.db != nil {
		a.db.Close()
	}
}

// handleError prints err and ends the local session when the server no
// longer accepts it.
func (a *App) handleError(ctx context.Context, err error) {
	fmt.Fprintln(a.out, "error:", err)
	if client.IsUnauthenticated(err) && a.isLoggedIn() {
		a.sessions.SignOut(ctx)
	}
}
