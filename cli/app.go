package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rakadenta/dompet"
	"github.com/rakadenta/dompet/client"
)

// App bundles the wired session core and API client for command handlers.
type App struct {
	Config  *Config
	Logger  dompet.Logger
	Store   *dompet.FileStore
	Session *dompet.Controller
	Guard   *dompet.Guard
	API     *client.Client

	out io.Writer
	err io.Writer
}

// AppOption customizes an App, mostly for tests.
type AppOption func(*App)

// WithOutput redirects the command output streams.
func WithOutput(out, errOut io.Writer) AppOption {
	return func(a *App) {
		if out != nil {
			a.out = out
		}
		if errOut != nil {
			a.err = errOut
		}
	}
}

// NewApp wires store, session controller, API client, and guard together:
// the client's unauthorized handler drives the controller, the controller's
// remote logout goes through the client, and the navigator prints the
// sign-in hint that stands in for the browser redirect.
func NewApp(cfg *Config, opts ...AppOption) (*App, error) {
	app := &App{
		Config: cfg,
		out:    os.Stdout,
		err:    os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}

	app.Logger = newLogrusLogger(cfg.LogLevel, app.err)
	app.Store = dompet.NewFileStore(cfg.TokenPath)

	api, err := client.New(cfg.BaseURL, app.Store,
		client.WithTimeout(cfg.Timeout),
		client.WithClientLogger(app.Logger),
	)
	if err != nil {
		return nil, err
	}
	app.API = api

	navigator := dompet.NavigatorFunc(func(string) {
		fmt.Fprintln(app.err, "signed out; run 'dompet login' to sign in again")
	})

	app.Session = dompet.NewController(app.Store,
		dompet.WithLogger(app.Logger),
		dompet.WithNavigator(navigator),
		dompet.WithRemoteLogout(api.Logout),
	)
	api.SetUnauthorizedHandler(app.Session.HandleUnauthorized)

	app.Guard = dompet.NewGuard(app.Session)
	return app, nil
}

// Start launches the background session checks: the token-file watcher and
// the interval revalidation. Watcher failure degrades silently to the
// interval check.
func (a *App) Start(ctx context.Context) {
	if a.Config.WatchToken {
		if err := dompet.WatchTokenFile(ctx, a.Store.Path(), a.Session, a.Logger); err != nil {
			a.Logger.Debug("token watcher unavailable: %v", err)
		}
	}
	a.Session.StartRevalidating(ctx, a.Config.RevalidateInterval)
}

// Protected runs h through the route guard: signed out callers get the
// sign-in hint instead of the handler.
func (a *App) Protected(ctx context.Context, h dompet.Handler) error {
	return a.Guard.Protect(h)(ctx)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
