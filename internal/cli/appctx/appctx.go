// Package appctx provides a shared bootstrap helper for CLI commands.
// It centralizes config loading, logger setup, and opening the Joplin
// record source to reduce boilerplate across commands.
package appctx

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lherron/joplin2fnx/internal/config"
	"github.com/lherron/joplin2fnx/internal/db"
	"github.com/lherron/joplin2fnx/internal/joplin"
	"github.com/lherron/joplin2fnx/internal/logging"
	"github.com/lherron/joplin2fnx/internal/migrate"
)

// App holds the shared application context for commands.
type App struct {
	// Config is the loaded configuration with flag overrides applied
	Config *config.Config

	// Log is tagged with the run id and command name
	Log *logrus.Entry

	// Source supplies Joplin records (nil if NeedsSource is false)
	Source migrate.Source

	database *db.DB
}

// Close releases resources held by the App.
// Safe to call multiple times.
func (a *App) Close() {
	if a.database != nil {
		a.database.Close()
		a.database = nil
	}
}

// Options configures the bootstrap behavior.
type Options struct {
	// NeedsSource indicates whether to open the Joplin API or database.
	NeedsSource bool
}

// DefaultOptions returns options for commands that read Joplin records.
func DefaultOptions() Options {
	return Options{NeedsSource: true}
}

// ConfigOnly returns options for commands that work on local files only.
func ConfigOnly() Options {
	return Options{}
}

// RunFunc is the signature for command run functions.
type RunFunc func(app *App, cmd *cobra.Command, args []string) error

// WithApp wraps a command's run function with shared bootstrap logic.
// The source is closed automatically when the wrapped function returns.
func WithApp(opts Options, fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := Bootstrap(cmd, opts)
		if err != nil {
			return err
		}
		defer app.Close()

		return fn(app, cmd, args)
	}
}

// flagOverrides maps persistent flags onto config fields.
var flagOverrides = []struct {
	name  string
	apply func(cfg *config.Config, v string)
}{
	{"url", func(c *config.Config, v string) { c.URL = v }},
	{"token", func(c *config.Config, v string) { c.Token = v }},
	{"db", func(c *config.Config, v string) { c.DBPath = v }},
	{"source", func(c *config.Config, v string) { c.Source = v }},
	{"log-level", func(c *config.Config, v string) { c.LogLevel = v }},
	{"log-format", func(c *config.Config, v string) { c.LogFormat = v }},
}

// Bootstrap initializes the App according to the given options.
// Callers are responsible for calling App.Close() when done.
func Bootstrap(cmd *cobra.Command, opts Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, o := range flagOverrides {
		if f := cmd.Flag(o.name); f != nil && f.Changed {
			o.apply(cfg, f.Value.String())
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logging.Init(logging.Options{
		Level:  cfg.LogLevel,
		JSON:   cfg.LogFormat == "json",
		Output: cmd.ErrOrStderr(),
	}); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	app := &App{
		Config: cfg,
		Log:    logging.NewRun(cmd.Name()),
	}

	if opts.NeedsSource {
		if err := app.OpenSource(cmd.Context()); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// OpenSource connects to the configured record source. The API source is
// pinged so a wrong port or a stopped Joplin fails early.
func (a *App) OpenSource(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	switch a.Config.Source {
	case config.SourceDB:
		database, err := db.Open(a.Config.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		a.database = database
		a.Source = database
		a.Log.WithField("db", database.Path()).Debug("reading joplin profile database")
	default:
		if a.Config.Token == "" {
			return fmt.Errorf("no joplin token configured (set JOPLIN_TOKEN, JOPLIN_TOKEN_FILE, or use --token)")
		}
		client, err := joplin.New(a.Config.URL, a.Config.Token)
		if err != nil {
			return err
		}
		if err := client.Ping(ctx); err != nil {
			return fmt.Errorf("joplin clipper service not reachable: %w", err)
		}
		a.Source = client
		a.Log.WithField("url", client.String()).Debug("connected to joplin")
	}
	return nil
}
