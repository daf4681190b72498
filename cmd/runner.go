package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunestream/internal/repositories"
	"github.com/desertthunder/tunestream/internal/services"
	"github.com/desertthunder/tunestream/internal/session"
	"github.com/desertthunder/tunestream/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config       *shared.Config
	configPath   string
	catalog      services.Catalog
	fixedCatalog bool
	logger       *log.Logger
	output       io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog // overrides config-based selection, mostly for tests
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:       opts.Config,
		configPath:   opts.ConfigPath,
		catalog:      opts.Catalog,
		fixedCatalog: opts.Catalog != nil,
		logger:       opts.Logger,
		output:       opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		searchCommand, trendingCommand, recommendCommand, playCommand, serveCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before resolves the configuration named by --config (plus the environment overlay) and sets the log level.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")

	config, err := shared.ResolveConfig(path)
	if err != nil {
		return ctx, err
	}

	r.config = config
	r.configPath = path
	if !r.fixedCatalog {
		r.catalog = nil
	}

	level := shared.ParseLogLevel(config.Log.Level)
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	return ctx, nil
}

// SetLogger replaces the logger, e.g. to keep log output out of the TUI frame.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// catalogFor picks the catalog for cmd honoring --mock and --live.
func (r *Runner) catalogFor(cmd *cli.Command) (services.Catalog, error) {
	if r.fixedCatalog {
		return r.catalog, nil
	}

	yt := r.config.YouTube
	switch {
	case cmd.Bool("mock"):
		return services.NewMockCatalog(), nil
	case cmd.Bool("live"):
		if yt.APIKey == "" && yt.OAuthToken == "" {
			return nil, fmt.Errorf("%w: set %s or youtube.api_key", shared.ErrMissingCredentials, shared.EnvAPIKey)
		}
		yt.Mock = false
		return services.NewCatalog(yt, r.logger), nil
	}

	if r.catalog == nil {
		r.catalog = services.NewCatalog(yt, r.logger)
		r.logger.Debug("catalog selected", "name", r.catalog.Name())
	}
	return r.catalog, nil
}

// newSession builds a session over the selected catalog, recording history unless disabled.
//
// The returned cleanup closes the history database and must always be called.
func (r *Runner) newSession(cmd *cli.Command) (*session.Session, func(), error) {
	catalog, err := r.catalogFor(cmd)
	if err != nil {
		return nil, nil, err
	}

	opts := session.Opts{Catalog: catalog, Logger: r.logger}
	cleanup := func() {}

	if r.config.History.Enabled && !cmd.Bool("no-history") {
		db, err := r.openDatabase()
		if err != nil {
			r.logger.Warn("listening history disabled", "error", err)
		} else {
			recorder := repositories.NewHistoryRecorder(
				repositories.NewPlayRepository(db),
				repositories.NewLikeRepository(db),
				catalog.Name(),
				shared.WithLogger(r.logger, "component", "history"),
			)
			opts.Recorder = recorder
			opts.Likes = recorder
			cleanup = func() { db.Close() }
		}
	}

	return session.New(opts), cleanup, nil
}

func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.OpenMigrated(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", r.config.Database.Path, err)
	}
	return db, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
