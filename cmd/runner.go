package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/repositories"
	"github.com/desertthunder/boardsync/internal/services"
	"github.com/desertthunder/boardsync/internal/shared"
	"github.com/desertthunder/boardsync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SourceProvider is the provider boards are read from.
type SourceProvider interface {
	services.AuthAdapter
	services.BoardProvider
	services.ItemSource
}

// DestinationProvider is the provider images are written to.
type DestinationProvider interface {
	services.AuthAdapter
	services.BoardProvider
	services.ItemSink
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	source      SourceProvider
	destination DestinationProvider
	store       models.IdentityStore
	db          *sql.DB
	reconciler  *tasks.Reconciler
	lister      *tasks.BoardLister
	pipeline    *tasks.Pipeline
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	openBrowser func(string) error
	authTimeout time.Duration
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Source, Destination and Store are built from the config on first use when nil.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Source      SourceProvider
	Destination DestinationProvider
	Store       models.IdentityStore
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		source:      opts.Source,
		destination: opts.Destination,
		store:       opts.Store,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		openBrowser: shared.OpenBrowser,
		authTimeout: 2 * time.Minute,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, statusCommand, boardsCommand, syncCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration named by --config, falling back to the embedded defaults.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}
	if r.config != nil {
		return ctx, nil
	}

	r.config = shared.DefaultConfig()
	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		return ctx, nil
	}

	config, err := shared.LoadConfig(r.configPath)
	if err != nil {
		return ctx, err
	}
	r.config = config
	return ctx, nil
}

// After releases the database connection.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	if r.db != nil {
		err := r.db.Close()
		r.db = nil
		return err
	}
	return nil
}

// SetLogger replaces the logger of the runner and of every collaborator built after the call.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.reconciler, r.lister, r.pipeline = nil, nil, nil
}

func (r *Runner) cfg() *shared.Config {
	if r.config == nil {
		r.config = shared.DefaultConfig()
	}
	return r.config
}

// providers builds the Pinterest and Miro clients from the configured credentials.
func (r *Runner) providers() error {
	config := r.cfg()
	opts := []services.Option{services.WithHTTPClient(r.httpClient), services.WithLogger(r.logger)}

	if r.source == nil {
		if !config.Credentials.Pinterest.Configured() {
			return r.unconfigured(services.ProviderPinterest)
		}
		pinterest, err := services.NewPinterest(config.Credentials.Pinterest, config.Limits, opts...)
		if err != nil {
			return fmt.Errorf("pinterest credentials: %w", err)
		}
		r.source = pinterest
	}

	if r.destination == nil {
		if !config.Credentials.Miro.Configured() {
			return r.unconfigured(services.ProviderMiro)
		}
		miro, err := services.NewMiro(config.Credentials.Miro, config.Limits, opts...)
		if err != nil {
			return fmt.Errorf("miro credentials: %w", err)
		}
		r.destination = miro
	}
	return nil
}

func (r *Runner) unconfigured(provider string) error {
	return fmt.Errorf("%w: set client_id and client_secret under [credentials.%s] in %s", shared.ErrMissingConfig, provider, r.configPath)
}

// connect opens the configured identity store and applies pending migrations.
func (r *Runner) connect(ctx context.Context) error {
	if r.store != nil {
		return nil
	}

	cfg := r.cfg().Database
	db, err := shared.OpenDatabase(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
	}
	shared.ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)

	if err := shared.RunMigrations(ctx, db, cfg.Driver, nil); err != nil {
		db.Close()
		return fmt.Errorf("%w: %w", shared.ErrStoreUnavailable, err)
	}

	r.db = db
	r.store = repositories.NewIdentityRepository(db, cfg.Driver)
	return nil
}

// init builds the providers, the store and the task layer on top of them.
func (r *Runner) init(ctx context.Context) error {
	if err := r.providers(); err != nil {
		return err
	}
	if err := r.connect(ctx); err != nil {
		return err
	}

	if r.reconciler == nil {
		r.reconciler = tasks.NewReconciler(r.store, r.logger)
	}
	if r.lister == nil {
		r.lister = tasks.NewBoardLister(r.source, r.destination, r.logger)
	}
	if r.pipeline == nil {
		r.pipeline = tasks.NewPipeline(r.source, r.destination, r.logger)
	}
	return nil
}

// identity loads the identity recorded by the last `auth` run.
func (r *Runner) identity(ctx context.Context) (*models.Identity, error) {
	id := r.cfg().Session.IdentityID
	if id == "" {
		return nil, &shared.MissingCredentialError{Provider: r.source.Name()}
	}
	return r.store.FindByID(ctx, id)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

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
