// Package app wires configuration, logging, and the country catalog into
// the pieces phonemask commands use.
package app

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/dshills/phonemask/internal/config"
	"github.com/dshills/phonemask/internal/controller"
	"github.com/dshills/phonemask/internal/country"
	"github.com/dshills/phonemask/internal/logging"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. When empty the
	// default path is used if it exists.
	ConfigPath string

	// EnvFile is a dotenv file read before the environment.
	EnvFile string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Getenv reads the environment. Defaults to os.LookupEnv.
	Getenv func(string) (string, bool)
}

// DefaultConfigPath is read when no config path is given.
const DefaultConfigPath = "phonemask.toml"

// Application holds the components shared by commands.
type Application struct {
	config   *config.Config
	log      *logging.Logger
	table    *country.Table
	resolver *country.Resolver
	registry *controller.Registry
	getenv   func(string) (string, bool)
}

// New loads configuration and builds the application.
func New(opts Options) (*Application, error) {
	app := &Application{getenv: opts.Getenv}
	if app.getenv == nil {
		app.getenv = os.LookupEnv
	}

	if err := app.bootstrap(opts); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap(opts Options) error {
	// 1. Config
	path, required := opts.ConfigPath, true
	if path == "" {
		path, required = DefaultConfigPath, false
	}
	cfg, err := config.Load(config.LoadOptions{
		Path:     path,
		Required: required,
		EnvFile:  opts.EnvFile,
		Getenv:   app.getenv,
	})
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(opts.LogLevel)
	}
	app.config = cfg

	// 2. Logger
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	if opts.LogOutput != nil {
		logCfg.Output = opts.LogOutput
	}
	app.log = logging.New(logCfg)

	// 3. Catalog
	if cfg.Catalog.Path != "" {
		app.table, err = country.LoadTable(cfg.Catalog.Path)
		if err != nil {
			return &InitError{Component: "catalog", Err: err}
		}
		app.log.Debug("loaded %d countries from %s", app.table.Len(), cfg.Catalog.Path)
	} else {
		app.table = country.DefaultTable()
	}

	// 4. Resolver
	app.resolver, err = country.NewResolver(app.lookup(), cfg.Mask.DefaultCountry,
		country.WithLogger(app.log.WithComponent("country")))
	if err != nil {
		return &InitError{Component: "resolver", Err: err}
	}

	// 5. Registry
	locked, err := cfg.LockedKeys()
	if err != nil {
		return &InitError{Component: "keys", Err: err}
	}
	app.registry = controller.NewRegistry(app.resolver, app.log,
		controller.WithRetainDigits(cfg.Mask.RetainDigits),
		controller.WithLockedKeys(locked...),
	)
	return nil
}

// lookup builds the country source selected by catalog.source.
func (app *Application) lookup() country.Lookup {
	switch app.config.Catalog.Source {
	case "table":
		return app.table
	case "numberplan":
		return country.NewNumberPlan()
	default:
		return country.Chain(app.table, country.NewNumberPlan())
	}
}

// InitialCountry picks the country a new field starts with. An explicit
// code wins; otherwise the locale is consulted when detection is enabled.
func (app *Application) InitialCountry(ctx context.Context, code string) country.Country {
	if code != "" {
		return app.resolver.Resolve(code)
	}
	if !app.config.Mask.Detect {
		return app.resolver.Default()
	}
	detector := country.LocaleDetector{Getenv: func(k string) string {
		v, _ := app.getenv(k)
		return v
	}}
	return country.Detect(ctx, app.resolver, app.log.WithComponent("detect"), detector)
}

// WatchCatalog reloads the catalog file on change until ctx ends. onReload
// receives the new country list after each successful reload.
func (app *Application) WatchCatalog(ctx context.Context, onReload func([]country.Country)) error {
	if !app.config.Catalog.Watch || app.config.Catalog.Path == "" {
		return ErrWatchDisabled
	}

	w, err := country.NewWatcher(app.table, app.config.Catalog.Path,
		country.WithWatcherLogger(app.log.WithComponent("catalog")),
		country.WithReloadHook(func(_ int, err error) {
			if err == nil && onReload != nil {
				onReload(app.table.All())
			}
		}),
	)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.log
}

// Catalog returns the country table.
func (app *Application) Catalog() *country.Table {
	return app.table
}

// Resolver returns the country resolver.
func (app *Application) Resolver() *country.Resolver {
	return app.resolver
}

// Registry returns the field registry.
func (app *Application) Registry() *controller.Registry {
	return app.registry
}

// Shutdown unbinds every field.
func (app *Application) Shutdown() {
	app.registry.Close()
}
