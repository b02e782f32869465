package bootstrap

import (
	"context"
	"fmt"

	"github.com/kbukum/fieldflow/config"
	"github.com/kbukum/fieldflow/executor"
	"github.com/kbukum/fieldflow/field"
	"github.com/kbukum/fieldflow/logger"
	"github.com/kbukum/fieldflow/schema"
)

// App holds the components built from a Config.
type App struct {
	Cfg      *config.Config
	Logger   *logger.Logger
	Loader   schema.Loader
	Registry *executor.Registry
	Engine   *executor.Engine
}

// NewApp applies defaults to cfg, validates it and builds the application.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	o := resolveOptions(opts)
	app := &App{Cfg: cfg, Registry: o.registry}

	if o.logger != nil {
		logger.SetGlobalLogger(o.logger)
	} else {
		logger.Init(cfg.Logging, cfg.Name)
	}
	app.Logger = logger.GetGlobalLogger()

	if o.loader != nil {
		app.Loader = o.loader
	} else {
		app.Loader = schema.NewFileLoader(cfg.Schema.Dirs...).WithLogger(app.Logger)
	}

	if app.Registry == nil {
		app.Registry = executor.NewRegistry()
	}
	engine, err := executor.NewEngine(cfg.Executor, app.Registry, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("executor: %w", err)
	}
	app.Engine = engine

	app.Logger.Info("fieldflow configured", logger.Fields(
		"environment", cfg.Environment,
		"schema_dirs", cfg.Schema.Dirs,
		"max_parallel", cfg.Executor.MaxParallel,
	))
	return app, nil
}

// Catalog loads the named schema and resolves its includes into a field
// catalog.
func (a *App) Catalog(name string) ([]field.Field, error) {
	doc, err := a.Loader.Load(name)
	if err != nil {
		return nil, err
	}
	return schema.Resolve(doc, a.Loader)
}

// Run evaluates the named schema with the given leaf values.
func (a *App) Run(ctx context.Context, name string, leaves map[string]field.Value) (*executor.Result, error) {
	fields, err := a.Catalog(name)
	if err != nil {
		return nil, err
	}
	return a.Engine.Run(ctx, fields, leaves)
}
