package bootstrap

import (
	"github.com/kbukum/fieldflow/executor"
	"github.com/kbukum/fieldflow/logger"
	"github.com/kbukum/fieldflow/schema"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger   *logger.Logger
	registry *executor.Registry
	loader   schema.Loader
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application and installs it as
// the global logger. If not set, the logger is initialized from the
// config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithRegistry sets the transformer registry used by the engine.
func WithRegistry(r *executor.Registry) Option {
	return func(o *appOptions) {
		o.registry = r
	}
}

// WithLoader replaces the file loader built from the config's schema
// directories.
func WithLoader(l schema.Loader) Option {
	return func(o *appOptions) {
		o.loader = l
	}
}
