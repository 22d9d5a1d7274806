package heritage

import (
	"github.com/rs/zerolog"

	"github.com/wanderstone/heritage/pkg/constants"
	"github.com/wanderstone/heritage/pkg/errors"
	"github.com/wanderstone/heritage/pkg/logging"
)

// config holds the resolved pipeline configuration.
type config struct {
	rawDir         string
	componentsPath string
	datasetPath    string
	servingPath    string
	locales        []string
	dryRun         bool
	logger         *zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*config) error

// newConfig applies options over the defaults.
func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		rawDir:      constants.DefaultRawDir,
		datasetPath: constants.DefaultDatasetPath,
		servingPath: constants.DefaultServingPath,
		logger:      logging.Default(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.componentsPath == "" {
		cfg.componentsPath = DefaultComponentsPath(cfg.rawDir)
	}
	if cfg.datasetPath == "" {
		return nil, errors.NewConfigError("pipeline", "dataset path cannot be empty", nil)
	}

	return cfg, nil
}

// WithRawDir sets the directory holding the source snapshots.
func WithRawDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewConfigError("pipeline", "raw directory cannot be empty", nil)
		}
		c.rawDir = dir
		return nil
	}
}

// WithComponentsPath overrides the component export path. By default it is
// components.csv inside the raw directory.
func WithComponentsPath(path string) Option {
	return func(c *config) error {
		c.componentsPath = path
		return nil
	}
}

// WithDatasetPath sets the primary publish destination.
func WithDatasetPath(path string) Option {
	return func(c *config) error {
		c.datasetPath = path
		return nil
	}
}

// WithServingPath sets the secondary serving destination. Empty disables the
// secondary write.
func WithServingPath(path string) Option {
	return func(c *config) error {
		c.servingPath = path
		return nil
	}
}

// WithLocales narrows the locale universe to the given codes. The codes must
// exist in the embedded registry and include the primary locale.
func WithLocales(locales ...string) Option {
	return func(c *config) error {
		c.locales = locales
		return nil
	}
}

// WithDryRun validates the full dataset but writes nothing.
func WithDryRun(dryRun bool) Option {
	return func(c *config) error {
		c.dryRun = dryRun
		return nil
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.NewConfigError("pipeline", "logger cannot be nil", nil)
		}
		c.logger = logger
		return nil
	}
}
