package gen

import (
	"errors"

	"go.uber.org/zap"
)

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the package name declared by generated files.
// Class descriptions may still override it per class.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers bounds how many classes are processed concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "worker count cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithForce disables the generation cache and rewrites every file.
func WithForce(force bool) Option {
	return func(c *Config) error {
		c.Force = force
		return nil
	}
}

// WithSynthesizer registers a pattern synthesizer.
// Each pattern can carry at most one synthesizer per run.
func WithSynthesizer(s Synthesizer) Option {
	return func(c *Config) error {
		if s == nil {
			return NewConfigError("Synthesizer", nil, "synthesizer cannot be nil")
		}
		if _, ok := c.synthesizer(s.Pattern()); ok {
			return NewConfigError("Synthesizer", s.Pattern().String(), "pattern already has a synthesizer")
		}
		c.Synthesizers = append(c.Synthesizers, s)
		return nil
	}
}

// WithSink sets a custom emission sink.
// If not set, generated files are written under the target directory.
func WithSink(sink Sink) Option {
	return func(c *Config) error {
		if sink == nil {
			return NewConfigError("Sink", nil, "sink cannot be nil")
		}
		c.Sink = sink
		return nil
	}
}

// WithCache sets the generation cache.
func WithCache(cache *FileCache) Option {
	return func(c *Config) error {
		if cache == nil {
			return NewConfigError("Cache", nil, "cache cannot be nil")
		}
		c.Cache = cache
		return nil
	}
}

// WithReporter sets the diagnostics reporter shared by the run.
func WithReporter(rep *Reporter) Option {
	return func(c *Config) error {
		if rep == nil {
			return NewConfigError("Reporter", nil, "reporter cannot be nil")
		}
		c.Reporter = rep
		return nil
	}
}

// WithLogger sets the logger used for progress and diagnostics logging.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Config) error {
		if logger == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
