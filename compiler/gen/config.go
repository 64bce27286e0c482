package gen

import (
	"path/filepath"
	"runtime"

	"github.com/dave/jennifer/jen"
	"go.uber.org/zap"

	"github.com/syssam/patterngen/pattern"
)

// defaultHeader is added at the top of each generated file unless
// overridden with WithHeader.
const defaultHeader = "// Code generated by patterngen. DO NOT EDIT."

// Synthesizer assembles the generated companion of one class for one
// pattern. Implementations live outside this package; the builder
// synthesizer is the only one shipped today.
type Synthesizer interface {
	// Pattern returns the pattern this synthesizer realizes.
	Pattern() pattern.Pattern
	// FileName returns the name of the file generated for the class.
	FileName(t *Type) string
	// Synthesize assembles the generated file for the class from its
	// classified member sets. Non-fatal findings go to the reporter.
	Synthesize(t *Type, sets *MemberSets, rep *Reporter) (*jen.File, error)
}

// Config holds the settings of one generation run.
type Config struct {
	// Target is the directory generated files are written to.
	Target string

	// Package is the package name of generated files. Class descriptions
	// may override it per class. Empty means the base name of Target.
	Package string

	// Header is the comment added at the top of each generated file.
	// Empty means the default patterngen header.
	Header string

	// Workers bounds how many classes are processed concurrently.
	// Zero or negative means one worker per available CPU.
	Workers int

	// Force disables the generation cache and rewrites every file.
	Force bool

	// Synthesizers realize the patterns this run can generate for.
	// A class pattern without a registered synthesizer is skipped with
	// an info diagnostic.
	Synthesizers []Synthesizer

	// Sink receives the rendered files. Nil means a DirSink rooted at
	// Target.
	Sink Sink

	// Cache skips classes whose descriptions are unchanged since the
	// last run. Nil means a file cache under Target, disabled when
	// Target is empty.
	Cache *FileCache

	// Reporter collects diagnostics of the run. Nil means a fresh
	// reporter wired to Logger.
	Reporter *Reporter

	// Logger used for structured progress and diagnostics logging.
	// Nil disables logging.
	Logger *zap.SugaredLogger
}

// DefaultConfig returns a Config with the default header set.
func DefaultConfig() *Config {
	return &Config{
		Header: defaultHeader,
	}
}

// Output groups the output settings of the config.
func (c *Config) Output() struct {
	Target  string
	Package string
	Header  string
} {
	return struct {
		Target  string
		Package string
		Header  string
	}{
		Target:  c.Target,
		Package: c.Package,
		Header:  c.Header,
	}
}

// synthesizer returns the registered synthesizer for the pattern.
func (c *Config) synthesizer(p pattern.Pattern) (Synthesizer, bool) {
	for _, s := range c.Synthesizers {
		if s.Pattern() == p {
			return s, true
		}
	}
	return nil, false
}

// pkg returns the package name generated files declare when the class
// carries no override.
func (c *Config) pkg() string {
	if c.Package != "" {
		return c.Package
	}
	if c.Target != "" {
		return filepath.Base(c.Target)
	}
	return "main"
}

// header returns the file header comment.
func (c *Config) header() string {
	if c.Header != "" {
		return c.Header
	}
	return defaultHeader
}

// workers returns the bounded worker count.
func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// logger returns the configured logger, or a no-op one.
func (c *Config) logger() *zap.SugaredLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop().Sugar()
}

// reporter returns the configured reporter, or a fresh one wired to the
// config logger.
func (c *Config) reporter() *Reporter {
	if c.Reporter != nil {
		return c.Reporter
	}
	return NewReporter(c.logger())
}

// sink returns the configured sink, or a DirSink rooted at Target.
func (c *Config) sink() Sink {
	if c.Sink != nil {
		return c.Sink
	}
	return NewDirSink(c.Target)
}

// cache returns the cache of the run: nil when forced or when no cache
// can be placed, the configured one otherwise, falling back to a file
// cache under Target.
func (c *Config) cache() *FileCache {
	switch {
	case c.Force:
		return nil
	case c.Cache != nil:
		return c.Cache
	case c.Target != "" && c.Sink == nil:
		return NewFileCache(c.Target)
	}
	return nil
}
