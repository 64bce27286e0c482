package gen

import (
	"bytes"
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/patterngen/compiler/load"
	"github.com/syssam/patterngen/pattern"
)

// Generate compiles every class description and emits one file per class
// per targeted pattern. Classes are processed concurrently and share no
// state besides the reporter; per-class findings become diagnostics
// rather than returned errors, so one broken class never stops the
// others. After all classes finished, Generate returns a GenerationError
// when any class reported an error.
func Generate(ctx context.Context, c *Config, classes []*load.Class) error {
	if len(c.Synthesizers) == 0 {
		return NewConfigError("Synthesizers", nil, "no synthesizer set: call WithSynthesizer() before Generate()")
	}
	if c.Target == "" && c.Sink == nil {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if c.Target != "" {
		if err := os.MkdirAll(c.Target, 0o755); err != nil {
			return err
		}
	}
	rep := c.reporter()
	sink := c.sink()
	cache := c.cache()
	if cache != nil {
		if err := cache.Load(); err != nil {
			return err
		}
	}
	// Distinct classes never share an emission target; redeclared names
	// fail early instead of racing on the same file.
	seen := make(map[string]bool, len(classes))
	run := make([]*load.Class, 0, len(classes))
	for _, cls := range classes {
		if seen[cls.Name] {
			rep.Errorf(cls.Name, "", NewStructuralError(cls.Name, "", "class redeclared", nil),
				"class %q declared more than once", cls.Name)
			continue
		}
		seen[cls.Name] = true
		run = append(run, cls)
	}
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(c.workers())
	for _, cls := range run {
		cls := cls // per-iteration copy; required while go.mod targets go < 1.22
		errg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				generateClass(c, cls, rep, sink, cache)
				return nil
			}
		})
	}
	if err := errg.Wait(); err != nil {
		return err
	}
	if cache != nil {
		if err := cache.Flush(); err != nil {
			c.logger().Warnw("cache flush failed", "error", err)
		}
	}
	rep.Log()
	if rep.HasErrors() {
		return NewGenerationError(rep.FailedClasses(), "generation failed", nil)
	}
	return nil
}

// generateClass runs the per-class pipeline: structural validation,
// ambiguity resolution, classification, conflict detection, synthesis,
// emission. All findings go to the reporter.
func generateClass(c *Config, cls *load.Class, rep *Reporter, sink Sink, cache *FileCache) {
	t, err := NewType(c, cls)
	if err != nil {
		rep.Errorf(cls.Name, "", err, "invalid class description")
		return
	}
	for _, name := range t.UnknownPatterns() {
		rep.Warnf(t.Name, "", nil, "unknown pattern %q, skipping", name)
	}
	if len(t.Patterns) == 0 {
		rep.Infof(t.Name, "", "no patterns target the class, nothing to generate")
		return
	}
	ambiguous := Ambiguity(t)
	ValidateAffects(t, ambiguous, rep)
	var digest string
	if cache != nil {
		if digest, err = cache.Key(cls); err != nil {
			rep.Warnf(t.Name, "", err, "cache digest failed, regenerating")
		}
	}
	for _, p := range t.Patterns {
		s, ok := c.synthesizer(p)
		if !ok {
			rep.Infof(t.Name, "", "no synthesizer for pattern %q, skipping", p)
			continue
		}
		name := s.FileName(t)
		if cache != nil && digest != "" && cache.Fresh(cacheKey(t.Name, p), digest) {
			rep.Infof(t.Name, "", "unchanged since last run, skipping %s", name)
			continue
		}
		sets := Classify(t, p, ambiguous, rep)
		DetectConflicts(t, sets, rep)
		f, err := s.Synthesize(t, sets, rep)
		if err != nil {
			rep.Errorf(t.Name, "", err, "synthesis failed for pattern %q", p)
			continue
		}
		var buf bytes.Buffer
		if err := f.Render(&buf); err != nil {
			rep.Errorf(t.Name, "", NewEmissionError(t.Name, name, "render generated source", err),
				"render failed for %s", name)
			continue
		}
		if err := sink.Write(t.Name, name, buf.Bytes()); err != nil {
			rep.Errorf(t.Name, "", err, "emission failed for %s", name)
			continue
		}
		if cache != nil && digest != "" {
			if err := cache.Record(cacheKey(t.Name, p), digest, name); err != nil {
				rep.Warnf(t.Name, "", err, "cache record failed for %s", name)
			}
		}
	}
}

// cacheKey identifies one generated file in the cache index.
func cacheKey(class string, p pattern.Pattern) string {
	return class + "/" + p.String()
}
