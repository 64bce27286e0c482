package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

// Sink receives the rendered files of a generation run. Distinct classes
// never share a file, so implementations may be called concurrently for
// different classes.
type Sink interface {
	// Write persists one generated file of the named class.
	Write(class, name string, src []byte) error
}

// DirSink writes generated files under a root directory and formats them
// with goimports first. Formatting also resolves the imports that opaque
// marker bodies reference but the synthesizer cannot know about.
type DirSink struct {
	root string
}

// NewDirSink returns a sink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{root: dir}
}

// Write formats and writes one generated file.
func (s *DirSink) Write(class, name string, src []byte) error {
	path := filepath.Join(s.root, name)
	formatted, err := imports.Process(path, src, nil)
	if err != nil {
		// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
		debugPath := path + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, src, 0o644)
		return NewEmissionError(class, name, fmt.Sprintf("format generated source (unformatted written to %s)", debugPath), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewEmissionError(class, name, "create output directory", err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return NewEmissionError(class, name, "write generated file", err)
	}
	return nil
}
