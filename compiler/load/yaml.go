package load

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ReadFile parses one YAML class description.
func ReadFile(path string) (*Class, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read %s: %w", path, err)
	}
	c := &Class{}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("load: parse %s: %w", path, err)
	}
	if err := c.defaults(); err != nil {
		return nil, fmt.Errorf("load: %s: %w", path, err)
	}
	c.Pos = path
	return c, nil
}

// ReadDir parses every .yaml/.yml class description under dir, in lexical
// file-name order.
func ReadDir(dir string) ([]*Class, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load: read dir %s: %w", dir, err)
	}
	var classes []*Class
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
		default:
			continue
		}
		c, err := ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("load: no class descriptions found in %s", dir)
	}
	return classes, nil
}
