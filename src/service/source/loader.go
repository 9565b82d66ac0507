// Package source turns a directory of generated web artifacts into the
// path → content mapping the engine consumes, and writes healed output back.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"webguard/src/config"
	"webguard/src/model"
	"webguard/src/util"
)

// Loader reads and writes analyzed file sets
type Loader struct {
	exclusions *util.ExclusionMatcher
}

// NewLoader creates a loader honoring the configured exclusions
func NewLoader(cfg config.ExclusionsConfig) *Loader {
	return &Loader{exclusions: util.NewExclusionMatcher(cfg)}
}

// LoadDir walks root and reads every markup, style, and script file into a
// relative-path → content map
func (l *Loader) LoadDir(root string) (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if model.LanguageForPath(rel) == model.LanguageUnknown {
			return nil
		}
		if l.exclusions.Matches(rel) {
			util.Debug("Loader: excluding %s", rel)
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		files[rel] = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	util.Info("Loader: %d files loaded from %s", len(files), root)
	return files, nil
}

// WriteFiles writes a file set under root, creating directories as needed
func (l *Loader) WriteFiles(root string, files map[string]string) error {
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
	}
	return nil
}
