// Package config loads optional converter defaults from a dotfile, so flags
// shared across a project do not have to be repeated on every invocation.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the defaults file looked up in the working directory and then
// in the user's home directory.
const FileName = ".bib2text.yaml"

// Defaults mirrors the converter flags. Explicit flags always override it.
type Defaults struct {
	MaxAuthors      int    `yaml:"max_authors"`
	Sorting         string `yaml:"sorting"`
	IncludeAbstract bool   `yaml:"include_abstract"`
	IncludeURL      bool   `yaml:"include_url"`
}

// builtin is what applies when no defaults file exists.
func builtin() Defaults {
	return Defaults{MaxAuthors: 3, Sorting: "none"}
}

// Load returns the effective defaults: the built-in values overlaid with the
// first defaults file found. A missing file is not an error; an unreadable
// or malformed one is.
func Load() (Defaults, error) {
	d := builtin()
	path, err := find()
	if err != nil || path == "" {
		return d, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("parse %s: %w", path, err)
	}
	if d.MaxAuthors <= 0 {
		d.MaxAuthors = builtin().MaxAuthors
	}
	if d.Sorting == "" {
		d.Sorting = builtin().Sorting
	}
	return d, nil
}

// find returns the path of the nearest defaults file, or "" when none exists.
func find() (string, error) {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", nil
}
