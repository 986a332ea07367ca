// Package home manages the qrb home directory layout used for default
// output locations.
package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the qrb home directory.
	DefaultDirName = ".qrb"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the qrb home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.qrb).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}
	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// ChaptersDir returns the directory for a document's chapter files.
func (d *Dir) ChaptersDir(stem string) string {
	return filepath.Join(d.path, "chapters", stem)
}

// MarkdownPath returns the path for a document's flattened markdown.
func (d *Dir) MarkdownPath(stem string) string {
	return filepath.Join(d.path, "markdown", stem+".md")
}

// TocPath returns the path for a document's ToC artifact.
func (d *Dir) TocPath(stem string) string {
	return filepath.Join(d.path, "toc", stem+"_toc.json")
}

// EnsureExists creates the home directory tree if it doesn't exist.
func (d *Dir) EnsureExists() error {
	for _, sub := range []string{"chapters", "markdown", "toc"} {
		if err := os.MkdirAll(filepath.Join(d.path, sub), 0o755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", sub, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}
