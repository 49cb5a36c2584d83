package cli

import (
	"os"
	"path/filepath"
)

// Paths provides access to the ~/.devotional directory structure
type Paths struct {
	// HomeDir is the user's home directory
	HomeDir string
}

// NewPaths creates a Paths rooted at the user's home directory
func NewPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{HomeDir: home}, nil
}

// BaseDir returns the base directory (~/.devotional)
func (p *Paths) BaseDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir)
}

// ConfigFile returns the config file path (~/.devotional/config.yaml)
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.BaseDir(), DefaultConfigFile)
}

// DataDir returns the data directory (~/.devotional/data)
func (p *Paths) DataDir() string {
	return filepath.Join(p.BaseDir(), "data")
}

// FavoritesDir returns the favorites store directory
// (~/.devotional/data/favorites)
func (p *Paths) FavoritesDir() string {
	return filepath.Join(p.DataDir(), "favorites")
}

// EnsureDataDir creates the data directory if it doesn't exist
func (p *Paths) EnsureDataDir() error {
	return os.MkdirAll(p.DataDir(), 0755)
}
