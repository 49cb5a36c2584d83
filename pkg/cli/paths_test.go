package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	home := t.TempDir()
	p := &Paths{HomeDir: home}

	base := filepath.Join(home, DefaultBaseDir)
	if got := p.BaseDir(); got != base {
		t.Errorf("BaseDir() = %q, want %q", got, base)
	}
	if got := p.ConfigFile(); got != filepath.Join(base, DefaultConfigFile) {
		t.Errorf("ConfigFile() = %q", got)
	}
	if got := p.FavoritesDir(); got != filepath.Join(base, "data", "favorites") {
		t.Errorf("FavoritesDir() = %q", got)
	}

	if err := p.EnsureDataDir(); err != nil {
		t.Fatalf("EnsureDataDir error: %v", err)
	}
	if info, err := os.Stat(p.DataDir()); err != nil || !info.IsDir() {
		t.Errorf("data dir not created: %v", err)
	}
}

func TestNewPaths(t *testing.T) {
	p, err := NewPaths()
	if err != nil {
		t.Fatalf("NewPaths error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if p.HomeDir != home {
		t.Errorf("HomeDir = %q, want %q", p.HomeDir, home)
	}
}
