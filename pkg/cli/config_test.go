package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"1234", "****"},
		{"12345678", "********"},
		{"123456789", "1234*6789"},
		{"AIzaSyD-1234567890abcd", "AIza**************abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := MaskAPIKey(tt.key)
			if got != tt.want {
				t.Errorf("MaskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if len(cfg.Contexts) != 0 || cfg.CurrentContext != "" {
		t.Errorf("config = %+v, want empty", cfg)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	err = cfg.AddContext("home", &Context{
		APIKey:       "$DEVOTIONAL_TEST_KEY",
		Timeout:      30,
		DefaultVoice: "Puck",
		Models:       map[string]string{"study": "gemini-2.5-flash"},
	})
	if err != nil {
		t.Fatalf("AddContext error: %v", err)
	}
	if err := cfg.AddContext("work", &Context{APIKey: "literal"}); err != nil {
		t.Fatalf("AddContext error: %v", err)
	}
	if err := cfg.UseContext("home"); err != nil {
		t.Fatalf("UseContext error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config mode = %o, want 0600", perm)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if loaded.CurrentContext != "home" {
		t.Errorf("CurrentContext = %q, want home", loaded.CurrentContext)
	}
	if got := loaded.ListContexts(); !slices.Equal(got, []string{"home", "work"}) {
		t.Errorf("ListContexts() = %v", got)
	}
	ctx, err := loaded.ResolveContext("")
	if err != nil {
		t.Fatalf("ResolveContext error: %v", err)
	}
	if ctx.Name != "home" || ctx.DefaultVoice != "Puck" || ctx.Model("study") != "gemini-2.5-flash" {
		t.Errorf("context = %+v", ctx)
	}
	if ctx.Model("quiz") != "" {
		t.Errorf("Model(quiz) = %q, want empty", ctx.Model("quiz"))
	}
}

func TestConfig_DeleteContext(t *testing.T) {
	cfg, _ := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err := cfg.AddContext("a", &Context{APIKey: "k"}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.UseContext("a"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.DeleteContext("a"); err != nil {
		t.Fatalf("DeleteContext error: %v", err)
	}
	if cfg.CurrentContext != "" {
		t.Errorf("CurrentContext = %q after deleting it", cfg.CurrentContext)
	}
	if err := cfg.DeleteContext("a"); err == nil {
		t.Error("DeleteContext of a missing context should fail")
	}
	if err := cfg.UseContext("missing"); err == nil {
		t.Error("UseContext of a missing context should fail")
	}
}

func TestContext_ResolvedAPIKey(t *testing.T) {
	t.Setenv("DEVOTIONAL_TEST_KEY", "from-env")

	tests := []struct {
		key  string
		want string
	}{
		{"plain", "plain"},
		{"$DEVOTIONAL_TEST_KEY", "from-env"},
		{"${DEVOTIONAL_TEST_KEY}", "from-env"},
		{"$DEVOTIONAL_UNSET_KEY", ""},
		{"", ""},
	}
	for _, tt := range tests {
		ctx := &Context{APIKey: tt.key}
		if got := ctx.ResolvedAPIKey(); got != tt.want {
			t.Errorf("ResolvedAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestContextGate(t *testing.T) {
	t.Setenv("DEVOTIONAL_TEST_KEY", "")

	cfg, _ := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	gate := ContextGate{Config: cfg}

	if gate.HasSelectedCredential() {
		t.Error("gate open with no contexts")
	}

	if err := cfg.AddContext("env", &Context{APIKey: "$DEVOTIONAL_TEST_KEY"}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddContext("key", &Context{APIKey: "secret"}); err != nil {
		t.Fatal(err)
	}
	if gate.HasSelectedCredential() {
		t.Error("gate open with no current context")
	}

	if err := cfg.UseContext("env"); err != nil {
		t.Fatal(err)
	}
	if gate.HasSelectedCredential() {
		t.Error("gate open with an empty resolved key")
	}

	if err := cfg.UseContext("key"); err != nil {
		t.Fatal(err)
	}
	if !gate.HasSelectedCredential() {
		t.Error("gate closed with a selected key")
	}

	named := ContextGate{Config: cfg, Name: "env"}
	if named.HasSelectedCredential() {
		t.Error("named gate should use the named context")
	}
	if (ContextGate{}).HasSelectedCredential() {
		t.Error("gate without config should be closed")
	}
}
