package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the base configuration directory name
	DefaultBaseDir = ".devotional"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
)

// Config is the CLI configuration: a set of named credential contexts and
// the one currently selected.
type Config struct {
	// CurrentContext is the name of the currently selected context
	CurrentContext string `yaml:"current_context,omitempty"`

	// Contexts is a map of context name to context configuration
	Contexts map[string]*Context `yaml:"contexts,omitempty"`

	// configPath is the path to the config file
	configPath string
}

// Context is one Gemini credential and its request overrides.
type Context struct {
	// Name is the context name
	Name string `yaml:"name"`

	// APIKey is the Gemini API key. A value starting with '$' names an
	// environment variable, e.g. "$GEMINI_API_KEY".
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL is the API base URL (optional, uses default if empty)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout is the request timeout in seconds (optional)
	Timeout int `yaml:"timeout,omitempty"`

	// DefaultVoice overrides the prebuilt speech voice (optional)
	DefaultVoice string `yaml:"default_voice,omitempty"`

	// Models overrides the model per content kind ("study", "quiz", "speech")
	Models map[string]string `yaml:"models,omitempty"`
}

// LoadConfig loads configuration from path, or from
// ~/.devotional/config.yaml when path is empty. A missing file yields an
// empty configuration that is written on the first Save.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, DefaultBaseDir, DefaultConfigFile)
	}

	cfg := &Config{
		Contexts:   make(map[string]*Context),
		configPath: path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Ensure contexts map is initialized
	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	cfg.configPath = path
	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the config directory path
func (c *Config) Dir() string {
	return filepath.Dir(c.configPath)
}

// AddContext adds or replaces a context
func (c *Config) AddContext(name string, ctx *Context) error {
	ctx.Name = name
	c.Contexts[name] = ctx
	return c.Save()
}

// DeleteContext removes a context
func (c *Config) DeleteContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	delete(c.Contexts, name)
	if c.CurrentContext == name {
		c.CurrentContext = ""
	}
	return c.Save()
}

// UseContext selects a context
func (c *Config) UseContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	c.CurrentContext = name
	return c.Save()
}

// GetContext returns a specific context
func (c *Config) GetContext(name string) (*Context, error) {
	ctx, ok := c.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("context %q not found", name)
	}
	return ctx, nil
}

// ResolveContext returns the context by name, or current context if name is empty
func (c *Config) ResolveContext(name string) (*Context, error) {
	if name == "" {
		if c.CurrentContext == "" {
			return nil, fmt.Errorf("no current context set")
		}
		name = c.CurrentContext
	}
	return c.GetContext(name)
}

// ListContexts returns all context names, sorted
func (c *Config) ListContexts() []string {
	names := make([]string, 0, len(c.Contexts))
	for name := range c.Contexts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResolvedAPIKey returns the API key with environment references expanded.
func (ctx *Context) ResolvedAPIKey() string {
	if strings.HasPrefix(ctx.APIKey, "$") {
		return os.ExpandEnv(ctx.APIKey)
	}
	return ctx.APIKey
}

// Model returns the model override for a content kind, or "".
func (ctx *Context) Model(kind string) string {
	if ctx.Models == nil {
		return ""
	}
	return ctx.Models[kind]
}

// ContextGate reports a credential as selected when the named context (or
// the current one if Name is empty) exists and resolves to a non-empty API
// key. Selecting a credential is done with Config.UseContext.
type ContextGate struct {
	Config *Config
	Name   string
}

func (g ContextGate) HasSelectedCredential() bool {
	if g.Config == nil {
		return false
	}
	ctx, err := g.Config.ResolveContext(g.Name)
	if err != nil {
		return false
	}
	return ctx.ResolvedAPIKey() != ""
}

// MaskAPIKey masks the API key for display
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
