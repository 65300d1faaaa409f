// internal/config/config.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Environment overrides
const (
	EnvAPIURL = "EZFORMULA_API_URL"
	EnvModule = "EZFORMULA_MODULE"
	EnvToken  = "EZFORMULA_TOKEN"
)

// Config represents the application configuration
type Config struct {
	APIURL             string         `toml:"api_url"`
	CurrentModule      string         `toml:"current_module"`
	CurrentModuleLabel string         `toml:"current_module_label"`
	SuggestionLimit    int            `toml:"suggestion_limit"`
	PageSize           int            `toml:"page_size"`
	RequestTimeoutMS   int            `toml:"request_timeout_ms"`
	BlurDelayMS        int            `toml:"blur_delay_ms"`
	FieldCacheTTLSec   int            `toml:"field_cache_ttl_seconds"`
	FieldCacheSize     int            `toml:"field_cache_size"`
	StaticModules      []StaticModule `toml:"static_modules"`
	Theme              Theme          `toml:"theme_colors"`
	Keys               KeyMap         `toml:"keys"`

	// Token comes from the environment or the keyring, never from the file
	Token string `toml:"-"`
}

// StaticModule is a module always offered for completion
type StaticModule struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
	Icon  string `toml:"icon,omitempty"`
}

// Theme defines the color palette
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgPrimary     string `toml:"bg_primary"`
	BgSecondary   string `toml:"bg_secondary"`
	CardBg        string `toml:"card_bg"`
	PopupBg       string `toml:"popup_bg"`
	BorderColor   string `toml:"border_color"`
	SelectedBg    string `toml:"selected_bg"`
}

// KeyMap defines key bindings of the editor
type KeyMap struct {
	Check    []string `toml:"check"`
	Evaluate []string `toml:"evaluate"`
	Submit   []string `toml:"submit"`
	Copy     []string `toml:"copy"`
	Exit     []string `toml:"exit"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		APIURL:           "http://localhost:8080",
		SuggestionLimit:  10,
		PageSize:         100,
		RequestTimeoutMS: 5000,
		BlurDelayMS:      200,
		FieldCacheTTLSec: 300,
		FieldCacheSize:   64,
		StaticModules: []StaticModule{
			{ID: "user", Label: "User", Icon: "👤"},
			{ID: "organization", Label: "Organization", Icon: "🏢"},
		},
		Theme: Theme{
			// Nord Theme Defaults
			TextPrimary:   "#D8DEE9",
			TextSecondary: "#81A1C1",
			TextFaint:     "#4C566A",
			Accent:        "#88C0D0",
			Success:       "#A3BE8C",
			Error:         "#BF616A",
			Highlight:     "#8FBCBB",
			Warning:       "#D08770",
			BgPrimary:     "#2E3440",
			BgSecondary:   "#3B4252",
			CardBg:        "#434C5E",
			PopupBg:       "#3B4252",
			BorderColor:   "#4C566A",
			SelectedBg:    "#434C5E",
		},
		Keys: KeyMap{
			Check:    []string{"ctrl+k"},
			Evaluate: []string{"ctrl+e"},
			Submit:   []string{"ctrl+s"},
			Copy:     []string{"ctrl+y"},
			Exit:     []string{"esc", "ctrl+c"},
		},
	}
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("ezformula/config.toml")
}

// Load loads the config from disk or creates default, then applies
// environment overrides.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFile reads the config at path. A missing file is created with defaults;
// missing sections are filled in and persisted.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// First run: create default
		cfg := DefaultConfig()
		if err := cfg.SaveFile(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.migrate(DefaultConfig()) {
		// Persist defaults so the user can see and edit them; an unwritable
		// file still leaves the in-memory defaults in place.
		_ = cfg.SaveFile(path)
	}
	return &cfg, nil
}

// migrate fills sections and limits missing from older files
func (c *Config) migrate(defaults *Config) bool {
	updated := false

	if c.APIURL == "" {
		c.APIURL = defaults.APIURL
		updated = true
	}
	if c.Theme.TextPrimary == "" {
		c.Theme = defaults.Theme
		updated = true
	}
	if len(c.Keys.Check) == 0 {
		c.Keys = defaults.Keys
		updated = true
	}
	for _, n := range []struct {
		v   *int
		def int
	}{
		{&c.SuggestionLimit, defaults.SuggestionLimit},
		{&c.PageSize, defaults.PageSize},
		{&c.RequestTimeoutMS, defaults.RequestTimeoutMS},
		{&c.BlurDelayMS, defaults.BlurDelayMS},
		{&c.FieldCacheTTLSec, defaults.FieldCacheTTLSec},
		{&c.FieldCacheSize, defaults.FieldCacheSize},
	} {
		if *n.v <= 0 {
			*n.v = n.def
			updated = true
		}
	}
	return updated
}

// ApplyEnv overlays EZFORMULA_* variables from the environment and an
// optional .env file in the working directory.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvModule)); v != "" {
		c.CurrentModule = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		c.Token = v
	}
}

// Save writes the config to its XDG path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path
func (c *Config) SaveFile(path string) error {
	// Ensure directory exists with secure permissions
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// RequestTimeout is the per-request timeout of the API client
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// BlurDelay is how long the candidate list survives focus loss
func (c *Config) BlurDelay() time.Duration {
	return time.Duration(c.BlurDelayMS) * time.Millisecond
}

// FieldCacheTTL is how long a module's saved fields stay cached
func (c *Config) FieldCacheTTL() time.Duration {
	return time.Duration(c.FieldCacheTTLSec) * time.Second
}
