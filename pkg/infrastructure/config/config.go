// Package config loads calculator settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/storecalc/pkg/domain/entities"
)

const (
	defaultAddr         = ":8080"
	defaultLocale       = "en-US"
	defaultLogLevel     = "info"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Locale     string              `yaml:"locale"`
	LogLevel   string              `yaml:"log_level"`
	Currency   string              `yaml:"currency"`
	Server     ServerConfig        `yaml:"server"`
	Defaults   *entities.InputForm `yaml:"defaults"`
	Currencies []entities.Currency `yaml:"currencies"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the YAML file at path (when non-empty), fills in defaults and
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		cfg, err = Parse(data)
		if err != nil {
			return nil, err
		}
	}

	applyEnv(cfg, os.LookupEnv)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Parse parses YAML data into a Config with defaults applied.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Locale == "" {
		cfg.Locale = defaultLocale
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultAddr
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = defaultIdleTimeout
	}
	if cfg.Defaults == nil {
		cfg.Defaults = &entities.InputForm{}
	}
	builtin := entities.DefaultForm()
	for _, field := range entities.FormFields() {
		if strings.TrimSpace(cfg.Defaults.Get(field.Key)) == "" {
			cfg.Defaults.Set(field.Key, builtin.Get(field.Key))
		}
	}
	if len(cfg.Currencies) == 0 {
		cfg.Currencies = entities.DefaultCurrencies()
	}
	if cfg.Currency == "" {
		cfg.Currency = string(cfg.Currencies[0].Code)
	}
}

// applyEnv overrides file values. PORT is honoured when STORECALC_ADDR is unset.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup("STORECALC_ADDR"); ok && strings.TrimSpace(v) != "" {
		cfg.Server.Addr = strings.TrimSpace(v)
	} else if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		cfg.Server.Addr = ":" + strings.TrimSpace(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok && strings.TrimSpace(v) != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup("STORECALC_LOCALE"); ok && strings.TrimSpace(v) != "" {
		cfg.Locale = strings.TrimSpace(v)
	}
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("locale %q: %w", c.Locale, err)
	}

	seen := make(map[entities.CurrencyCode]bool, len(c.Currencies))
	for i, cur := range c.Currencies {
		if _, err := entities.NewCurrency(cur.Code, cur.Symbol, cur.Name); err != nil {
			return fmt.Errorf("currencies[%d]: %w", i, err)
		}
		code := cur.Code.Normalize()
		if seen[code] {
			return fmt.Errorf("currencies[%d]: duplicate code %s", i, code)
		}
		seen[code] = true
	}

	if !seen[entities.CurrencyCode(c.Currency).Normalize()] {
		return fmt.Errorf("default currency %s is not in the currency list", c.Currency)
	}
	return nil
}

// Language returns the parsed display locale, falling back to en-US.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// CurrencyList returns the configured currencies as pointers for repository loading.
func (c *Config) CurrencyList() []*entities.Currency {
	out := make([]*entities.Currency, 0, len(c.Currencies))
	for i := range c.Currencies {
		cur := c.Currencies[i]
		out = append(out, &cur)
	}
	return out
}
