// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	OMDb   OMDbConfig   `toml:"omdb"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Search SearchConfig `toml:"search"`
	Auth   AuthConfig   `toml:"auth"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file,omitempty"`
}

type OMDbConfig struct {
	APIKey  string        `toml:"api_key"`
	BaseURL string        `toml:"base_url,omitempty"`
	Timeout time.Duration `toml:"timeout,omitempty"`
}

// StoreConfig selects the key-value backend.
// Driver is one of "redis", "sqlite" or "memory".
type StoreConfig struct {
	Driver string `toml:"driver"`
	URL    string `toml:"url,omitempty"`  // redis://[:password@]host:port/db
	Path   string `toml:"path,omitempty"` // sqlite database file
}

type CacheConfig struct {
	SearchTTL time.Duration `toml:"search_ttl,omitempty"`
}

type SearchConfig struct {
	DetailConcurrency int `toml:"detail_concurrency,omitempty"`
	FirstPageCap      int `toml:"first_page_cap,omitempty"`
	BatchCap          int `toml:"batch_cap,omitempty"`
}

type AuthConfig struct {
	JWTSecret  string        `toml:"jwt_secret"`
	TokenTTL   time.Duration `toml:"token_ttl,omitempty"`
	BcryptCost int           `toml:"bcrypt_cost,omitempty"`
}

// Load reads and parses the configuration file.
// Unresolved environment variables and validation failures are reported
// together as a *Error.
func Load(path string) (*Config, error) {
	cfg, missing, err := decode(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &Error{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation parses the file and applies defaults but skips
// validation and ignores unresolved environment variables.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := decode(path)
	return cfg, err
}

func decode(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

// Store defaults.
const (
	DefaultRedisURL   = "redis://localhost:6379/0"
	DefaultSQLitePath = "./data/reelgo.db"
)

// Default returns a config with every default applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8484
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = "https://www.omdbapi.com"
	}
	if c.OMDb.Timeout == 0 {
		c.OMDb.Timeout = 10 * time.Second
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "redis"
	}
	if c.Store.Driver == "redis" && c.Store.URL == "" {
		c.Store.URL = DefaultRedisURL
	}
	if c.Store.Driver == "sqlite" && c.Store.Path == "" {
		c.Store.Path = DefaultSQLitePath
	}
	if c.Cache.SearchTTL == 0 {
		c.Cache.SearchTTL = 24 * time.Hour
	}
	if c.Search.DetailConcurrency == 0 {
		c.Search.DetailConcurrency = 10
	}
	if c.Search.FirstPageCap == 0 {
		c.Search.FirstPageCap = 5
	}
	if c.Search.BatchCap == 0 {
		c.Search.BatchCap = 20
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
}
