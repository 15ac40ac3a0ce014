// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"

	"golang.org/x/crypto/bcrypt"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validStoreDrivers = map[string]bool{
	"redis": true, "sqlite": true, "memory": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// OMDb validation. An empty key is allowed: searches then fail with a
	// configuration error instead of refusing to start.
	if c.OMDb.BaseURL != "" {
		if u, err := url.Parse(c.OMDb.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("omdb.base_url: invalid URL %q", c.OMDb.BaseURL))
		}
	}
	if c.OMDb.Timeout < 0 {
		errs = append(errs, "omdb.timeout: must not be negative")
	}

	// Store validation
	if !validStoreDrivers[c.Store.Driver] && c.Store.Driver != "" {
		errs = append(errs, fmt.Sprintf("store.driver: must be one of redis, sqlite, memory; got %q", c.Store.Driver))
	}
	if c.Store.Driver == "redis" && c.Store.URL == "" {
		errs = append(errs, "store.url: required when store.driver is redis")
	}
	if c.Store.Driver == "sqlite" && c.Store.Path == "" {
		errs = append(errs, "store.path: required when store.driver is sqlite")
	}

	// Search validation
	if c.Cache.SearchTTL < 0 {
		errs = append(errs, "cache.search_ttl: must not be negative")
	}
	if c.Search.DetailConcurrency < 0 {
		errs = append(errs, "search.detail_concurrency: must not be negative")
	}
	if c.Search.FirstPageCap < 0 || c.Search.BatchCap < 0 {
		errs = append(errs, "search: page caps must not be negative")
	}
	if c.Search.FirstPageCap > 0 && c.Search.BatchCap > 0 && c.Search.FirstPageCap > c.Search.BatchCap {
		errs = append(errs, fmt.Sprintf("search.first_page_cap: must not exceed batch_cap (%d > %d)", c.Search.FirstPageCap, c.Search.BatchCap))
	}

	// Auth validation
	if c.Auth.JWTSecret == "" {
		errs = append(errs, "auth.jwt_secret: required")
	} else if len(c.Auth.JWTSecret) < 16 {
		errs = append(errs, "auth.jwt_secret: must be at least 16 characters")
	}
	if c.Auth.BcryptCost != 0 && (c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost) {
		errs = append(errs, fmt.Sprintf("auth.bcrypt_cost: must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost))
	}

	return errs
}
