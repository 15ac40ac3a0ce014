// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123"

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func TestLoad_Valid(t *testing.T) {
	cfgPath := writeConfig(t, `
[server]
port = 8080

[omdb]
api_key = "abc123"

[auth]
jwt_secret = "`+testSecret+`"
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.OMDb.APIKey != "abc123" {
		t.Errorf("expected api key abc123, got %q", cfg.OMDb.APIKey)
	}
}

func TestLoad_MissingEnvVar(t *testing.T) {
	os.Unsetenv("MISSING_OMDB_KEY")
	cfgPath := writeConfig(t, `
[omdb]
api_key = "${MISSING_OMDB_KEY}"

[auth]
jwt_secret = "`+testSecret+`"
`)

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("expected error for missing env var")
	}
	if !strings.Contains(err.Error(), "MISSING_OMDB_KEY") {
		t.Errorf("expected MISSING_OMDB_KEY in error, got %v", err)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	cfgPath := writeConfig(t, `
[server]
port = 99999

[auth]
jwt_secret = "`+testSecret+`"
`)

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "server.port") {
		t.Errorf("expected server.port in error, got %v", err)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfgPath := writeConfig(t, `
[auth]
jwt_secret = "`+testSecret+`"
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8484 {
		t.Errorf("expected default port 8484, got %d", cfg.Server.Port)
	}
	if cfg.Store.Driver != "redis" || cfg.Store.URL != "redis://localhost:6379/0" {
		t.Errorf("expected default redis store, got %+v", cfg.Store)
	}
	if cfg.Cache.SearchTTL != 24*time.Hour {
		t.Errorf("expected 24h search ttl, got %s", cfg.Cache.SearchTTL)
	}
	if cfg.Search.FirstPageCap != 5 || cfg.Search.BatchCap != 20 {
		t.Errorf("expected page caps 5/20, got %d/%d", cfg.Search.FirstPageCap, cfg.Search.BatchCap)
	}
}

func TestLoadWithoutValidation(t *testing.T) {
	cfgPath := writeConfig(t, `
[server]
port = 99999
`)

	cfg, err := LoadWithoutValidation(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 99999 {
		t.Errorf("expected port 99999, got %d", cfg.Server.Port)
	}
}

func TestLoad_EnvVarDefault(t *testing.T) {
	os.Unsetenv("OPTIONAL_VAR")
	cfgPath := writeConfig(t, `
[server]
host = "${OPTIONAL_VAR:-localhost}"

[auth]
jwt_secret = "`+testSecret+`"
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected host localhost, got %s", cfg.Server.Host)
	}
}

func TestLoad_Durations(t *testing.T) {
	cfgPath := writeConfig(t, `
[omdb]
timeout = "3s"

[cache]
search_ttl = "90m"

[auth]
jwt_secret = "`+testSecret+`"
token_ttl = "2h"
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OMDb.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", cfg.OMDb.Timeout)
	}
	if cfg.Cache.SearchTTL != 90*time.Minute {
		t.Errorf("expected 90m ttl, got %s", cfg.Cache.SearchTTL)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h token ttl, got %s", cfg.Auth.TokenTTL)
	}
}
