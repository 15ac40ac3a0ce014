package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/reelgo/internal/config"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Heat", truncate("Heat", 10))
	assert.Equal(t, "The Lord...", truncate("The Lord of the Rings", 11))
	assert.Equal(t, "Amé", truncate("Amélie", 3))
}

func TestMovieTable(t *testing.T) {
	out := movieTable([]MovieResponse{
		{Title: "Pulp Fiction", Year: "1994", Rating: 8.9, Genre: "Crime, Drama"},
		{Title: "Unrated", Year: "2020"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "Pulp Fiction")
	assert.Contains(t, lines[2], "8.9")
	assert.Contains(t, lines[3], "  -")
}

func TestSearchOptions_OnlyChangedScores(t *testing.T) {
	cmd := searchCmd
	t.Cleanup(func() {
		_ = cmd.Flags().Set("min-score", "0")
		cmd.Flags().Lookup("min-score").Changed = false
	})
	require.NoError(t, cmd.Flags().Set("min-score", "6.5"))

	opts := searchOptions(cmd)
	require.NotNil(t, opts.MinScore)
	assert.InDelta(t, 6.5, *opts.MinScore, 0.0001)
	assert.Nil(t, opts.MaxScore)
	assert.Equal(t, "6.5", opts.values().Get("min_score"))
}

func TestGeneratePassword(t *testing.T) {
	a, err := generatePassword()
	require.NoError(t, err)
	b, err := generatePassword()
	require.NoError(t, err)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestPrompter(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("\nvalue\n\n\nfinal\n"), &out)

	assert.Equal(t, "def", p.promptWithDefault("Name", "def"))
	assert.Equal(t, "value", p.promptWithDefault("Name", "def"))

	got, err := p.promptRequired("Key")
	require.NoError(t, err)
	assert.Equal(t, "final", got)
	assert.Contains(t, out.String(), "Value required")

	_, err = p.promptRequired("Key")
	assert.Error(t, err, "input exhausted")
}

func TestRunWizard_SQLite(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("my-omdb-key\nsqlite\n\n"), &out)

	cfg, err := runWizard(p)
	require.NoError(t, err)
	assert.Equal(t, "my-omdb-key", cfg.OMDb.APIKey)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, config.DefaultSQLitePath, cfg.Store.Path)
	assert.Empty(t, cfg.Store.URL)
	assert.Len(t, cfg.Auth.JWTSecret, 48)
}

func TestRunWizard_InvalidDriver(t *testing.T) {
	p := newPrompter(strings.NewReader("key\nmongo\n"), &bytes.Buffer{})
	_, err := runWizard(p)
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.NotEmpty(t, cfgErr.Errors)
}

func TestInitCmd_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	rootCmd.SetArgs([]string{"init", "--defaults", path})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		_ = initCmd.Flags().Set("defaults", "false")
	})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "${OMDB_API_KEY:-}")

	// second run refuses to overwrite
	rootCmd.SetArgs([]string{"init", "--defaults", path})
	assert.Error(t, rootCmd.Execute())
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "redis://:xxxxx@cache:6379/0", redactURL("redis://:hunter2@cache:6379/0"))
	assert.Equal(t, "redis://localhost:6379/0", redactURL("redis://localhost:6379/0"))
}

func TestStatusCmd(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/status").
		RespondJSON(StatusResponse{Status: "ok", Store: "memory"}).
		Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	require.NoError(t, runStatusCmd(nil, nil))
}

func TestWatchlistToggleCmd(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/watchlist/tt0110912/toggle").
		ExpectPOST().
		ExpectBearer("tok").
		RespondJSON(ToggleResponse{Success: true, InWatchlist: true, Score: 114}).
		Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	t.Run("requires token", func(t *testing.T) {
		defer withToken("")()
		assert.ErrorContains(t, runWatchlistToggleCmd(nil, []string{"tt0110912"}), "not logged in")
	})

	t.Run("toggles", func(t *testing.T) {
		defer withToken("tok")()
		require.NoError(t, runWatchlistToggleCmd(nil, []string{"tt0110912"}))
	})
}
