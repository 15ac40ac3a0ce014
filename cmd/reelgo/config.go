package main

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/vmunix/reelgo/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without starting the server.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
}

func runConfigTest(_ *cobra.Command, args []string) error {
	explicit := ""
	if len(args) > 0 {
		explicit = args[0]
	}
	path, err := config.Resolve(explicit)
	if err != nil {
		return err
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	if len(e.Errors) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range e.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Server:   %s:%d (log: %s)\n", cfg.Server.Host, cfg.Server.Port, cfg.Server.LogLevel)
	switch cfg.Store.Driver {
	case "sqlite":
		fmt.Printf("  Store:    sqlite (%s)\n", cfg.Store.Path)
	case "redis":
		fmt.Printf("  Store:    redis (%s)\n", redactURL(cfg.Store.URL))
	default:
		fmt.Printf("  Store:    %s\n", cfg.Store.Driver)
	}
	fmt.Printf("  OMDb:     %s (key %s)\n", cfg.OMDb.BaseURL, keyState(cfg.OMDb.APIKey))
	fmt.Printf("  Cache:    search results for %s\n", cfg.Cache.SearchTTL)
	fmt.Printf("  Search:   %d concurrent lookups, first page cap %d, batch cap %d\n",
		cfg.Search.DetailConcurrency, cfg.Search.FirstPageCap, cfg.Search.BatchCap)
	fmt.Printf("  Sessions: %s tokens\n", cfg.Auth.TokenTTL)
}

func keyState(key string) string {
	if key == "" {
		return "missing"
	}
	return "set"
}

// redactURL hides any password in a store URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
