package main

import (
	"fmt"
	"os"

	"github.com/sethvargo/go-password/password"
	"github.com/spf13/cobra"

	"github.com/vmunix/reelgo/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Interactive setup wizard",
	Long: `Write a server config file.

The wizard asks for the OMDb API key and the store backend and generates
a random token signing secret. With --defaults the commented template is
written instead, reading secrets from the environment.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInitCmd,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config")
	initCmd.Flags().Bool("defaults", false, "Write the template config without prompting")
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	defaults, _ := cmd.Flags().GetBool("defaults")

	path := "config.toml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if defaults {
		if err := config.WriteDefault(path, force); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "reelgo setup wizard")
	fmt.Fprintln(cmd.OutOrStdout())

	cfg, err := runWizard(newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	if err := cfg.Write(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Start the server with: reelgod -config %s\n", path)
	return nil
}

// runWizard asks for the settings that have no sensible default.
func runWizard(p *prompter) (*config.Config, error) {
	cfg := config.Default()

	apiKey, err := p.promptRequired("OMDb API key")
	if err != nil {
		return nil, err
	}
	cfg.OMDb.APIKey = apiKey

	cfg.Store.Driver = p.promptWithDefault("Store (redis, sqlite, memory)", cfg.Store.Driver)
	switch cfg.Store.Driver {
	case "redis":
		cfg.Store.URL = p.promptWithDefault("Redis URL", config.DefaultRedisURL)
	case "sqlite":
		cfg.Store.URL = ""
		cfg.Store.Path = p.promptWithDefault("SQLite path", config.DefaultSQLitePath)
	default:
		cfg.Store.URL = ""
	}

	secret, err := password.Generate(48, 12, 0, false, true)
	if err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	cfg.Auth.JWTSecret = secret

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &config.Error{Errors: errs}
	}
	return cfg, nil
}
