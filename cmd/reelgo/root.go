package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// EnvToken names the environment variable holding a session token.
const EnvToken = "REELGO_TOKEN"

var (
	serverURL  string
	jsonOutput bool
	authToken  string
)

var rootCmd = &cobra.Command{
	Use:   "reelgo",
	Short: "CLI client for the reelgo movie discovery server",
	Long: `reelgo - CLI client for the reelgo movie discovery server

Search the OMDb catalogue with genre, score and sort filters,
and keep a scored watchlist.

Run 'reelgod' to start the server daemon.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8484", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv(EnvToken), "Session token (default $"+EnvToken+")")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("reelgo {{.Version}}\n")
}
