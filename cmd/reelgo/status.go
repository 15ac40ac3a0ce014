package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(_ *cobra.Command, _ []string) error {
	client := NewClient(serverURL, authToken)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	fmt.Printf("Server:     %s (%s)\n", serverURL, status.Status)
	fmt.Printf("Version:    %s\n", status.Version)
	fmt.Printf("Store:      %s\n", status.Store)
	fmt.Printf("Search:     %s\n", enabled(status.Search))
	fmt.Printf("Watchlist:  %s\n", enabled(status.Watchlist))
	return nil
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
