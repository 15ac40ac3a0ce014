package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Manage your watchlist",
	Long: `Manage your watchlist. Requires a session token (see 'reelgo login').

Adding a title earns points based on its rating and age;
removing it takes the same points back.`,
	Args: cobra.NoArgs,
	RunE: runWatchlistListCmd,
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watchlisted movies",
	Args:  cobra.NoArgs,
	RunE:  runWatchlistListCmd,
}

var watchlistToggleCmd = &cobra.Command{
	Use:   "toggle <imdb-id>",
	Short: "Add a title, or remove it if already present",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistToggleCmd,
}

var watchlistStatusCmd = &cobra.Command{
	Use:   "status <imdb-id>",
	Short: "Check whether a title is on your watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistStatusCmd,
}

func init() {
	rootCmd.AddCommand(watchlistCmd)
	watchlistCmd.AddCommand(watchlistListCmd, watchlistToggleCmd, watchlistStatusCmd)
}

func requireToken() error {
	if authToken == "" {
		return fmt.Errorf("not logged in: set --token or $%s", EnvToken)
	}
	return nil
}

func runWatchlistListCmd(_ *cobra.Command, _ []string) error {
	if err := requireToken(); err != nil {
		return err
	}
	client := NewClient(serverURL, authToken)
	resp, err := client.Watchlist()
	if err != nil {
		return fmt.Errorf("watchlist failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	if len(resp.Data) == 0 {
		fmt.Println("Watchlist is empty")
		return nil
	}
	fmt.Printf("%d movies on your watchlist:\n\n", len(resp.Data))
	fmt.Print(movieTable(resp.Data))
	return nil
}

func runWatchlistToggleCmd(_ *cobra.Command, args []string) error {
	if err := requireToken(); err != nil {
		return err
	}
	client := NewClient(serverURL, authToken)
	resp, err := client.Toggle(args[0])
	if err != nil {
		return fmt.Errorf("toggle failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	if resp.InWatchlist {
		fmt.Printf("Added %s (score %d)\n", args[0], resp.Score)
	} else {
		fmt.Printf("Removed %s (score %d)\n", args[0], resp.Score)
	}
	return nil
}

func runWatchlistStatusCmd(_ *cobra.Command, args []string) error {
	client := NewClient(serverURL, authToken)
	resp, err := client.WatchlistStatus(args[0])
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	if resp.InWatchlist {
		fmt.Printf("%s is on your watchlist\n", args[0])
	} else {
		fmt.Printf("%s is not on your watchlist\n", args[0])
	}
	return nil
}
