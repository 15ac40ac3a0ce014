package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>...",
	Short: "Search for movies",
	Long: `Search the OMDb catalogue.

The first page answers quickly; the server keeps fetching further pages
in the background and later searches for the same title are served
from its cache. Use --all to wait for every page.

Examples:
  reelgo search batman
  reelgo search "the matrix" --year 1999
  reelgo search star wars --genre Sci-Fi --min-score 7 --sort rating-desc
  reelgo search alien --all --pages 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("year", "", "Release year")
	searchCmd.Flags().String("genre", "", "Genre (e.g. Action, Drama, Sci-Fi)")
	searchCmd.Flags().Float64("min-score", 0, "Minimum IMDb rating")
	searchCmd.Flags().Float64("max-score", 10, "Maximum IMDb rating")
	searchCmd.Flags().String("sort", "", "Sort: year-asc, year-desc, rating-asc, rating-desc")
	searchCmd.Flags().Bool("all", false, "Fetch every page before answering")
	searchCmd.Flags().Int("pages", 0, "With --all, the last page to fetch (default: server limit)")
}

func searchOptions(cmd *cobra.Command) SearchOptions {
	opts := SearchOptions{}
	opts.Year, _ = cmd.Flags().GetString("year")
	opts.Genre, _ = cmd.Flags().GetString("genre")
	opts.Sort, _ = cmd.Flags().GetString("sort")
	if cmd.Flags().Changed("min-score") {
		v, _ := cmd.Flags().GetFloat64("min-score")
		opts.MinScore = &v
	}
	if cmd.Flags().Changed("max-score") {
		v, _ := cmd.Flags().GetFloat64("max-score")
		opts.MaxScore = &v
	}
	return opts
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	opts := searchOptions(cmd)
	all, _ := cmd.Flags().GetBool("all")
	pages, _ := cmd.Flags().GetInt("pages")

	client := NewClient(serverURL, authToken)
	var (
		results *SearchResponse
		err     error
	)
	if all {
		results, err = client.SearchAll(query, pages, opts)
	} else {
		results, err = client.Search(query, opts)
	}
	if err != nil {
		if !jsonOutput {
			printHint(err)
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(results)
		return nil
	}

	if len(results.Data) == 0 {
		fmt.Println("No movies found")
		if results.Hint != "" {
			fmt.Println("Hint:", results.Hint)
		}
		return nil
	}

	fmt.Printf("Found %d movies for %q%s:\n\n", len(results.Data), query, searchSummary(results))
	fmt.Print(movieTable(results.Data))
	return nil
}

func searchSummary(r *SearchResponse) string {
	var parts []string
	if r.TotalResults > 0 {
		parts = append(parts, fmt.Sprintf("%d total", r.TotalResults))
	}
	if r.TotalPages > 0 {
		parts = append(parts, fmt.Sprintf("%d pages", r.TotalPages))
	}
	if r.Cached {
		parts = append(parts, "cached")
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
