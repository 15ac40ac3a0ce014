package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func formatRating(r float64) string {
	if r <= 0 {
		return "  -"
	}
	return fmt.Sprintf("%.1f", r)
}

// movieTable renders movies as a numbered table.
func movieTable(movies []MovieResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  # │ %-36s │ %-9s │ %6s │ %s\n", "TITLE", "YEAR", "RATING", "GENRE")
	b.WriteString("────┼──────────────────────────────────────┼───────────┼────────┼──────────────────────\n")
	for i, m := range movies {
		fmt.Fprintf(&b, " %2d │ %-36s │ %-9s │ %6s │ %s\n",
			i+1, truncate(m.Title, 36), truncate(m.Year, 9), formatRating(m.Rating), truncate(m.Genre, 30))
	}
	return b.String()
}

// printHint prints the server's suggestion attached to a failed request.
func printHint(err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Hint != "" {
		fmt.Println("Hint:", apiErr.Hint)
	}
}
