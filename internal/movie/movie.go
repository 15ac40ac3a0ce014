// Package movie defines the normalized title record shared by search, filtering and the watchlist.
package movie

import (
	"strconv"
	"strings"
)

// Record is an enriched title built from an OMDb detail lookup.
// Records are treated as immutable once constructed.
type Record struct {
	IMDbID   string  `json:"imdbID"`
	Title    string  `json:"title"`
	Year     string  `json:"year"`
	Rated    string  `json:"rated"`
	Runtime  string  `json:"runtime"`
	Plot     string  `json:"plot"`
	Poster   string  `json:"poster"`
	Rating   float64 `json:"rating"`
	Type     string  `json:"type"`
	Genre    string  `json:"genre"`
	Director string  `json:"director"`
}

// YearNumber returns the leading digits of Year as an int, or 0 when there
// are none. Series years such as "2010–2014" yield 2010.
func (r Record) YearNumber() int {
	end := 0
	for end < len(r.Year) && r.Year[end] >= '0' && r.Year[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(r.Year[:end])
	if err != nil {
		return 0
	}
	return n
}

// Genres splits the comma-separated genre list into trimmed tags.
func (r Record) Genres() []string {
	if r.Genre == "" {
		return nil
	}
	parts := strings.Split(r.Genre, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
