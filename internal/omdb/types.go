package omdb

import (
	"math"
	"strconv"
	"strings"

	"github.com/vmunix/reelgo/internal/movie"
)

// Placeholder values substituted for "N/A" fields.
const (
	NotRated          = "Not Rated"
	NoPlot            = "No description available."
	PlaceholderPoster = "/placeholder-movie.png"
	Unknown           = "Unknown"
)

// ResultsPerPage is the fixed page size of the search endpoint.
const ResultsPerPage = 10

// Stub is a lightweight search hit.
type Stub struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Search       []Stub `json:"Search"`
	TotalResults string `json:"totalResults"`
	Response     string `json:"Response"`
	Error        string `json:"Error,omitempty"`
}

// Total parses the string-encoded result count, returning 0 when malformed.
func (p *SearchPage) Total() int {
	n, err := strconv.Atoi(strings.TrimSpace(p.TotalResults))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Title is the full detail record returned by an id lookup.
type Title struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Poster     string `json:"Poster"`
	Metascore  string `json:"Metascore"`
	IMDbRating string `json:"imdbRating"`
	IMDbVotes  string `json:"imdbVotes"`
	IMDbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Response   string `json:"Response"`
	Error      string `json:"Error,omitempty"`
}

// Rating parses imdbRating; "N/A" and malformed values yield 0.
func (t *Title) Rating() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(t.IMDbRating), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Record normalizes the detail into a movie.Record.
func (t *Title) Record() movie.Record {
	return movie.Record{
		IMDbID:   t.IMDbID,
		Title:    t.Title,
		Year:     t.Year,
		Rated:    orDefault(t.Rated, NotRated),
		Runtime:  t.Runtime,
		Plot:     orDefault(t.Plot, NoPlot),
		Poster:   orDefault(t.Poster, PlaceholderPoster),
		Rating:   t.Rating(),
		Type:     t.Type,
		Genre:    orDefault(t.Genre, Unknown),
		Director: orDefault(t.Director, Unknown),
	}
}

func orDefault(v, def string) string {
	if v == "N/A" {
		return def
	}
	return v
}
