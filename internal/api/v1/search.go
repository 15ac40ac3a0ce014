package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vmunix/reelgo/internal/filter"
	"github.com/vmunix/reelgo/internal/search"
)

// parseFilters reads year, genre, min_score, max_score and sort.
func parseFilters(r *http.Request) (filter.Filters, error) {
	q := r.URL.Query()
	f := filter.Filters{
		Year:  strings.TrimSpace(q.Get("year")),
		Genre: strings.TrimSpace(q.Get("genre")),
	}

	if f.Year != "" {
		if len(f.Year) != 4 || strings.Trim(f.Year, "0123456789") != "" {
			return f, fmt.Errorf("year must be a four digit year")
		}
	}

	sortKey, ok := filter.ParseSort(q.Get("sort"))
	if !ok {
		return f, fmt.Errorf("unknown sort %q", q.Get("sort"))
	}
	f.Sort = sortKey

	minScore, err := queryFloat(r, "min_score")
	if err != nil {
		return f, err
	}
	maxScore, err := queryFloat(r, "max_score")
	if err != nil {
		return f, err
	}
	if minScore != nil || maxScore != nil {
		rng := filter.Range{Min: filter.MinScore, Max: filter.MaxScore}
		if minScore != nil {
			rng.Min = *minScore
		}
		if maxScore != nil {
			rng.Max = *maxScore
		}
		if rng.Min < filter.MinScore || rng.Max > filter.MaxScore || rng.Min > rng.Max {
			return f, fmt.Errorf("score range must satisfy 0 <= min_score <= max_score <= 10")
		}
		f.Score = &rng
	}
	return f, nil
}

// resultStatus maps a failed search result to an HTTP status.
func resultStatus(res search.Result) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Code {
	case search.CodeInvalidQuery:
		return http.StatusBadRequest
	case search.CodeNotConfigured:
		return http.StatusServiceUnavailable
	case search.CodeNoResults, search.CodeNoMatches:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func genreHint(genre string) string {
	if suggestion, ok := filter.SuggestGenre(genre); ok {
		return fmt.Sprintf("Unknown genre %q. Did you mean %q?", genre, suggestion)
	}
	return ""
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}

	res := s.deps.Searcher.Search(r.Context(), r.URL.Query().Get("q"), f)
	resp := searchResponse{Result: res}
	if res.Code == search.CodeNoMatches {
		resp.Hint = genreHint(f.Genre)
	}
	writeJSON(w, resultStatus(res), resp)
}

func (s *Server) searchBatch(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}
	endPage := queryInt(r, "end_page", search.DefaultBatchCap)

	res := s.deps.Searcher.BatchPages(r.Context(), r.URL.Query().Get("q"), endPage, f)
	resp := searchResponse{Result: res}
	if res.Success && len(res.Data) == 0 {
		resp.Hint = genreHint(f.Genre)
	}
	writeJSON(w, resultStatus(res), resp)
}
