// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
)

// Config holds API server configuration.
type Config struct {
	Version     string
	StoreDriver string
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
	log  *slog.Logger
}

// NewWithDeps creates a new v1 API server with explicit dependencies.
func NewWithDeps(deps ServerDeps, cfg Config, log *slog.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDependency, err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{deps: deps, cfg: cfg, log: log}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)

	// Search
	mux.HandleFunc("GET /api/v1/search", s.requireSearcher(s.search))
	mux.HandleFunc("GET /api/v1/search/batch", s.requireSearcher(s.searchBatch))

	// Accounts
	mux.HandleFunc("POST /api/v1/auth/register", s.register)
	mux.HandleFunc("POST /api/v1/auth/login", s.login)
	mux.HandleFunc("GET /api/v1/me", requireAuth(s.me))

	// Watchlist
	mux.HandleFunc("GET /api/v1/watchlist", s.requireWatchlist(requireAuth(s.listWatchlist)))
	mux.HandleFunc("GET /api/v1/watchlist/{id}", s.requireWatchlist(s.watchlistStatus))
	mux.HandleFunc("POST /api/v1/watchlist/{id}/toggle", s.requireWatchlist(requireAuth(s.toggleWatchlist)))
}

// Handler returns the API routes behind the authentication middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.authenticate(mux)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON reads a size-limited JSON body into dest.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dest)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// queryFloat extracts an optional finite float from query string.
func queryFloat(r *http.Request, name string) (*float64, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &f, nil
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:    "ok",
		Version:   s.cfg.Version,
		Store:     s.cfg.StoreDriver,
		Search:    s.deps.Searcher != nil,
		Watchlist: s.deps.Watchlist != nil,
	})
}
