package v1

import (
	"net/http"
	"strings"

	"github.com/vmunix/reelgo/internal/auth"
)

// authenticate attaches the bearer token's identity to the request context.
// Requests without a token pass through anonymously; a token that fails to
// parse is rejected.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authorization header must be a bearer token")
			return
		}
		id, err := s.deps.Tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			s.log.Debug("rejected token", "error", err)
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

// requireAuth wraps a handler and returns 401 for anonymous requests.
func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.IdentityFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
			return
		}
		next(w, r)
	}
}

// requireSearcher wraps a handler and returns 503 if searcher is not configured.
func (s *Server) requireSearcher(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Searcher == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Searcher not configured")
			return
		}
		next(w, r)
	}
}

// requireWatchlist wraps a handler and returns 503 if the watchlist service is not configured.
func (s *Server) requireWatchlist(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Watchlist == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Watchlist not configured")
			return
		}
		next(w, r)
	}
}
