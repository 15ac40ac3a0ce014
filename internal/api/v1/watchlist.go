package v1

import (
	"net/http"

	"github.com/vmunix/reelgo/internal/auth"
	"github.com/vmunix/reelgo/internal/watchlist"
)

func (s *Server) listWatchlist(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())
	res := s.deps.Watchlist.Movies(r.Context(), id.UserID)
	if !res.Success {
		writeJSON(w, failureStatus(res.Error), res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// watchlistStatus answers for anonymous callers too; they are never
// watching anything.
func (s *Server) watchlistStatus(w http.ResponseWriter, r *http.Request) {
	titleID := r.PathValue("id")
	id, _ := auth.IdentityFromContext(r.Context())
	writeJSON(w, http.StatusOK, watchlistStatusResponse{
		IMDbID:      titleID,
		InWatchlist: s.deps.Watchlist.Status(r.Context(), id.UserID, titleID),
	})
}

func (s *Server) toggleWatchlist(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())
	res := s.deps.Watchlist.Toggle(r.Context(), id.UserID, r.PathValue("id"))
	if !res.Success {
		writeJSON(w, failureStatus(res.Error), res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func failureStatus(msg string) int {
	switch msg {
	case watchlist.MsgNotAuthenticated:
		return http.StatusUnauthorized
	case watchlist.MsgUserNotFound:
		return http.StatusNotFound
	case watchlist.MsgInvalidTitle:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
