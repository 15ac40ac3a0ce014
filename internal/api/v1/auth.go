package v1

import (
	"errors"
	"net/http"

	"github.com/vmunix/reelgo/internal/auth"
	"github.com/vmunix/reelgo/internal/users"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	u, err := s.deps.Accounts.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrUsernameTooShort), errors.Is(err, auth.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	case errors.Is(err, auth.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "USERNAME_TAKEN", err.Error())
		return
	case err != nil:
		s.log.Error("registration failed", "username", req.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "STORE_ERROR", "Registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, u.Public())
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	u := s.deps.Accounts.Verify(r.Context(), req.Username, req.Password)
	if u == nil {
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
		return
	}

	token, exp, err := s.deps.Tokens.Issue(auth.Identity{UserID: u.ID, Username: u.Username})
	if err != nil {
		s.log.Error("token issue failed", "user_id", u.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "TOKEN_ERROR", "Could not create session")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: exp, User: u.Public()})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())
	u, err := s.deps.Users.GetByID(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, u.Public())
}
