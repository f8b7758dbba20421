package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/kiview/internal/common"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type publicTokenRequest struct {
	Path string `json:"path"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, []byte(req.Password))
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", req.Username)
	writeJSON(w, http.StatusOK, map[string]string{"id": user.ID})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, []byte(req.Password))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// handleFile streams a file from the session user's tree. The {path...}
// wildcard carries directory path and filename together, matching
// /api/file/<dir>/<filename>.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	s.streamFile(w, r, userID, r.PathValue("path"))
}

// handleCreatePublicToken issues a share token for a file path. Missing
// session or path are reported in the body with an "error" key, not with an
// HTTP error status; callers must inspect the body.
func (s *Server) handleCreatePublicToken(w http.ResponseWriter, r *http.Request) {

	userID, err := s.sessionUserID(r)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": "no session user"})
		return
	}

	var req publicTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeJSON(w, http.StatusOK, map[string]string{"error": "file path required"})
		return
	}

	token, err := s.tokens.Issue(r.Context(), userID, req.Path)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		writeJSON(w, http.StatusOK, map[string]string{"error": "could not create token"})
		return
	}

	s.logger.Info(r.Context(), "Issued public token", "path", req.Path)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handlePublicFile redeems a share token and streams the shared file with
// permissive CORS headers, since this path is meant for cross-origin
// embedding.
func (s *Server) handlePublicFile(w http.ResponseWriter, r *http.Request) {

	addCORSHeaders(w)

	t, err := s.tokens.Redeem(r.Context(), r.PathValue("token"))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, common.ErrTokenExpired):
			http.Error(w, "token expired", http.StatusGone)
		default:
			s.logger.Error(r.Context(), err.Error())
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	s.streamFile(w, r, t.UserID, t.FilePath)
}

func (s *Server) handlePublicPreflight(w http.ResponseWriter, r *http.Request) {
	addCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

// streamFile opens a file in the given user's tree and writes it out with
// content type, inline disposition, and length headers. Storage misses map
// to a bare 404 with no error detail in the body.
func (s *Server) streamFile(w http.ResponseWriter, r *http.Request, userID, path string) {

	rc, info, err := s.files.Open(r.Context(), userID, path)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		s.logger.Error(r.Context(), err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	h := w.Header()
	h.Set("Content-Type", info.MimeType)
	h.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", info.Name))
	if info.Size > 0 {
		h.Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}

	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error(r.Context(), "error streaming file", "path", path, "err", err.Error())
	}
}
