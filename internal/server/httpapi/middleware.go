package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/kiview/internal/common"
	"github.com/dmitrijs2005/kiview/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// sessionUserID extracts and verifies the access token from the request,
// accepting either the access_token header or an Authorization bearer token.
func (s *Server) sessionUserID(r *http.Request) (string, error) {

	accessToken := r.Header.Get(common.AccessTokenHeaderName)
	if accessToken == "" {
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			accessToken = strings.TrimPrefix(h, "Bearer ")
		}
	}
	if accessToken == "" {
		return "", common.ErrorUnauthorized
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return "", common.ErrorUnauthorized
	}

	return userID, nil
}

// requireUser rejects requests without a valid session token with 401 and
// stores the user ID in the request context otherwise.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := s.sessionUserID(r)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// addCORSHeaders marks a response as consumable from any origin. Only the
// public endpoints carry these headers; they exist for cross-origin embedding.
func addCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}
