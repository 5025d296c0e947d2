package api

import (
	"context"
	"net/http"
	"strings"
)

type userKey struct{}

// requireUser rejects requests without X-User-ID and stores the id in the context.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if id == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing " + HeaderUserID + " header"})
			return
		}
		ctx := context.WithValue(r.Context(), userKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}

// sessionID picks the checkout session: the header, else the user id, so a
// user never runs two payments at once without naming separate sessions.
func sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(HeaderSessionID)); id != "" {
		return id
	}
	return userID(r.Context())
}
