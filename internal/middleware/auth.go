package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/questforge/questforge-backend/internal/services"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "qf_session"

type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth validates the session cookie against the Redis session
// store and injects the resolved user id into the request context.
// Requests without a valid session get 401. Each authenticated request
// slides the session expiry out by another full duration.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			unauthenticated(w)
			return
		}

		userID, ok, err := services.ValidateSession(cookie.Value)
		if err != nil || !ok {
			unauthenticated(w)
			return
		}

		if err := services.RefreshSession(cookie.Value); err != nil {
			log.Printf("failed to refresh session: %v", err)
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated user id set by RequireAuth, or ""
// for unauthenticated requests.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"Please authenticate first."}`))
}
