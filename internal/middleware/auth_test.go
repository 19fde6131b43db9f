package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questforge/questforge-backend/internal/database"
	"github.com/questforge/questforge-backend/internal/services"
)

func setupAuthRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: srv.Addr()})
	return srv
}

func authedRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/enemy/info", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	return req
}

func TestRequireAuthInjectsUserID(t *testing.T) {
	setupAuthRedis(t)

	token, err := services.CreateSession("user-1")
	require.NoError(t, err)

	var gotUserID string
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotUserID)
}

func TestRequireAuthRejectsMissingOrBogusSession(t *testing.T) {
	setupAuthRedis(t)

	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a valid session")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, "bogus-token"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthSlidesSessionExpiry(t *testing.T) {
	srv := setupAuthRedis(t)

	token, err := services.CreateSession("user-1")
	require.NoError(t, err)

	srv.FastForward(24 * time.Hour)
	require.Equal(t, services.SessionDuration-24*time.Hour, srv.TTL(services.SessionKeyPrefix+token))

	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, token))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.SessionDuration, srv.TTL(services.SessionKeyPrefix+token))
}
