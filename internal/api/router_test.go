package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devpatel-io/inklens/internal/config"
	"github.com/devpatel-io/inklens/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRouterDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))

	prev := repositories.DB
	repositories.DB = db
	t.Cleanup(func() { repositories.DB = prev })
}

func authCookie(t *testing.T, userID, sessionToken string) *http.Cookie {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":       userID,
		"sessionToken": sessionToken,
		"exp":          time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(config.Envs.JWTSecret))
	require.NoError(t, err)
	return &http.Cookie{Name: "token", Value: signed}
}

func TestLogoutRoute_RequiresAuth(t *testing.T) {
	setupRouterDB(t)
	router := SetupRouter()

	// Without a cookie the route must still resolve; the middleware answers
	// 401, not the mux with 404.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRoute_DestroysSession(t *testing.T) {
	setupRouterDB(t)
	router := SetupRouter()

	user, err := repositories.CreateUser("alice", "alice@x.com", "pw1")
	require.NoError(t, err)
	token, err := repositories.CreateSession(user.ID, "10.0.0.1", "Firefox")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(authCookie(t, user.ID.String(), token))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	sessions, err := repositories.ListSessions(user.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestProtectedRoutes_RejectWithoutCookie(t *testing.T) {
	setupRouterDB(t)
	router := SetupRouter()

	for _, path := range []string{
		"/api/v1/history",
		"/api/v1/settings",
		"/api/v1/sessions",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
