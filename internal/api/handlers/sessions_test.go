package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/devpatel-io/inklens/internal/api/middleware"
	"github.com/devpatel-io/inklens/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminateSession_OwnerAndForeign(t *testing.T) {
	setupHandlerDB(t)

	alice, err := repositories.CreateUser("alice", "alice@x.com", "pw1")
	require.NoError(t, err)
	bob, err := repositories.CreateUser("bob", "bob@x.com", "pw2")
	require.NoError(t, err)

	_, err = repositories.CreateSession(bob.ID, "10.0.0.2", "Chrome")
	require.NoError(t, err)
	bobSessions, err := repositories.ListSessions(bob.ID)
	require.NoError(t, err)
	require.Len(t, bobSessions, 1)
	sessionID := strconv.FormatUint(uint64(bobSessions[0].ID), 10)

	terminate := func(actor string) (int, payload) {
		ctx := context.WithValue(context.Background(), middleware.UserIDKey, actor)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/terminate/"+sessionID, nil).WithContext(ctx)
		req.SetPathValue("id", sessionID)
		rec := httptest.NewRecorder()
		TerminateSession(rec, req)

		var p payload
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
		return rec.Code, p
	}

	// Foreign termination gets the same 200 shape with success=false.
	code, p := terminate(alice.ID.String())
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, p.Success)

	remaining, err := repositories.ListSessions(bob.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1, "foreign termination must not delete the session")

	code, p = terminate(bob.ID.String())
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, p.Success)

	remaining, err = repositories.ListSessions(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestTerminateSession_BadID(t *testing.T) {
	setupHandlerDB(t)

	user, err := repositories.CreateUser("alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), middleware.UserIDKey, user.ID.String())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/terminate/abc", nil).WithContext(ctx)
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	TerminateSession(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSessions(t *testing.T) {
	setupHandlerDB(t)

	user, err := repositories.CreateUser("alice", "alice@x.com", "pw1")
	require.NoError(t, err)
	_, err = repositories.CreateSession(user.ID, "10.0.0.1", "Firefox")
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), middleware.UserIDKey, user.ID.String())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	ListSessions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var p payload
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.True(t, p.Success)

	sessions, ok := p.Data["sessions"].([]any)
	require.True(t, ok)
	assert.Len(t, sessions, 1)
}
