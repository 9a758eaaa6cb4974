package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"jotter/internal/database"
	"jotter/internal/database/models"
	"jotter/internal/server"
)

func newTestServer(t *testing.T) *server.FiberServer {
	t.Helper()
	store := database.New(filepath.Join(t.TempDir(), "data.json"), zaptest.NewLogger(t))
	srv := server.New(store, zaptest.NewLogger(t))
	srv.RegisterFiberRoutes()
	return srv
}

func doJSON(t *testing.T, srv *server.FiberServer, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeNote(t *testing.T, resp *http.Response) models.Note {
	t.Helper()
	var note models.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&note))
	return note
}

func decodeNotes(t *testing.T, resp *http.Response) []models.Note {
	t.Helper()
	var notes []models.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&notes))
	return notes
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp := doJSON(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "up", decodeMap(t, resp)["status"])
}

func TestSingleTenantLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/notes", map[string]string{"title": "T", "content": "C"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeNote(t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	resp = doJSON(t, srv, http.MethodGet, "/notes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decodeNotes(t, resp), 1)

	resp = doJSON(t, srv, http.MethodPut, "/notes/"+created.ID, map[string]string{"title": "T2", "content": "C2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeNote(t, resp)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	resp = doJSON(t, srv, http.MethodPut, "/notes/nope", map[string]string{"title": "x", "content": "y"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodDelete, "/notes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeMap(t, resp)["ok"])

	resp = doJSON(t, srv, http.MethodDelete, "/notes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/login", map[string]string{"user_id": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/login", map[string]string{"user_id": " alice "})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp)["message"], "alice")

	resp = doJSON(t, srv, http.MethodPost, "/login", map[string]string{"user_id": "alice"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMalformedBody(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUserNotes(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/notes/ghost", map[string]string{"title": "T", "content": "C", "category": "Personal"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/notes/ghost", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeNotes(t, resp))

	resp = doJSON(t, srv, http.MethodPost, "/login", map[string]string{"user_id": "alice"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/notes/alice", map[string]string{"title": "T", "content": "C", "category": "Personal"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	note := decodeNote(t, resp)
	assert.Equal(t, "Personal", note.Category)

	resp = doJSON(t, srv, http.MethodGet, "/notes/alice", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	notes := decodeNotes(t, resp)
	require.Len(t, notes, 1)
	assert.Equal(t, note.ID, notes[0].ID)

	resp = doJSON(t, srv, http.MethodDelete, "/notes/ghost/"+note.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodDelete, "/notes/alice/"+note.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeMap(t, resp)["ok"])

	resp = doJSON(t, srv, http.MethodDelete, "/notes/alice/"+note.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGlobalListSpansCollections(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/login", map[string]string{"user_id": "alice"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, srv, http.MethodPost, "/notes/alice", map[string]string{"title": "a", "content": "", "category": ""})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, srv, http.MethodPost, "/notes", map[string]string{"title": "b", "content": ""})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodGet, "/notes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeNotes(t, resp), 2)
}

func TestPasswordEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/password/ghost", map[string]string{"category": "Personal", "password": "pw"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/login", map[string]string{"user_id": "alice"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/password/alice", map[string]string{"category": "Office", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/password/alice", map[string]string{"category": "Personal", "password": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/verify_password/alice", map[string]string{"category": "Personal", "password": "pw"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/password/alice", map[string]string{"category": "Personal", "password": "pw1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/password/alice", map[string]string{"category": "Personal", "password": "pw2"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/verify_password/alice", map[string]string{"category": "Personal", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/verify_password/alice", map[string]string{"category": "Personal", "password": "pw1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/verify_password/ghost", map[string]string{"category": "Personal", "password": "pw1"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// the full flow: login, create a note, protect a category, verify.
func TestLoginCreateProtectVerify(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/login", map[string]string{"user_id": "alice"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/notes/alice", map[string]string{"title": "T", "content": "C", "category": "Personal"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/password/alice", map[string]string{"category": "Personal", "password": "pw1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/verify_password/alice", map[string]string{"category": "Personal", "password": "pw1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp)["message"], "verified")

	resp = doJSON(t, srv, http.MethodPost, "/verify_password/alice", map[string]string{"category": "Personal", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/notes", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
