package workspaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"successspace/models"
	"successspace/store"
)

func newTestHandlers(t *testing.T) (*Handlers, *store.Store) {
	t.Helper()
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	return NewHandlers(s), s
}

func TestAddDefaultsCapacityAndCount(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Add(rec, httptest.NewRequest(http.MethodPost, "/api/admin/workspaces/add",
		strings.NewReader(`{"name":"Phone Booth","type":"phone-booth"}`)), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var ws models.Workspace
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ws))
	assert.Equal(t, 1, ws.Capacity)
	assert.Equal(t, 1, ws.Count)
}

func TestAddValidation(t *testing.T) {
	h, _ := newTestHandlers(t)

	for _, body := range []string{`{"type":"conference"}`, `{"name":"Big Room"}`} {
		rec := httptest.NewRecorder()
		h.Add(rec, httptest.NewRequest(http.MethodPost, "/api/admin/workspaces/add", strings.NewReader(body)), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestRemove(t *testing.T) {
	h, s := newTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Remove(rec, httptest.NewRequest(http.MethodPost, "/api/admin/workspaces/remove", strings.NewReader(`{"id":"conference"}`)), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list, err := store.List[models.Workspace](s, store.Workspaces)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
