package menu

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

func TestListSeededMenu(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/menu", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 3)
}

func TestAddRequiresNameAndNumericPrice(t *testing.T) {
	h, s := newTestHandlers(t)

	for _, body := range []string{
		`{"price":4.5}`,
		`{"name":"Mocha"}`,
		`{"name":"Mocha","price":"4.50"}`,
	} {
		rec := httptest.NewRecorder()
		h.Add(rec, httptest.NewRequest(http.MethodPost, "/api/admin/menu/add", strings.NewReader(body)), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}

	rec := httptest.NewRecorder()
	h.Add(rec, httptest.NewRequest(http.MethodPost, "/api/admin/menu/add", strings.NewReader(`{"name":"Mocha","price":5.25}`)), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var item models.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.True(t, strings.HasPrefix(item.ID, "m_"))

	items, err := store.List[models.MenuItem](s, store.Menu)
	require.NoError(t, err)
	assert.Len(t, items, 4)
}

func TestRemove(t *testing.T) {
	h, s := newTestHandlers(t)

	rec := httptest.NewRecorder()
	h.Remove(rec, httptest.NewRequest(http.MethodPost, "/api/admin/menu/remove", strings.NewReader(`{"id":"latte"}`)), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items, err := store.List[models.MenuItem](s, store.Menu)
	require.NoError(t, err)
	for _, it := range items {
		assert.NotEqual(t, "latte", it.ID)
	}

	rec = httptest.NewRecorder()
	h.Remove(rec, httptest.NewRequest(http.MethodPost, "/api/admin/menu/remove", strings.NewReader(`{}`)), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
