package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"successspace/middleware"
	"successspace/models"
	"successspace/store"
	"successspace/utils"
)

func newTestHandlers(t *testing.T) (*Handlers, *store.Store) {
	t.Helper()
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, SeedUsers(s))
	return NewHandlers(s), s
}

func doLogin(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req, nil)
	return rec
}

func TestLoginSuccessSetsSession(t *testing.T) {
	h, s := newTestHandlers(t)

	rec := doLogin(t, h, `{"email":"staff@success.space","password":"staff123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OK   bool        `json:"ok"`
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "u_staff", body.User.ID)
	assert.Empty(t, body.User.Password, "password hash must not be echoed")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	sessions, err := store.Object[map[string]models.Session](s, store.Sessions)
	require.NoError(t, err)
	sess, ok := sessions[cookies[0].Value]
	require.True(t, ok)
	assert.Equal(t, "u_staff", sess.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h, _ := newTestHandlers(t)

	assert.Equal(t, http.StatusUnauthorized, doLogin(t, h, `{"email":"staff@success.space","password":"wrong"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, doLogin(t, h, `{"email":"nobody@success.space","password":"staff123"}`).Code)
	assert.Equal(t, http.StatusBadRequest, doLogin(t, h, `{"email":"staff@success.space"}`).Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	h, s := newTestHandlers(t)
	mw := middleware.NewAuth(s)

	rec := doLogin(t, h, `{"email":"admin@success.space","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sid := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(sid)
	out := httptest.NewRecorder()
	h.Logout(out, req, nil)
	require.Equal(t, http.StatusOK, out.Code)

	// the old cookie no longer resolves to a user
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(sid)
	assert.Nil(t, mw.UserFromRequest(req))
}

func TestMeReturnsNullWithoutSession(t *testing.T) {
	h, _ := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":null}`, rec.Body.String())
}

func TestRequireGatesByRole(t *testing.T) {
	h, s := newTestHandlers(t)
	mw := middleware.NewAuth(s)

	rec := doLogin(t, h, `{"email":"customer@success.space","password":"customer123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sid := rec.Result().Cookies()[0]

	var sawUser string
	gated := mw.Require(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		sawUser = utils.UserFromContext(r.Context()).ID
		w.WriteHeader(http.StatusOK)
	}, models.RoleStaff, models.RoleAdmin)

	// customer session: role not allowed
	req := httptest.NewRequest(http.MethodGet, "/api/staff/orders", nil)
	req.AddCookie(sid)
	out := httptest.NewRecorder()
	gated(out, req, nil)
	assert.Equal(t, http.StatusUnauthorized, out.Code)

	// no session at all
	out = httptest.NewRecorder()
	gated(out, httptest.NewRequest(http.MethodGet, "/api/staff/orders", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, out.Code)

	// staff session passes and lands in context
	rec = doLogin(t, h, `{"email":"staff@success.space","password":"staff123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	req = httptest.NewRequest(http.MethodGet, "/api/staff/orders", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	out = httptest.NewRecorder()
	gated(out, req, nil)
	assert.Equal(t, http.StatusOK, out.Code)
	assert.Equal(t, "u_staff", sawUser)
}
