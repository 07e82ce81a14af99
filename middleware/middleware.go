package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"successspace/globals"
	"successspace/models"
	"successspace/rdx"
	"successspace/store"
)

// Auth resolves the opaque session cookie against the session collection.
type Auth struct {
	store *store.Store
}

func NewAuth(s *store.Store) *Auth {
	return &Auth{store: s}
}

// UserFromRequest returns the logged-in user, or nil. The session record is
// cached in Redis when available; the sessions file stays the source of truth.
func (a *Auth) UserFromRequest(r *http.Request) *models.User {
	c, err := r.Cookie(globals.SessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	sid := c.Value

	var sess models.Session
	if !rdx.GetJSON("session:"+sid, &sess) {
		sessions, err := store.Object[map[string]models.Session](a.store, store.Sessions)
		if err != nil {
			return nil
		}
		var ok bool
		sess, ok = sessions[sid]
		if !ok {
			return nil
		}
		rdx.SetJSON("session:"+sid, sess, time.Hour)
	}

	users, err := store.List[models.User](a.store, store.Users)
	if err != nil {
		return nil
	}
	for i := range users {
		if users[i].ID == sess.UserID {
			return &users[i]
		}
	}
	return nil
}

// Require gates a handler to the given roles and stashes the user in context.
func (a *Auth) Require(next httprouter.Handle, roles ...string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		user := a.UserFromRequest(r)
		if user == nil || !roleAllowed(user.Role, roles) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), globals.UserKey, user)
		next(w, r.WithContext(ctx), ps)
	}
}

// Optional stashes the user in context when a valid session exists and
// proceeds either way.
func (a *Auth) Optional(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if user := a.UserFromRequest(r); user != nil {
			r = r.WithContext(context.WithValue(r.Context(), globals.UserKey, user))
		}
		next(w, r, ps)
	}
}

func roleAllowed(role string, roles []string) bool {
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	return false
}
