package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"

	"successspace/globals"
	"successspace/models"
	"successspace/rdx"
	"successspace/store"
	"successspace/utils"
)

type Handlers struct {
	store *store.Store
}

func NewHandlers(s *store.Store) *Handlers {
	return &Handlers{store: s}
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in no state to serve
		log.Fatalf("auth: rand: %v", err)
	}
	return "sess_" + hex.EncodeToString(b)
}

// Login handles POST /api/auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	users, err := store.List[models.User](h.store, store.Users)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	var user *models.User
	for i := range users {
		if users[i].Email == input.Email {
			user = &users[i]
			break
		}
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	sid := newSessionID()
	sess := models.Session{UserID: user.ID, CreatedAt: time.Now().UTC()}
	err = store.UpdateObject(h.store, store.Sessions, func(sessions map[string]models.Session) (map[string]models.Session, error) {
		if sessions == nil {
			sessions = map[string]models.Session{}
		}
		sessions[sid] = sess
		return sessions, nil
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	rdx.SetJSON("session:"+sid, sess, time.Hour)

	http.SetCookie(w, &http.Cookie{
		Name:     globals.SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "user": user.Public()})
}

// Logout handles POST /api/auth/logout.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if c, err := r.Cookie(globals.SessionCookie); err == nil && c.Value != "" {
		sid := c.Value
		err := store.UpdateObject(h.store, store.Sessions, func(sessions map[string]models.Session) (map[string]models.Session, error) {
			delete(sessions, sid)
			return sessions, nil
		})
		if err != nil {
			log.Printf("auth: logout: %v", err)
		}
		rdx.Del("session:" + sid)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     globals.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// Me handles GET /api/auth/me. Anonymous callers get {user: null}.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.UserFromContext(r.Context())
	if user == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": nil})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": user.Public()})
}
