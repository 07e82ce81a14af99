package branding

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"successspace/rdx"
	"successspace/store"
	"successspace/utils"
)

const cacheKey = "catalog:branding"

type Handlers struct {
	store *store.Store
}

func NewHandlers(s *store.Store) *Handlers {
	return &Handlers{store: s}
}

// Get handles GET /api/branding.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var b map[string]any
	if rdx.GetJSON(cacheKey, &b) {
		utils.RespondWithJSON(w, http.StatusOK, b)
		return
	}
	b, err := store.Object[map[string]any](h.store, store.Branding)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	rdx.SetJSON(cacheKey, b, 5*time.Minute)
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// Update handles POST /api/admin/branding. Top-level keys from the body are
// shallow-merged over the stored document; keys the request omits survive.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	var merged map[string]any
	err := store.UpdateObject(h.store, store.Branding, func(current map[string]any) (map[string]any, error) {
		if current == nil {
			current = map[string]any{}
		}
		for k, v := range patch {
			current[k] = v
		}
		merged = current
		return current, nil
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	rdx.Del(cacheKey)
	utils.RespondWithJSON(w, http.StatusOK, merged)
}
