package events

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"successspace/models"
	"successspace/store"
	"successspace/utils"
)

type Handlers struct {
	store *store.Store
}

func NewHandlers(s *store.Store) *Handlers {
	return &Handlers{store: s}
}

// List handles GET /api/events.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := store.List[models.Event](h.store, store.Events)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// Add handles POST /api/admin/events.
func (h *Handlers) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input models.Event
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Title == "" || input.Date == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title and date required")
		return
	}
	input.ID = utils.NewID("evt")
	if err := store.Append(h.store, store.Events, input); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, input)
}

// Remove handles POST /api/admin/events/remove.
func (h *Handlers) Remove(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.ID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "id required")
		return
	}
	err := store.Update(h.store, store.Events, func(list []models.Event) ([]models.Event, error) {
		kept := list[:0]
		for _, e := range list {
			if e.ID != input.ID {
				kept = append(kept, e)
			}
		}
		return kept, nil
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
