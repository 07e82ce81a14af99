package notifications

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

// List handles GET /api/admin/notifications.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := store.List[models.Recipient](h.store, store.Notifications)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// Add handles POST /api/admin/notifications/add. Channels default to email.
func (h *Handlers) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input models.Recipient
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Name == "" || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name and email required")
		return
	}
	input.ID = utils.NewID("n")
	if len(input.Channels) == 0 {
		input.Channels = []string{"email"}
	}
	if input.Types == nil {
		input.Types = []string{}
	}
	if err := store.Append(h.store, store.Notifications, input); err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, input)
}

// Remove handles POST /api/admin/notifications/remove.
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
	err := store.Update(h.store, store.Notifications, func(list []models.Recipient) ([]models.Recipient, error) {
		kept := list[:0]
		for _, n := range list {
			if n.ID != input.ID {
				kept = append(kept, n)
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
