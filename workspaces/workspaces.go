package workspaces

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"successspace/models"
	"successspace/rdx"
	"successspace/store"
	"successspace/utils"
)

const cacheKey = "catalog:workspaces"

type Handlers struct {
	store *store.Store
}

func NewHandlers(s *store.Store) *Handlers {
	return &Handlers{store: s}
}

// List handles GET /api/workspaces.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var list []models.Workspace
	if rdx.GetJSON(cacheKey, &list) {
		utils.RespondWithJSON(w, http.StatusOK, list)
		return
	}
	list, err := store.List[models.Workspace](h.store, store.Workspaces)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	rdx.SetJSON(cacheKey, list, 5*time.Minute)
	utils.RespondWithJSON(w, http.StatusOK, list)
}

type addInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Capacity    int    `json:"capacity"`
	Count       int    `json:"count"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Add handles POST /api/admin/workspaces/add. Capacity and unit count default
// to 1.
func (h *Handlers) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input addInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Name == "" || input.Type == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name and type required")
		return
	}
	ws := models.Workspace{
		ID:          utils.NewID("w"),
		Name:        input.Name,
		Type:        input.Type,
		Capacity:    input.Capacity,
		Count:       input.Count,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if ws.Capacity <= 0 {
		ws.Capacity = 1
	}
	if ws.Count <= 0 {
		ws.Count = 1
	}
	if err := store.Append(h.store, store.Workspaces, ws); err != nil {
		utils.RespondError(w, err)
		return
	}
	rdx.Del(cacheKey)
	utils.RespondWithJSON(w, http.StatusCreated, ws)
}

// Remove handles POST /api/admin/workspaces/remove.
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
	err := store.Update(h.store, store.Workspaces, func(list []models.Workspace) ([]models.Workspace, error) {
		kept := list[:0]
		for _, ws := range list {
			if ws.ID != input.ID {
				kept = append(kept, ws)
			}
		}
		return kept, nil
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	rdx.Del(cacheKey)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
