package menu

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

const cacheKey = "catalog:menu"

type Handlers struct {
	store *store.Store
}

func NewHandlers(s *store.Store) *Handlers {
	return &Handlers{store: s}
}

// List handles GET /api/menu.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var items []models.MenuItem
	if rdx.GetJSON(cacheKey, &items) {
		utils.RespondWithJSON(w, http.StatusOK, items)
		return
	}
	items, err := store.List[models.MenuItem](h.store, store.Menu)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	rdx.SetJSON(cacheKey, items, 5*time.Minute)
	utils.RespondWithJSON(w, http.StatusOK, items)
}

type addInput struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
}

// Add handles POST /api/admin/menu/add.
func (h *Handlers) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input addInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Name == "" || input.Price == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "name and numeric price required")
		return
	}
	item := models.MenuItem{
		ID:          utils.NewID("m"),
		Name:        input.Name,
		Price:       *input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := store.Append(h.store, store.Menu, item); err != nil {
		utils.RespondError(w, err)
		return
	}
	rdx.Del(cacheKey)
	utils.RespondWithJSON(w, http.StatusCreated, item)
}

// Remove handles POST /api/admin/menu/remove.
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
	err := store.Update(h.store, store.Menu, func(items []models.MenuItem) ([]models.MenuItem, error) {
		kept := items[:0]
		for _, it := range items {
			if it.ID != input.ID {
				kept = append(kept, it)
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
