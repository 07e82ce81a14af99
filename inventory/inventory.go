package inventory

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"successspace/models"
	"successspace/notify"
	"successspace/store"
	"successspace/utils"
)

// Service owns stock levels and the low-stock alert log.
type Service struct {
	store *store.Store
	hub   *notify.Hub
}

func NewService(s *store.Store, hub *notify.Hub) *Service {
	return &Service{store: s, hub: hub}
}

// List handles GET /api/inventory (staff/admin).
func (sv *Service) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	items, err := store.List[models.InventoryItem](sv.store, store.Inventory)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

type bulkInput struct {
	Items []struct {
		ID           string  `json:"id"`
		Name         string  `json:"name"`
		Qty          float64 `json:"qty"`
		WarnQty      float64 `json:"warnQty"`
		SupplierLink string  `json:"supplierLink"`
	} `json:"items"`
}

// Replace handles POST /api/staff/inventory: whole-collection replace with
// field coercion, then alert evaluation.
func (sv *Service) Replace(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input bulkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Items == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "items array required")
		return
	}
	items := make([]models.InventoryItem, 0, len(input.Items))
	for _, in := range input.Items {
		item := models.InventoryItem{
			ID:           in.ID,
			Name:         in.Name,
			Qty:          clampInt(in.Qty),
			WarnQty:      clampInt(in.WarnQty),
			SupplierLink: in.SupplierLink,
		}
		if item.ID == "" {
			item.ID = utils.NewID("inv")
		}
		if item.Name == "" {
			item.Name = "Item"
		}
		items = append(items, item)
	}
	if err := store.Replace(sv.store, store.Inventory, items); err != nil {
		utils.RespondError(w, err)
		return
	}
	sv.EvaluateAlerts(items)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// Add handles POST /api/staff/inventory/add.
func (sv *Service) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name         string  `json:"name"`
		Qty          float64 `json:"qty"`
		WarnQty      float64 `json:"warnQty"`
		SupplierLink string  `json:"supplierLink"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name required")
		return
	}
	item := models.InventoryItem{
		ID:           utils.NewID("inv"),
		Name:         input.Name,
		Qty:          clampInt(input.Qty),
		WarnQty:      clampInt(input.WarnQty),
		SupplierLink: input.SupplierLink,
	}
	var snapshot []models.InventoryItem
	err := store.Update(sv.store, store.Inventory, func(items []models.InventoryItem) ([]models.InventoryItem, error) {
		snapshot = append(items, item)
		return snapshot, nil
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	sv.EvaluateAlerts(snapshot)
	utils.RespondWithJSON(w, http.StatusCreated, item)
}

// SetWarn handles POST /api/admin/inventory/warn: updates one item's
// warn threshold by id.
func (sv *Service) SetWarn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		ID      string  `json:"id"`
		WarnQty float64 `json:"warnQty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.ID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "id required")
		return
	}
	var snapshot []models.InventoryItem
	err := store.Update(sv.store, store.Inventory, func(items []models.InventoryItem) ([]models.InventoryItem, error) {
		for i := range items {
			if items[i].ID == input.ID {
				items[i].WarnQty = clampInt(input.WarnQty)
			}
		}
		snapshot = items
		return items, nil
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	sv.EvaluateAlerts(snapshot)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// Alerts handles GET /api/admin/alerts.
func (sv *Service) Alerts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	alerts, err := store.List[models.Alert](sv.store, store.Alerts)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, alerts)
}

// DecrementForSale reduces stock for each sold line item, matching by id
// first, then by name. Quantities clamp at zero and unmatched lines are
// ignored — not every menu item is stock-tracked.
func (sv *Service) DecrementForSale(sold []models.OrderItem) error {
	var snapshot []models.InventoryItem
	err := store.Update(sv.store, store.Inventory, func(items []models.InventoryItem) ([]models.InventoryItem, error) {
		for _, line := range sold {
			idx := match(items, line)
			if idx < 0 {
				continue
			}
			dec := line.Qty
			if dec <= 0 {
				dec = 1
			}
			items[idx].Qty -= dec
			if items[idx].Qty < 0 {
				items[idx].Qty = 0
			}
		}
		snapshot = items
		return items, nil
	})
	if err != nil {
		return err
	}
	sv.EvaluateAlerts(snapshot)
	return nil
}

// EvaluateAlerts appends one alert per item at or below its warn threshold.
// It runs on every inventory write, so a persistently-low item accumulates
// repeated alerts; consumers de-duplicate.
func (sv *Service) EvaluateAlerts(items []models.InventoryItem) {
	now := time.Now().UTC()
	var fresh []models.Alert
	for _, it := range items {
		if it.WarnQty > 0 && it.Qty <= it.WarnQty {
			fresh = append(fresh, models.Alert{
				ID:        utils.NewID("al"),
				ItemID:    it.ID,
				Name:      it.Name,
				Qty:       it.Qty,
				WarnQty:   it.WarnQty,
				CreatedAt: now,
				Type:      models.AlertLowInventory,
			})
		}
	}
	if len(fresh) == 0 {
		return
	}
	err := store.Update(sv.store, store.Alerts, func(alerts []models.Alert) ([]models.Alert, error) {
		return append(alerts, fresh...), nil
	})
	if err != nil {
		log.Printf("inventory: alert write failed: %v", err)
		return
	}
	if sv.hub != nil {
		for _, a := range fresh {
			sv.hub.Publish(notify.RoomStaff, notify.Event{Type: notify.EventLowInventory, Data: a})
		}
	}
}

func match(items []models.InventoryItem, line models.OrderItem) int {
	for i := range items {
		if items[i].ID != "" && items[i].ID == line.ID {
			return i
		}
	}
	for i := range items {
		if items[i].Name != "" && items[i].Name == line.Name {
			return i
		}
	}
	return -1
}

func clampInt(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
