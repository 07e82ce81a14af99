package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"successspace/errs"
	"successspace/inventory"
	"successspace/models"
	"successspace/notify"
	"successspace/pay"
	"successspace/store"
	"successspace/utils"
)

var allowedStatuses = map[string]bool{
	models.OrderReceived:   true,
	models.OrderInProgress: true,
	models.OrderReady:      true,
	models.OrderCompleted:  true,
	models.OrderCanceled:   true,
}

type Handlers struct {
	store *store.Store
	inv   *inventory.Service
	card  pay.Charger
	hub   *notify.Hub
}

func NewHandlers(s *store.Store, inv *inventory.Service, card pay.Charger, hub *notify.Hub) *Handlers {
	return &Handlers{store: s, inv: inv, card: card, hub: hub}
}

type orderInput struct {
	Items    []models.OrderItem `json:"items"`
	Customer *models.Contact    `json:"customer"`
	Notes    string             `json:"notes"`
	Payment  *paymentInput      `json:"payment"`
}

type paymentInput struct {
	Method   string   `json:"method"`
	Token    string   `json:"token"`
	Tendered *float64 `json:"tendered"`
}

// Checkout handles POST /api/order, the public web checkout.
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input orderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(input.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Items required")
		return
	}
	if input.Customer == nil || input.Customer.Name == "" || input.Customer.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Customer name and email required")
		return
	}

	order := models.Order{
		ID:        utils.NewID("ord"),
		CreatedAt: time.Now().UTC(),
		Items:     input.Items,
		Customer:  *input.Customer,
		Notes:     input.Notes,
		Status:    models.OrderReceived,
	}
	if err := store.Append(h.store, store.Orders, order); err != nil {
		utils.RespondError(w, err)
		return
	}
	h.announce(order)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "order": order})
}

// POSOrder handles POST /api/staff/pos/order: in-person sale with an optional
// payment step and a best-effort inventory decrement.
func (h *Handlers) POSOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	staff := utils.UserFromContext(r.Context())
	if staff == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input orderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(input.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Items required")
		return
	}

	result, err := h.resolvePayment(r, input)
	if err != nil {
		var pErr *errs.PaymentError
		if errors.As(err, &pErr) {
			// a declined or unreachable provider must never produce a paid
			// order; surface the failed result with the 402
			utils.RespondWithJSON(w, http.StatusPaymentRequired, utils.M{"ok": false, "payment": result})
			return
		}
		utils.RespondError(w, err)
		return
	}

	customer := models.Contact{Name: "Walk-in"}
	if input.Customer != nil {
		customer = *input.Customer
	}
	status := models.OrderPending
	if result.Status == models.PaymentPaid {
		status = models.OrderReceived
	}
	order := models.Order{
		ID:        utils.NewID("ord"),
		CreatedAt: time.Now().UTC(),
		Items:     input.Items,
		Customer:  customer,
		Notes:     input.Notes,
		Status:    status,
		StaffID:   staff.ID,
		Payment:   &result,
	}
	if err := store.Append(h.store, store.Orders, order); err != nil {
		utils.RespondError(w, err)
		return
	}

	// inventory problems never roll back a completed sale
	if err := h.inv.DecrementForSale(order.Items); err != nil {
		log.Printf("orders: inventory decrement failed for %s: %v", order.ID, err)
	}

	h.announce(order)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "order": order})
}

func (h *Handlers) resolvePayment(r *http.Request, input orderInput) (models.PaymentResult, error) {
	p := input.Payment
	switch {
	case p != nil && (p.Method == "card" || p.Method == "square"):
		if !h.card.Configured() {
			return models.PaymentResult{}, errs.Configuration("Card payments not configured on server")
		}
		if p.Token == "" {
			return models.PaymentResult{}, errs.Validation("Payment token required")
		}
		total := (&models.Order{Items: input.Items}).Total()
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()
		return h.card.Charge(ctx, p.Token, total)
	case p != nil && p.Method == "cash":
		return models.PaymentResult{
			Status:   models.PaymentPaid,
			Method:   "cash",
			Tendered: p.Tendered,
		}, nil
	default:
		return models.PaymentResult{Status: models.PaymentPending}, nil
	}
}

// UpdateStatus handles POST /api/staff/orders/status. Any of the five
// statuses may replace any other; there is no transition graph.
func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.ID == "" || !allowedStatuses[input.Status] {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid id or status")
		return
	}
	err := store.Update(h.store, store.Orders, func(orders []models.Order) ([]models.Order, error) {
		for i := range orders {
			if orders[i].ID == input.ID {
				now := time.Now().UTC()
				orders[i].Status = input.Status
				orders[i].StatusUpdatedAt = &now
				return orders, nil
			}
		}
		return nil, errs.Validation("invalid id or status")
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// ListOrders serves GET /api/admin/orders and GET /api/staff/orders; role
// gating happens in the route wiring.
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orders, err := store.List[models.Order](h.store, store.Orders)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

func (h *Handlers) announce(order models.Order) {
	if h.hub == nil {
		return
	}
	h.hub.Publish(notify.RoomStaff, notify.Event{
		Type: notify.EventOrderCreated,
		Data: utils.M{"id": order.ID, "status": order.Status, "total": order.Total()},
	})
}
