package booking

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"successspace/models"
	"successspace/notify"
	"successspace/store"
	"successspace/utils"
)

var monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

type Handlers struct {
	store *store.Store
	hub   *notify.Hub
}

func NewHandlers(s *store.Store, hub *notify.Hub) *Handlers {
	return &Handlers{store: s, hub: hub}
}

type createInput struct {
	Date          string          `json:"date"`
	StartTime     string          `json:"startTime"`
	EndTime       string          `json:"endTime"`
	RoomType      string          `json:"roomType"`
	Attendees     int             `json:"attendees"`
	Purpose       string          `json:"purpose"`
	Contact       *models.Contact `json:"contact"`
	DepositAmount *float64        `json:"depositAmount"`
	DepositStatus string          `json:"depositStatus"`
}

// Create handles POST /api/booking.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input createInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if input.Date == "" || input.StartTime == "" || input.EndTime == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Date and time required")
		return
	}
	if input.Contact == nil || input.Contact.Name == "" || input.Contact.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Contact name and email required")
		return
	}

	b := models.Booking{
		ID:            utils.NewID("bk"),
		CreatedAt:     time.Now().UTC(),
		Date:          input.Date,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		RoomType:      input.RoomType,
		Attendees:     input.Attendees,
		Purpose:       input.Purpose,
		Contact:       *input.Contact,
		DepositStatus: input.DepositStatus,
		Status:        models.BookingRequested,
	}
	if b.RoomType == "" {
		b.RoomType = "open-desk"
	}
	if b.Attendees <= 0 {
		b.Attendees = 1
	}
	if input.DepositAmount != nil {
		b.DepositAmount = *input.DepositAmount
	}
	if b.DepositStatus == "" {
		b.DepositStatus = "due"
	}

	if err := store.Append(h.store, store.Bookings, b); err != nil {
		utils.RespondError(w, err)
		return
	}
	if h.hub != nil {
		h.hub.Publish(notify.RoomStaff, notify.Event{
			Type: notify.EventBookingPlaced,
			Data: b.Public(),
		})
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "booking": b})
}

// PublicList handles GET /api/bookings?roomType=&month=. The projection hides
// contact and deposit data; a malformed month means no month filter.
func (h *Handlers) PublicList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	roomType := r.URL.Query().Get("roomType")
	month := r.URL.Query().Get("month")

	bookings, err := store.List[models.Booking](h.store, store.Bookings)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	out := make([]models.PublicBooking, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		if roomType != "" && b.RoomType != roomType {
			continue
		}
		if monthRe.MatchString(month) && !strings.HasPrefix(b.Date, month) {
			continue
		}
		out = append(out, b.Public())
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

// AdminList handles GET /api/admin/bookings.
func (h *Handlers) AdminList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := store.List[models.Booking](h.store, store.Bookings)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// CustomerList handles GET /api/customer/bookings: only the caller's own
// bookings, matched by contact email.
func (h *Handlers) CustomerList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.UserFromContext(r.Context())
	if user == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	bookings, err := store.List[models.Booking](h.store, store.Bookings)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	own := make([]models.Booking, 0)
	for _, b := range bookings {
		if b.Contact.Email == user.Email {
			own = append(own, b)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, own)
}

// Cancel handles POST /api/customer/booking/cancel. When the booking does not
// belong to the caller the request is a silent no-op: the 200 never reveals
// whether the id exists.
func (h *Handlers) Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.UserFromContext(r.Context())
	if user == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
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
	err := store.Update(h.store, store.Bookings, func(bookings []models.Booking) ([]models.Booking, error) {
		for i := range bookings {
			if bookings[i].ID == input.ID && bookings[i].Contact.Email == user.Email {
				now := time.Now().UTC()
				bookings[i].Status = models.BookingCanceledByCustomer
				bookings[i].CanceledAt = &now
			}
		}
		return bookings, nil
	})
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
