package booking

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"successspace/models"
	"successspace/store"
	"successspace/utils"
)

// Availability is the remaining capacity for one room type on one date.
// Remaining is nil when no workspace metadata (or a zero unit count) exists
// for the type — "not configured" rather than zero.
type Availability struct {
	RoomType   string `json:"roomType"`
	Date       string `json:"date"`
	Configured bool   `json:"configured"`
	Total      int    `json:"total"`
	Booked     int    `json:"booked"`
	Remaining  *int   `json:"remaining,omitempty"`
}

// Compute counts every booking on the date for the room type — cancellations
// included, matching the calendar's behavior — against the workspace's unit
// count.
func Compute(s *store.Store, roomType, date string) (Availability, error) {
	av := Availability{RoomType: roomType, Date: date}

	workspaces, err := store.List[models.Workspace](s, store.Workspaces)
	if err != nil {
		return av, err
	}
	for _, ws := range workspaces {
		if ws.Type == roomType {
			av.Total = ws.Count
			break
		}
	}
	av.Configured = av.Total > 0

	bookings, err := store.List[models.Booking](s, store.Bookings)
	if err != nil {
		return av, err
	}
	for _, b := range bookings {
		if b.Date == date && b.RoomType == roomType {
			av.Booked++
		}
	}

	if av.Configured {
		remaining := av.Total - av.Booked
		if remaining < 0 {
			remaining = 0
		}
		av.Remaining = &remaining
	}
	return av, nil
}

// AvailabilityQuery handles GET /api/availability?roomType=&date=.
func (h *Handlers) AvailabilityQuery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	roomType := r.URL.Query().Get("roomType")
	date := r.URL.Query().Get("date")
	if roomType == "" || date == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "roomType and date required")
		return
	}
	av, err := Compute(h.store, roomType, date)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, av)
}
