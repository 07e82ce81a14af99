package booking

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"

	"successspace/models"
	"successspace/store"
	"successspace/utils"
)

// ConfirmationQR handles GET /api/booking/qr?id=. Customers get QR codes only
// for their own bookings; staff and admin can print any.
func (h *Handlers) ConfirmationQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user := utils.UserFromContext(r.Context())
	if user == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "id required")
		return
	}

	bookings, err := store.List[models.Booking](h.store, store.Bookings)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	var b *models.Booking
	for i := range bookings {
		if bookings[i].ID == id {
			b = &bookings[i]
			break
		}
	}
	if b == nil || (user.Role == models.RoleCustomer && b.Contact.Email != user.Email) {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	payload := fmt.Sprintf("%s|%s|%s-%s|%s", b.ID, b.Date, b.StartTime, b.EndTime, b.RoomType)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
