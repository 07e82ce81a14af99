package reports

import (
	"net/http"
	"strings"
	"time"

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

// Summary is the aggregate for one reporting window. Results carries the raw
// orders so clients can build their own CSV export.
type Summary struct {
	Range   string         `json:"range"`
	Date    string         `json:"date"`
	Orders  int            `json:"orders"`
	Total   float64        `json:"total"`
	Items   map[string]int `json:"items"`
	Results []models.Order `json:"results"`
}

// inRange reports whether an order's creation time falls in the window. Weeks
// start on Sunday and run [date-weekday, +7 days); months compare the YYYY-MM
// prefix.
func inRange(rng, dateStr string, base time.Time, at time.Time) bool {
	at = at.UTC()
	switch rng {
	case "day":
		return at.Format("2006-01-02") == dateStr
	case "week":
		start := base.AddDate(0, 0, -int(base.Weekday()))
		end := start.AddDate(0, 0, 7)
		return !at.Before(start) && at.Before(end)
	case "month":
		if len(dateStr) < 7 {
			return false
		}
		return strings.HasPrefix(at.Format("2006-01-02"), dateStr[:7])
	}
	return false
}

// Aggregate builds the order summary for one range and anchor date.
func Aggregate(s *store.Store, rng, dateStr string) (Summary, error) {
	sum := Summary{Range: rng, Date: dateStr, Items: map[string]int{}, Results: []models.Order{}}

	base, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		base = time.Now().UTC().Truncate(24 * time.Hour)
	}

	orders, err := store.List[models.Order](s, store.Orders)
	if err != nil {
		return sum, err
	}
	for _, o := range orders {
		if !inRange(rng, dateStr, base, o.CreatedAt) {
			continue
		}
		sum.Orders++
		for _, it := range o.Items {
			sum.Total += it.Price * float64(it.Qty)
			sum.Items[it.Name] += it.Qty
		}
		sum.Results = append(sum.Results, o)
	}
	return sum, nil
}

func queryWindow(r *http.Request) (string, string) {
	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = "day"
	}
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		dateStr = time.Now().UTC().Format("2006-01-02")
	}
	return rng, dateStr
}

// OrdersReport handles GET /api/admin/reports/orders?range=day|week|month&date=.
func (h *Handlers) OrdersReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rng, dateStr := queryWindow(r)
	sum, err := Aggregate(h.store, rng, dateStr)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sum)
}
