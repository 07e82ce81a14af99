package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"successspace/models"
	"successspace/store"
)

func newTestHandlers(t *testing.T) (*Handlers, *store.Store) {
	t.Helper()
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	return NewHandlers(s), s
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestDayAggregate(t *testing.T) {
	h, s := newTestHandlers(t)
	require.NoError(t, store.Replace(s, store.Orders, []models.Order{
		{ID: "ord_1", CreatedAt: at(t, "2025-06-02T10:30:00Z"),
			Items: []models.OrderItem{{Name: "Latte", Qty: 2, Price: 4.50}}},
		{ID: "ord_2", CreatedAt: at(t, "2025-06-03T09:00:00Z"),
			Items: []models.OrderItem{{Name: "Muffin", Qty: 1, Price: 2.75}}},
	}))

	rec := httptest.NewRecorder()
	h.OrdersReport(rec, httptest.NewRequest(http.MethodGet, "/api/admin/reports/orders?range=day&date=2025-06-02", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sum Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, "day", sum.Range)
	assert.Equal(t, "2025-06-02", sum.Date)
	assert.Equal(t, 1, sum.Orders)
	assert.Equal(t, 9.00, sum.Total)
	assert.Equal(t, map[string]int{"Latte": 2}, sum.Items)
	require.Len(t, sum.Results, 1)
	assert.Equal(t, "ord_1", sum.Results[0].ID)
}

func TestWeekAggregateStartsSunday(t *testing.T) {
	h, s := newTestHandlers(t)
	// 2025-06-04 is a Wednesday; its week runs Sun 2025-06-01 .. Sat 2025-06-07.
	require.NoError(t, store.Replace(s, store.Orders, []models.Order{
		{ID: "ord_sun", CreatedAt: at(t, "2025-06-01T00:00:00Z"),
			Items: []models.OrderItem{{Name: "Drip", Qty: 1, Price: 3}}},
		{ID: "ord_sat", CreatedAt: at(t, "2025-06-07T23:59:00Z"),
			Items: []models.OrderItem{{Name: "Drip", Qty: 1, Price: 3}}},
		{ID: "ord_before", CreatedAt: at(t, "2025-05-31T12:00:00Z"),
			Items: []models.OrderItem{{Name: "Drip", Qty: 1, Price: 3}}},
		{ID: "ord_after", CreatedAt: at(t, "2025-06-08T00:00:00Z"),
			Items: []models.OrderItem{{Name: "Drip", Qty: 1, Price: 3}}},
	}))

	rec := httptest.NewRecorder()
	h.OrdersReport(rec, httptest.NewRequest(http.MethodGet, "/api/admin/reports/orders?range=week&date=2025-06-04", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sum Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 2, sum.Orders)
	assert.Equal(t, map[string]int{"Drip": 2}, sum.Items)
}

func TestMonthAggregate(t *testing.T) {
	h, s := newTestHandlers(t)
	require.NoError(t, store.Replace(s, store.Orders, []models.Order{
		{ID: "ord_1", CreatedAt: at(t, "2025-06-01T08:00:00Z"),
			Items: []models.OrderItem{{Name: "Latte", Qty: 1, Price: 4.50}}},
		{ID: "ord_2", CreatedAt: at(t, "2025-06-30T22:00:00Z"),
			Items: []models.OrderItem{{Name: "Latte", Qty: 1, Price: 4.50}}},
		{ID: "ord_3", CreatedAt: at(t, "2025-07-01T00:00:00Z"),
			Items: []models.OrderItem{{Name: "Latte", Qty: 1, Price: 4.50}}},
	}))

	rec := httptest.NewRecorder()
	h.OrdersReport(rec, httptest.NewRequest(http.MethodGet, "/api/admin/reports/orders?range=month&date=2025-06-15", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sum Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 2, sum.Orders)
	assert.Equal(t, 9.00, sum.Total)
}

func TestEmptyWindow(t *testing.T) {
	h, _ := newTestHandlers(t)

	rec := httptest.NewRecorder()
	h.OrdersReport(rec, httptest.NewRequest(http.MethodGet, "/api/admin/reports/orders?range=day&date=2020-01-01", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sum Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Zero(t, sum.Orders)
	assert.Zero(t, sum.Total)
	assert.Empty(t, sum.Items)
	assert.Empty(t, sum.Results)
}

func TestPDFExport(t *testing.T) {
	h, s := newTestHandlers(t)
	require.NoError(t, store.Replace(s, store.Orders, []models.Order{
		{ID: "ord_1", CreatedAt: at(t, "2025-06-02T10:30:00Z"),
			Items: []models.OrderItem{{Name: "Latte", Qty: 2, Price: 4.50}}},
	}))

	rec := httptest.NewRecorder()
	h.OrdersReportPDF(rec, httptest.NewRequest(http.MethodGet, "/api/admin/reports/orders/pdf?range=day&date=2025-06-02", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "orders-day-2025-06-02.pdf")
	assert.True(t, rec.Body.Len() > 0)
}
