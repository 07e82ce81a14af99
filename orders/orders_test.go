package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"successspace/errs"
	"successspace/globals"
	"successspace/inventory"
	"successspace/models"
	"successspace/store"
)

// fakeCharger stands in for the card provider.
type fakeCharger struct {
	configured bool
	approve    bool
	gotAmount  int64
	gotSource  string
	calls      int
}

func (f *fakeCharger) Configured() bool { return f.configured }

func (f *fakeCharger) Charge(_ context.Context, sourceID string, amountCents int64) (models.PaymentResult, error) {
	f.calls++
	f.gotSource = sourceID
	f.gotAmount = amountCents
	if f.approve {
		return models.PaymentResult{Status: models.PaymentPaid, Provider: "square", ProviderPaymentID: "pmt_1"}, nil
	}
	return models.PaymentResult{Status: models.PaymentFailed, Provider: "square", Error: "declined"}, errs.Payment("payment declined")
}

func newTestHandlers(t *testing.T, card *fakeCharger) (*Handlers, *store.Store) {
	t.Helper()
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	if card == nil {
		card = &fakeCharger{}
	}
	return NewHandlers(s, inventory.NewService(s, nil), card, nil), s
}

func asStaff(req *http.Request) *http.Request {
	u := &models.User{ID: "u_staff", Role: models.RoleStaff}
	return req.WithContext(context.WithValue(req.Context(), globals.UserKey, u))
}

func listOrders(t *testing.T, s *store.Store) []models.Order {
	t.Helper()
	orders, err := store.List[models.Order](s, store.Orders)
	require.NoError(t, err)
	return orders
}

func TestCheckoutCreatesReceivedOrder(t *testing.T) {
	h, s := newTestHandlers(t, nil)

	body := `{"items":[{"id":"latte","name":"Latte","qty":2,"price":4.5}],"customer":{"name":"Ada","email":"ada@example.com"},"notes":"to go"}`
	req := httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Checkout(rec, req, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		OK    bool         `json:"ok"`
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, models.OrderReceived, resp.Order.Status)
	assert.NotEmpty(t, resp.Order.ID)
	assert.False(t, resp.Order.CreatedAt.IsZero())

	persisted := listOrders(t, s)
	require.Len(t, persisted, 1)
	assert.Equal(t, resp.Order.ID, persisted[0].ID)
}

func TestCheckoutValidation(t *testing.T) {
	h, s := newTestHandlers(t, nil)

	cases := []string{
		`{"items":[],"customer":{"name":"Ada","email":"a@b.c"}}`,
		`{"customer":{"name":"Ada","email":"a@b.c"}}`,
		`{"items":[{"name":"Latte","qty":1,"price":4.5}],"customer":{"name":"Ada"}}`,
		`{"items":[{"name":"Latte","qty":1,"price":4.5}]}`,
		`not json`,
	}
	for _, body := range cases {
		rec := httptest.NewRecorder()
		h.Checkout(rec, httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(body)), nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
	assert.Empty(t, listOrders(t, s))
}

func TestCheckoutIDsAreUnique(t *testing.T) {
	h, s := newTestHandlers(t, nil)

	body := `{"items":[{"name":"Drip","qty":1,"price":3}],"customer":{"name":"Ada","email":"a@b.c"}}`
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.Checkout(rec, httptest.NewRequest(http.MethodPost, "/api/order", strings.NewReader(body)), nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	seen := map[string]bool{}
	for _, o := range listOrders(t, s) {
		assert.False(t, seen[o.ID], "duplicate id %s", o.ID)
		seen[o.ID] = true
	}
}

func TestPOSCashSale(t *testing.T) {
	h, s := newTestHandlers(t, nil)
	require.NoError(t, store.Replace(s, store.Inventory, []models.InventoryItem{{ID: "latte", Name: "Latte", Qty: 10}}))

	body := `{"items":[{"id":"latte","name":"Latte","qty":2,"price":4.5}],"payment":{"method":"cash","tendered":10}}`
	req := asStaff(httptest.NewRequest(http.MethodPost, "/api/staff/pos/order", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	h.POSOrder(rec, req, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	orders := listOrders(t, s)
	require.Len(t, orders, 1)
	o := orders[0]
	assert.Equal(t, models.OrderReceived, o.Status)
	assert.Equal(t, "u_staff", o.StaffID)
	assert.Equal(t, "Walk-in", o.Customer.Name)
	require.NotNil(t, o.Payment)
	assert.Equal(t, models.PaymentPaid, o.Payment.Status)
	assert.Equal(t, "cash", o.Payment.Method)
	require.NotNil(t, o.Payment.Tendered)
	assert.Equal(t, 10.0, *o.Payment.Tendered)

	// the sale decremented stock
	inv, err := store.List[models.InventoryItem](s, store.Inventory)
	require.NoError(t, err)
	assert.Equal(t, 8, inv[0].Qty)
}

func TestPOSWithoutPaymentIsPending(t *testing.T) {
	h, s := newTestHandlers(t, nil)

	body := `{"items":[{"name":"Muffin","qty":1,"price":2.75}]}`
	req := asStaff(httptest.NewRequest(http.MethodPost, "/api/staff/pos/order", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	h.POSOrder(rec, req, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	o := listOrders(t, s)[0]
	assert.Equal(t, models.OrderPending, o.Status)
	require.NotNil(t, o.Payment)
	assert.Equal(t, models.PaymentPending, o.Payment.Status)
}

func TestPOSCardApproved(t *testing.T) {
	card := &fakeCharger{configured: true, approve: true}
	h, s := newTestHandlers(t, card)

	body := `{"items":[{"name":"Latte","qty":2,"price":4.5}],"customer":{"name":"Ada","email":"a@b.c"},"payment":{"method":"card","token":"cnon_abc"}}`
	req := asStaff(httptest.NewRequest(http.MethodPost, "/api/staff/pos/order", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	h.POSOrder(rec, req, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, 1, card.calls, "exactly one charge attempt")
	assert.Equal(t, "cnon_abc", card.gotSource)
	assert.Equal(t, int64(900), card.gotAmount, "2 x 4.50 in cents")

	o := listOrders(t, s)[0]
	assert.Equal(t, models.OrderReceived, o.Status)
	assert.Equal(t, "pmt_1", o.Payment.ProviderPaymentID)
}

func TestPOSCardDeclinedIsNotPersisted(t *testing.T) {
	card := &fakeCharger{configured: true, approve: false}
	h, s := newTestHandlers(t, card)

	body := `{"items":[{"name":"Latte","qty":1,"price":4.5}],"payment":{"method":"card","token":"cnon_abc"}}`
	req := asStaff(httptest.NewRequest(http.MethodPost, "/api/staff/pos/order", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	h.POSOrder(rec, req, nil)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Empty(t, listOrders(t, s), "failed payment must not persist an order")

	var resp struct {
		OK      bool                 `json:"ok"`
		Payment models.PaymentResult `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, models.PaymentFailed, resp.Payment.Status)
}

func TestPOSCardRequiresConfigAndToken(t *testing.T) {
	h, s := newTestHandlers(t, &fakeCharger{configured: false})

	body := `{"items":[{"name":"Latte","qty":1,"price":4.5}],"payment":{"method":"card","token":"cnon"}}`
	req := asStaff(httptest.NewRequest(http.MethodPost, "/api/staff/pos/order", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	h.POSOrder(rec, req, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unconfigured provider")

	h2, _ := newTestHandlers(t, &fakeCharger{configured: true, approve: true})
	body = `{"items":[{"name":"Latte","qty":1,"price":4.5}],"payment":{"method":"card"}}`
	req = asStaff(httptest.NewRequest(http.MethodPost, "/api/staff/pos/order", strings.NewReader(body)))
	rec = httptest.NewRecorder()
	h2.POSOrder(rec, req, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing token")

	assert.Empty(t, listOrders(t, s))
}

func TestUpdateStatus(t *testing.T) {
	h, s := newTestHandlers(t, nil)
	require.NoError(t, store.Replace(s, store.Orders, []models.Order{{ID: "ord_1", Status: models.OrderReceived}}))

	do := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.UpdateStatus(rec, httptest.NewRequest(http.MethodPost, "/api/staff/orders/status", strings.NewReader(body)), nil)
		return rec
	}

	require.Equal(t, http.StatusOK, do(`{"id":"ord_1","status":"completed"}`).Code)
	o := listOrders(t, s)[0]
	assert.Equal(t, models.OrderCompleted, o.Status)
	assert.NotNil(t, o.StatusUpdatedAt)

	// any status can move to any other
	require.Equal(t, http.StatusOK, do(`{"id":"ord_1","status":"received"}`).Code)
	assert.Equal(t, models.OrderReceived, listOrders(t, s)[0].Status)

	assert.Equal(t, http.StatusBadRequest, do(`{"id":"ord_1","status":"pending"}`).Code, "pending is not settable here")
	assert.Equal(t, http.StatusBadRequest, do(`{"id":"ord_1","status":"shipped"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(`{"id":"ghost","status":"ready"}`).Code, "unknown id")
	assert.Equal(t, http.StatusBadRequest, do(`{"status":"ready"}`).Code)
}
