package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/julienschmidt/httprouter"

	"successspace/auth"
	"successspace/booking"
	"successspace/branding"
	"successspace/events"
	"successspace/filemgr"
	"successspace/inventory"
	"successspace/menu"
	"successspace/middleware"
	"successspace/models"
	"successspace/notifications"
	"successspace/notify"
	"successspace/orders"
	"successspace/ratelim"
	"successspace/reports"
	"successspace/workspaces"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Mw            *middleware.Auth
	RL            *ratelim.RateLimiter
	Auth          *auth.Handlers
	Orders        *orders.Handlers
	Booking       *booking.Handlers
	Inventory     *inventory.Service
	Reports       *reports.Handlers
	Menu          *menu.Handlers
	Workspaces    *workspaces.Handlers
	Branding      *branding.Handlers
	Events        *events.Handlers
	Notifications *notifications.Handlers
	Uploader      *filemgr.Uploader
	Hub           *notify.Hub
}

func AddAuthRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/auth/login", d.RL.Limit(d.Auth.Login))
	router.POST("/api/auth/logout", d.Auth.Logout)
	router.GET("/api/auth/me", d.Mw.Optional(d.Auth.Me))
}

func AddStorefrontRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/menu", d.Menu.List)
	router.GET("/api/workspaces", d.Workspaces.List)
	router.GET("/api/branding", d.Branding.Get)
	router.GET("/api/events", d.Events.List)
	router.POST("/api/order", d.RL.Limit(d.Orders.Checkout))
}

func AddBookingRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/booking", d.RL.Limit(d.Booking.Create))
	router.GET("/api/bookings", d.Booking.PublicList)
	router.GET("/api/availability", d.Booking.AvailabilityQuery)
	router.GET("/api/customer/bookings", d.Mw.Require(d.Booking.CustomerList, models.RoleCustomer))
	router.POST("/api/customer/booking/cancel", d.Mw.Require(d.Booking.Cancel, models.RoleCustomer))
	router.GET("/api/booking/qr", d.Mw.Require(d.Booking.ConfirmationQR,
		models.RoleCustomer, models.RoleStaff, models.RoleAdmin))
}

func AddStaffRoutes(router *httprouter.Router, d Deps) {
	staff := func(h httprouter.Handle) httprouter.Handle {
		return d.Mw.Require(h, models.RoleStaff, models.RoleAdmin)
	}
	router.POST("/api/staff/pos/order", staff(d.Orders.POSOrder))
	router.GET("/api/staff/orders", staff(d.Orders.ListOrders))
	router.POST("/api/staff/orders/status", staff(d.Orders.UpdateStatus))
	router.GET("/api/inventory", staff(d.Inventory.List))
	router.POST("/api/staff/inventory", staff(d.Inventory.Replace))
	router.POST("/api/staff/inventory/add", staff(d.Inventory.Add))
	router.GET("/ws/staff", staff(notify.StaffSocket(d.Hub)))
}

func AddAdminRoutes(router *httprouter.Router, d Deps) {
	admin := func(h httprouter.Handle) httprouter.Handle {
		return d.Mw.Require(h, models.RoleAdmin)
	}
	router.GET("/api/admin/orders", admin(d.Orders.ListOrders))
	router.GET("/api/admin/bookings", admin(d.Booking.AdminList))
	router.GET("/api/admin/alerts", admin(d.Inventory.Alerts))
	router.POST("/api/admin/inventory/warn", admin(d.Inventory.SetWarn))
	router.GET("/api/admin/reports/orders", admin(d.Reports.OrdersReport))
	router.GET("/api/admin/reports/orders/pdf", admin(d.Reports.OrdersReportPDF))
	router.POST("/api/admin/menu/add", admin(d.Menu.Add))
	router.POST("/api/admin/menu/remove", admin(d.Menu.Remove))
	router.POST("/api/admin/workspaces/add", admin(d.Workspaces.Add))
	router.POST("/api/admin/workspaces/remove", admin(d.Workspaces.Remove))
	router.POST("/api/admin/branding", admin(d.Branding.Update))
	router.POST("/api/admin/events", admin(d.Events.Add))
	router.POST("/api/admin/events/remove", admin(d.Events.Remove))
	router.GET("/api/admin/notifications", admin(d.Notifications.List))
	router.POST("/api/admin/notifications/add", admin(d.Notifications.Add))
	router.POST("/api/admin/notifications/remove", admin(d.Notifications.Remove))
	router.POST("/api/admin/upload", admin(d.Uploader.Upload))
}

// AddStaticRoutes serves uploaded files and the storefront's static assets.
// Unknown /api/ paths still 404 as JSON-less plain text.
func AddStaticRoutes(router *httprouter.Router, publicDir, uploadDir string) {
	if _, err := os.Stat(uploadDir); err == nil {
		router.ServeFiles("/uploads/*filepath", http.Dir(uploadDir))
	}
	fs := http.FileServer(http.Dir(publicDir))
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		name := r.URL.Path
		if name == "/" {
			name = "/index.html"
		}
		if st, err := os.Stat(filepath.Join(publicDir, filepath.Clean(name))); err != nil || st.IsDir() {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		fs.ServeHTTP(w, r)
	})
}

// Register wires the whole route table.
func Register(router *httprouter.Router, d Deps, publicDir, uploadDir string) {
	AddAuthRoutes(router, d)
	AddStorefrontRoutes(router, d)
	AddBookingRoutes(router, d)
	AddStaffRoutes(router, d)
	AddAdminRoutes(router, d)
	AddStaticRoutes(router, publicDir, uploadDir)
}
