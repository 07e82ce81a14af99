package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"successspace/auth"
	"successspace/booking"
	"successspace/branding"
	"successspace/events"
	"successspace/filemgr"
	"successspace/inventory"
	"successspace/menu"
	"successspace/middleware"
	"successspace/notifications"
	"successspace/notify"
	"successspace/orders"
	"successspace/pay"
	"successspace/ratelim"
	"successspace/rdx"
	"successspace/reports"
	"successspace/routes"
	"successspace/store"
	"successspace/workspaces"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=()")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	dataDir := envOr("DATA_DIR", "data")
	publicDir := envOr("PUBLIC_DIR", "public")
	uploadDir := envOr("UPLOAD_DIR", "public/uploads")

	s, err := store.New(dataDir)
	if err != nil {
		log.Fatalf("store init failed: %v", err)
	}
	if err := auth.SeedUsers(s); err != nil {
		log.Fatalf("user seed failed: %v", err)
	}

	rdx.Init()

	uploader, err := filemgr.NewUploader(uploadDir)
	if err != nil {
		log.Fatalf("upload dir init failed: %v", err)
	}

	// staff notification hub
	hub := notify.NewHub()
	go hub.Run()

	card := pay.NewProviderFromEnv()
	inv := inventory.NewService(s, hub)
	mw := middleware.NewAuth(s)

	deps := routes.Deps{
		Mw:            mw,
		RL:            ratelim.NewRateLimiter(),
		Auth:          auth.NewHandlers(s),
		Orders:        orders.NewHandlers(s, inv, card, hub),
		Booking:       booking.NewHandlers(s, hub),
		Inventory:     inv,
		Reports:       reports.NewHandlers(s),
		Menu:          menu.NewHandlers(s),
		Workspaces:    workspaces.NewHandlers(s),
		Branding:      branding.NewHandlers(s),
		Events:        events.NewHandlers(s),
		Notifications: notifications.NewHandlers(s),
		Uploader:      uploader,
		Hub:           hub,
	}

	router := httprouter.New()
	router.GET("/health", Index)
	routes.Register(router, deps, publicDir, uploadDir)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("🛑 Shutting down notification hub...")
		hub.Stop()
	})

	go func() {
		log.Printf("🚀 Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	log.Println("✅ Server stopped cleanly")
}
