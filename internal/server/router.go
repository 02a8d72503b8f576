// Package server assembles the HTTP routes of the HealthGuard API.
package server

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/healthguard/healthguard-go/internal/config"
	"github.com/healthguard/healthguard-go/internal/crypto"
	"github.com/healthguard/healthguard-go/internal/handler"
	"github.com/healthguard/healthguard-go/internal/metrics"
	"github.com/healthguard/healthguard-go/internal/middleware"
	"github.com/healthguard/healthguard-go/internal/repository"
	"github.com/healthguard/healthguard-go/internal/service"
)

// Options tunes router dependencies that tests need to swap out.
type Options struct {
	// HashParams defaults to crypto.DefaultHashParams.
	HashParams *crypto.HashParams
	// Dispatcher defaults to a service.LogDispatcher on the default logger.
	Dispatcher service.Dispatcher
}

// NewRouter wires services over store and mounts every API route. m may be nil.
func NewRouter(cfg config.Config, store repository.Store, m *metrics.Metrics, opts Options) http.Handler {
	params := crypto.DefaultHashParams()
	if opts.HashParams != nil {
		params = *opts.HashParams
	}
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = service.NewLogDispatcher(nil)
	}

	sessions := middleware.NewSessions(cfg.SecretKey, cfg.SessionTTL, cfg.CookieSecure)

	healthService := service.NewHealthService(store, m)
	authHandler := handler.NewAuthHandler(service.NewAuthService(store, crypto.NewPasswordHasher(params)), sessions)
	healthHandler := handler.NewHealthHandler(healthService)
	contactHandler := handler.NewContactHandler(service.NewContactService(store))
	emergencyHandler := handler.NewEmergencyHandler(service.NewEmergencyService(store, dispatcher, m))
	doctorHandler := handler.NewDoctorHandler(service.NewDoctorService(store, healthService))

	r := chi.NewRouter()
	r.Use(middleware.Logger(m))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(corsHandler(cfg.AllowedOrigins))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
		})
		r.Post("/logout", authHandler.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(sessions.Require)
			r.Post("/health-data", healthHandler.HandleCreateRecord)
			r.Get("/health-data", healthHandler.HandleListRecords)
			r.Post("/emergency-contacts", contactHandler.HandleSaveContacts)
			r.Get("/emergency-contacts", contactHandler.HandleListContacts)
			r.Post("/trigger-emergency", emergencyHandler.HandleTrigger)
		})

		r.With(middleware.DoctorAuth(cfg.DoctorKey)).Get("/doctor/abnormal-data", doctorHandler.HandleAbnormalData)
	})

	return r
}

// corsHandler allows cross-origin calls from origins. Browsers refuse
// credentials with a wildcard origin, so "*" disables them.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	credentials := !slices.Contains(origins, "*")
	if !credentials {
		slog.Warn("CORS_ALLOWED_ORIGINS contains *, session cookies will not be sent cross-origin")
	}

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: credentials,
	}).Handler
}
