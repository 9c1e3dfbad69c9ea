package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/auth-gateway/auth"
	"github.com/upb/auth-gateway/middleware"
	"go.uber.org/zap"
)

// Deps holds the wired handlers the router needs
type Deps struct {
	Auth   *auth.Handler
	Health *HealthHandler
	Logger *zap.Logger
}

// Setup configures all application routes and middleware
func Setup(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Cookies are shared cross-site, so credentials must be allowed
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", deps.Health.HandleLiveness)
	r.Get("/readyz", deps.Health.HandleReadiness)

	// Auth endpoints
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", deps.Auth.HandleLogin)
		r.Post("/logout", deps.Auth.HandleLogout)
		r.Post("/register", deps.Auth.HandleRegister)
		r.Post("/refresh", deps.Auth.HandleRefresh)
		r.Get("/me", deps.Auth.HandleProfile)
		r.Post("/verify-email", deps.Auth.HandleVerifyEmail)
		r.Post("/reset-password", deps.Auth.HandleResetPassword)
		r.Post("/forgot-password", deps.Auth.HandleForgotPassword)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"error","message":"endpoint not found"}`))
	})

	return r
}
