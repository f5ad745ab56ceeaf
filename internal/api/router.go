package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/nat/todo-api/internal/api/handlers"
	"github.com/nat/todo-api/internal/api/middleware"
	"github.com/nat/todo-api/internal/config"
	"github.com/nat/todo-api/internal/domain"
	"github.com/nat/todo-api/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.Auth)
	activityHandler := handlers.NewActivityHandler(services.Activity)

	// Public routes
	r.Post("/tokens", authHandler.IssueToken)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.SignUp)
		r.Get("/{id}", userHandler.GetByID)
	})

	// Token-gated routes
	r.Route("/activities", func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))
		r.Use(middleware.RequireRole(domain.RoleUser))

		r.Post("/", activityHandler.Create)
		r.Get("/", activityHandler.List)
		r.Get("/{id}", activityHandler.Get)
		r.Put("/{id}", activityHandler.Update)
		r.Put("/{id}/confirm", activityHandler.Confirm)
		r.Delete("/{id}", activityHandler.Delete)
	})

	return r
}
