package handlers

import (
	"Valtify/internal/middleware"
	"Valtify/internal/service"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// HealthCheck проверяет доступность хранилища.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	accountService *service.AccountService,
	vaultService *service.VaultService,
	health HealthCheck,
	logger *zap.SugaredLogger,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Handlers
	userHandler := NewUserHandler(accountService, logger)
	itemHandler := NewItemHandler(vaultService, logger)
	healthHandler := NewHealthHandler(health, logger)

	r.Get("/api/health", healthHandler.Health)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)

	// всё ниже — только с действительной сессией
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(accountService))

		r.Get("/api/user/me", userHandler.Me)

		r.Route("/api/vault", func(r chi.Router) {
			r.Get("/", itemHandler.List)
			r.Post("/", itemHandler.Add)
			r.Get("/{id}", itemHandler.Get)
			r.Put("/{id}", itemHandler.Update)
			r.Patch("/{id}", itemHandler.Update)
			r.Delete("/{id}", itemHandler.Delete)
		})
	})

	return &Handler{Router: r}
}
