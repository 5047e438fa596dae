package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type HealthHandler struct {
	Check  HealthCheck
	Logger *zap.SugaredLogger
}

func NewHealthHandler(check HealthCheck, logger *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{Check: check, Logger: logger}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	DB        string    `json:"db"`
}

// Health состояние сервиса и БД
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Service:   "valtify",
		Timestamp: time.Now().UTC(),
		DB:        "ok",
	}
	if h.Check != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Check(ctx); err != nil {
			h.Logger.Warnw("health: database ping failed", "error", err)
			resp.Status = "degraded"
			resp.DB = "unavailable"
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
