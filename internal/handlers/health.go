package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
)

// TodoCounter defines the interface that the service must implement.
type TodoCounter interface {
	Count(ctx context.Context, scope models.Scope) (int64, error)
}

// HealthResponse represents the health check response
// swagger:model HealthResponse
type HealthResponse struct {
	// Service status
	// default: ok
	Status string `json:"status"`

	// Status message
	// default: Todo API is running
	Message string `json:"message"`

	// Time the check ran, RFC 3339
	Timestamp string `json:"timestamp"`

	// Number of todos in the guest pool
	// default: 0
	TodoCount int64 `json:"todoCount"`
}

// NewHealthHandler returns an HTTP handler for the health check.
// The todo count doubles as a database connectivity probe.
// @Summary Health check
// @Description Reports service status and verifies database connectivity
// @Tags health
// @Produce json
// @Success 200 {object} handlers.HealthResponse "Service is healthy"
// @Failure 500 {object} handlers.TodoErrorResponse "Database unreachable"
// @Router /health [get]
func NewHealthHandler(svc TodoCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Count(r.Context(), models.GuestScope())
		if err != nil {
			logger.Log.Errorw("health check failed", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "Database unreachable",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(HealthResponse{
			Status:    "ok",
			Message:   "Todo API is running",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			TodoCount: count,
		})
	}
}
