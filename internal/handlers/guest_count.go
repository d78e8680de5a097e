package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-todo-list/internal/logger"
)

// GuestCounter defines the interface that the service must implement.
type GuestCounter interface {
	GuestTodoCount(ctx context.Context) (count, remaining int64, err error)
}

// GuestTodoCountResponse reports the guest pool usage
// swagger:model GuestTodoCountResponse
type GuestTodoCountResponse struct {
	// Number of todos in the guest pool
	// default: 1
	Count int64 `json:"count"`

	// Todos a guest may still create
	// default: 2
	Remaining int64 `json:"remaining"`
}

// GuestTodoCountErrorResponse represents an error response
// swagger:model GuestTodoCountErrorResponse
type GuestTodoCountErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewGuestTodoCountHandler returns an HTTP handler reporting the guest pool usage.
// @Summary Get guest todo count
// @Description Returns the number of guest todos and how many a guest may still create
// @Tags user
// @Produce json
// @Success 200 {object} handlers.GuestTodoCountResponse "Guest pool usage"
// @Failure 500 {object} handlers.GuestTodoCountErrorResponse "Internal server error"
// @Router /user/guest-todo-count [get]
func NewGuestTodoCountHandler(svc GuestCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, remaining, err := svc.GuestTodoCount(r.Context())
		if err != nil {
			logger.Log.Errorw("failed to get guest todo count", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(GuestTodoCountErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(GuestTodoCountResponse{
			Count:     count,
			Remaining: remaining,
		})
	}
}
