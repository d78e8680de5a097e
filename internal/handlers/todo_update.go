package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
	"github.com/sbilibin2017/gw-todo-list/internal/services"
)

// TodoUpdater defines the interface that the service must implement.
type TodoUpdater interface {
	Update(ctx context.Context, scope models.Scope, id uuid.UUID, text *string, completed *bool, color *string) (*models.TodoDB, error)
}

// UpdateTodoRequest represents the JSON body for a partial todo update.
// Omitted fields keep their current values.
// swagger:model UpdateTodoRequest
type UpdateTodoRequest struct {
	// New todo text
	// default: Buy oat milk
	Text *string `json:"text"`

	// New completion flag
	// default: true
	Completed *bool `json:"completed"`

	// New display color
	// default: #00ff00
	Color *string `json:"color"`
}

// NewUpdateTodoHandler returns an HTTP handler applying a partial update to a todo.
// @Summary Update a todo
// @Description Updates only the provided fields of a todo visible to the caller. The update timestamp is always refreshed.
// @Tags todo
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer {token}"
// @Param id path string true "Todo ID"
// @Param updateTodoRequest body handlers.UpdateTodoRequest true "Todo update request"
// @Success 200 {object} models.TodoDB "The updated todo"
// @Failure 400 {object} handlers.TodoErrorResponse "Empty text / invalid request"
// @Failure 401 {object} handlers.TodoErrorResponse "Invalid or expired token"
// @Failure 404 {object} handlers.TodoErrorResponse "Todo not found"
// @Failure 500 {object} handlers.TodoErrorResponse "Internal server error"
// @Router /todos/{id} [put]
func NewUpdateTodoHandler(svc TodoUpdater, tokener ScopeTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := resolveScope(r.Context(), r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "Invalid or expired token",
			})
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "Todo not found",
			})
			return
		}

		var req UpdateTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		todo, err := svc.Update(r.Context(), scope, id, req.Text, req.Completed, req.Color)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTextRequired):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TodoErrorResponse{
					Error: "Text is required",
				})
			case errors.Is(err, services.ErrTodoNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(TodoErrorResponse{
					Error: "Todo not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TodoErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(todo)
	}
}
