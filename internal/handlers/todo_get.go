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

// TodoGetter defines the interface that the service must implement.
type TodoGetter interface {
	Get(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.TodoDB, error)
}

// NewGetTodoHandler returns an HTTP handler fetching a single todo by id.
// @Summary Get a todo
// @Description Returns the todo with the given id. Todos owned by other callers are reported as not found.
// @Tags todo
// @Produce json
// @Param Authorization header string false "Bearer {token}"
// @Param id path string true "Todo ID"
// @Success 200 {object} models.TodoDB "The todo"
// @Failure 401 {object} handlers.TodoErrorResponse "Invalid or expired token"
// @Failure 404 {object} handlers.TodoErrorResponse "Todo not found"
// @Failure 500 {object} handlers.TodoErrorResponse "Internal server error"
// @Router /todos/{id} [get]
func NewGetTodoHandler(svc TodoGetter, tokener ScopeTokener) http.HandlerFunc {
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

		todo, err := svc.Get(r.Context(), scope, id)
		if err != nil {
			switch {
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
