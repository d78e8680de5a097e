package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
	"github.com/sbilibin2017/gw-todo-list/internal/services"
)

// TodoCreator defines the interface that the service must implement.
type TodoCreator interface {
	Create(ctx context.Context, scope models.Scope, text string, color *string) (*models.TodoDB, error)
}

// CreateTodoRequest represents the JSON body for todo creation
// swagger:model CreateTodoRequest
type CreateTodoRequest struct {
	// Todo text
	// required: true
	// default: Buy milk
	Text string `json:"text"`

	// Optional display color
	// default: #ff0000
	Color *string `json:"color"`
}

// NewCreateTodoHandler returns an HTTP handler creating a todo.
// @Summary Create a todo
// @Description Creates a todo in the caller's scope. Guests share one pool capped at 3 todos.
// @Tags todo
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer {token}"
// @Param createTodoRequest body handlers.CreateTodoRequest true "Todo creation request"
// @Success 201 {object} models.TodoDB "The created todo"
// @Failure 400 {object} handlers.TodoErrorResponse "Missing text / guest limit reached"
// @Failure 401 {object} handlers.TodoErrorResponse "Invalid or expired token"
// @Failure 500 {object} handlers.TodoErrorResponse "Internal server error"
// @Router /todos [post]
func NewCreateTodoHandler(svc TodoCreator, tokener ScopeTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := resolveScope(r.Context(), r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "Invalid or expired token",
			})
			return
		}

		var req CreateTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		todo, err := svc.Create(r.Context(), scope, req.Text, req.Color)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTextRequired):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TodoErrorResponse{
					Error: "Text is required",
				})
			case errors.Is(err, services.ErrGuestLimitReached):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TodoErrorResponse{
					Error: err.Error(),
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
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(todo)
	}
}
