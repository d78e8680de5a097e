package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
)

// TodoClearer defines the interface that the service must implement.
type TodoClearer interface {
	DeleteAll(ctx context.Context, scope models.Scope) (int64, error)
}

// DeleteAllTodosResponse represents a successful bulk deletion response
// swagger:model DeleteAllTodosResponse
type DeleteAllTodosResponse struct {
	// Success message
	// default: All todos deleted successfully
	Message string `json:"message"`

	// Number of todos removed
	// default: 3
	DeletedCount int64 `json:"deletedCount"`
}

// NewDeleteAllTodosHandler returns an HTTP handler removing every todo in the caller's scope.
// @Summary Delete all todos
// @Description Deletes every todo visible to the caller and returns how many were removed
// @Tags todo
// @Produce json
// @Param Authorization header string false "Bearer {token}"
// @Success 200 {object} handlers.DeleteAllTodosResponse "Number of todos removed"
// @Failure 401 {object} handlers.TodoErrorResponse "Invalid or expired token"
// @Failure 500 {object} handlers.TodoErrorResponse "Internal server error"
// @Router /todos [delete]
func NewDeleteAllTodosHandler(svc TodoClearer, tokener ScopeTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := resolveScope(r.Context(), r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "Invalid or expired token",
			})
			return
		}

		count, err := svc.DeleteAll(r.Context(), scope)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteAllTodosResponse{
			Message:      "All todos deleted successfully",
			DeletedCount: count,
		})
	}
}
