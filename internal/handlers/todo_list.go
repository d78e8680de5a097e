package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
)

// TodoLister defines the interface that the service must implement.
type TodoLister interface {
	List(ctx context.Context, scope models.Scope) ([]models.TodoDB, error)
	ListCompleted(ctx context.Context, scope models.Scope) ([]models.TodoDB, error)
}

// NewListTodosHandler returns an HTTP handler listing the caller's todos.
// @Summary List todos
// @Description Returns all todos visible to the caller, newest first. Guests see the shared guest pool.
// @Tags todo
// @Produce json
// @Param Authorization header string false "Bearer {token}"
// @Success 200 {array} models.TodoDB "Todos in the caller's scope"
// @Failure 401 {object} handlers.TodoErrorResponse "Invalid or expired token"
// @Failure 500 {object} handlers.TodoErrorResponse "Internal server error"
// @Router /todos [get]
func NewListTodosHandler(svc TodoLister, tokener ScopeTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := resolveScope(r.Context(), r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "Invalid or expired token",
			})
			return
		}

		todos, err := svc.List(r.Context(), scope)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		if todos == nil {
			todos = []models.TodoDB{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(todos)
	}
}

// NewListCompletedTodosHandler returns an HTTP handler listing the caller's completed todos.
// @Summary List completed todos
// @Description Returns completed todos visible to the caller, newest first
// @Tags todo
// @Produce json
// @Param Authorization header string false "Bearer {token}"
// @Success 200 {array} models.TodoDB "Completed todos in the caller's scope"
// @Failure 401 {object} handlers.TodoErrorResponse "Invalid or expired token"
// @Failure 500 {object} handlers.TodoErrorResponse "Internal server error"
// @Router /todos/completed [get]
func NewListCompletedTodosHandler(svc TodoLister, tokener ScopeTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := resolveScope(r.Context(), r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "Invalid or expired token",
			})
			return
		}

		todos, err := svc.ListCompleted(r.Context(), scope)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TodoErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		if todos == nil {
			todos = []models.TodoDB{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(todos)
	}
}
