package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-todo-list/internal/jwt"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
)

// ScopeTokener defines the token operations needed to resolve a caller scope.
type ScopeTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// TodoErrorResponse represents an error response for todo operations
// swagger:model TodoErrorResponse
type TodoErrorResponse struct {
	// Error message
	// default: Todo not found
	Error string `json:"error"`
}

// resolveScope determines the caller scope for a request. Requests
// without an Authorization header run in the shared guest scope;
// requests with an invalid or expired token are rejected.
func resolveScope(ctx context.Context, r *http.Request, tokener ScopeTokener) (models.Scope, error) {
	if r.Header.Get("Authorization") == "" {
		return models.GuestScope(), nil
	}

	tokenString, err := tokener.GetTokenFromRequest(ctx, r)
	if err != nil {
		return models.Scope{}, err
	}

	claims, err := tokener.GetClaims(ctx, tokenString)
	if err != nil {
		return models.Scope{}, err
	}

	return models.UserScope(claims.UserID), nil
}
