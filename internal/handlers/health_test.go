package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-todo-list/internal/models"
)

func TestHealthHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("healthy", func(t *testing.T) {
		mockSvc := NewMockTodoCounter(ctrl)
		mockSvc.EXPECT().Count(gomock.Any(), models.GuestScope()).Return(int64(2), nil)

		handler := NewHealthHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, 200, rr.Code)

		var resp HealthResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, int64(2), resp.TodoCount)
		assert.NotEmpty(t, resp.Timestamp)
	})

	t.Run("database unreachable", func(t *testing.T) {
		mockSvc := NewMockTodoCounter(ctrl)
		mockSvc.EXPECT().Count(gomock.Any(), models.GuestScope()).Return(int64(0), errors.New("connection refused"))

		handler := NewHealthHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, 500, rr.Code)

		var resp map[string]string
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Database unreachable", resp["error"])
	})
}
