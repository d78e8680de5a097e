package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-todo-list/internal/models"
	"github.com/sbilibin2017/gw-todo-list/internal/services"
)

func TestToggleTodoHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	todoID := uuid.New()

	tests := []struct {
		name          string
		id            string
		mockSetup     func(svc *MockTodoToggler)
		expectedCode  int
		expectedError string
	}{
		{
			name: "success",
			id:   todoID.String(),
			mockSetup: func(svc *MockTodoToggler) {
				svc.EXPECT().
					Toggle(gomock.Any(), models.GuestScope(), todoID).
					Return(&models.TodoDB{ID: todoID, Text: "Buy milk", Completed: true}, nil)
			},
			expectedCode: 200,
		},
		{
			name: "not found",
			id:   todoID.String(),
			mockSetup: func(svc *MockTodoToggler) {
				svc.EXPECT().
					Toggle(gomock.Any(), models.GuestScope(), todoID).
					Return(nil, services.ErrTodoNotFound)
			},
			expectedCode:  404,
			expectedError: "Todo not found",
		},
		{
			name:          "malformed id",
			id:            "not-a-uuid",
			mockSetup:     func(svc *MockTodoToggler) {},
			expectedCode:  404,
			expectedError: "Todo not found",
		},
		{
			name: "internal server error",
			id:   todoID.String(),
			mockSetup: func(svc *MockTodoToggler) {
				svc.EXPECT().
					Toggle(gomock.Any(), models.GuestScope(), todoID).
					Return(nil, errors.New("database failure"))
			},
			expectedCode:  500,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockTodoToggler(ctrl)
			mockTok := NewMockScopeTokener(ctrl)
			tt.mockSetup(mockSvc)

			handler := NewToggleTodoHandler(mockSvc, mockTok)

			req := newTodoRequest(http.MethodPatch, "/todos/"+tt.id+"/toggle", tt.id, nil)
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp["error"])
				return
			}

			var resp models.TodoDB
			assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, todoID, resp.ID)
			assert.True(t, resp.Completed)
		})
	}
}
