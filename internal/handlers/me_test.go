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

	"github.com/sbilibin2017/gw-todo-list/internal/jwt"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
	"github.com/sbilibin2017/gw-todo-list/internal/services"
)

func TestGetMeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name          string
		mockSetup     func(svc *MockProfileGetter, tok *MockScopeTokener)
		expectedCode  int
		expectedError string
	}{
		{
			name: "success",
			mockSetup: func(svc *MockProfileGetter, tok *MockScopeTokener) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "token").Return(&jwt.Claims{UserID: userID}, nil)
				svc.EXPECT().GetByID(gomock.Any(), userID).
					Return(&models.User{ID: userID, Email: "john@example.com", Name: "John Doe"}, nil)
			},
			expectedCode: 200,
		},
		{
			name: "missing token",
			mockSetup: func(svc *MockProfileGetter, tok *MockScopeTokener) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("authorization header missing"))
			},
			expectedCode:  401,
			expectedError: "Unauthorized",
		},
		{
			name: "invalid token",
			mockSetup: func(svc *MockProfileGetter, tok *MockScopeTokener) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("bad", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "bad").Return(nil, errors.New("invalid token"))
			},
			expectedCode:  401,
			expectedError: "Unauthorized",
		},
		{
			name: "user not found",
			mockSetup: func(svc *MockProfileGetter, tok *MockScopeTokener) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "token").Return(&jwt.Claims{UserID: userID}, nil)
				svc.EXPECT().GetByID(gomock.Any(), userID).Return(nil, services.ErrUserNotFound)
			},
			expectedCode:  404,
			expectedError: "User not found",
		},
		{
			name: "internal server error",
			mockSetup: func(svc *MockProfileGetter, tok *MockScopeTokener) {
				tok.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("token", nil)
				tok.EXPECT().GetClaims(gomock.Any(), "token").Return(&jwt.Claims{UserID: userID}, nil)
				svc.EXPECT().GetByID(gomock.Any(), userID).Return(nil, errors.New("database failure"))
			},
			expectedCode:  500,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockProfileGetter(ctrl)
			mockTok := NewMockScopeTokener(ctrl)
			tt.mockSetup(mockSvc, mockTok)

			handler := NewGetMeHandler(mockSvc, mockTok)

			req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp map[string]string
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp["error"])
				return
			}

			var resp models.User
			err := json.Unmarshal(rr.Body.Bytes(), &resp)
			assert.NoError(t, err)
			assert.Equal(t, userID, resp.ID)
			assert.Equal(t, "john@example.com", resp.Email)
		})
	}
}
