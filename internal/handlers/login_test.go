package handlers

import (
	"bytes"
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

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name          string
		email         string
		password      string
		mockSetup     func(m *MockLoginer)
		expectedCode  int
		expectedError string
		rawBody       bool
	}{
		{
			name:     "success",
			email:    "john@example.com",
			password: "secret123",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john@example.com", "secret123").
					Return("JWT_TOKEN", &models.User{ID: userID, Email: "john@example.com"}, nil)
			},
			expectedCode: 200,
		},
		{
			name:     "wrong password",
			email:    "john@example.com",
			password: "wrong",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john@example.com", "wrong").
					Return("", nil, services.ErrInvalidCredentials)
			},
			expectedCode:  401,
			expectedError: "Invalid email or password",
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "whatever",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "ghost@example.com", "whatever").
					Return("", nil, services.ErrInvalidCredentials)
			},
			expectedCode:  401,
			expectedError: "Invalid email or password",
		},
		{
			name:     "internal server error",
			email:    "john@example.com",
			password: "secret123",
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().
					Login(gomock.Any(), "john@example.com", "secret123").
					Return("", nil, errors.New("database failure"))
			},
			expectedCode:  500,
			expectedError: "Internal server error",
		},
		{
			name:          "invalid json",
			rawBody:       true,
			expectedCode:  400,
			expectedError: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockLoginer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewLoginHandler(mockSvc)

			var req *http.Request
			if tt.rawBody {
				req = httptest.NewRequest(http.MethodPost, "/user/login", bytes.NewBufferString("{invalid json}"))
			} else {
				bodyBytes, _ := json.Marshal(LoginRequest{Email: tt.email, Password: tt.password})
				req = httptest.NewRequest(http.MethodPost, "/user/login", bytes.NewBuffer(bodyBytes))
			}

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

			var resp LoginResponse
			err := json.Unmarshal(rr.Body.Bytes(), &resp)
			assert.NoError(t, err)
			assert.Equal(t, "JWT_TOKEN", resp.Token)
			assert.Equal(t, userID, resp.User.ID)
		})
	}
}
