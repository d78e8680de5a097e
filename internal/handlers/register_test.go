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

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	type requestBody struct {
		email    string
		password string
		name     string
	}

	tests := []struct {
		name          string
		reqBody       requestBody
		mockSetup     func(m *MockRegisterer)
		expectedCode  int
		expectedError string
		rawBody       bool // if true, pass raw body (to simulate invalid JSON)
	}{
		{
			name: "success",
			reqBody: requestBody{
				email:    "john@example.com",
				password: "secret123",
				name:     "John Doe",
			},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "john@example.com", "secret123", "John Doe").
					Return(&models.User{ID: userID, Email: "john@example.com", Name: "John Doe"}, nil)
			},
			expectedCode: 201,
		},
		{
			name: "email already exists",
			reqBody: requestBody{
				email:    "alice@example.com",
				password: "pass",
				name:     "Alice",
			},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "alice@example.com", "pass", "Alice").
					Return(nil, services.ErrUserAlreadyExists)
			},
			expectedCode:  400,
			expectedError: "User with this email already exists",
		},
		{
			name: "missing fields",
			reqBody: requestBody{
				email: "bob@example.com",
			},
			expectedCode:  400,
			expectedError: "Email, password, and name are required",
		},
		{
			name: "internal server error",
			reqBody: requestBody{
				email:    "bob@example.com",
				password: "pass",
				name:     "Bob",
			},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().
					Register(gomock.Any(), "bob@example.com", "pass", "Bob").
					Return(nil, errors.New("database failure"))
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
			mockSvc := NewMockRegisterer(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewRegisterHandler(mockSvc)

			var req *http.Request
			if tt.rawBody {
				req = httptest.NewRequest(http.MethodPost, "/user/register", bytes.NewBufferString("{invalid json}"))
			} else {
				bodyBytes, _ := json.Marshal(RegisterRequest{
					Email:    tt.reqBody.email,
					Password: tt.reqBody.password,
					Name:     tt.reqBody.name,
				})
				req = httptest.NewRequest(http.MethodPost, "/user/register", bytes.NewBuffer(bodyBytes))
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

			var resp RegisterResponse
			err := json.Unmarshal(rr.Body.Bytes(), &resp)
			assert.NoError(t, err)
			assert.Equal(t, "User registered successfully", resp.Message)
			assert.Equal(t, userID, resp.User.ID)
			assert.Equal(t, "john@example.com", resp.User.Email)
		})
	}
}
