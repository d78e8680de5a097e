package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
	"github.com/sbilibin2017/gw-todo-list/internal/services"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT, nil)

	tests := []struct {
		name         string
		email        string
		password     string
		userName     string
		existingUser *models.UserDB
		readerErr    error
		writerErr    error
		wantErr      error
	}{
		{
			name:     "successful registration",
			email:    "alice@example.com",
			password: "pass123",
			userName: "Alice",
			wantErr:  nil,
		},
		{
			name:         "email already taken",
			email:        "bob@example.com",
			password:     "pass123",
			userName:     "Bob",
			existingUser: &models.UserDB{UserID: uuid.New(), Email: "bob@example.com"},
			wantErr:      services.ErrUserAlreadyExists,
		},
		{
			name:      "reader error",
			email:     "eve@example.com",
			password:  "pass123",
			userName:  "Eve",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "writer error",
			email:     "carol@example.com",
			password:  "pass123",
			userName:  "Carol",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader.EXPECT().
				GetByEmail(gomock.Any(), tt.email).
				Return(tt.existingUser, tt.readerErr)

			if tt.existingUser == nil && tt.readerErr == nil {
				created := &models.UserDB{
					UserID: uuid.New(),
					Email:  tt.email,
					Name:   tt.userName,
				}
				if tt.writerErr != nil {
					created = nil
				}
				mockWriter.EXPECT().
					Save(gomock.Any(), tt.email, gomock.Any(), tt.userName).
					Return(created, tt.writerErr)
			}

			profile, err := svc.Register(context.Background(), tt.email, tt.password, tt.userName)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, profile.Email)
				assert.Equal(t, tt.userName, profile.Name)
			}
		})
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, nil, nil)

	password := "plaintext-secret"

	mockReader.EXPECT().GetByEmail(gomock.Any(), "sam@example.com").Return(nil, nil)
	mockWriter.EXPECT().
		Save(gomock.Any(), "sam@example.com", gomock.Any(), "Sam").
		DoAndReturn(func(_ context.Context, email, passwordHash, name string) (*models.UserDB, error) {
			// The stored credential must be a valid bcrypt hash of the
			// password, never the plaintext.
			assert.NotEqual(t, password, passwordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)))
			return &models.UserDB{UserID: uuid.New(), Email: email, Name: name}, nil
		})

	_, err := svc.Register(context.Background(), "sam@example.com", password, "Sam")
	assert.NoError(t, err)
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT, nil)

	password := "secret"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userID := uuid.New()

	registered := &models.UserDB{
		UserID:       userID,
		Email:        "alice@example.com",
		PasswordHash: string(hashed),
		Name:         "Alice",
	}

	t.Run("successful login", func(t *testing.T) {
		mockReader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(registered, nil)
		mockJWT.EXPECT().Generate(gomock.Any(), userID).Return("token123", nil)

		token, profile, err := svc.Login(context.Background(), "alice@example.com", password)
		assert.NoError(t, err)
		assert.Equal(t, "token123", token)
		assert.Equal(t, userID, profile.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockReader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(registered, nil)

		_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		mockReader.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

		_, _, err := svc.Login(context.Background(), "nobody@example.com", password)
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		mockReader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(registered, nil)
		mockReader.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

		_, _, wrongPassErr := svc.Login(context.Background(), "alice@example.com", "wrong")
		_, _, unknownEmailErr := svc.Login(context.Background(), "nobody@example.com", password)

		assert.Equal(t, wrongPassErr, unknownEmailErr)
	})

	t.Run("jwt error is propagated", func(t *testing.T) {
		mockReader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(registered, nil)
		mockJWT.EXPECT().Generate(gomock.Any(), userID).Return("", errors.New("sign error"))

		_, _, err := svc.Login(context.Background(), "alice@example.com", password)
		assert.EqualError(t, err, "sign error")
	})
}

func TestAuthService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	svc := services.NewAuthService(mockReader, nil, nil, nil)

	userID := uuid.New()

	t.Run("returns the public profile", func(t *testing.T) {
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(&models.UserDB{
			UserID:       userID,
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$hash",
			Name:         "Alice",
		}, nil)

		profile, err := svc.GetByID(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, userID, profile.ID)
		assert.Equal(t, "alice@example.com", profile.Email)
	})

	t.Run("missing user", func(t *testing.T) {
		mockReader.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		_, err := svc.GetByID(context.Background(), userID)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestAuthService_GuestTodoCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCounter := services.NewMockGuestTodoCounter(ctrl)
	svc := services.NewAuthService(nil, nil, nil, mockCounter)

	tests := []struct {
		name          string
		count         int64
		wantRemaining int64
	}{
		{name: "empty pool", count: 0, wantRemaining: 3},
		{name: "partially full", count: 2, wantRemaining: 1},
		{name: "full", count: 3, wantRemaining: 0},
		{name: "over limit", count: 5, wantRemaining: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCounter.EXPECT().CountGuest(gomock.Any()).Return(tt.count, nil)

			count, remaining, err := svc.GuestTodoCount(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, tt.count, count)
			assert.Equal(t, tt.wantRemaining, remaining)
		})
	}

	t.Run("counter error", func(t *testing.T) {
		mockCounter.EXPECT().CountGuest(gomock.Any()).Return(int64(0), errors.New("db down"))

		_, _, err := svc.GuestTodoCount(context.Background())
		assert.EqualError(t, err, "db down")
	})
}
