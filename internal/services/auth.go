package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users. Readers return nil
// when no user matches.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, email, passwordHash, name string) (*models.UserDB, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// GuestTodoCounter returns the size of the shared guest todo pool.
type GuestTodoCounter interface {
	CountGuest(ctx context.Context) (int64, error)
}

// AuthService handles registration, login, and profile lookup.
type AuthService struct {
	reader  UserReader
	writer  UserWriter
	jwt     JWTGenerator
	counter GuestTodoCounter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator, counter GuestTodoCounter) *AuthService {
	return &AuthService{
		reader:  reader,
		writer:  writer,
		jwt:     jwt,
		counter: counter,
	}
}

// Register registers a new user and returns the public profile.
func (svc *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	created, err := svc.writer.Save(ctx, email, string(hashedPassword), name)
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return created.Profile(), nil
}

// Login authenticates a user and returns a JWT token with the public
// profile. An unknown email and a wrong password fail identically, so
// the response shape reveals nothing about which emails are registered.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", nil, err
	}
	if user == nil {
		logger.Log.Errorw("login failed: unknown email")
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("login failed: password mismatch")
		return "", nil, ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", nil, err
	}

	return token, user.Profile(), nil
}

// GetByID returns the public profile of the user with the given id.
func (svc *AuthService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user by id", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.Profile(), nil
}

// GuestTodoCount returns the guest pool size and the number of todos a
// guest may still create before hitting the limit.
func (svc *AuthService) GuestTodoCount(ctx context.Context) (count, remaining int64, err error) {
	count, err = svc.counter.CountGuest(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count guest todos", "err", err)
		return 0, 0, err
	}

	remaining = GuestTodoLimit - count
	if remaining < 0 {
		remaining = 0
	}

	return count, remaining, nil
}
