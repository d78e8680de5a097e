package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
	"github.com/segmentio/kafka-go"
)

// GuestTodoLimit is the maximum number of todos the shared guest pool may hold.
const GuestTodoLimit = 3

var (
	// ErrTextRequired is returned when a todo is created or updated with empty text.
	ErrTextRequired = errors.New("text is required")
	// ErrGuestLimitReached is returned when the guest pool is at its todo limit.
	ErrGuestLimitReached = errors.New("guest users can only create 3 todos, please register to create unlimited todos")
	// ErrTodoNotFound is returned when no todo matches the id within the caller's scope.
	ErrTodoNotFound = errors.New("todo not found")
)

// TodoReader defines read operations for todos.
type TodoReader interface {
	List(ctx context.Context, scope models.Scope) ([]models.TodoDB, error)          // Returns todos in the scope, newest first
	ListCompleted(ctx context.Context, scope models.Scope) ([]models.TodoDB, error) // Returns completed todos in the scope
	Get(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.TodoDB, error)
	Count(ctx context.Context, scope models.Scope) (int64, error)
	CountGuest(ctx context.Context) (int64, error) // Returns the guest pool size
}

// TodoWriter defines write operations for todos. Writers return nil
// when no todo is visible in the scope under the given id.
type TodoWriter interface {
	Insert(ctx context.Context, scope models.Scope, text string, color *string) (*models.TodoDB, error)
	Update(ctx context.Context, scope models.Scope, id uuid.UUID, text *string, completed *bool, color *string) (*models.TodoDB, error)
	Toggle(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.TodoDB, error)
	Delete(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.TodoDB, error)
	DeleteAll(ctx context.Context, scope models.Scope) (int64, error)
}

// TodoListCache caches per-scope todo lists.
type TodoListCache interface {
	GetList(ctx context.Context, scope models.Scope) ([]models.TodoDB, error) // Returns nil on a cache miss
	SetList(ctx context.Context, scope models.Scope, todos []models.TodoDB) error
	Invalidate(ctx context.Context, scope models.Scope) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TodoService owns todo CRUD, ownership scoping, and the guest quota.
type TodoService struct {
	reader      TodoReader
	writer      TodoWriter
	cache       TodoListCache
	kafkaWriter KafkaWriter
}

// NewTodoService creates a new TodoService.
func NewTodoService(
	reader TodoReader,
	writer TodoWriter,
	cache TodoListCache,
	kafkaWriter KafkaWriter,
) *TodoService {
	return &TodoService{
		reader:      reader,
		writer:      writer,
		cache:       cache,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a todo mutation event to Kafka. Publishing is
// best effort: failures are logged and never surfaced to the caller.
func (s *TodoService) publishEvent(ctx context.Context, event models.TodoEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "action", event.Action)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal todo event for Kafka", "action", event.Action, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish todo event to Kafka", "action", event.Action, "error", err)
	} else {
		logger.Log.Infow("Todo event published to Kafka", "action", event.Action, "todo_id", event.TodoID)
	}
}

func newEvent(action string, scope models.Scope) models.TodoEvent {
	ownerID := "guest"
	if id := scope.OwnerID(); id != nil {
		ownerID = id.String()
	}
	return models.TodoEvent{
		EventID:   uuid.NewString(),
		Action:    action,
		OwnerID:   ownerID,
		Timestamp: time.Now().Unix(),
	}
}

// invalidateCache drops the cached list for the scope after a mutation.
func (s *TodoService) invalidateCache(ctx context.Context, scope models.Scope) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, scope); err != nil {
		logger.Log.Errorw("failed to invalidate todo list cache", "error", err)
	}
}

// List returns all todos visible in the scope, newest first.
func (s *TodoService) List(ctx context.Context, scope models.Scope) ([]models.TodoDB, error) {
	if s.cache != nil {
		cached, err := s.cache.GetList(ctx, scope)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	todos, err := s.reader.List(ctx, scope)
	if err != nil {
		logger.Log.Errorw("failed to list todos", "error", err)
		return nil, err
	}

	if s.cache != nil && len(todos) > 0 {
		if err := s.cache.SetList(ctx, scope, todos); err != nil {
			logger.Log.Errorw("failed to cache todo list", "error", err)
		}
	}

	return todos, nil
}

// ListCompleted returns completed todos visible in the scope, newest first.
func (s *TodoService) ListCompleted(ctx context.Context, scope models.Scope) ([]models.TodoDB, error) {
	todos, err := s.reader.ListCompleted(ctx, scope)
	if err != nil {
		logger.Log.Errorw("failed to list completed todos", "error", err)
		return nil, err
	}
	return todos, nil
}

// Get returns the todo with the given id. A todo owned by another caller
// is indistinguishable from a missing one: both are ErrTodoNotFound.
func (s *TodoService) Get(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.TodoDB, error) {
	todo, err := s.reader.Get(ctx, scope, id)
	if err != nil {
		logger.Log.Errorw("failed to get todo", "id", id, "error", err)
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// Create validates and persists a new todo. Guest creations are rejected
// once the guest pool holds GuestTodoLimit todos. The quota check reads
// live state and is not serialized against concurrent guest creations.
func (s *TodoService) Create(ctx context.Context, scope models.Scope, text string, color *string) (*models.TodoDB, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}

	if scope.IsGuest() {
		count, err := s.reader.CountGuest(ctx)
		if err != nil {
			logger.Log.Errorw("failed to count guest todos", "error", err)
			return nil, err
		}
		if count >= GuestTodoLimit {
			return nil, ErrGuestLimitReached
		}
	}

	todo, err := s.writer.Insert(ctx, scope, text, color)
	if err != nil {
		logger.Log.Errorw("failed to insert todo", "error", err)
		return nil, err
	}

	s.invalidateCache(ctx, scope)

	event := newEvent(models.EventTodoCreated, scope)
	event.TodoID = todo.ID.String()
	s.publishEvent(ctx, event)

	return todo, nil
}

// Update applies only the provided fields to a todo visible in the scope.
// Text is trimmed when provided; updated_at is always refreshed, even when
// no field changes.
func (s *TodoService) Update(ctx context.Context, scope models.Scope, id uuid.UUID, text *string, completed *bool, color *string) (*models.TodoDB, error) {
	if text != nil {
		trimmed := strings.TrimSpace(*text)
		if trimmed == "" {
			return nil, ErrTextRequired
		}
		text = &trimmed
	}

	todo, err := s.writer.Update(ctx, scope, id, text, completed, color)
	if err != nil {
		logger.Log.Errorw("failed to update todo", "id", id, "error", err)
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}

	s.invalidateCache(ctx, scope)

	event := newEvent(models.EventTodoUpdated, scope)
	event.TodoID = todo.ID.String()
	s.publishEvent(ctx, event)

	return todo, nil
}

// Toggle flips the completion flag of a todo visible in the scope.
func (s *TodoService) Toggle(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.TodoDB, error) {
	todo, err := s.writer.Toggle(ctx, scope, id)
	if err != nil {
		logger.Log.Errorw("failed to toggle todo", "id", id, "error", err)
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}

	s.invalidateCache(ctx, scope)

	event := newEvent(models.EventTodoToggled, scope)
	event.TodoID = todo.ID.String()
	s.publishEvent(ctx, event)

	return todo, nil
}

// Delete removes a todo visible in the scope and returns the
// pre-deletion record.
func (s *TodoService) Delete(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.TodoDB, error) {
	todo, err := s.writer.Delete(ctx, scope, id)
	if err != nil {
		logger.Log.Errorw("failed to delete todo", "id", id, "error", err)
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}

	s.invalidateCache(ctx, scope)

	event := newEvent(models.EventTodoDeleted, scope)
	event.TodoID = todo.ID.String()
	s.publishEvent(ctx, event)

	return todo, nil
}

// DeleteAll removes every todo in the scope and returns the number removed.
func (s *TodoService) DeleteAll(ctx context.Context, scope models.Scope) (int64, error) {
	count, err := s.writer.DeleteAll(ctx, scope)
	if err != nil {
		logger.Log.Errorw("failed to delete todos", "error", err)
		return 0, err
	}

	s.invalidateCache(ctx, scope)

	event := newEvent(models.EventTodoCleared, scope)
	event.Count = count
	s.publishEvent(ctx, event)

	return count, nil
}

// Count returns the number of todos in the scope.
func (s *TodoService) Count(ctx context.Context, scope models.Scope) (int64, error) {
	count, err := s.reader.Count(ctx, scope)
	if err != nil {
		logger.Log.Errorw("failed to count todos", "error", err)
		return 0, err
	}
	return count, nil
}
