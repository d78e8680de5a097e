package models

// Todo mutation event actions published to Kafka.
const (
	EventTodoCreated = "created"
	EventTodoUpdated = "updated"
	EventTodoToggled = "toggled"
	EventTodoDeleted = "deleted"
	EventTodoCleared = "cleared"
)

// TodoEvent is the payload published to Kafka after a successful todo mutation.
type TodoEvent struct {
	EventID   string `json:"event_id"`          // Unique event id
	Action    string `json:"action"`            // One of the EventTodo* constants
	TodoID    string `json:"todo_id,omitempty"` // Affected todo, empty for bulk deletes
	OwnerID   string `json:"owner_id"`          // Owning user id, "guest" for the guest pool
	Count     int64  `json:"count,omitempty"`   // Rows affected, set for bulk deletes
	Timestamp int64  `json:"timestamp"`         // Unix seconds
}
