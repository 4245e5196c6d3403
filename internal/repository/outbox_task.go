package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Key         string          `db:"key"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
)

type OrderEventPayload struct {
	EventID       uuid.UUID     `json:"event_id"`
	Type          string        `json:"type"`
	OrderID       string        `json:"order_id"`
	CustomerID    string        `json:"customer_id"`
	Status        string        `json:"status"`
	Stage         string        `json:"stage"`
	EstimatedTime int           `json:"estimated_time"`
	HoldMinutes   int           `json:"hold_minutes"`
	IsOnHold      bool          `json:"is_on_hold"`
	QueuePosition *int          `json:"queue_position"`
	Changes       []FieldChange `json:"changes,omitempty"`
	ChangedBy     string        `json:"changed_by,omitempty"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

type FieldChange struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

type AuditLogPayload struct {
	Timestamp  time.Time `json:"timestamp"`
	UserID     string    `json:"user_id,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Handler    string    `json:"handler"`
	StatusCode int       `json:"status_code"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
	OldStatus  string    `json:"old_status,omitempty"`
	NewStatus  string    `json:"new_status,omitempty"`
	OldStage   string    `json:"old_stage,omitempty"`
	NewStage   string    `json:"new_stage,omitempty"`
}
