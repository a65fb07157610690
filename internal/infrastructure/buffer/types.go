package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EntityNotification = "notification"

	OperationCreate = "create"
)

// Priority lanes. Lower values drain first.
const (
	PriorityUrgent = 1
	PriorityHigh   = 2
	PriorityNormal = 3
	priorityMax    = 5
)

// Item is an operation waiting to be retried against an unavailable dependency.
type Item struct {
	ID        string          `json:"id"`
	TaskID    string          `json:"task_id,omitempty"`
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	LastError string          `json:"last_error,omitempty"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

// EnqueuedBefore reports whether the item has been waiting since before t.
func (i Item) EnqueuedBefore(t time.Time) bool {
	return i.Timestamp.Before(t)
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority < PriorityUrgent || i.Priority > priorityMax {
		i.Priority = PriorityNormal
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
