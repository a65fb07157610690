package domain

import "time"

// Notification tells a team about a task. It is written once and never read
// back by the task engine.
type Notification struct {
	ID        string    `json:"id"`
	Team      []string  `json:"team"`
	Text      string    `json:"text"`
	TaskID    string    `json:"task"`
	CreatedAt time.Time `json:"createdAt"`
}
