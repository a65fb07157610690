package sqlite

import (
	"time"

	"github.com/fastygo/taskboard/domain"
)

// taskRecord keeps the embedded collections as JSON columns. Seq preserves
// creation order.
type taskRecord struct {
	Seq        uint              `gorm:"primaryKey;autoIncrement"`
	ID         string            `gorm:"uniqueIndex;not null"`
	Title      string            `gorm:"not null"`
	Date       time.Time
	Deadline   *time.Time
	Priority   string            `gorm:"index"`
	Stage      string            `gorm:"index"`
	Team       []string          `gorm:"serializer:json"`
	Assets     []string          `gorm:"serializer:json"`
	SubTasks   []domain.SubTask  `gorm:"serializer:json"`
	Activities []domain.Activity `gorm:"serializer:json"`
	IsTrashed  bool              `gorm:"index;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (taskRecord) TableName() string { return "tasks" }

type userRecord struct {
	Seq       uint              `gorm:"primaryKey;autoIncrement"`
	ID        string            `gorm:"uniqueIndex;not null"`
	Name      string
	Title     string
	Email     string
	Role      string
	IsAdmin   bool
	Status    string            `gorm:"index"`
	Metadata  map[string]string `gorm:"serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRecord) TableName() string { return "users" }

func newTaskRecord(t *domain.Task) *taskRecord {
	return &taskRecord{
		ID:         t.ID,
		Title:      t.Title,
		Date:       t.Date,
		Deadline:   t.Deadline,
		Priority:   string(t.Priority),
		Stage:      string(t.Stage),
		Team:       nonNil(t.Team),
		Assets:     nonNil(t.Assets),
		SubTasks:   t.SubTasks,
		Activities: t.Activities,
		IsTrashed:  t.IsTrashed,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func (r *taskRecord) toDomain() domain.Task {
	return domain.Task{
		ID:         r.ID,
		Title:      r.Title,
		Date:       r.Date,
		Deadline:   r.Deadline,
		Priority:   domain.Priority(r.Priority),
		Stage:      domain.Stage(r.Stage),
		Team:       r.Team,
		Assets:     r.Assets,
		SubTasks:   r.SubTasks,
		Activities: r.Activities,
		IsTrashed:  r.IsTrashed,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (r *userRecord) toDomain() domain.User {
	return domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Title:     r.Title,
		Email:     r.Email,
		Role:      r.Role,
		IsAdmin:   r.IsAdmin,
		Status:    r.Status,
		Metadata:  r.Metadata,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
