package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByIDs skips unknown ids.
	GetByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	// ListRecentActive returns active users, most recently created first.
	ListRecentActive(ctx context.Context, limit int) ([]domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}
