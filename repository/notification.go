package repository

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
}
