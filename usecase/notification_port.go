package usecase

import (
	"context"

	"github.com/fastygo/taskboard/domain"
)

// NotificationSink accepts notifications for asynchronous delivery so that
// task persistence never waits on, or fails because of, delivery.
type NotificationSink interface {
	Emit(ctx context.Context, notification domain.Notification)
}
