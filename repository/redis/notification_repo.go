package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

const defaultInboxSize = 200

// notificationRepository stores each notification once and pushes its id
// onto the inbox list of every recipient. Delivery is left to whoever
// consumes the inboxes.
type notificationRepository struct {
	client    *redislib.Client
	prefix    string
	ttl       time.Duration
	inboxSize int64
}

// NewNotificationRepository creates a Redis-backed notification store.
func NewNotificationRepository(client *redislib.Client, ttl time.Duration, inboxSize int) repository.NotificationRepository {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	if inboxSize <= 0 {
		inboxSize = defaultInboxSize
	}
	return &notificationRepository{
		client:    client,
		prefix:    "notification:",
		ttl:       ttl,
		inboxSize: int64(inboxSize),
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n == nil || n.TaskID == "" {
		return domain.ErrInvalidPayload
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redislib.Pipeliner) error {
		pipe.Set(ctx, r.key(n.ID), payload, r.ttl)
		for _, userID := range n.Team {
			inbox := r.inboxKey(userID)
			pipe.LPush(ctx, inbox, n.ID)
			pipe.LTrim(ctx, inbox, 0, r.inboxSize-1)
		}
		return nil
	})
	return err
}

func (r *notificationRepository) key(id string) string {
	return fmt.Sprintf("%s%s", r.prefix, id)
}

func (r *notificationRepository) inboxKey(userID string) string {
	return fmt.Sprintf("%sinbox:%s", r.prefix, userID)
}
