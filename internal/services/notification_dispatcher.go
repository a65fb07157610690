package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/infrastructure/buffer"
	"github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/usecase"
)

// DispatcherConfig sizes the in-memory hand-off between request handlers and
// delivery workers.
type DispatcherConfig struct {
	QueueSize       int
	Workers         int
	DeliveryTimeout time.Duration
}

// NotificationDispatcher decouples task persistence from notification
// delivery. Emit never blocks: when the queue is full or the dispatcher is
// stopped the notification is spooled to the durable buffer instead.
type NotificationDispatcher struct {
	processor *BufferProcessor
	cfg       DispatcherConfig
	logger    *zap.Logger

	queue  chan domain.Notification
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewNotificationDispatcher(processor *BufferProcessor, cfg DispatcherConfig, log *zap.Logger) *NotificationDispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &NotificationDispatcher{
		processor: processor,
		cfg:       cfg,
		logger:    log,
		queue:     make(chan domain.Notification, cfg.QueueSize),
	}
}

// Start launches the delivery workers.
func (d *NotificationDispatcher) Start() {
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	d.logger.Info("notification dispatcher started", zap.Int("workers", d.cfg.Workers))
}

// Stop closes the queue and waits for in-flight deliveries or ctx expiry.
func (d *NotificationDispatcher) Stop(ctx context.Context) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Warn("notification dispatcher stopped before queue drained")
	}
}

func (d *NotificationDispatcher) Emit(ctx context.Context, n domain.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	log := logger.WithRequestID(ctx, d.logger)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.closed {
		select {
		case d.queue <- n:
			return
		default:
			log.Warn("notification queue full, spooling", zap.String("task_id", n.TaskID))
		}
	}

	item, err := notificationItem(n)
	if err == nil {
		err = d.processor.Spool(item)
	}
	if err != nil {
		log.Error("notification dropped", zap.String("task_id", n.TaskID), zap.Error(err))
	}
}

func (d *NotificationDispatcher) work() {
	defer d.wg.Done()
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *NotificationDispatcher) deliver(n domain.Notification) {
	item, err := notificationItem(n)
	if err != nil {
		d.logger.Error("notification encode failed", zap.String("task_id", n.TaskID), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.DeliveryTimeout)
	defer cancel()
	if err := d.processor.BufferOperation(ctx, item); err != nil {
		d.logger.Error("notification dropped", zap.String("task_id", n.TaskID), zap.Error(err))
	}
}

func notificationItem(n domain.Notification) (buffer.Item, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return buffer.Item{}, err
	}
	return buffer.Item{
		ID:        n.ID,
		TaskID:    n.TaskID,
		Entity:    buffer.EntityNotification,
		Operation: buffer.OperationCreate,
		Data:      payload,
		Priority:  buffer.PriorityHigh,
	}, nil
}

var _ usecase.NotificationSink = (*NotificationDispatcher)(nil)
