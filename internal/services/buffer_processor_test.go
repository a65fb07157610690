package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/infrastructure/buffer"
)

type fakeHealth struct {
	mu     sync.Mutex
	online bool
}

func (f *fakeHealth) IsOnline() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.online
}

func (f *fakeHealth) set(online bool) {
	f.mu.Lock()
	f.online = online
	f.mu.Unlock()
}

type fakeNotifications struct {
	mu      sync.Mutex
	fail    error
	created []domain.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotifications) setFail(err error) {
	f.mu.Lock()
	f.fail = err
	f.mu.Unlock()
}

func (f *fakeNotifications) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func newTestProcessor(t *testing.T, health *fakeHealth, repo *fakeNotifications) (*BufferProcessor, *buffer.Store) {
	t.Helper()
	store, err := buffer.Open(filepath.Join(t.TempDir(), "buffer.db"), "notifications", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	bp := NewBufferProcessor(store, health, repo, nil, ProcessorConfig{Interval: time.Hour, MaxRetries: 2})
	return bp, store
}

func testItem(t *testing.T, taskID string) buffer.Item {
	t.Helper()
	item, err := notificationItem(domain.Notification{ID: "n-" + taskID, Team: []string{"u1"}, Text: "hi", TaskID: taskID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return item
}

func TestBufferOperation_DeliversWhenOnline(t *testing.T) {
	repo := &fakeNotifications{}
	bp, _ := newTestProcessor(t, &fakeHealth{online: true}, repo)

	if err := bp.BufferOperation(context.Background(), testItem(t, "t1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.count() != 1 {
		t.Fatalf("notification not delivered")
	}
	if bp.Size() != 0 {
		t.Fatalf("delivered item was buffered")
	}
}

func TestBufferOperation_SpoolsWhenOfflineAndDrainsLater(t *testing.T) {
	health := &fakeHealth{}
	repo := &fakeNotifications{}
	bp, _ := newTestProcessor(t, health, repo)
	ctx := context.Background()

	if err := bp.BufferOperation(ctx, testItem(t, "t1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.count() != 0 || bp.Size() != 1 {
		t.Fatalf("expected item to wait in the buffer, delivered=%d size=%d", repo.count(), bp.Size())
	}

	if err := bp.Drain(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bp.Size() != 1 {
		t.Fatalf("drain must skip while offline")
	}

	health.set(true)
	if err := bp.Drain(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.count() != 1 || bp.Size() != 0 {
		t.Fatalf("drain did not deliver, delivered=%d size=%d", repo.count(), bp.Size())
	}
}

func TestDrain_DropsAfterMaxRetries(t *testing.T) {
	repo := &fakeNotifications{}
	repo.setFail(errors.New("redis: connection refused"))
	bp, _ := newTestProcessor(t, &fakeHealth{online: true}, repo)
	ctx := context.Background()

	if err := bp.Spool(testItem(t, "t1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := bp.Drain(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bp.Size() != 1 {
		t.Fatalf("item dropped after the first failure")
	}
	if err := bp.Drain(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bp.Size() != 0 {
		t.Fatalf("item kept after max retries, size=%d", bp.Size())
	}
}

func TestProcessItem_RejectsUnknownEntity(t *testing.T) {
	bp, _ := newTestProcessor(t, &fakeHealth{online: true}, &fakeNotifications{})

	err := bp.processItem(context.Background(), buffer.Item{Entity: "profile", Operation: buffer.OperationCreate})
	if err == nil {
		t.Fatalf("expected an error for unknown entity")
	}
}
