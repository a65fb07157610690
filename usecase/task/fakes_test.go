package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

// memTasks keeps tasks in creation order; List returns newest first.
type memTasks struct {
	mu    sync.Mutex
	seq   int
	order []string
	byID  map[string]*domain.Task
}

func newMemTasks() *memTasks {
	return &memTasks{byID: make(map[string]*domain.Task)}
}

func (m *memTasks) GetByID(_ context.Context, id string) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return t.Clone(), nil
}

func (m *memTasks) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Task
	for i := len(m.order) - 1; i >= 0; i-- {
		t := m.byID[m.order[i]]
		if t == nil || !matches(t, filter) {
			continue
		}
		out = append(out, *t.Clone())
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memTasks) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if task.ID == "" {
		task.ID = fmt.Sprintf("t%d", m.seq)
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	m.byID[task.ID] = task.Clone()
	m.order = append(m.order, task.ID)
	return task, nil
}

func (m *memTasks) Update(_ context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	next := task.Clone()
	next.Activities = stored.Activities
	next.SubTasks = stored.SubTasks
	next.IsTrashed = stored.IsTrashed
	m.byID[task.ID] = next
	return nil
}

func (m *memTasks) AppendActivity(_ context.Context, id string, activity domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.Activities = append(t.Activities, activity)
	return nil
}

func (m *memTasks) AppendSubTask(_ context.Context, id string, subTask domain.SubTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	t.SubTasks = append(t.SubTasks, subTask)
	return nil
}

func (m *memTasks) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memTasks) DeleteMany(_ context.Context, filter repository.TaskFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, t := range m.byID {
		if matches(t, filter) {
			delete(m.byID, id)
			n++
		}
	}
	return n, nil
}

func (m *memTasks) UpdateMany(_ context.Context, filter repository.TaskFilter, patch repository.TaskPatch) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if patch.Trashed == nil {
		return 0, nil
	}
	var n int64
	for _, t := range m.byID {
		if matches(t, filter) {
			t.IsTrashed = *patch.Trashed
			n++
		}
	}
	return n, nil
}

func (m *memTasks) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

func matches(t *domain.Task, f repository.TaskFilter) bool {
	if !f.IncludeTrashed && t.IsTrashed != f.Trashed {
		return false
	}
	if f.Stage != "" && t.Stage != f.Stage {
		return false
	}
	if f.Member != "" && !t.HasMember(f.Member) {
		return false
	}
	if len(f.IDs) > 0 {
		found := false
		for _, id := range f.IDs {
			if id == t.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type memUsers struct {
	users map[string]domain.User
}

func newMemUsers(users ...domain.User) *memUsers {
	m := &memUsers{users: make(map[string]domain.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUsers) ListRecentActive(_ context.Context, limit int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		if len(out) == limit {
			break
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Upsert(_ context.Context, user *domain.User) error {
	m.users[user.ID] = *user
	return nil
}

type recordingSink struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (s *recordingSink) Emit(_ context.Context, n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
}

func (s *recordingSink) notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.sent...)
}

// countingUsers records how many batch lookups hit the directory.
type countingUsers struct {
	*memUsers
	calls int
}

func (c *countingUsers) GetByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	c.calls++
	return c.memUsers.GetByIDs(ctx, ids)
}
