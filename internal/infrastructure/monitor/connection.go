package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/internal/infrastructure/buffer"
)

// PingFunc reports whether a dependency answers.
type PingFunc func(ctx context.Context) error

// Target names the dependencies the monitor polls. Nil pings count as down.
type Target struct {
	StoreDriver string
	Store       PingFunc
	Redis       PingFunc
	Buffer      *buffer.Store
}

type Monitor struct {
	target Target

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(target Target, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		target:   target,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
		status:   Status{StoreDriver: target.StoreDriver},
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// IsOnline reports whether the notification store can take deliveries.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Redis
}

// Healthy reports whether every request-path dependency answers.
func (m *Monitor) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Store && m.status.Redis
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh polls every dependency once.
func (m *Monitor) Refresh() {
	bufferOK, bufferSize := m.checkBuffer()
	status := Status{
		Store:       m.ping("store", m.target.Store, 3*time.Second),
		StoreDriver: m.target.StoreDriver,
		Redis:       m.ping("redis", m.target.Redis, 2*time.Second),
		Buffer:      bufferOK,
		BufferSize:  bufferSize,
		LastCheck:   time.Now(),
	}

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.mu.Unlock()

	if !prev.LastCheck.IsZero() && (prev.Store != status.Store || prev.Redis != status.Redis) {
		m.logger.Warn("dependency status changed",
			zap.Bool("store", status.Store),
			zap.Bool("redis", status.Redis))
	}
}

func (m *Monitor) ping(name string, fn PingFunc, timeout time.Duration) bool {
	if fn == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		m.logger.Debug("dependency ping failed", zap.String("dependency", name), zap.Error(err))
		return false
	}
	return true
}

func (m *Monitor) checkBuffer() (bool, int) {
	if m.target.Buffer == nil {
		return false, 0
	}
	size, err := m.target.Buffer.Size()
	if err != nil {
		m.logger.Warn("buffer size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
