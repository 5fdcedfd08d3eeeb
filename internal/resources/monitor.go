package resources

import (
	"context"
	"sync"
	"time"

	"github.com/shrinkarr/shrinkarr/internal/config"
	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/queue"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
)

// Monitor samples the host on a fixed interval and keeps the latest snapshot
// for the dashboard, mirrored into Redis for external consumers.
type Monitor struct {
	cfg       *config.Config
	sampler   Sampler
	redisRepo queue.RedisRepository
	logger    logger.Logger

	mu     sync.RWMutex
	latest *models.ResourceSnapshot
}

func NewMonitor(cfg *config.Config, sampler Sampler, redisRepo queue.RedisRepository, log logger.Logger) *Monitor {
	return &Monitor{
		cfg:       cfg,
		sampler:   sampler,
		redisRepo: redisRepo,
		logger:    log,
	}
}

func (m *Monitor) Run(ctx context.Context) {
	interval := m.cfg.Resources.SampleInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

func (m *Monitor) tick(ctx context.Context) {
	snapshot, err := m.sampler.Sample(ctx)
	if err != nil {
		m.logger.Warnf("resource monitor: sample failed: %v", err)
		return
	}
	m.mu.Lock()
	m.latest = snapshot
	m.mu.Unlock()

	if m.redisRepo != nil {
		if err := m.redisRepo.CacheSnapshot(ctx, snapshot); err != nil {
			m.logger.Warnf("resource monitor: cache snapshot: %v", err)
		}
	}
}

// Latest returns the most recent snapshot, or nil before the first sample.
func (m *Monitor) Latest() *models.ResourceSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}
