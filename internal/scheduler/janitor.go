package scheduler

import (
	"context"
	"time"

	"github.com/skyseek/skyseek/internal/cache"
	"github.com/skyseek/skyseek/internal/logger"
)

// DefaultJanitorInterval is used when no interval is configured.
const DefaultJanitorInterval = 10 * time.Minute

// Janitor periodically sweeps expired entries out of the result cache.
// Expired entries are also dropped lazily on read; the sweep keeps the
// map from growing on keys nobody searches again.
type Janitor struct {
	cache    *cache.ResultCache
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewJanitor creates a cache janitor.
func NewJanitor(c *cache.ResultCache, log logger.Logger, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	return &Janitor{
		cache:    c,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep.
func (j *Janitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				j.Sweep()
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the janitor.
func (j *Janitor) Stop() {
	close(j.stopCh)
}

// Sweep runs one pass and logs what it dropped.
func (j *Janitor) Sweep() {
	pruned := j.cache.PruneExpired()
	if pruned > 0 {
		j.logger.Info("pruned expired cache entries",
			logger.Int("pruned", pruned),
			logger.Int("remaining", j.cache.Len()))
	} else {
		j.logger.Debug("no expired cache entries")
	}
}
