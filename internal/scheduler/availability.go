package scheduler

import (
	"context"
	"time"

	"github.com/skyseek/skyseek/internal/engine"
	"github.com/skyseek/skyseek/internal/logger"
)

// DefaultProbeInterval is used when no interval is configured.
const DefaultProbeInterval = 5 * time.Minute

// Prober periodically re-checks remote source availability so sources
// marked down during a search get a chance to come back.
type Prober struct {
	engine   *engine.Engine
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewProber creates an availability prober.
func NewProber(e *engine.Engine, log logger.Logger, interval time.Duration) *Prober {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &Prober{
		engine:   e,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start probes once immediately, then on every tick.
func (p *Prober) Start(ctx context.Context) {
	p.probe(ctx)

	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.probe(ctx)
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the prober.
func (p *Prober) Stop() {
	close(p.stopCh)
}

func (p *Prober) probe(ctx context.Context) {
	p.engine.RefreshAvailability(ctx)
	p.logger.Debug("source availability refreshed",
		logger.Bool("online", p.engine.OnlineAvailable()))
}
