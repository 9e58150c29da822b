package scheduler

import (
	"testing"
	"time"

	"github.com/skyseek/skyseek/internal/cache"
	"github.com/skyseek/skyseek/internal/domain"
	"github.com/skyseek/skyseek/internal/logger"
)

func TestJanitorSweep(t *testing.T) {
	c := cache.New(time.Nanosecond)
	c.Put("m31", []domain.SearchableObject{{Name: "M31"}}, cache.OriginOnline)
	c.Put("vega", []domain.SearchableObject{{Name: "Vega"}}, cache.OriginOnline)

	// Everything has a nanosecond TTL and is long expired by now.
	time.Sleep(time.Millisecond)

	j := NewJanitor(c, logger.NewNop(), time.Hour)
	j.Sweep()

	if c.Len() != 0 {
		t.Errorf("expected an empty cache after the sweep, got %d entries", c.Len())
	}
}

func TestNewJanitorDefaultInterval(t *testing.T) {
	j := NewJanitor(cache.New(time.Minute), logger.NewNop(), 0)
	if j.interval != DefaultJanitorInterval {
		t.Errorf("interval = %v, want default %v", j.interval, DefaultJanitorInterval)
	}
}
