package sources

import (
	"context"
	"sync"

	"github.com/skyseek/skyseek/internal/domain"
	"github.com/skyseek/skyseek/internal/logger"
)

// Source is one remote name-resolution service.
type Source interface {
	ID() domain.SourceID

	// Resolve queries the service for a name and returns normalized
	// objects. Implementations honor ctx for timeout and cancellation.
	Resolve(ctx context.Context, name string) ([]domain.SearchableObject, error)

	// CheckAvailability probes the service.
	CheckAvailability(ctx context.Context) bool
}

// Registry tracks the configured sources and their availability flags.
// Flags are shared single-writer state: the prober and the online stage
// both flip them, guarded by the registry lock.
type Registry struct {
	mu        sync.RWMutex
	sources   []Source
	available map[domain.SourceID]bool
	log       logger.Logger
}

// NewRegistry creates a registry. Sources start unavailable until the
// first probe succeeds.
func NewRegistry(log logger.Logger, srcs ...Source) *Registry {
	available := make(map[domain.SourceID]bool, len(srcs))
	for _, s := range srcs {
		available[s.ID()] = false
	}
	return &Registry{
		sources:   srcs,
		available: available,
		log:       log,
	}
}

// Probe refreshes every availability flag concurrently and returns the
// fresh map.
func (r *Registry) Probe(ctx context.Context) map[domain.SourceID]bool {
	r.mu.RLock()
	srcs := make([]Source, len(r.sources))
	copy(srcs, r.sources)
	r.mu.RUnlock()

	results := make(map[domain.SourceID]bool, len(srcs))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, s := range srcs {
		wg.Add(1)
		go func(s Source) {
			defer wg.Done()
			up := s.CheckAvailability(ctx)
			mu.Lock()
			results[s.ID()] = up
			mu.Unlock()
		}(s)
	}
	wg.Wait()

	r.mu.Lock()
	for id, up := range results {
		if r.available[id] != up {
			r.log.Info("source availability changed",
				logger.String("source", string(id)),
				logger.Bool("available", up))
		}
		r.available[id] = up
	}
	r.mu.Unlock()

	return results
}

// Enabled returns the available sources passing the given filter.
// A nil/empty filter enables everything.
func (r *Registry) Enabled(filter map[domain.SourceID]bool) []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, 0, len(r.sources))
	for _, s := range r.sources {
		if !r.available[s.ID()] {
			continue
		}
		if len(filter) > 0 && !filter[s.ID()] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// MarkUnavailable flips a source down, typically after a timeout
// observed during a search.
func (r *Registry) MarkUnavailable(id domain.SourceID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.available[id] {
		r.log.Warn("marking source unavailable", logger.String("source", string(id)))
	}
	r.available[id] = false
}

// AnyAvailable reports whether at least one source is up.
func (r *Registry) AnyAvailable() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, up := range r.available {
		if up {
			return true
		}
	}
	return false
}

// Availability returns a copy of the current flags.
func (r *Registry) Availability() map[domain.SourceID]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[domain.SourceID]bool, len(r.available))
	for id, up := range r.available {
		out[id] = up
	}
	return out
}
