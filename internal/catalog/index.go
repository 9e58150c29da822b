package catalog

import (
	"sync"
	"time"

	"github.com/skyseek/skyseek/internal/domain"
)

// Index holds the loaded catalog behind a read lock. Order matters:
// All returns objects in catalog insertion order, which is the stable
// tie-break for equal match scores.
type Index struct {
	mu         sync.RWMutex
	objects    []domain.SearchableObject
	lastReload time.Time
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Update replaces the full object list.
func (idx *Index) Update(objects []domain.SearchableObject) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.objects = make([]domain.SearchableObject, len(objects))
	copy(idx.objects, objects)
	idx.lastReload = time.Now()
}

// All returns a copy of the catalog in insertion order.
func (idx *Index) All() []domain.SearchableObject {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]domain.SearchableObject, len(idx.objects))
	copy(out, idx.objects)
	return out
}

// Count returns the number of catalog objects.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.objects)
}

// LastReload returns when the catalog was last replaced.
func (idx *Index) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
