package search

import "github.com/skyseek/skyseek/internal/domain"

// Target is one entry of the caller-supplied target list.
type Target struct {
	Name string
	RA   float64
	Dec  float64
}

// TargetProvider supplies a read-only snapshot of the target list.
type TargetProvider interface {
	ListTargets() []Target
}

// LiveEngine is the optional handle into a running planetarium engine.
// Both methods may fail; the local stage treats failure as "no
// additional matches".
type LiveEngine interface {
	FindByDesignation(name string) (*domain.SearchableObject, error)
	ListDynamicObjects(kind domain.ObjectType) ([]domain.SearchableObject, error)
}
