package leads

import (
	"context"
	"sync"
	"time"
)

// Repository defines read access to leads.
type Repository interface {
	List(ctx context.Context) ([]Lead, error)
}

// StaticRepository serves a fixed set of leads from memory.
type StaticRepository struct {
	mu    sync.RWMutex
	leads []Lead
}

// NewStaticRepository creates a repository seeded with the given leads. When
// called with nil it falls back to the mock dataset.
func NewStaticRepository(leads []Lead) *StaticRepository {
	if leads == nil {
		leads = MockLeads(time.Now().UTC())
	}
	return &StaticRepository{leads: leads}
}

// List returns a copy of all leads.
func (r *StaticRepository) List(ctx context.Context) ([]Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Lead, len(r.leads))
	copy(out, r.leads)
	return out, nil
}
