package appointments

import (
	"context"
	"sync"
)

// Repository is the single source of truth for appointment records.
// Add prepends so the newest record is always first; UpdateStatus is a
// deliberate no-op for unknown ids. Records are never deleted.
type Repository interface {
	Add(ctx context.Context, apt Appointment) error
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context) ([]Appointment, error)
	Len(ctx context.Context) (int, error)
}

// MemoryRepository keeps appointments in memory only. Used in tests and when
// the service runs without a durable store.
type MemoryRepository struct {
	mu   sync.RWMutex
	apts []Appointment
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// NewMemoryRepositoryWith seeds the repository with existing records.
func NewMemoryRepositoryWith(apts []Appointment) *MemoryRepository {
	r := &MemoryRepository{apts: make([]Appointment, len(apts))}
	copy(r.apts, apts)
	return r
}

// Add prepends the appointment to the collection.
func (r *MemoryRepository) Add(ctx context.Context, apt Appointment) error {
	if err := apt.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apts = append([]Appointment{apt}, r.apts...)
	return nil
}

// UpdateStatus replaces the status of the matching record. Unknown ids and
// unknown statuses leave the collection untouched.
func (r *MemoryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.apts {
		if r.apts[i].ID == id {
			r.apts[i].Status = status
			return nil
		}
	}
	return nil
}

// List returns a copy of all appointments, newest first.
func (r *MemoryRepository) List(ctx context.Context) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Appointment, len(r.apts))
	copy(out, r.apts)
	return out, nil
}

// Len returns the number of stored appointments.
func (r *MemoryRepository) Len(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.apts), nil
}
