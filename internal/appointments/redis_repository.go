package appointments

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/drojedanicolas-commits/drojedanicolas/pkg/logging"
)

// RedisRepository mirrors the full appointment collection to a single Redis
// key. The collection is loaded once at startup and rewritten wholesale on
// every mutation; the key carries no TTL because the history is meant to
// survive restarts. Within one process the repository is the single writer.
type RedisRepository struct {
	redis     *redis.Client
	namespace string
	logger    *logging.Logger
	tracer    trace.Tracer

	mu   sync.RWMutex
	apts []Appointment
}

// NewRedisRepository loads the stored collection under the namespace key. If
// the key is missing or its payload cannot be decoded, the repository starts
// from the seed collection instead and persists it.
func NewRedisRepository(ctx context.Context, client *redis.Client, namespace string, seed []Appointment, logger *logging.Logger) (*RedisRepository, error) {
	if client == nil {
		panic("appointments: redis client cannot be nil")
	}
	if namespace == "" {
		panic("appointments: storage namespace cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	r := &RedisRepository{
		redis:     client,
		namespace: namespace,
		logger:    logger,
		tracer:    otel.Tracer("frontdesk.internal.appointments"),
	}

	data, err := client.Get(ctx, namespace).Bytes()
	switch {
	case err == redis.Nil:
		logger.Info("appointments: no stored history, seeding", "namespace", namespace, "seed_size", len(seed))
		r.apts = append(r.apts, seed...)
		if err := r.save(ctx); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("appointments: failed to load stored history: %w", err)
	default:
		var stored []Appointment
		if err := json.Unmarshal(data, &stored); err != nil {
			// Corrupt or incompatible payload: reseed rather than refuse to start.
			logger.Warn("appointments: stored history is unreadable, reseeding", "namespace", namespace, "error", err)
			r.apts = append(r.apts, seed...)
			if err := r.save(ctx); err != nil {
				return nil, err
			}
			break
		}
		r.apts = stored
		logger.Info("appointments: loaded stored history", "namespace", namespace, "count", len(stored))
	}

	return r, nil
}

// Add prepends the appointment and persists the whole collection.
func (r *RedisRepository) Add(ctx context.Context, apt Appointment) error {
	ctx, span := r.tracer.Start(ctx, "appointments.add")
	defer span.End()

	if err := apt.Validate(); err != nil {
		span.RecordError(err)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.apts = append([]Appointment{apt}, r.apts...)
	if err := r.save(ctx); err != nil {
		// Roll the insert back so memory and storage stay in sync.
		r.apts = r.apts[1:]
		span.RecordError(err)
		return err
	}
	return nil
}

// UpdateStatus replaces the status on the matching record and persists. An
// unknown id leaves the collection (and storage) untouched.
func (r *RedisRepository) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, span := r.tracer.Start(ctx, "appointments.update_status")
	defer span.End()

	if !ValidStatus(status) {
		span.RecordError(ErrInvalidStatus)
		return ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.apts {
		if r.apts[i].ID == id {
			prev := r.apts[i].Status
			r.apts[i].Status = status
			if err := r.save(ctx); err != nil {
				r.apts[i].Status = prev
				span.RecordError(err)
				return err
			}
			return nil
		}
	}
	return nil
}

// List returns a copy of all appointments, newest first.
func (r *RedisRepository) List(ctx context.Context) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Appointment, len(r.apts))
	copy(out, r.apts)
	return out, nil
}

// Len returns the number of stored appointments.
func (r *RedisRepository) Len(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.apts), nil
}

// save serializes the full collection under the namespace key. Callers must
// hold the write lock.
func (r *RedisRepository) save(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "appointments.save")
	defer span.End()

	data, err := json.Marshal(r.apts)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("appointments: failed to marshal collection: %w", err)
	}
	if err := r.redis.Set(ctx, r.namespace, data, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("appointments: failed to persist collection: %w", err)
	}
	return nil
}
