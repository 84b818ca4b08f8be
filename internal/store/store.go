package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"logotherapy-booking/internal/kv"
)

// Keys under which the three record collections live in the backing store.
const (
	AppointmentsKey = "logotherapy_appointments"
	UsersKey        = "logotherapy_users"
	SessionKey      = "logotherapy_user"
)

// Store is the repository layer over a kv.Store. Every read-modify-write
// done through one Store is serialized; writers in other processes sharing
// the same backend can still interleave.
type Store struct {
	kv  kv.Store
	log *slog.Logger
	mu  sync.Mutex
}

func New(backend kv.Store, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{kv: backend, log: log}
}

// load decodes key into out. A missing or corrupt value leaves out untouched
// and reports found=false; only backend failures are returned.
func (s *Store) load(ctx context.Context, key string, out any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.WarnContext(ctx, "discarding malformed stored value", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, raw)
}
