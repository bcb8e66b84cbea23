// Package snapshot persists the inventory store's state as a
// whole-collection snapshot in a key-value store.  The layout mirrors
// the original client-side behavior: one slot for the hospital
// collection, one for the booking feed and one for the id counters,
// each overwritten wholesale on every mutation and re-read verbatim
// on the next start.  The KV abstraction exists so unit tests can
// swap Redis for an in-memory fake.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medstay/hospital-bed-reservation/internal/store"
)

// ErrNotFound signals that a key has no value in the backing store.
var ErrNotFound = errors.New("snapshot: key not found")

// KV is the minimal key-value contract a snapshot backend must offer.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// RedisKV adapts a go-redis client to the KV interface.  Snapshot
// keys never expire; the snapshot is the durable copy, not a cache.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// Store saves and loads inventory snapshots under a common key
// prefix.  It implements store.SnapshotSaver.
type Store struct {
	kv      KV
	prefix  string
	timeout time.Duration
}

// NewStore builds a snapshot store.  An empty prefix defaults to
// "medstay".
func NewStore(kv KV, prefix string) *Store {
	if prefix == "" {
		prefix = "medstay"
	}
	return &Store{kv: kv, prefix: prefix, timeout: 5 * time.Second}
}

func (s *Store) hospitalsKey() string { return s.prefix + ":hospitals" }
func (s *Store) bookingsKey() string  { return s.prefix + ":bookings" }
func (s *Store) countersKey() string  { return s.prefix + ":counters" }

// Save overwrites all three slots with the snapshot's collections.
// The write is wholesale: previous contents are replaced, never
// merged.
func (s *Store) Save(snap store.Snapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	hospitals, err := json.Marshal(snap.Hospitals)
	if err != nil {
		return fmt.Errorf("marshal hospitals: %w", err)
	}
	bookings, err := json.Marshal(snap.Bookings)
	if err != nil {
		return fmt.Errorf("marshal bookings: %w", err)
	}
	counters, err := json.Marshal(snap.Counters)
	if err != nil {
		return fmt.Errorf("marshal counters: %w", err)
	}

	if err := s.kv.Set(ctx, s.hospitalsKey(), string(hospitals)); err != nil {
		return fmt.Errorf("save hospitals: %w", err)
	}
	if err := s.kv.Set(ctx, s.bookingsKey(), string(bookings)); err != nil {
		return fmt.Errorf("save bookings: %w", err)
	}
	if err := s.kv.Set(ctx, s.countersKey(), string(counters)); err != nil {
		return fmt.Errorf("save counters: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot.  The second return value is
// false when no snapshot has ever been saved, which callers treat as
// "start from seed data" rather than an error.  A partially present
// snapshot is an error: Save writes all three slots, so a found
// hospitals slot with a missing bookings or counters slot means the
// state is torn, and restoring it would reissue already-used booking
// sequence numbers.
func (s *Store) Load(ctx context.Context) (store.Snapshot, bool, error) {
	var snap store.Snapshot

	raw, err := s.kv.Get(ctx, s.hospitalsKey())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return snap, false, nil
		}
		return snap, false, fmt.Errorf("load hospitals: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.Hospitals); err != nil {
		return snap, false, fmt.Errorf("decode hospitals: %w", err)
	}

	if raw, err = s.kv.Get(ctx, s.bookingsKey()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return snap, false, errors.New("snapshot: hospitals present but bookings slot missing")
		}
		return snap, false, fmt.Errorf("load bookings: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.Bookings); err != nil {
		return snap, false, fmt.Errorf("decode bookings: %w", err)
	}

	if raw, err = s.kv.Get(ctx, s.countersKey()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return snap, false, errors.New("snapshot: hospitals present but counters slot missing")
		}
		return snap, false, fmt.Errorf("load counters: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.Counters); err != nil {
		return snap, false, fmt.Errorf("decode counters: %w", err)
	}

	return snap, true, nil
}
