package snapshot_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstay/hospital-bed-reservation/internal/model"
	"github.com/medstay/hospital-bed-reservation/internal/snapshot"
	"github.com/medstay/hospital-bed-reservation/internal/store"
)

// fakeKV is an in-memory KV for unit tests.
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", snapshot.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func TestSaveLoadRoundTrip(t *testing.T) {
	inv := store.New()
	inv.Seed()
	_, err := inv.ReserveBed("hosp-1", "GEN-16", 42, model.PatientIntake{
		PatientName: "Asha Kulkarni", Age: 34, Gender: "Female",
		Phone: "9800000001", Reason: "observation",
	})
	require.NoError(t, err)

	kv := newFakeKV()
	snaps := snapshot.NewStore(kv, "test")

	saved := inv.Snapshot()
	require.NoError(t, snaps.Save(saved))

	loaded, ok, err := snaps.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved, loaded)

	// A store restored from the loaded snapshot behaves like the
	// original.
	restored := store.New()
	require.NoError(t, restored.Restore(loaded))

	avail, err := restored.AvailableBeds("hosp-1")
	require.NoError(t, err)
	assert.Equal(t, 11, avail)

	feed := restored.ListBookings(store.BookingFilter{})
	require.NotEmpty(t, feed)
	assert.Equal(t, "GEN-16", feed[0].BedID)
	assert.Equal(t, "Asha Kulkarni", feed[0].PatientName)
}

func TestLoadWithoutSnapshot(t *testing.T) {
	snaps := snapshot.NewStore(newFakeKV(), "test")

	_, ok, err := snaps.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveOverwritesWholesale(t *testing.T) {
	inv := store.New()
	inv.Seed()

	kv := newFakeKV()
	snaps := snapshot.NewStore(kv, "test")
	require.NoError(t, snaps.Save(inv.Snapshot()))

	// Mutate and save again; the loaded snapshot reflects only the
	// latest state.
	_, err := inv.ReserveBed("hosp-2", "VIP-1", 1, model.PatientIntake{
		PatientName: "Rohan Das", Age: 51, Phone: "9800000002", Reason: "cardiac observation",
	})
	require.NoError(t, err)
	require.NoError(t, snaps.Save(inv.Snapshot()))

	loaded, ok, err := snaps.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, inv.Snapshot(), loaded)
}

func TestLoadPartialSnapshotIsAnError(t *testing.T) {
	inv := store.New()
	inv.Seed()

	full := newFakeKV()
	require.NoError(t, snapshot.NewStore(full, "test").Save(inv.Snapshot()))
	ctx := context.Background()

	copyKeys := func(t *testing.T, keys ...string) *fakeKV {
		t.Helper()
		kv := newFakeKV()
		for _, k := range keys {
			v, err := full.Get(ctx, k)
			require.NoError(t, err)
			require.NoError(t, kv.Set(ctx, k, v))
		}
		return kv
	}

	// A torn snapshot must never load with zeroed counters: a restored
	// store would hand out booking sequence numbers that already exist.
	t.Run("missing counters", func(t *testing.T) {
		kv := copyKeys(t, "test:hospitals", "test:bookings")
		_, _, err := snapshot.NewStore(kv, "test").Load(ctx)
		assert.Error(t, err)
	})

	t.Run("missing bookings", func(t *testing.T) {
		kv := copyKeys(t, "test:hospitals", "test:counters")
		_, _, err := snapshot.NewStore(kv, "test").Load(ctx)
		assert.Error(t, err)
	})

	t.Run("all slots present still loads", func(t *testing.T) {
		kv := copyKeys(t, "test:hospitals", "test:bookings", "test:counters")
		snap, ok, err := snapshot.NewStore(kv, "test").Load(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, inv.Snapshot().Counters, snap.Counters)
	})
}

func TestLoadCorruptPayload(t *testing.T) {
	kv := newFakeKV()
	require.NoError(t, kv.Set(context.Background(), "test:hospitals", "{not json"))

	snaps := snapshot.NewStore(kv, "test")
	_, _, err := snaps.Load(context.Background())
	assert.Error(t, err)
}

func TestStoreIntegration(t *testing.T) {
	// Wired as the store's saver, every mutation lands in the KV.
	inv := store.New()
	inv.Seed()

	kv := newFakeKV()
	snaps := snapshot.NewStore(kv, "test")
	inv.SetSaver(snaps)

	_, err := inv.ReserveBed("hosp-1", "GEN-17", 3, model.PatientIntake{
		PatientName: "Meera Joshi", Age: 28, Phone: "9800000003", Reason: "maternity care",
	})
	require.NoError(t, err)

	loaded, ok, err := snaps.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	restored := store.New()
	require.NoError(t, restored.Restore(loaded))
	avail, err := restored.AvailableBeds("hosp-1")
	require.NoError(t, err)
	assert.Equal(t, 11, avail)
}
