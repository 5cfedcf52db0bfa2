package dismissal

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingKV errors on every operation, for exercising the fail-soft paths.
type failingKV struct{}

func (failingKV) Get(string) ([]byte, bool, error) { return nil, false, errors.New("backend down") }
func (failingKV) Set(string, []byte) error         { return errors.New("backend down") }
func (failingKV) Delete(string) error              { return errors.New("backend down") }

func TestStore_DismissAndQuery(t *testing.T) {
	s := NewStore(NewMemoryKV(), "")

	assert.False(t, s.IsDismissed("alice", "a1-proposal-t1"))

	s.Dismiss("alice", "a1-proposal-t1")
	s.Dismiss("alice", "i1-exp-return-as1")

	assert.True(t, s.IsDismissed("alice", "a1-proposal-t1"))
	assert.True(t, s.IsDismissed("alice", "i1-exp-return-as1"))
	assert.False(t, s.IsDismissed("alice", "a4-deliverable-d1"))
	assert.ElementsMatch(t, []string{"a1-proposal-t1", "i1-exp-return-as1"}, s.DismissedIDs("alice"))

	set := s.DismissedSet("alice")
	assert.True(t, set["a1-proposal-t1"])
	assert.Len(t, set, 2)
}

func TestStore_DismissIdempotent(t *testing.T) {
	s := NewStore(NewMemoryKV(), "")
	s.Dismiss("alice", "a1-proposal-t1")
	s.Dismiss("alice", "a1-proposal-t1")
	assert.Len(t, s.DismissedIDs("alice"), 1)
}

func TestStore_UsersAreIsolated(t *testing.T) {
	s := NewStore(NewMemoryKV(), "")
	s.Dismiss("alice", "a1-proposal-t1")
	assert.False(t, s.IsDismissed("bob", "a1-proposal-t1"))
	assert.Empty(t, s.DismissedIDs("bob"))
}

func TestStore_Reset(t *testing.T) {
	s := NewStore(NewMemoryKV(), "")
	s.Dismiss("alice", "a1-proposal-t1")
	s.Dismiss("alice", "a4-deliverable-d1")
	s.Reset("alice")
	assert.Empty(t, s.DismissedIDs("alice"))
	assert.Nil(t, s.DismissedSet("alice"))
}

func TestStore_EmptyArgsAreNoOps(t *testing.T) {
	kv := NewMemoryKV()
	s := NewStore(kv, "")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.Dismiss("", "a1-proposal-t1")
	s.Dismiss("alice", "")
	s.Snooze("", "x", now.Add(time.Hour), now)
	s.Snooze("alice", "x", time.Time{}, now)
	assert.Empty(t, s.DismissedIDs("alice"))
	assert.Nil(t, s.SnoozedSet("alice", now))
}

func TestStore_FailSoftOnBackendErrors(t *testing.T) {
	s := NewStore(failingKV{}, "")

	// Nothing panics and nothing reads as dismissed.
	s.Dismiss("alice", "a1-proposal-t1")
	assert.False(t, s.IsDismissed("alice", "a1-proposal-t1"))
	assert.Empty(t, s.DismissedIDs("alice"))
	assert.Nil(t, s.DismissedSet("alice"))
	s.Reset("alice")

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.Snooze("alice", "a1-proposal-t1", now.Add(time.Hour), now)
	assert.Nil(t, s.SnoozedSet("alice", now))
}

func TestStore_CorruptPayloadReadsAsEmpty(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(DefaultPrefix+".alice", []byte("not json")))
	s := NewStore(kv, "")
	assert.Empty(t, s.DismissedIDs("alice"))
}

func TestStore_SnoozeExpiry(t *testing.T) {
	s := NewStore(NewMemoryKV(), "")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	s.Snooze("alice", "a1-proposal-t1", now.Add(time.Hour), now)
	s.Snooze("alice", "a4-deliverable-d1", now.Add(48*time.Hour), now)

	set := s.SnoozedSet("alice", now)
	assert.True(t, set["a1-proposal-t1"])
	assert.True(t, set["a4-deliverable-d1"])

	// Two hours later the first snooze has lapsed.
	set = s.SnoozedSet("alice", now.Add(2*time.Hour))
	require.Len(t, set, 1)
	assert.True(t, set["a4-deliverable-d1"])

	// And past everything the key is gone entirely.
	assert.Nil(t, s.SnoozedSet("alice", now.Add(72*time.Hour)))
}

func TestStore_SnoozeReplacesExisting(t *testing.T) {
	s := NewStore(NewMemoryKV(), "")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	s.Snooze("alice", "a1-proposal-t1", now.Add(time.Hour), now)
	s.Snooze("alice", "a1-proposal-t1", now.Add(72*time.Hour), now)

	set := s.SnoozedSet("alice", now.Add(2*time.Hour))
	require.Len(t, set, 1)
	assert.True(t, set["a1-proposal-t1"])
}

func TestStore_SnoozePrunesAgainstCallerClock(t *testing.T) {
	s := NewStore(NewMemoryKV(), "")
	// A clock far from wall time: every until below is long expired in real
	// terms, so any wall-clock prune inside Snooze would drop live entries.
	now := time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC)

	s.Snooze("alice", "a1-proposal-t1", now.Add(time.Hour), now)
	s.Snooze("alice", "a4-deliverable-d1", now.Add(time.Hour), now)

	set := s.SnoozedSet("alice", now)
	assert.True(t, set["a1-proposal-t1"], "earlier snooze must survive a later Snooze call")
	assert.True(t, set["a4-deliverable-d1"])
}

func TestSQLiteKV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dismissals.db")
	kv, err := NewSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", []byte("v1")))
	require.NoError(t, kv.Set("k", []byte("v2"))) // upsert

	got, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, kv.Delete("k"))
	_, ok, err = kv.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dismissals.db")

	kv, err := NewSQLiteKV(path)
	require.NoError(t, err)
	s := NewStore(kv, "")
	s.Dismiss("alice", "a1-proposal-t1")
	require.NoError(t, kv.Close())

	kv, err = NewSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()
	assert.True(t, NewStore(kv, "").IsDismissed("alice", "a1-proposal-t1"))
}

func TestNewSQLiteKV_EmptyPath(t *testing.T) {
	_, err := NewSQLiteKV("")
	assert.Error(t, err)
}
