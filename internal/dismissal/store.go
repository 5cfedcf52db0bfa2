package dismissal

import (
	"encoding/json"
	"sort"
	"time"
)

// DefaultPrefix namespaces dismissal keys. The key is shared by prefix and
// user only, not by surface, so a dismissal on one surface hides the
// same item everywhere.
const DefaultPrefix = "decisiond.dismissals"

// snoozePrefix namespaces snooze entries separately from dismissals.
const snoozePrefix = "decisiond.snoozes"

// Store is the per-user dismissal and snooze service. All operations are
// fail-soft: backend errors degrade to "nothing dismissed" / no-op.
type Store struct {
	kv     KV
	prefix string
}

// NewStore creates a store over the given KV. An empty prefix uses
// DefaultPrefix.
func NewStore(kv KV, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{kv: kv, prefix: prefix}
}

func (s *Store) dismissKey(userID string) string {
	return s.prefix + "." + userID
}

func (s *Store) snoozeKey(userID string) string {
	return snoozePrefix + "." + userID
}

// Dismiss records an item id as dismissed for the user. Re-dismissing an
// already-dismissed id is a no-op.
func (s *Store) Dismiss(userID, itemID string) {
	if userID == "" || itemID == "" {
		return
	}
	ids := s.DismissedIDs(userID)
	for _, id := range ids {
		if id == itemID {
			return
		}
	}
	ids = append(ids, itemID)
	sort.Strings(ids)
	if data, err := json.Marshal(ids); err == nil {
		_ = s.kv.Set(s.dismissKey(userID), data)
	}
}

// IsDismissed reports whether the item id is dismissed for the user.
func (s *Store) IsDismissed(userID, itemID string) bool {
	for _, id := range s.DismissedIDs(userID) {
		if id == itemID {
			return true
		}
	}
	return false
}

// DismissedIDs returns all dismissed ids for the user. Backend or decode
// failures return an empty set.
func (s *Store) DismissedIDs(userID string) []string {
	data, ok, err := s.kv.Get(s.dismissKey(userID))
	if err != nil || !ok {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil
	}
	return ids
}

// DismissedSet returns the dismissed ids as a lookup set.
func (s *Store) DismissedSet(userID string) map[string]bool {
	ids := s.DismissedIDs(userID)
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Reset clears every dismissal for the user.
func (s *Store) Reset(userID string) {
	if userID == "" {
		return
	}
	_ = s.kv.Delete(s.dismissKey(userID))
}

// snoozeEntry is one persisted snooze.
type snoozeEntry struct {
	ItemID string `json:"item_id"`
	Until  int64  `json:"until"` // epoch milliseconds
}

// Snooze hides an item for the user until the given time. The prune pass
// uses the caller's clock, same as SnoozedSet, so recording one snooze
// never drops another that is still live under that clock.
func (s *Store) Snooze(userID, itemID string, until, now time.Time) {
	if userID == "" || itemID == "" || until.IsZero() {
		return
	}
	entries := s.readSnoozes(userID, now)
	replaced := false
	for i := range entries {
		if entries[i].ItemID == itemID {
			entries[i].Until = until.UnixMilli()
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, snoozeEntry{ItemID: itemID, Until: until.UnixMilli()})
	}
	s.writeSnoozes(userID, entries)
}

// SnoozedSet returns the ids currently snoozed for the user. Expired
// entries are pruned lazily and written back.
func (s *Store) SnoozedSet(userID string, now time.Time) map[string]bool {
	entries := s.readSnoozes(userID, now)
	if len(entries) == 0 {
		return nil
	}
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		set[e.ItemID] = true
	}
	return set
}

// readSnoozes loads the user's snoozes, dropping expired entries. When
// anything was pruned the surviving set is persisted back.
func (s *Store) readSnoozes(userID string, now time.Time) []snoozeEntry {
	data, ok, err := s.kv.Get(s.snoozeKey(userID))
	if err != nil || !ok {
		return nil
	}
	var entries []snoozeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	live := entries[:0]
	for _, e := range entries {
		if e.Until > now.UnixMilli() {
			live = append(live, e)
		}
	}
	if len(live) != len(entries) {
		s.writeSnoozes(userID, live)
	}
	return live
}

func (s *Store) writeSnoozes(userID string, entries []snoozeEntry) {
	if len(entries) == 0 {
		_ = s.kv.Delete(s.snoozeKey(userID))
		return
	}
	if data, err := json.Marshal(entries); err == nil {
		_ = s.kv.Set(s.snoozeKey(userID), data)
	}
}
