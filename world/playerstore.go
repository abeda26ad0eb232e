package world

import (
	"encoding/json"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
)

// PlayerStore persists per-player data (spec.md section 3's playerData) in a
// small on-disk key/value store, keyed by username, grounded on the
// teacher's own choice of goleveldb as its primary storage engine
// (server/world/world.go imports github.com/df-mc/goleveldb/leveldb
// directly). This supplements the JSON-sidecar playerData snapshot written
// by GzipJSONStore.Save with a granular per-disconnect write path, so a
// single player's save data does not wait on the next whole-world save.
type PlayerStore struct {
	db *leveldb.DB
}

// OpenPlayerStore opens (creating if absent) a goleveldb database at path.
func OpenPlayerStore(path string) (*PlayerStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("world: open player store: %w", err)
	}
	return &PlayerStore{db: db}, nil
}

func (s *PlayerStore) Close() error { return s.db.Close() }

// Get returns the persisted data for username, or ok=false if none exists.
func (s *PlayerStore) Get(username string) (data *PlayerData, ok bool, err error) {
	raw, err := s.db.Get([]byte(username), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("world: get player %q: %w", username, err)
	}
	var pd PlayerData
	if err := json.Unmarshal(raw, &pd); err != nil {
		return nil, false, fmt.Errorf("world: decode player %q: %w", username, err)
	}
	return &pd, true, nil
}

// Put persists data for username.
func (s *PlayerStore) Put(username string, data *PlayerData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("world: encode player %q: %w", username, err)
	}
	if err := s.db.Put([]byte(username), raw, nil); err != nil {
		return fmt.Errorf("world: put player %q: %w", username, err)
	}
	return nil
}
