package hub

import (
	"github.com/blockvale/classic/config"
	"github.com/blockvale/classic/player"
	"github.com/blockvale/classic/world"
)

// ConfigValue exposes the server configuration to package session.
func (h *Hub) ConfigValue() config.Config { return h.Config }

// WorldValue exposes the shared World pointer. Valid only while the caller holds
// the lock, matching the single-big-lock discipline spec.md section 9
// prescribes.
func (h *Hub) WorldValue() *world.World { return h.World }

// IsUsernameConnected implements the duplicate-username check of
// AwaitIdent (spec.md section 4.E).
func (h *Hub) IsUsernameConnected(username string) bool {
	_, ok := h.byName[username]
	return ok
}

// NextPlayerID hands out a free id from the pool, or len(roster) if none is
// free (spec.md section 4.E).
func (h *Hub) NextPlayerID() int8 {
	return h.freeIDs.Acquire(len(h.players))
}

// ReleasePlayerID returns id to the pool at session cleanup.
func (h *Hub) ReleasePlayerID(id int8) { h.freeIDs.Release(id) }

// Join inserts p into the roster. Caller must hold the lock and must have
// already reserved p.ID via NextPlayerID.
func (h *Hub) Join(p *player.Player) {
	h.players[p.ID] = p
	h.byName[p.Username] = p
}

// Leave removes p from the roster (spec.md section 5's resource-lifecycle
// cleanup path).
func (h *Hub) Leave(p *player.Player) {
	delete(h.players, p.ID)
	delete(h.byName, p.Username)
}

// LookupPersisted returns previously saved player data for username, per
// spec.md section 4.E ("look up persisted savableData for this username").
func (h *Hub) LookupPersisted(username string) (*world.PlayerData, bool) {
	if pd, ok := h.World.PlayerData[username]; ok {
		return pd, true
	}
	if h.PlayerStore == nil {
		return nil, false
	}
	pd, ok, err := h.PlayerStore.Get(username)
	if err != nil {
		h.Log.Warn("failed to read persisted player data", "username", username, "err", err)
		return nil, false
	}
	return pd, ok
}

// PersistOnLeave writes data back for username, both into the in-memory
// World.PlayerData map (picked up by the next whole-world save) and into the
// granular per-player store (spec.md section 5's resource-lifecycle step
// "copy its savableData into world.playerData[username]").
func (h *Hub) PersistOnLeave(username string, data *world.PlayerData) {
	h.World.PlayerData[username] = data
	if h.PlayerStore == nil {
		return
	}
	if err := h.PlayerStore.Put(username, data); err != nil {
		h.Log.Warn("failed to persist player data", "username", username, "err", err)
	}
}

// ConsumeAllowEntry implements the allow-once bypass (supplemented feature
// 2, SPEC_FULL.md): returns the recorded password and deletes the entry.
func (h *Hub) ConsumeAllowEntry(username string) (password string, ok bool) {
	password, ok = h.allowlist[username]
	if ok {
		delete(h.allowlist, username)
	}
	return password, ok
}

// PasswordFor resolves the join password a username must present: a runtime
// /setpass override takes priority over the config's PasswordsByUser map.
func (h *Hub) PasswordFor(username string) (string, bool) {
	if p, ok := h.passwords[username]; ok {
		return p, true
	}
	p, ok := h.Config.Protection.Passwords[username]
	return p, ok
}
