package command

import (
	"strings"
	"testing"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/player"
	"github.com/blockvale/classic/protocol"
	"github.com/blockvale/classic/world"
)

type fakeSource struct {
	name string
	perm block.Permission
	p    *player.Player
}

func (f fakeSource) Name() string               { return f.name }
func (f fakeSource) Permission() block.Permission { return f.perm }
func (f fakeSource) AsPlayer() (*player.Player, bool) {
	if f.p == nil {
		return nil, false
	}
	return f.p, true
}

type fakeHost struct {
	broadcasts []protocol.ServerPacket
	players    map[string]*player.Player
	rules      world.Rules
	stopped    bool
	saved      bool
	xs, ys, zs int
}

func newFakeHost() *fakeHost {
	return &fakeHost{players: map[string]*player.Player{}, rules: world.DefaultRules(), xs: 64, ys: 64, zs: 64}
}

func (h *fakeHost) Broadcast(pk protocol.ServerPacket) { h.broadcasts = append(h.broadcasts, pk) }
func (h *fakeHost) Players() []*player.Player {
	out := make([]*player.Player, 0, len(h.players))
	for _, p := range h.players {
		out = append(out, p)
	}
	return out
}
func (h *fakeHost) PlayerByUsername(name string) (*player.Player, bool) {
	p, ok := h.players[name]
	return p, ok
}
func (h *fakeHost) SetPermission(username string, perm block.Permission) bool {
	p, ok := h.players[username]
	if !ok {
		return false
	}
	p.Permission = perm
	return true
}
func (h *fakeHost) Kick(username, reason string) bool {
	p, ok := h.players[username]
	if !ok {
		return false
	}
	p.Kick(reason)
	return true
}
func (h *fakeHost) Ban(username, reason string) bool { return h.Kick(username, reason) }
func (h *fakeHost) AllowEntry(username, password string) {}
func (h *fakeHost) SetPassword(username, password string) bool { return true }
func (h *fakeHost) Weather() world.Weather                     { return world.Sunny }
func (h *fakeHost) SetWeather(w world.Weather)                 {}
func (h *fakeHost) Rules() *world.Rules                        { return &h.rules }
func (h *fakeHost) RequestSave()                               { h.saved = true }
func (h *fakeHost) SetLevelSpawn(spawn world.SpawnPoint, overwriteOthers bool) {}
func (h *fakeHost) Teleport(target *player.Player, x, y, z protocol.Fixed, yaw, pitch uint8) bool {
	target.X, target.Y, target.Z, target.Yaw, target.Pitch = x, y, z, yaw, pitch
	return true
}
func (h *fakeHost) Stop() { h.stopped = true }
func (h *fakeHost) WorldBounds() (xs, ys, zs int) { return h.xs, h.ys, h.zs }

func TestDispatchUnknownCommand(t *testing.T) {
	host := newFakeHost()
	lines := Dispatch(fakeSource{name: "alice", perm: block.Operator}, "frobnicate", host)
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "&c") {
		t.Fatalf("expected one &c-prefixed error line, got %v", lines)
	}
}

func TestDispatchPermissionDenied(t *testing.T) {
	host := newFakeHost()
	lines := Dispatch(fakeSource{name: "bob", perm: block.Normal}, "stop", host)
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "&c") {
		t.Fatalf("expected permission-denied error, got %v", lines)
	}
	if host.stopped {
		t.Fatal("stop must not run without Operator permission")
	}
}

// TestLevelRuleRoundTrip is end-to-end scenario 6 (spec.md section 8).
func TestLevelRuleRoundTrip(t *testing.T) {
	host := newFakeHost()
	src := fakeSource{name: "admin", perm: block.Operator}

	lines := Dispatch(src, "levelrule grass_spread_chance 1024", host)
	if len(lines) != 1 || lines[0] != "&fUpdated rule grass_spread_chance" {
		t.Fatalf("unexpected set reply: %v", lines)
	}

	lines = Dispatch(src, "levelrule grass_spread_chance", host)
	if len(lines) != 1 || lines[0] != "&f1024 (u64)" {
		t.Fatalf("unexpected get reply: %v", lines)
	}

	lines = Dispatch(src, "levelrule all", host)
	if len(lines) != len(w0RuleFields()) {
		t.Fatalf("expected one line per rule field, got %d", len(lines))
	}
}

func w0RuleFields() []world.RuleField { return world.RuleFields }

// TestKickPropagation is end-to-end scenario 5 (spec.md section 8).
func TestKickPropagation(t *testing.T) {
	host := newFakeHost()
	host.players["bob"] = &player.Player{Username: "bob"}
	src := fakeSource{name: "admin", perm: block.Operator}

	lines := Dispatch(src, "kick bob Goodbye", host)
	if len(lines) != 1 || lines[0] != "&fKicked bob." {
		t.Fatalf("unexpected reply: %v", lines)
	}
	if host.players["bob"].KickReason != "Kicked: Goodbye" {
		t.Fatalf("expected kick reason to be set, got %q", host.players["bob"].KickReason)
	}
}
