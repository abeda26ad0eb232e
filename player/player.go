// Package player implements the in-memory Player record described in
// spec.md section 3, plus the free-id pool used to assign connection ids.
package player

import (
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/protocol"
	"github.com/blockvale/classic/world"
)

// SelfID is the id reserved for "self" in outgoing packets (spec.md section
// 3).
const SelfID int8 = -1

// MaxID is the largest assignable player id (signed 8-bit, [0,127]).
const MaxID = 127

// Player is the in-memory per-connection record. Fields here are only
// mutated while the hub's exclusive lock is held, except OutgoingQueue which
// has its own mutex since the tick loop and other sessions append to it
// concurrently with this player's own session task draining it.
type Player struct {
	ID       int8
	Username string
	Addr     net.Addr

	// ConnID is a per-connection trace id used only for structured logging,
	// grounded on the teacher's use of uuid.UUID as a per-entity key
	// (server/world/world.go's sleepingPlayers map[uuid.UUID]cube.Pos).
	ConnID uuid.UUID

	X, Y, Z    protocol.Fixed
	Yaw, Pitch uint8

	Permission block.Permission

	ExtensionsBitmask       uint64
	CustomBlocksSupportLevel uint8

	KickReason string

	SavableData world.PlayerData

	queueMu sync.Mutex
	queue   []protocol.ServerPacket
}

// Enqueue appends a packet to this player's outgoing queue. Safe for
// concurrent use by any number of session tasks and the tick loop.
func (p *Player) Enqueue(pk protocol.ServerPacket) {
	p.queueMu.Lock()
	p.queue = append(p.queue, pk)
	p.queueMu.Unlock()
}

// Drain removes and returns every packet currently queued, in FIFO order.
func (p *Player) Drain() []protocol.ServerPacket {
	p.queueMu.Lock()
	out := p.queue
	p.queue = nil
	p.queueMu.Unlock()
	return out
}

// Kick marks the player to be disconnected with reason the next time its
// session checks KickReason (spec.md section 4.E Play loop step (a)).
func (p *Player) Kick(reason string) {
	p.KickReason = reason
}

// FreeIDPool hands out player ids from [0,127], recycling ids returned by
// Release, preferring the lowest free id (matching spec.md section 4.E:
// "Assign playerId from the free-id pool, or len(players) if empty").
type FreeIDPool struct {
	free []int8
}

// Acquire returns the next available id given the current roster size.
func (f *FreeIDPool) Acquire(rosterSize int) int8 {
	if len(f.free) == 0 {
		return int8(rosterSize)
	}
	// Take the smallest to keep ids compact and deterministic.
	minIdx := 0
	for i, id := range f.free {
		if id < f.free[minIdx] {
			minIdx = i
		}
	}
	id := f.free[minIdx]
	f.free = append(f.free[:minIdx], f.free[minIdx+1:]...)
	return id
}

// Release returns id to the pool for reuse.
func (f *FreeIDPool) Release(id int8) {
	f.free = append(f.free, id)
}
