package world

import (
	"math/rand/v2"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/protocol"
)

// waterIDs and lavaIDs group the two fluid substances so the fluid
// interaction rule (spec.md section 4.D, glossary "Fluid-interaction rule")
// can tell "water meets lava" apart from "water meets water".
var waterIDs = map[byte]bool{block.WaterFlowing: true, block.WaterStill: true}
var lavaIDs = map[byte]bool{block.LavaFlowing: true, block.LavaStill: true}

// nonUpOffsets are the five face-neighbors excluding straight up, used by
// both fluid kinds' spread rules.
var nonUpOffsets = [5][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, 0, -1}, {0, 0, 1},
	{0, -1, 0},
}

// Tick runs one fixed 50ms simulation step (spec.md section 4.D) and returns
// every packet produced, in the order they must be broadcast. The caller
// (package hub) must already hold the exclusive world lock.
func Tick(w *World, tickCount uint64) []protocol.ServerPacket {
	packets := w.ApplyUpdates()

	sampleRandomTicks(w)
	drainAwaitingUpdate(w, tickCount)

	packets = append(packets, w.ApplyUpdates()...)
	return packets
}

// sampleRandomTicks shuffles the random-tick multiset and promotes up to
// rules.RandomTickUpdates entries into the awaiting-update set.
func sampleRandomTicks(w *World) {
	pool := w.possibleRandomUpdates
	if len(pool) == 0 {
		return
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := int(w.Rules.RandomTickUpdates)
	if n > len(pool) {
		n = len(pool)
	}
	for i := 0; i < n; i++ {
		w.ScheduleAwaitingUpdate(pool[i])
	}
	w.possibleRandomUpdates = pool[n:]
}

// drainAwaitingUpdate snapshots and clears the awaiting-update set, then runs
// the per-kind automaton for each entry. Anything (re-)scheduled during the
// drain lands in the set fresh and waits for next tick, per spec.md section
// 4.D.
func drainAwaitingUpdate(w *World, tickCount uint64) {
	entries := w.awaitingUpdate.drain()
	for _, index := range entries {
		id := w.GetBlockAt(index)
		info := block.Get(id)
		if info == nil {
			continue
		}
		switch {
		case info.Kind == block.Solid && id == block.Grass:
			tickGrass(w, index)
		case info.Kind == block.Solid && id == block.Dirt:
			tickDirt(w, index)
		case info.Kind == block.FluidFlowing:
			tickFluidFlowing(w, index, id, info, tickCount)
		case info.Kind == block.FluidStationary:
			tickFluidStationary(w, index, id, info)
		}
	}
}

// tickGrass implements spec.md section 4.D's "Grass (Solid, id = GRASS)"
// rule: dirt neighbors with clear air above are spread candidates, and the
// grass block itself may revert to dirt if covered.
func tickGrass(w *World, index int) {
	x, y, z := w.Coordinates(index)
	chance := w.Rules.GrassSpreadChance
	if chance == 0 {
		return
	}

	candidates := 0
	converted := 0
	for dy := -1; dy <= 1; dy++ {
		for _, h := range horizontalRing {
			nx, ny, nz := x+h[0], y+dy, z+h[1]
			if !w.InBounds(nx, ny, nz) {
				continue
			}
			if w.GetBlockAt(w.Index(nx, ny, nz)) != block.Dirt {
				continue
			}
			if !cellEmpty(w, nx, ny+1, nz) {
				continue
			}
			candidates++
			if rand.Float64() < 1.0/float64(chance) {
				w.QueueUpdate(BlockUpdate{Index: w.Index(nx, ny, nz), NewID: block.Grass})
				converted++
			}
		}
	}

	if !cellEmpty(w, x, y+1, z) {
		candidates++
		if rand.Float64() < 1.0/float64(chance) {
			w.QueueUpdate(BlockUpdate{Index: index, NewID: block.Dirt})
			converted++
		}
	}

	if converted < candidates {
		w.AddRandomTickCandidate(index)
	}
}

// horizontalRing is the 4 orthogonal N/S/E/W offsets in the XZ plane,
// repeated at y-1, y, y+1 by tickGrass (12 cells total), matching
// neighbors_with_vertical_diagonals in the original source -- no XZ
// diagonal neighbors.
var horizontalRing = [4][2]int{
	{0, -1}, {0, 1}, {-1, 0}, {1, 0},
}

// cellEmpty treats an out-of-bounds or air cell as empty, per spec.md
// section 4.D ("the cell directly above that dirt is empty (id 0 or out of
// bounds treated as empty)").
func cellEmpty(w *World, x, y, z int) bool {
	if !w.InBounds(x, y, z) {
		return true
	}
	return w.GetBlockAt(w.Index(x, y, z)) == block.Air
}

// tickDirt implements the "Dirt (Solid)" rule: any neighboring grass block
// is re-armed for random-tick sampling.
func tickDirt(w *World, index int) {
	x, y, z := w.Coordinates(index)
	for _, off := range neighborOffsets26 {
		nx, ny, nz := x+off[0], y+off[1], z+off[2]
		if !w.InBounds(nx, ny, nz) {
			continue
		}
		ni := w.Index(nx, ny, nz)
		if w.GetBlockAt(ni) == block.Grass {
			w.AddRandomTickCandidate(ni)
		}
	}
}

// tickFluidFlowing implements the FluidFlowing{stationaryId,ticksToSpread}
// rule.
func tickFluidFlowing(w *World, index int, id byte, info *block.Info, tickCount uint64) {
	if !w.Rules.FluidSpread {
		return
	}
	if info.TicksToSpread == 0 || tickCount%info.TicksToSpread != 0 {
		w.ScheduleAwaitingUpdate(index)
		return
	}

	w.QueueUpdate(BlockUpdate{Index: index, NewID: info.StationaryID})

	x, y, z := w.Coordinates(index)
	for _, off := range nonUpOffsets {
		nx, ny, nz := x+off[0], y+off[1], z+off[2]
		if !w.InBounds(nx, ny, nz) {
			continue
		}
		ni := w.Index(nx, ny, nz)
		nInfo := block.Get(w.GetBlockAt(ni))
		if nInfo == nil {
			continue
		}
		switch nInfo.Kind {
		case block.NonSolid:
			w.QueueUpdate(BlockUpdate{Index: ni, NewID: id})
			w.ScheduleAwaitingUpdate(ni)
		case block.FluidFlowing, block.FluidStationary:
			applyFluidInteraction(w, id, w.GetBlockAt(ni), ni)
		}
	}
}

// tickFluidStationary implements the FluidStationary{movingId} rule.
func tickFluidStationary(w *World, index int, id byte, info *block.Info) {
	if !w.Rules.FluidSpread {
		return
	}
	x, y, z := w.Coordinates(index)
	for _, off := range nonUpOffsets {
		nx, ny, nz := x+off[0], y+off[1], z+off[2]
		if !w.InBounds(nx, ny, nz) {
			continue
		}
		ni := w.Index(nx, ny, nz)
		nInfo := block.Get(w.GetBlockAt(ni))
		if nInfo != nil && nInfo.Kind == block.NonSolid {
			w.QueueUpdate(BlockUpdate{Index: index, NewID: info.MovingID})
			w.ScheduleAwaitingUpdate(index)
			return
		}
	}
}

// applyFluidInteraction turns neighborIndex to stone when this and neighbor
// are opposite fluid substances; same-substance fluids (or a fluid meeting
// its own stationary form) are left untouched.
func applyFluidInteraction(w *World, thisID, neighborID byte, neighborIndex int) {
	if waterIDs[thisID] && lavaIDs[neighborID] {
		w.QueueUpdate(BlockUpdate{Index: neighborIndex, NewID: block.Stone})
	} else if lavaIDs[thisID] && waterIDs[neighborID] {
		w.QueueUpdate(BlockUpdate{Index: neighborIndex, NewID: block.Stone})
	}
}
