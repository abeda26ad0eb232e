// Package block holds the static block catalog: the process-lifetime,
// immutable table mapping a Classic block ID to its kind, permissions and
// simulation flags. The table is built once at init and never mutated
// afterwards, the way dragonfly's block registry is built once at package
// init and shared by reference.
package block

// Permission orders a player's ability to place or break a block.
// Operator > Moderator > Normal under all comparisons.
type Permission uint8

const (
	Normal Permission = iota
	Moderator
	Operator
)

// Kind distinguishes the physical behaviour of a block for the tick engine.
type Kind uint8

const (
	Solid Kind = iota
	NonSolid
	SlabKind
	RopeKind
	FluidFlowing
	FluidStationary
)

// Canonical block IDs used by the core simulation and the worked examples in
// the specification. The full 0x00..0x31 canonical range is registered in
// init(); these names cover the ones the tick engine and tests reference
// directly.
const (
	Air          = 0x00
	Stone        = 0x01
	Grass        = 0x02
	Dirt         = 0x03
	Cobblestone  = 0x04
	Bedrock      = 0x07
	WaterFlowing = 0x08
	WaterStill   = 0x09
	LavaFlowing  = 0x0a
	LavaStill    = 0x0b
	Sand         = 0x0c
	Gravel       = 0x0d
	Glass        = 0x14
	Obsidian     = 0x31
)

// Info is the static per-ID record described by spec.md section 4.B.
type Info struct {
	ID         byte
	StrID      string
	Kind       Kind
	PlacePerm  Permission
	BreakPerm  Permission
	FallbackID byte
	HasFallback bool

	NeedsUpdateWhenNeighborChanged bool
	NeedsUpdateOnPlace             bool
	MayReceiveRandomTicks          bool

	// StationaryID/MovingID/TicksToSpread are only meaningful for the two
	// fluid kinds, mirroring the FluidFlowing{stationaryId,ticksToSpread} and
	// FluidStationary{movingId} payloads in spec.md.
	StationaryID   byte
	MovingID       byte
	TicksToSpread  uint64
}

// catalog is populated once by init and never mutated again.
var catalog [256]*Info

// Get returns the static record for id in O(1), or nil if id is unknown to
// the catalog.
func Get(id byte) *Info {
	return catalog[id]
}

// register installs info into the catalog, applying the derived flags
// spec.md section 4.B mandates: FluidFlowing implies NeedsUpdateOnPlace,
// FluidStationary implies NeedsUpdateWhenNeighborChanged.
func register(info Info) {
	switch info.Kind {
	case FluidFlowing:
		info.NeedsUpdateOnPlace = true
	case FluidStationary:
		info.NeedsUpdateWhenNeighborChanged = true
	}
	cp := info
	catalog[info.ID] = &cp
}

func solid(id byte, str string, place, brk Permission) {
	register(Info{ID: id, StrID: str, Kind: Solid, PlacePerm: place, BreakPerm: brk})
}

func nonSolid(id byte, str string, place, brk Permission) {
	register(Info{ID: id, StrID: str, Kind: NonSolid, PlacePerm: place, BreakPerm: brk})
}

func init() {
	register(Info{ID: Air, StrID: "air", Kind: NonSolid, PlacePerm: Normal, BreakPerm: Normal})
	register(Info{
		ID: Grass, StrID: "grass", Kind: Solid, PlacePerm: Normal, BreakPerm: Normal,
		MayReceiveRandomTicks: true,
	})
	register(Info{
		ID: Dirt, StrID: "dirt", Kind: Solid, PlacePerm: Normal, BreakPerm: Normal,
		// Dirt must be re-examined whenever a neighbor changes so the
		// grass/dirt automaton (spec.md section 4.D "Dirt (Solid)" rule) can
		// look for adjacent grass to feed back into possibleRandomUpdates.
		NeedsUpdateWhenNeighborChanged: true,
	})
	solid(Stone, "stone", Normal, Normal)
	solid(Cobblestone, "cobblestone", Normal, Normal)
	register(Info{ID: Bedrock, StrID: "bedrock", Kind: Solid, PlacePerm: Operator, BreakPerm: Operator})
	solid(Sand, "sand", Normal, Normal)
	solid(Gravel, "gravel", Normal, Normal)
	nonSolid(Glass, "glass", Normal, Normal)
	solid(Obsidian, "obsidian", Operator, Operator)

	register(Info{
		ID: WaterFlowing, StrID: "water_flowing", Kind: FluidFlowing,
		PlacePerm: Operator, BreakPerm: Normal,
		StationaryID: WaterStill, TicksToSpread: 3,
	})
	register(Info{
		ID: WaterStill, StrID: "water_still", Kind: FluidStationary,
		PlacePerm: Operator, BreakPerm: Normal,
		MovingID: WaterFlowing,
	})
	register(Info{
		ID: LavaFlowing, StrID: "lava_flowing", Kind: FluidFlowing,
		PlacePerm: Operator, BreakPerm: Normal,
		StationaryID: LavaStill, TicksToSpread: 15,
	})
	register(Info{
		ID: LavaStill, StrID: "lava_still", Kind: FluidStationary,
		PlacePerm: Operator, BreakPerm: Normal,
		MovingID: LavaFlowing,
	})

	// Remaining canonical IDs (0x00..0x31): wood, saplings, ore, logs,
	// leaves, sponge, the sixteen cloth colours, flowers, mushrooms, gold and
	// iron blocks, slabs, brick, TNT, bookshelf, moss stone. Modeled as plain
	// solid/non-solid blocks; none of them participate in the tick automata.
	names := map[byte]string{
		0x05: "wood", 0x06: "sapling", 0x0e: "gold_ore", 0x0f: "iron_ore",
		0x10: "coal_ore", 0x11: "log", 0x12: "leaves", 0x13: "sponge",
		0x15: "red", 0x16: "orange", 0x17: "yellow", 0x18: "lime",
		0x19: "green", 0x1a: "teal", 0x1b: "aqua", 0x1c: "cyan",
		0x1d: "blue", 0x1e: "indigo", 0x1f: "violet", 0x20: "magenta",
		0x21: "pink", 0x22: "black", 0x23: "gray", 0x24: "white",
		0x25: "dandelion", 0x26: "rose", 0x27: "brown_mushroom", 0x28: "red_mushroom",
		0x29: "gold_block", 0x2a: "iron_block", 0x2b: "double_slab", 0x2c: "slab",
		0x2d: "brick", 0x2e: "tnt", 0x2f: "bookshelf", 0x30: "moss_stone",
	}
	nonSolidIDs := map[byte]bool{0x06: true, 0x12: true, 0x25: true, 0x26: true, 0x27: true, 0x28: true}
	for id, name := range names {
		if catalog[id] != nil {
			continue
		}
		if nonSolidIDs[id] {
			nonSolid(id, name, Normal, Normal)
		} else {
			solid(id, name, Normal, Normal)
		}
	}
	register(Info{ID: 0x2c, StrID: "slab", Kind: SlabKind, PlacePerm: Normal, BreakPerm: Normal})
	register(Info{ID: 0x2b, StrID: "double_slab", Kind: Solid, PlacePerm: Normal, BreakPerm: Normal})
	register(Info{ID: 0x2e, StrID: "tnt", Kind: Solid, PlacePerm: Moderator, BreakPerm: Moderator})

	// A single custom-block example beyond the canonical 0x00..0x31 range,
	// demonstrating the fallback path for clients without CustomBlocks
	// support (spec.md section 4.B / glossary "Fallback block").
	register(Info{
		ID: 0x32, StrID: "custom_stone_brick", Kind: Solid,
		PlacePerm: Normal, BreakPerm: Normal,
		FallbackID: Stone, HasFallback: true,
	})
}
