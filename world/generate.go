package world

import "github.com/blockvale/classic/block"

// GenerateFlat mutates an empty World into the classic default terrain:
// bedrock floor, stone, a dirt layer, and a single grass surface at
// Ys/2 - 1 -- consulting only SetBlock and the volume's dimensions, per
// spec.md section 6's Level generator contract ("mutates an empty World...
// consulting only setBlock and dimensions"). Replaces the teacher's
// biome-driven pmgen populator (server/world/generator/pmgen), which has no
// analogue here; see DESIGN.md.
func GenerateFlat(w *World) {
	groundY := w.Ys/2 - 1
	for x := 0; x < w.Xs; x++ {
		for z := 0; z < w.Zs; z++ {
			w.SetBlock(x, 0, z, block.Bedrock)
			for y := 1; y < groundY-2 && y < w.Ys; y++ {
				w.SetBlock(x, y, z, block.Stone)
			}
			for y := max(groundY-2, 1); y < groundY && y < w.Ys; y++ {
				w.SetBlock(x, y, z, block.Dirt)
			}
			if groundY >= 0 && groundY < w.Ys {
				w.SetBlock(x, groundY, z, block.Grass)
			}
		}
	}
}
