package world

import (
	"testing"

	"github.com/blockvale/classic/block"
)

func TestGenerateFlatLayers(t *testing.T) {
	w, err := New(4, 16, 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	GenerateFlat(w)

	groundY := w.Ys/2 - 1
	for x := 0; x < w.Xs; x++ {
		for z := 0; z < w.Zs; z++ {
			if id, _ := w.GetBlock(x, 0, z); id != block.Bedrock {
				t.Fatalf("expected bedrock at y=0, got %d", id)
			}
			if id, _ := w.GetBlock(x, groundY, z); id != block.Grass {
				t.Fatalf("expected grass at groundY=%d, got %d", groundY, id)
			}
			if id, _ := w.GetBlock(x, groundY-1, z); id != block.Dirt {
				t.Fatalf("expected dirt just below grass, got %d", id)
			}
			if id, _ := w.GetBlock(x, 1, z); id != block.Stone {
				t.Fatalf("expected stone above bedrock, got %d", id)
			}
			if id, _ := w.GetBlock(x, w.Ys-1, z); id != block.Air {
				t.Fatalf("expected air above ground, got %d", id)
			}
		}
	}
}
