package world

import (
	"testing"

	"github.com/blockvale/classic/block"
)

// TestFluidSpreadOneTick is end-to-end scenario 2 from spec.md section 8.
func TestFluidSpreadOneTick(t *testing.T) {
	w, err := New(5, 3, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	center := w.Index(2, 2, 2)
	w.SetBlock(2, 2, 2, block.WaterFlowing)
	w.ScheduleAwaitingUpdate(center)

	for tickCount := uint64(1); tickCount <= 2; tickCount++ {
		Tick(w, tickCount)
		got, _ := w.GetBlock(2, 2, 2)
		if got != block.WaterFlowing {
			t.Fatalf("tick %d: expected water to stay flowing before its spread tick, got %d", tickCount, got)
		}
	}

	packets := Tick(w, 3)
	if len(packets) != 6 {
		t.Fatalf("expected 6 SetBlock packets (1 settle + 5 spreads), got %d", len(packets))
	}

	center2, _ := w.GetBlock(2, 2, 2)
	if center2 != block.WaterStill {
		t.Fatalf("expected center to settle to stationary water, got %d", center2)
	}
	for _, n := range [][3]int{{1, 2, 2}, {3, 2, 2}, {2, 2, 1}, {2, 2, 3}, {2, 1, 2}} {
		got, _ := w.GetBlock(n[0], n[1], n[2])
		if got != block.WaterFlowing {
			t.Fatalf("expected neighbor (%d,%d,%d) to become flowing water, got %d", n[0], n[1], n[2], got)
		}
	}
}

// TestWaterMeetsLava is end-to-end scenario 3 from spec.md section 8.
func TestWaterMeetsLava(t *testing.T) {
	w, err := New(3, 3, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.SetBlock(0, 0, 0, block.WaterFlowing)
	w.SetBlock(1, 0, 0, block.LavaFlowing)
	waterIdx := w.Index(0, 0, 0)
	w.ScheduleAwaitingUpdate(waterIdx)

	ticksToSpread := block.Get(block.WaterFlowing).TicksToSpread
	var tickCount uint64
	for tickCount = 1; tickCount%ticksToSpread != 0; tickCount++ {
		Tick(w, tickCount)
	}
	Tick(w, tickCount)

	got, _ := w.GetBlock(1, 0, 0)
	if got != block.Stone {
		t.Fatalf("expected lava neighbor to become stone, got %d", got)
	}
	lavaAtOrigin, _ := w.GetBlock(0, 0, 0)
	if lavaAtOrigin == block.LavaFlowing || lavaAtOrigin == block.LavaStill {
		t.Fatal("lava must not have flowed toward the water cell in the same pass")
	}
}

func TestGrassSpreadsOntoDirtWithClearAirAbove(t *testing.T) {
	w, err := New(3, 3, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Rules.GrassSpreadChance = 1 // deterministic: always spreads
	w.SetBlock(1, 1, 1, block.Grass)
	w.SetBlock(0, 1, 1, block.Dirt)
	grassIdx := w.Index(1, 1, 1)
	w.ScheduleAwaitingUpdate(grassIdx)

	Tick(w, 1)

	got, _ := w.GetBlock(0, 1, 1)
	if got != block.Grass {
		t.Fatalf("expected dirt neighbor to become grass, got %d", got)
	}
}

func TestDirtRearmsNeighboringGrassForRandomTicks(t *testing.T) {
	w, err := New(3, 3, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.SetBlock(1, 1, 1, block.Dirt)
	w.SetBlock(0, 1, 1, block.Grass)
	dirtIdx := w.Index(1, 1, 1)
	w.ScheduleAwaitingUpdate(dirtIdx)

	Tick(w, 1)

	found := false
	for _, idx := range w.possibleRandomUpdates {
		if idx == w.Index(0, 1, 1) {
			found = true
		}
	}
	if !found {
		t.Fatal("expected neighboring grass to be added to possibleRandomUpdates")
	}
}
