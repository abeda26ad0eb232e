package world

import "testing"

func TestIndexCoordinatesRoundTrip(t *testing.T) {
	w, err := New(5, 3, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < w.Xs; x++ {
		for y := 0; y < w.Ys; y++ {
			for z := 0; z < w.Zs; z++ {
				idx := w.Index(x, y, z)
				if idx < 0 || idx >= w.Xs*w.Ys*w.Zs {
					t.Fatalf("index out of range: %d", idx)
				}
				gx, gy, gz := w.Coordinates(idx)
				if gx != x || gy != y || gz != z {
					t.Fatalf("round trip mismatch: (%d,%d,%d) -> %d -> (%d,%d,%d)", x, y, z, idx, gx, gy, gz)
				}
			}
		}
	}
}

func TestApplyUpdatesIdempotentWhenEmpty(t *testing.T) {
	w, _ := New(2, 2, 2, nil)
	packets := w.ApplyUpdates()
	if len(packets) != 0 {
		t.Fatalf("expected no packets, got %d", len(packets))
	}
}

func TestApplyUpdatesDeduplicatesByIndex(t *testing.T) {
	w, _ := New(2, 2, 2, nil)
	idx := w.Index(0, 0, 0)
	w.QueueUpdate(BlockUpdate{Index: idx, NewID: 1})
	w.QueueUpdate(BlockUpdate{Index: idx, NewID: 2})

	packets := w.ApplyUpdates()
	if len(packets) != 1 {
		t.Fatalf("expected exactly one SetBlock packet, got %d", len(packets))
	}
	got, _ := w.GetBlock(0, 0, 0)
	if got != 2 {
		t.Fatalf("expected block to hold latest value 2, got %d", got)
	}
}

func TestSetBlockDirectWriteSkipsNotifications(t *testing.T) {
	w, _ := New(3, 3, 3, nil)
	w.SetBlock(1, 1, 1, 9)
	if w.AwaitingUpdateLen() != 0 {
		t.Fatal("direct SetBlock must not schedule neighbor notifications")
	}
}
