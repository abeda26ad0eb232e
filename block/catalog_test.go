package block

import "testing"

func TestCanonicalRangeRegistered(t *testing.T) {
	for id := 0; id <= 0x31; id++ {
		if Get(byte(id)) == nil {
			t.Fatalf("canonical id 0x%02x missing from catalog", id)
		}
	}
}

func TestFluidFlagsDerived(t *testing.T) {
	water := Get(WaterFlowing)
	if !water.NeedsUpdateOnPlace {
		t.Fatal("FluidFlowing must set NeedsUpdateOnPlace")
	}
	still := Get(WaterStill)
	if !still.NeedsUpdateWhenNeighborChanged {
		t.Fatal("FluidStationary must set NeedsUpdateWhenNeighborChanged")
	}
}

func TestPermissionMonotonicity(t *testing.T) {
	if !(Operator > Moderator && Moderator > Normal) {
		t.Fatal("permission ordering broken")
	}
}

func TestFallbackBlock(t *testing.T) {
	custom := Get(0x32)
	if custom == nil || !custom.HasFallback || custom.FallbackID != Stone {
		t.Fatalf("expected custom block 0x32 to fall back to stone, got %+v", custom)
	}
}

func TestDirtTracksNeighborChanges(t *testing.T) {
	if !Get(Dirt).NeedsUpdateWhenNeighborChanged {
		t.Fatal("dirt must be rescheduled on neighbor change so it can scan for adjacent grass")
	}
}
