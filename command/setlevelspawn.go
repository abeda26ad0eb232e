package command

import (
	"strconv"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/world"
)

func init() {
	register(registration{
		name:         "setlevelspawn",
		requiredPerm: block.Moderator,
		usage:        "/setlevelspawn [overwriteOthers:bool]",
		description:  "Sets the server's default spawn point to your current position.",
		handler:      cmdSetLevelSpawn,
	})
}

func cmdSetLevelSpawn(src Source, args []string, out *Output, host Host) {
	p, ok := src.AsPlayer()
	if !ok {
		out.Errorf("The console has no position to use as a spawn point.")
		return
	}
	overwriteOthers := false
	if len(args) > 0 {
		b, err := strconv.ParseBool(args[0])
		if err != nil {
			out.Errorf("overwriteOthers must be a bool (true/false), got %q.", args[0])
			return
		}
		overwriteOthers = b
	}
	host.SetLevelSpawn(world.SpawnPoint{X: p.X, Y: p.Y, Z: p.Z, Yaw: p.Yaw, Pitch: p.Pitch}, overwriteOthers)
	out.Print("&fServer spawn point updated.")
}
