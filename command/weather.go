package command

import (
	"strings"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/world"
)

func init() {
	register(registration{
		name:         "weather",
		requiredPerm: block.Moderator,
		usage:        "/weather <Sunny|Raining|Snowing>",
		description:  "Changes the world's weather.",
		handler:      cmdWeather,
	})
}

func cmdWeather(src Source, args []string, out *Output, host Host) {
	if len(args) != 1 {
		out.Errorf("Usage: /weather <Sunny|Raining|Snowing>")
		return
	}
	var w world.Weather
	switch strings.ToLower(args[0]) {
	case "sunny":
		w = world.Sunny
	case "raining":
		w = world.Raining
	case "snowing":
		w = world.Snowing
	default:
		out.Errorf("Unknown weather %q.", args[0])
		return
	}
	host.SetWeather(w)
	out.Printf("&fWeather set to %s.", args[0])
}
