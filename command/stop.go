package command

import "github.com/blockvale/classic/block"

func init() {
	register(registration{
		name:         "stop",
		requiredPerm: block.Operator,
		usage:        "/stop",
		description:  "Stops the server.",
		handler:      cmdStop,
	})
}

func cmdStop(src Source, args []string, out *Output, host Host) {
	out.Print("&fStopping server...")
	host.Stop()
}
