package command

import "github.com/blockvale/classic/block"

func init() {
	register(registration{
		name:         "save",
		requiredPerm: block.Moderator,
		usage:        "/save",
		description:  "Requests an out-of-band world save.",
		handler:      cmdSave,
	})
}

func cmdSave(src Source, args []string, out *Output, host Host) {
	host.RequestSave()
	out.Print("&fSave requested.")
}
