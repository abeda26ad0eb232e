package command

import "strings"

func init() {
	register(registration{
		name:         "me",
		requiredPerm: 0, // Normal
		usage:        "/me <action>",
		description:  "Broadcasts an action message as yourself.",
		handler:      cmdMe,
	})
}

func cmdMe(src Source, args []string, out *Output, host Host) {
	if len(args) == 0 {
		out.Errorf("Usage: /me <action>")
		return
	}
	host.Broadcast(messagePacket(-1, "&e* "+src.Name()+" "+strings.Join(args, " ")))
}
