package command

import (
	"strings"

	"github.com/blockvale/classic/block"
)

func init() {
	register(registration{
		name:         "say",
		requiredPerm: block.Moderator,
		usage:        "/say <message>",
		description:  "Broadcasts a server-wide message.",
		handler:      cmdSay,
	})
}

func cmdSay(src Source, args []string, out *Output, host Host) {
	if len(args) == 0 {
		out.Errorf("Usage: /say <message>")
		return
	}
	// "[Server] " rather than a player-name prefix keeps this distinct from
	// player chat (supplemented feature 3, SPEC_FULL.md), so it is never
	// subject to the 64-byte re-splitting a username would need room for.
	host.Broadcast(messagePacket(-1, "&f[Server] "+strings.Join(args, " ")))
}
