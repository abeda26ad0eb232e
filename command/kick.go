package command

import (
	"strings"

	"github.com/blockvale/classic/block"
)

func init() {
	register(registration{
		name:         "kick",
		requiredPerm: block.Moderator,
		usage:        "/kick <username> [reason]",
		description:  "Disconnects a player from the server.",
		handler:      cmdKick,
	})
	register(registration{
		name:         "ban",
		requiredPerm: block.Moderator,
		usage:        "/ban <username> [reason]",
		description:  "Disconnects a player with a ban-flavoured reason.",
		handler:      cmdBan,
	})
}

// End-to-end scenario 5 (spec.md section 8): within one tick the target's
// session observes KickReason and disconnects; everyone else sees
// DespawnPlayer plus a leave message. Both mutations this command performs
// -- kick and ban -- are limited to setting kickReason on the target player,
// per spec.md section 4.G ("kick/ban (both set kickReason on the target
// player)"); there is no separate persistent ban list in this core.
func cmdKick(src Source, args []string, out *Output, host Host) {
	if len(args) < 1 {
		out.Errorf("Usage: /kick <username> [reason]")
		return
	}
	reason := "Kicked by an operator."
	if len(args) > 1 {
		reason = strings.Join(args[1:], " ")
	}
	if !host.Kick(args[0], "Kicked: "+reason) {
		out.Errorf("No such player %q.", args[0])
		return
	}
	out.Printf("&fKicked %s.", args[0])
}

func cmdBan(src Source, args []string, out *Output, host Host) {
	if len(args) < 1 {
		out.Errorf("Usage: /ban <username> [reason]")
		return
	}
	reason := "Banned by an operator."
	if len(args) > 1 {
		reason = strings.Join(args[1:], " ")
	}
	if !host.Ban(args[0], "Banned: "+reason) {
		out.Errorf("No such player %q.", args[0])
		return
	}
	out.Printf("&fBanned %s.", args[0])
}
