package command

import (
	"strings"

	"github.com/blockvale/classic/block"
)

func init() {
	register(registration{
		name:         "setperm",
		requiredPerm: block.Moderator,
		usage:        "/setperm <username> <Normal|Moderator|Operator>",
		description:  "Changes a player's permission level.",
		handler:      cmdSetPerm,
	})
}

func cmdSetPerm(src Source, args []string, out *Output, host Host) {
	if len(args) != 2 {
		out.Errorf("Usage: /setperm <username> <Normal|Moderator|Operator>")
		return
	}
	var perm block.Permission
	switch strings.ToLower(args[1]) {
	case "normal":
		perm = block.Normal
	case "moderator":
		perm = block.Moderator
	case "operator":
		perm = block.Operator
	default:
		out.Errorf("Unknown permission level %q.", args[1])
		return
	}
	if !host.SetPermission(args[0], perm) {
		out.Errorf("No such player %q.", args[0])
		return
	}
	out.Printf("&fSet %s's permission to %s.", args[0], args[1])
}
