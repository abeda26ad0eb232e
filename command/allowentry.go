package command

import "github.com/blockvale/classic/block"

func init() {
	register(registration{
		name:         "allowentry",
		requiredPerm: block.Moderator,
		usage:        "/allowentry <username> [password]",
		description:  "Allows one username to join once, bypassing server protection.",
		handler:      cmdAllowEntry,
	})
}

// Supplemented feature 2 (SPEC_FULL.md, from original_source/): an
// allow-once bypass rather than a standing whitelist. host.AllowEntry
// records the pair and the hub deletes it the moment AwaitIdent consults it.
func cmdAllowEntry(src Source, args []string, out *Output, host Host) {
	if len(args) < 1 {
		out.Errorf("Usage: /allowentry <username> [password]")
		return
	}
	password := ""
	if len(args) > 1 {
		password = args[1]
	}
	host.AllowEntry(args[0], password)
	out.Printf("&f%s may join once regardless of server protection.", args[0])
}
