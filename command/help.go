package command

func init() {
	register(registration{
		name:         "help",
		requiredPerm: 0, // Normal
		usage:        "/help [command]",
		description:  "Lists commands, or shows one command's usage.",
		handler:      cmdHelp,
	})
}

// cmdHelp is supplemented feature 1 (SPEC_FULL.md): the original's
// src/command.rs registers a usage string per command and /help <command>
// prints it; /help alone lists every command the invoker may run.
func cmdHelp(src Source, args []string, out *Output, host Host) {
	if len(args) == 1 {
		reg, ok := registry[args[0]]
		if !ok {
			out.Errorf("Unknown command %q.", args[0])
			return
		}
		out.Print(reg.usage)
		if reg.description != "" {
			out.Print(reg.description)
		}
		return
	}

	perm := src.Permission()
	out.Print("&fAvailable commands:")
	for _, name := range Names() {
		reg := registry[name]
		if perm < reg.requiredPerm {
			continue
		}
		out.Printf("&f%s - %s", reg.usage, reg.description)
	}
}
