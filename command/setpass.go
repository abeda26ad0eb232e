package command

func init() {
	register(registration{
		name:         "setpass",
		requiredPerm: 0, // Normal
		usage:        "/setpass <password>",
		description:  "Sets your own join password.",
		handler:      cmdSetPass,
	})
}

func cmdSetPass(src Source, args []string, out *Output, host Host) {
	if len(args) != 1 {
		out.Errorf("Usage: /setpass <password>")
		return
	}
	if _, ok := src.AsPlayer(); !ok {
		out.Errorf("The console has no password to set.")
		return
	}
	host.SetPassword(src.Name(), args[0])
	out.Print("&fYour join password has been updated.")
}
