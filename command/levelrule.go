package command

import (
	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/world"
)

func init() {
	register(registration{
		name:         "levelrule",
		requiredPerm: block.Moderator,
		usage:        "/levelrule (all|<rule> [value])",
		description:  "Reads or sets a level simulation rule.",
		handler:      cmdLevelRule,
	})
}

// cmdLevelRule implements spec.md section 4.G's "LevelRule reflection"
// against the closed static mapping in world.RuleFields, per spec.md
// section 9's design note (no runtime reflection).
func cmdLevelRule(src Source, args []string, out *Output, host Host) {
	rules := host.Rules()
	if len(args) == 0 {
		out.Errorf("Usage: /levelrule (all|<rule> [value])")
		return
	}
	if args[0] == "all" {
		for _, f := range world.RuleFields {
			out.Printf("&f%s: %s (%s)", f.Name, f.Get(rules), f.Type)
		}
		return
	}
	field, ok := world.RuleFieldByName(args[0])
	if !ok {
		out.Errorf("Unknown rule %q.", args[0])
		return
	}
	if len(args) == 1 {
		out.Printf("&f%s (%s)", field.Get(rules), field.Type)
		return
	}
	if err := field.Set(rules, args[1]); err != nil {
		out.Errorf("%s", err)
		return
	}
	out.Printf("&fUpdated rule %s", field.Name)
}
