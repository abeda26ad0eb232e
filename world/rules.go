package world

import (
	"fmt"
	"strconv"
)

// RuleType is the declared scalar type of a level rule field.
type RuleType uint8

const (
	RuleBool RuleType = iota
	RuleU64
)

func (t RuleType) String() string {
	switch t {
	case RuleBool:
		return "bool"
	case RuleU64:
		return "u64"
	default:
		return "unknown"
	}
}

// RuleField is one entry of the closed, compile-time enumerated mapping
// spec.md section 9 calls for in place of the original's reflection-based
// rule introspection: "enumerate the fields explicitly -- a closed static
// mapping {name -> (getter, typedSetter)}".
type RuleField struct {
	Name string
	Type RuleType
	Get  func(*Rules) string
	Set  func(*Rules, string) error
}

// RuleFields is the closed mapping, parameterized over the three rule
// fields spec.md section 3 defines. Order is the display order for
// "/levelrule all".
var RuleFields = []RuleField{
	{
		Name: "fluid_spread",
		Type: RuleBool,
		Get:  func(r *Rules) string { return strconv.FormatBool(r.FluidSpread) },
		Set: func(r *Rules, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("fluid_spread expects a bool (true/false), got %q", v)
			}
			r.FluidSpread = b
			return nil
		},
	},
	{
		Name: "random_tick_updates",
		Type: RuleU64,
		Get:  func(r *Rules) string { return strconv.FormatUint(r.RandomTickUpdates, 10) },
		Set: func(r *Rules, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("random_tick_updates expects a u64, got %q", v)
			}
			r.RandomTickUpdates = n
			return nil
		},
	},
	{
		Name: "grass_spread_chance",
		Type: RuleU64,
		Get:  func(r *Rules) string { return strconv.FormatUint(r.GrassSpreadChance, 10) },
		Set: func(r *Rules, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("grass_spread_chance expects a u64, got %q", v)
			}
			r.GrassSpreadChance = n
			return nil
		},
	},
}

// RuleFieldByName looks up a rule field by name for /levelrule <name> [value].
func RuleFieldByName(name string) (RuleField, bool) {
	for _, f := range RuleFields {
		if f.Name == name {
			return f, true
		}
	}
	return RuleField{}, false
}
