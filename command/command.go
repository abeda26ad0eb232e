// Package command implements the chat-prefixed command dispatcher (spec.md
// section 4.G): a closed enum of commands, permission-gated, each returning
// chat lines sent back only to the invoker. There is no reflective command
// framework here the way the teacher's server/cmd package has one (struct
// tags, cmd.Source, cmd.Output, cmd.ByAlias) -- that machinery isn't part of
// the retrieval pack outside the teacher itself, and spec.md section 9
// already asks for a closed static mapping in the sibling case of level
// rules, so the same discipline is applied here: a small explicit registry,
// not reflection.
package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/player"
	"github.com/blockvale/classic/protocol"
	"github.com/blockvale/classic/world"
)

// Source identifies who is running a command: a connected player or the
// operator console.
type Source interface {
	Name() string
	Permission() block.Permission
	// AsPlayer returns the underlying player and true if this source is a
	// connected player rather than the console.
	AsPlayer() (*player.Player, bool)
}

// Output accumulates the chat lines a command sends back to its invoker,
// grounded on the teacher's cmd.Output (server/cmd/output.go): a small
// accumulator with Print/Printf/Errorf helpers rather than returning a raw
// []string from every handler.
type Output struct {
	lines []string
}

func (o *Output) Print(s string)              { o.lines = append(o.lines, s) }
func (o *Output) Printf(f string, a ...any)    { o.lines = append(o.lines, fmt.Sprintf(f, a...)) }
func (o *Output) Errorf(f string, a ...any)    { o.lines = append(o.lines, "&c"+fmt.Sprintf(f, a...)) }
func (o *Output) Lines() []string              { return o.lines }

// Host is everything a command handler may read or mutate on the server,
// implemented by package hub's Hub. Kept here (rather than imported from
// hub) so command has no dependency on hub and hub can depend on command
// without a cycle.
type Host interface {
	Broadcast(pk protocol.ServerPacket)
	Players() []*player.Player
	PlayerByUsername(name string) (*player.Player, bool)
	SetPermission(username string, perm block.Permission) bool
	Kick(username, reason string) bool
	Ban(username, reason string) bool
	AllowEntry(username, password string)
	SetPassword(username, password string) bool
	Weather() world.Weather
	SetWeather(w world.Weather)
	Rules() *world.Rules
	WorldBounds() (xs, ys, zs int)
	RequestSave()
	SetLevelSpawn(spawn world.SpawnPoint, overwriteOthers bool)
	Teleport(target *player.Player, x, y, z protocol.Fixed, yaw, pitch uint8) bool
	Stop()
}

// handlerFunc is the signature every registered command implements.
type handlerFunc func(src Source, args []string, out *Output, host Host)

// registration is one entry of the closed command enum.
type registration struct {
	name          string
	requiredPerm  block.Permission
	usage         string
	description   string
	handler       handlerFunc
}

// registry is the closed, compile-time enumerated set of commands spec.md
// section 4.G names: me, say, setperm, kick, stop, help, ban, allowentry,
// setpass, setlevelspawn, weather, save, tp, levelrule.
var registry = map[string]*registration{}
var registryOrder []string

func register(r registration) {
	cp := r
	registry[r.name] = &cp
	registryOrder = append(registryOrder, r.name)
}

// Descriptor is a read-only view of one registered command, for callers
// (the operator console) that want to list or complete command names
// without reaching into the registry directly.
type Descriptor struct {
	Name         string
	RequiredPerm block.Permission
	Usage        string
	Description  string
}

// Names returns every registered command name in sorted order. Sorted here
// rather than once at registration time, since init() order across files
// (and thus registryOrder's build-up) is filename-dependent, not alphabetical.
func Names() []string {
	out := make([]string, len(registryOrder))
	copy(out, registryOrder)
	sort.Strings(out)
	return out
}

// Describe returns the Descriptor for name, if registered.
func Describe(name string) (Descriptor, bool) {
	reg, ok := registry[name]
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Name: reg.name, RequiredPerm: reg.requiredPerm, Usage: reg.usage, Description: reg.description}, true
}

// Dispatch parses line (the chat text following the leading "/", with the
// slash already stripped) and runs the matching command, returning the chat
// lines to send back to src only. An unknown command name or wrong
// permission produces a single commandError line (spec.md section 7).
func Dispatch(src Source, line string, host Host) []string {
	tokens := Tokenize(line)
	out := &Output{}
	if len(tokens) == 0 {
		out.Errorf("No command given.")
		return out.Lines()
	}
	name := strings.ToLower(tokens[0])
	reg, ok := registry[name]
	if !ok {
		out.Errorf("Unknown command %q.", name)
		return out.Lines()
	}
	if src.Permission() < reg.requiredPerm {
		out.Errorf("You do not have permission to use /%s.", name)
		return out.Lines()
	}
	reg.handler(src, tokens[1:], out, host)
	return out.Lines()
}
