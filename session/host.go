package session

import (
	"github.com/blockvale/classic/command"
	"github.com/blockvale/classic/config"
	"github.com/blockvale/classic/player"
	"github.com/blockvale/classic/world"
)

// Host is everything a session needs from the server hub. It embeds
// command.Host so the same concrete type (package hub's Hub) can serve both
// the command dispatcher and session without hub importing session (hub
// depends on session to spawn connections; session must not depend back on
// hub, so this interface -- not a concrete hub.Hub reference -- is what
// session imports).
type Host interface {
	command.Host

	Lock()
	Unlock()

	ConfigValue() config.Config
	WorldValue() *world.World

	IsUsernameConnected(username string) bool
	NextPlayerID() int8
	ReleasePlayerID(id int8)
	Join(p *player.Player)
	Leave(p *player.Player)
	LookupPersisted(username string) (*world.PlayerData, bool)
	PersistOnLeave(username string, data *world.PlayerData)
	ConsumeAllowEntry(username string) (password string, ok bool)
	PasswordFor(username string) (string, bool)
}
