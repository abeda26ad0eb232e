package command

import "github.com/blockvale/classic/protocol"

// messagePacket builds a server chat line with the given wire player id.
// playerId -1 is the broadcast/server convention used throughout spec.md's
// echo rules.
func messagePacket(playerID int8, text string) protocol.MessageServer {
	return protocol.MessageServer{PlayerID: playerID, Message: text}
}
