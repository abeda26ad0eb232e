package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/command"
	"github.com/blockvale/classic/player"
	"github.com/blockvale/classic/protocol"
	"github.com/blockvale/classic/world"
)

// chatFragmentLimit leaves two bytes of the 64-byte Message field for the
// "&f" re-prefix every fragment carries, since Classic formatting codes do
// not persist across message packets (spec.md section 4.E Message dispatch).
const chatFragmentLimit = 62

// runPlay is the Play state's loop (spec.md section 4.E): per iteration,
// check kickReason, read and dispatch one packet, then drain the outgoing
// queue applying the echo rules.
func runPlay(ctx context.Context, c *conn, host Host, p *player.Player, log *slog.Logger) {
	src := playerSource{p: p}
	var pendingMessage strings.Builder

	// Flush the SpawnPlayer/join-message broadcast queued by broadcastJoin
	// before blocking on this player's first packet, so the client sees its
	// own spawn immediately rather than only after it sends something.
	if err := drain(c, host, p); err != nil {
		return
	}

	for {
		if ctx.Err() != nil {
			return
		}

		host.Lock()
		reason := p.KickReason
		host.Unlock()
		if reason != "" {
			sendClose(c, reason)
			return
		}

		pk, err := c.readPacket()
		if err != nil {
			return
		}

		switch v := pk.(type) {
		case protocol.SetBlockClient:
			if closeReason := handleSetBlock(host, p, v); closeReason != "" {
				sendClose(c, closeReason)
				return
			}
		case protocol.PositionOrientationClient:
			handlePositionOrientation(host, p, v)
		case protocol.MessageClient:
			handleMessage(host, src, p, v, &pendingMessage)
		}

		if err := drain(c, host, p); err != nil {
			return
		}
	}
}

// drain flushes p's outgoing queue, applying spec.md section 4.E's echo
// rules: a packet carrying this player's own id is dropped unless it is
// SetBlock, SpawnPlayer, or Message, which echo with id rewritten to -1.
func drain(c *conn, host Host, p *player.Player) error {
	queue := p.Drain()
	for _, pk := range queue {
		if owner, ok := pk.(protocol.HasPlayerID); ok && owner.GetPlayerID() == p.ID {
			switch pk.(type) {
			case protocol.SpawnPlayer, protocol.MessageServer:
				pk = owner.WithPlayerID(player.SelfID)
			default:
				continue
			}
		}
		if _, ok := pk.(protocol.EnvWeatherType); ok && p.ExtensionsBitmask&ExtEnvWeatherType == 0 {
			continue
		}
		if err := c.send(pk); err != nil {
			return err
		}
	}
	return nil
}

// handleSetBlock implements spec.md section 4.E's SetBlock dispatch.
func handleSetBlock(host Host, p *player.Player, pk protocol.SetBlockClient) string {
	host.Lock()
	defer host.Unlock()

	w := host.WorldValue()
	x, y, z := int(pk.X), int(pk.Y), int(pk.Z)
	if !w.InBounds(x, y, z) {
		return "Attempt to place block out of bounds"
	}

	newID := pk.BlockID
	if pk.Mode == 0x00 {
		newID = block.Air
	}
	newInfo := block.Get(newID)
	if newInfo == nil {
		p.Enqueue(protocol.MessageServer{PlayerID: player.SelfID, Message: "&cUnknown block."})
		return ""
	}

	existingID, _ := w.GetBlock(x, y, z)
	existingInfo := block.Get(existingID)
	breakPerm := block.Normal
	if existingInfo != nil {
		breakPerm = existingInfo.BreakPerm
	}
	if p.Permission < newInfo.PlacePerm || p.Permission < breakPerm {
		p.Enqueue(protocol.MessageServer{PlayerID: player.SelfID, Message: "&cNot allow to place this block."})
		p.Enqueue(protocol.SetBlockServer{X: pk.X, Y: pk.Y, Z: pk.Z, BlockID: existingID})
		return ""
	}

	idx := w.Index(x, y, z)
	w.QueueUpdate(world.BlockUpdate{Index: idx, NewID: newID})
	if newInfo.NeedsUpdateOnPlace {
		w.ScheduleAwaitingUpdate(idx)
	}
	if newInfo.MayReceiveRandomTicks {
		w.AddRandomTickCandidate(idx)
	}
	return ""
}

// handlePositionOrientation implements spec.md section 4.E's
// PositionOrientation dispatch, upgrading to ExtEntityTeleport for clients
// that negotiated it.
func handlePositionOrientation(host Host, p *player.Player, pk protocol.PositionOrientationClient) {
	host.Lock()
	defer host.Unlock()

	p.X, p.Y, p.Z, p.Yaw, p.Pitch = pk.X, pk.Y, pk.Z, pk.Yaw, pk.Pitch
	for _, other := range host.Players() {
		if other.ExtensionsBitmask&ExtExtEntityPositions != 0 {
			other.Enqueue(protocol.ExtEntityTeleport{EntityID: p.ID, X: p.X, Y: p.Y, Z: p.Z, Yaw: p.Yaw, Pitch: p.Pitch})
		} else {
			other.Enqueue(protocol.SetPositionOrientationServer{PlayerID: p.ID, X: p.X, Y: p.Y, Z: p.Z, Yaw: p.Yaw, Pitch: p.Pitch})
		}
	}
}

// handleMessage implements spec.md section 4.E's Message dispatch: optional
// LongerMessages accumulation, command routing, and 64-byte re-fragmentation
// of broadcast chat.
func handleMessage(host Host, src playerSource, p *player.Player, pk protocol.MessageClient, pending *strings.Builder) {
	if p.ExtensionsBitmask&ExtLongerMessages != 0 && pk.PlayerID != 0 {
		pending.WriteString(strings.TrimRight(pk.Message, " "))
		return
	}

	text := pending.String() + pk.Message
	pending.Reset()
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/") {
		host.Lock()
		lines := command.Dispatch(src, text[1:], host)
		host.Unlock()
		for _, line := range lines {
			p.Enqueue(protocol.MessageServer{PlayerID: player.SelfID, Message: line})
		}
		return
	}

	content := fmt.Sprintf("%s %s", p.Username, text)
	host.Lock()
	for _, fragment := range fragmentChat(content) {
		host.Broadcast(protocol.MessageServer{PlayerID: p.ID, Message: "&f" + fragment})
	}
	host.Unlock()
}

// fragmentChat splits content into pieces of at most chatFragmentLimit
// bytes, breaking at whitespace when possible.
func fragmentChat(content string) []string {
	var out []string
	for len(content) > chatFragmentLimit {
		cut := chatFragmentLimit
		if idx := strings.LastIndexByte(content[:chatFragmentLimit], ' '); idx > 0 {
			cut = idx
		}
		out = append(out, content[:cut])
		content = strings.TrimLeft(content[cut:], " ")
	}
	if content != "" {
		out = append(out, content)
	}
	return out
}

// playerSource adapts a *player.Player to command.Source.
type playerSource struct {
	p *player.Player
}

func (s playerSource) Name() string                   { return s.p.Username }
func (s playerSource) Permission() block.Permission    { return s.p.Permission }
func (s playerSource) AsPlayer() (*player.Player, bool) { return s.p, true }
