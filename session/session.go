// Package session implements the per-connection protocol state machine
// (spec.md section 4.E): AwaitIdent -> NegotiateExtensions -> Play -> Closed.
// Grounded on the teacher's per-connection handler pattern (dragonfly spawns
// one goroutine per net.Conn with explicit state carried on the goroutine's
// stack rather than a struct of callbacks); adapted here to the plain
// blocking-read loop Classic's frame-per-packet wire format wants instead of
// dragonfly's packet-queue/Session type.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/google/uuid"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/player"
	"github.com/blockvale/classic/protocol"
)

const protocolVersion uint8 = 0x07

// Run drives one connection end to end: handshake, extension negotiation,
// play, and cleanup. It never returns until the connection ends, by error,
// EOF, or kick. Intended to be started on its own goroutine per spec.md
// section 5's "one session task per connection".
func Run(ctx context.Context, nc net.Conn, host Host, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	c := newConn(nc)
	connID := uuid.New()
	log = log.With("conn", connID, "remote", nc.RemoteAddr().String())

	defer c.close()

	ident, err := c.readExpected(protocol.IDPlayerIdentification)
	if err != nil {
		log.Debug("handshake failed", "err", err)
		return
	}
	pid := ident.(protocol.PlayerIdentification)

	if pid.ProtocolVersion != protocolVersion {
		sendClose(c, "Unknown protocol version, please use a Classic 0.30 client.")
		return
	}

	perm, authErr := authenticate(host, pid.Username, pid.VerificationKey)
	if authErr != nil {
		sendClose(c, authErr.Error())
		return
	}

	host.Lock()
	duplicate := host.IsUsernameConnected(pid.Username)
	host.Unlock()
	if duplicate {
		sendClose(c, "Player with username already connected!")
		return
	}

	host.Lock()
	id := host.NextPlayerID()
	persisted, hadPersisted := host.LookupPersisted(pid.Username)
	host.Unlock()

	p := &player.Player{
		ID:         id,
		Username:   pid.Username,
		Addr:       nc.RemoteAddr(),
		ConnID:     connID,
		Permission: perm,
	}
	if hadPersisted {
		p.SavableData = *persisted
		if persisted.Permission > perm {
			p.Permission = persisted.Permission
		}
	}

	var bitmask uint64
	var customBlocksLevel uint8
	if pid.Magic == protocol.ExtensionMagic {
		bitmask, customBlocksLevel, err = negotiateExtensions(c)
		if err != nil {
			log.Debug("extension negotiation failed", "err", err)
			return
		}
	}
	p.ExtensionsBitmask = bitmask
	p.CustomBlocksSupportLevel = customBlocksLevel

	if err := initializePlay(c, host, p, hadPersisted); err != nil {
		log.Debug("play initialization failed", "err", err)
		host.Lock()
		host.ReleasePlayerID(p.ID)
		host.Unlock()
		return
	}

	host.Lock()
	host.Join(p)
	host.Unlock()
	log = log.With("username", p.Username, "id", p.ID)
	log.Info("player joined")

	broadcastJoin(host, p)

	runPlay(ctx, c, host, p, log)

	host.Lock()
	host.Leave(p)
	host.ReleasePlayerID(p.ID)
	data := p.SavableData
	host.PersistOnLeave(p.Username, &data)
	host.Unlock()

	broadcastLeave(host, p)
	log.Info("player left")
}

// authenticate implements spec.md section 4.E's auth rules against the
// protection-mode tagged union, plus the allow-once bypass (supplemented
// feature 2).
func authenticate(host Host, username, key string) (block.Permission, error) {
	host.Lock()
	allowPassword, allowed := host.ConsumeAllowEntry(username)
	cfg := host.ConfigValue()
	configuredPassword, hasConfigured := host.PasswordFor(username)
	host.Unlock()

	if allowed {
		if allowPassword != "" && allowPassword != key {
			return 0, errAuth
		}
		return cfg.PermissionFor(username), nil
	}

	switch cfg.Protection.Kind {
	case "password":
		if cfg.Protection.Password != key {
			return 0, errAuth
		}
	case "passwords_by_user":
		if !hasConfigured || configuredPassword != key {
			return 0, errAuth
		}
	}
	return cfg.PermissionFor(username), nil
}

var errAuth = errors.New("Incorrect password!")

func sendClose(c *conn, reason string) {
	_ = c.send(protocol.DisconnectPlayer{Reason: reason})
}
