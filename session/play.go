package session

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/gzip"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/player"
	"github.com/blockvale/classic/protocol"
	"github.com/blockvale/classic/world"
)

const (
	serverName = "blockvale classic server"
	serverMOTD = "a Classic 0.30 server core"
)

// initializePlay runs spec.md section 4.E's play-initialization steps 1-6
// and leaves p positioned and ready to join the roster. Of step 5 it only
// sends the other players' SpawnPlayer frames; p's own SpawnPlayer and the
// join message are broadcast by broadcastJoin once p is in the roster.
func initializePlay(c *conn, host Host, p *player.Player, hadPersisted bool) error {
	host.Lock()
	w := host.WorldValue()
	xs, ys, zs := w.Xs, w.Ys, w.Zs
	blocks := make([]byte, len(w.Blocks()))
	copy(blocks, w.Blocks())
	weather := w.Weather
	defaultSpawn := w.DefaultSpawn
	others := host.Players()
	host.Unlock()

	if err := c.send(protocol.ServerIdentification{
		ProtocolVersion: protocolVersion,
		ServerName:      serverName,
		MOTD:            serverMOTD,
		UserType:        uint8(p.Permission),
	}); err != nil {
		return err
	}

	payload, err := buildLevelPayload(xs, ys, zs, blocks, p.CustomBlocksSupportLevel)
	if err != nil {
		return err
	}
	if err := c.send(protocol.LevelInitialize{}); err != nil {
		return err
	}
	if err := sendLevelChunks(c, payload); err != nil {
		return err
	}
	if err := c.send(protocol.LevelFinalize{Xs: int16(xs), Ys: int16(ys), Zs: int16(zs)}); err != nil {
		return err
	}

	if p.ExtensionsBitmask&ExtEnvWeatherType != 0 {
		if err := c.send(protocol.EnvWeatherType{WeatherType: uint8(weather)}); err != nil {
			return err
		}
	}

	setSpawn(p, hadPersisted, defaultSpawn, ys)

	for _, other := range others {
		if err := c.send(protocol.SpawnPlayer{
			PlayerID: other.ID, Name: other.Username,
			X: other.X, Y: other.Y, Z: other.Z, Yaw: other.Yaw, Pitch: other.Pitch,
		}); err != nil {
			return err
		}
	}

	if err := c.send(protocol.UpdateUserType{UserType: uint8(p.Permission)}); err != nil {
		return err
	}
	if p.ExtensionsBitmask&ExtInventoryOrder != 0 {
		if err := sendInventoryOrder(c, p.CustomBlocksSupportLevel, p.Permission); err != nil {
			return err
		}
	}
	return nil
}

// setSpawn applies spec.md section 9's hardcoded default, a configured
// world-level override, or a persisted per-player spawn override --
// "open question -- spawn default Y": preserved as-is, not a bug to fix.
func setSpawn(p *player.Player, hadPersisted bool, defaultSpawn *world.SpawnPoint, ys int) {
	if hadPersisted && p.SavableData.SpawnOverride != nil {
		s := p.SavableData.SpawnOverride
		p.X, p.Y, p.Z, p.Yaw, p.Pitch = s.X, s.Y, s.Z, s.Yaw, s.Pitch
		return
	}
	if defaultSpawn != nil {
		p.X, p.Y, p.Z, p.Yaw, p.Pitch = defaultSpawn.X, defaultSpawn.Y, defaultSpawn.Z, defaultSpawn.Yaw, defaultSpawn.Pitch
		return
	}
	p.X, p.Y, p.Z = 16.5, protocol.Fixed(ys)/2+2, 16.5
	p.Yaw, p.Pitch = 0, 0
}

// buildLevelPayload implements spec.md section 4.E step 2: a 4-byte
// big-endian volume header followed by the (possibly fallback-substituted)
// block array, gzipped at best compression.
func buildLevelPayload(xs, ys, zs int, blocks []byte, customBlocksLevel uint8) ([]byte, error) {
	if customBlocksLevel < 1 {
		for i, id := range blocks {
			if id <= 49 {
				continue
			}
			info := block.Get(id)
			fb := byte(0)
			if info != nil && info.HasFallback {
				fb = info.FallbackID
			}
			blocks[i] = fb
		}
	}

	var raw bytes.Buffer
	var volume [4]byte
	binary.BigEndian.PutUint32(volume[:], uint32(xs*ys*zs))
	raw.Write(volume[:])
	raw.Write(blocks)

	var gz bytes.Buffer
	w, err := gzip.NewWriterLevel(&gz, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(raw.Bytes()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return gz.Bytes(), nil
}

// sendLevelChunks splits payload into 1024-byte LevelDataChunk frames,
// zero-padding the final (possibly shorter) chunk.
func sendLevelChunks(c *conn, payload []byte) error {
	total := len(payload)
	sent := 0
	for sent < total || total == 0 {
		end := sent + 1024
		if end > total {
			end = total
		}
		chunk := payload[sent:end]
		percent := uint8(0)
		if total > 0 {
			percent = uint8(end * 100 / total)
		}
		if err := c.send(protocol.LevelDataChunk{
			ChunkLength:     int16(len(chunk)),
			Data:            chunk,
			PercentComplete: percent,
		}); err != nil {
			return err
		}
		sent = end
		if total == 0 {
			break
		}
	}
	return nil
}

// sendInventoryOrder sends one SetInventoryOrder entry per catalog ID
// (spec.md section 4.E step 6), capped at 49 without negotiated custom
// blocks, zeroing ids missing from the catalog and ids whose PlacePerm is
// above perm.
func sendInventoryOrder(c *conn, customBlocksLevel uint8, perm block.Permission) error {
	limit := byte(49)
	if customBlocksLevel >= 1 {
		limit = 255
	}
	order := uint8(0)
	for id := byte(0); ; id++ {
		if id > limit {
			break
		}
		info := block.Get(id)
		blockID := id
		if info == nil || perm < info.PlacePerm {
			blockID = 0
		}
		if err := c.send(protocol.SetInventoryOrder{Order: order, BlockID: blockID}); err != nil {
			return err
		}
		order++
		if id == 255 {
			break
		}
	}
	return nil
}

func broadcastJoin(host Host, p *player.Player) {
	host.Lock()
	host.Broadcast(protocol.SpawnPlayer{
		PlayerID: p.ID, Name: p.Username,
		X: p.X, Y: p.Y, Z: p.Z, Yaw: p.Yaw, Pitch: p.Pitch,
	})
	host.Broadcast(protocol.MessageServer{PlayerID: -1, Message: fmt.Sprintf("&e%s has joined the server.", p.Username)})
	host.Unlock()
}

func broadcastLeave(host Host, p *player.Player) {
	host.Lock()
	host.Broadcast(protocol.DespawnPlayer{PlayerID: p.ID})
	host.Broadcast(protocol.MessageServer{PlayerID: -1, Message: fmt.Sprintf("&e%s has left the server.", p.Username)})
	host.Unlock()
}
