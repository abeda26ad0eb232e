package protocol

// Client packet IDs (spec.md section 4.A).
const (
	IDPlayerIdentification byte = 0x00
	IDSetBlockClient       byte = 0x05
	IDPositionOrientation  byte = 0x08
	IDMessage              byte = 0x0d
	IDExtInfo              byte = 0x10
	IDExtEntry             byte = 0x11
	IDCustomBlockSupport   byte = 0x13
)

// Server packet IDs.
const (
	IDServerIdentification    byte = 0x00
	IDPing                    byte = 0x01
	IDLevelInitialize         byte = 0x02
	IDLevelDataChunk          byte = 0x03
	IDLevelFinalize           byte = 0x04
	IDSetBlockServer          byte = 0x06
	IDSpawnPlayer             byte = 0x07
	IDSetPositionOrientation  byte = 0x08
	IDDespawnPlayer           byte = 0x0c
	IDMessageServer           byte = 0x0d
	IDDisconnectPlayer        byte = 0x0e
	IDUpdateUserType          byte = 0x0f
	IDSetInventoryOrder       byte = 0x14
	IDEnvWeatherType          byte = 0x1f
	IDExtEntityTeleport       byte = 0x2c
)

// sizes holds the fixed body length (excluding the one-byte ID) for every
// known packet ID in either direction. IDs that are shared between client and
// server (0x00, 0x08, 0x0d, 0x10, 0x11, 0x13) have identical layouts in both
// directions so one entry serves both.
var sizes = map[byte]int{
	IDPlayerIdentification: 130, // 1 (proto) + 64 (username) + 64 (key) + 1 (magic)
	IDSetBlockClient:       8,   // x,y,z (2 each) + mode (1) + block (1)
	IDPositionOrientation:  9,   // playerId (1) + x,y,z (2 each) + yaw + pitch
	IDMessage:              65,  // playerId (1) + message (64)
	IDExtInfo:              66,  // appName (64) + extensionCount (2)
	IDExtEntry:             68,  // extName (64) + version (4)
	IDCustomBlockSupport:   1,

	IDPing:                   0,
	IDLevelInitialize:        0,
	IDLevelDataChunk:         1027, // chunkLength (2) + data (1024) + percent (1)
	IDLevelFinalize:          6,    // xs, ys, zs (2 each)
	IDSetBlockServer:         7,    // x,y,z (2 each) + block (1)
	IDSpawnPlayer:            73,   // playerId (1) + name (64) + x,y,z (2 each) + yaw + pitch
	IDDespawnPlayer:          1,
	IDDisconnectPlayer:       64,
	IDUpdateUserType:         1,
	IDSetInventoryOrder:      2,
	IDEnvWeatherType:         1,
	IDExtEntityTeleport:      10, // entityId (1) + flags (1) + x,y,z (2 each) + yaw + pitch
}

// SizeForID returns the declared fixed body length for id, and false if the
// ID is unknown to the codec.
func SizeForID(id byte) (int, bool) {
	n, ok := sizes[id]
	return n, ok
}
