package protocol

// ServerPacket is implemented by every packet this server can send. Encode
// returns the full wire frame: the one-byte ID followed by the fixed-size
// body.
type ServerPacket interface {
	PacketID() byte
	Encode() []byte
}

// HasPlayerID is implemented by the subset of server packets that carry a
// player-id field on the wire (SpawnPlayer, server Message,
// SetPositionOrientation, DespawnPlayer, ExtEntityTeleport). The session
// drain path (spec.md section 4.E "Echo rules") uses this small method set
// to rewrite a player's own id to -1 before echoing a packet back to them,
// per the design note in spec.md section 9. Packets are passed around by
// value (they satisfy ServerPacket as values, and queues hold values), so
// both methods have value receivers; WithPlayerID returns the rewritten
// copy rather than mutating in place.
type HasPlayerID interface {
	GetPlayerID() int8
	WithPlayerID(id int8) ServerPacket
}

type ServerIdentification struct {
	ProtocolVersion uint8
	ServerName      string
	MOTD            string
	UserType        uint8
}

func (ServerIdentification) PacketID() byte { return IDServerIdentification }
func (p ServerIdentification) Encode() []byte {
	b := make([]byte, 1+130)
	b[0] = IDServerIdentification
	putU8(b[1:2], p.ProtocolVersion)
	putString(b[2:66], p.ServerName)
	putString(b[66:130], p.MOTD)
	putU8(b[130:131], p.UserType)
	return b
}

type LevelInitialize struct{}

func (LevelInitialize) PacketID() byte   { return IDLevelInitialize }
func (LevelInitialize) Encode() []byte   { return []byte{IDLevelInitialize} }

type LevelDataChunk struct {
	ChunkLength     int16
	Data            []byte // always exactly 1024 bytes once encoded
	PercentComplete uint8
}

func (LevelDataChunk) PacketID() byte { return IDLevelDataChunk }
func (p LevelDataChunk) Encode() []byte {
	b := make([]byte, 1+1027)
	b[0] = IDLevelDataChunk
	putI16(b[1:3], p.ChunkLength)
	putByteArray(b[3:1027], p.Data)
	putU8(b[1027:1028], p.PercentComplete)
	return b
}

type LevelFinalize struct {
	Xs, Ys, Zs int16
}

func (LevelFinalize) PacketID() byte { return IDLevelFinalize }
func (p LevelFinalize) Encode() []byte {
	b := make([]byte, 1+6)
	b[0] = IDLevelFinalize
	putI16(b[1:3], p.Xs)
	putI16(b[3:5], p.Ys)
	putI16(b[5:7], p.Zs)
	return b
}

type SetBlockServer struct {
	X, Y, Z int16
	BlockID uint8
}

func (SetBlockServer) PacketID() byte { return IDSetBlockServer }
func (p SetBlockServer) Encode() []byte {
	b := make([]byte, 1+7)
	b[0] = IDSetBlockServer
	putI16(b[1:3], p.X)
	putI16(b[3:5], p.Y)
	putI16(b[5:7], p.Z)
	putU8(b[7:8], p.BlockID)
	return b
}

type SpawnPlayer struct {
	PlayerID   int8
	Name       string
	X, Y, Z    Fixed
	Yaw, Pitch uint8
}

func (SpawnPlayer) PacketID() byte { return IDSpawnPlayer }
func (p SpawnPlayer) Encode() []byte {
	b := make([]byte, 1+73)
	b[0] = IDSpawnPlayer
	putI8(b[1:2], p.PlayerID)
	putString(b[2:66], p.Name)
	putFixed(b[66:68], p.X)
	putFixed(b[68:70], p.Y)
	putFixed(b[70:72], p.Z)
	putU8(b[72:73], p.Yaw)
	putU8(b[73:74], p.Pitch)
	return b
}

func (p SpawnPlayer) GetPlayerID() int8 { return p.PlayerID }
func (p SpawnPlayer) WithPlayerID(id int8) ServerPacket {
	p.PlayerID = id
	return p
}

type SetPositionOrientationServer struct {
	PlayerID   int8
	X, Y, Z    Fixed
	Yaw, Pitch uint8
}

func (SetPositionOrientationServer) PacketID() byte { return IDSetPositionOrientation }
func (p SetPositionOrientationServer) Encode() []byte {
	b := make([]byte, 1+9)
	b[0] = IDSetPositionOrientation
	putI8(b[1:2], p.PlayerID)
	putFixed(b[2:4], p.X)
	putFixed(b[4:6], p.Y)
	putFixed(b[6:8], p.Z)
	putU8(b[8:9], p.Yaw)
	putU8(b[9:10], p.Pitch)
	return b
}

func (p SetPositionOrientationServer) GetPlayerID() int8 { return p.PlayerID }
func (p SetPositionOrientationServer) WithPlayerID(id int8) ServerPacket {
	p.PlayerID = id
	return p
}

type DespawnPlayer struct {
	PlayerID int8
}

func (DespawnPlayer) PacketID() byte { return IDDespawnPlayer }
func (p DespawnPlayer) Encode() []byte {
	b := make([]byte, 1+1)
	b[0] = IDDespawnPlayer
	putI8(b[1:2], p.PlayerID)
	return b
}

func (p DespawnPlayer) GetPlayerID() int8 { return p.PlayerID }
func (p DespawnPlayer) WithPlayerID(id int8) ServerPacket {
	p.PlayerID = id
	return p
}

type MessageServer struct {
	PlayerID int8
	Message  string
}

func (MessageServer) PacketID() byte { return IDMessageServer }
func (p MessageServer) Encode() []byte {
	b := make([]byte, 1+65)
	b[0] = IDMessageServer
	putI8(b[1:2], p.PlayerID)
	putString(b[2:66], p.Message)
	return b
}

func (p MessageServer) GetPlayerID() int8 { return p.PlayerID }
func (p MessageServer) WithPlayerID(id int8) ServerPacket {
	p.PlayerID = id
	return p
}

type DisconnectPlayer struct {
	Reason string
}

func (DisconnectPlayer) PacketID() byte { return IDDisconnectPlayer }
func (p DisconnectPlayer) Encode() []byte {
	b := make([]byte, 1+64)
	b[0] = IDDisconnectPlayer
	putString(b[1:65], p.Reason)
	return b
}

type UpdateUserType struct {
	UserType uint8
}

func (UpdateUserType) PacketID() byte { return IDUpdateUserType }
func (p UpdateUserType) Encode() []byte {
	b := make([]byte, 1+1)
	b[0] = IDUpdateUserType
	putU8(b[1:2], p.UserType)
	return b
}

type ExtInfoServer struct {
	AppName        string
	ExtensionCount int16
}

func (ExtInfoServer) PacketID() byte { return IDExtInfo }
func (p ExtInfoServer) Encode() []byte {
	b := make([]byte, 1+66)
	b[0] = IDExtInfo
	putString(b[1:65], p.AppName)
	putI16(b[65:67], p.ExtensionCount)
	return b
}

type ExtEntryServer struct {
	ExtName string
	Version int32
}

func (ExtEntryServer) PacketID() byte { return IDExtEntry }
func (p ExtEntryServer) Encode() []byte {
	b := make([]byte, 1+68)
	b[0] = IDExtEntry
	putString(b[1:65], p.ExtName)
	putI32(b[65:69], p.Version)
	return b
}

type CustomBlockSupportLevelServer struct {
	Level uint8
}

func (CustomBlockSupportLevelServer) PacketID() byte { return IDCustomBlockSupport }
func (p CustomBlockSupportLevelServer) Encode() []byte {
	b := make([]byte, 1+1)
	b[0] = IDCustomBlockSupport
	putU8(b[1:2], p.Level)
	return b
}

type SetInventoryOrder struct {
	Order   uint8
	BlockID uint8
}

func (SetInventoryOrder) PacketID() byte { return IDSetInventoryOrder }
func (p SetInventoryOrder) Encode() []byte {
	b := make([]byte, 1+2)
	b[0] = IDSetInventoryOrder
	putU8(b[1:2], p.Order)
	putU8(b[2:3], p.BlockID)
	return b
}

type EnvWeatherType struct {
	WeatherType uint8
}

func (EnvWeatherType) PacketID() byte { return IDEnvWeatherType }
func (p EnvWeatherType) Encode() []byte {
	b := make([]byte, 1+1)
	b[0] = IDEnvWeatherType
	putU8(b[1:2], p.WeatherType)
	return b
}

type ExtEntityTeleport struct {
	EntityID   int8
	Flags      uint8
	X, Y, Z    Fixed
	Yaw, Pitch uint8
}

func (ExtEntityTeleport) PacketID() byte { return IDExtEntityTeleport }
func (p ExtEntityTeleport) Encode() []byte {
	b := make([]byte, 1+10)
	b[0] = IDExtEntityTeleport
	putI8(b[1:2], p.EntityID)
	putU8(b[2:3], p.Flags)
	putFixed(b[3:5], p.X)
	putFixed(b[5:7], p.Y)
	putFixed(b[7:9], p.Z)
	putU8(b[9:10], p.Yaw)
	putU8(b[10:11], p.Pitch)
	return b
}

func (p ExtEntityTeleport) GetPlayerID() int8 { return p.EntityID }
func (p ExtEntityTeleport) WithPlayerID(id int8) ServerPacket {
	p.EntityID = id
	return p
}
