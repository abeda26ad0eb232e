package protocol

import "fmt"

// ExtensionMagic is the "unused" byte in PlayerIdentification that, when set
// to this value, signals CPE extension-negotiation support (glossary:
// "Extension magic").
const ExtensionMagic = 0x42

// ClientPacket is implemented by every decoded client-bound... client-sent
// packet. It carries no behaviour; it exists so decode can return one
// concrete type per ID through a common interface.
type ClientPacket interface {
	clientPacket()
}

type PlayerIdentification struct {
	ProtocolVersion uint8
	Username        string
	VerificationKey string
	Magic           uint8
}

func (PlayerIdentification) clientPacket() {}

type SetBlockClient struct {
	X, Y, Z int16
	Mode    uint8 // 0x00 = destroy, 0x01 = place
	BlockID uint8
}

func (SetBlockClient) clientPacket() {}

type PositionOrientationClient struct {
	PlayerID   int8
	X, Y, Z    Fixed
	Yaw, Pitch uint8
}

func (PositionOrientationClient) clientPacket() {}

type MessageClient struct {
	PlayerID uint8 // unused by the client, always 0xff by convention
	Message  string
}

func (MessageClient) clientPacket() {}

type ExtInfoClient struct {
	AppName        string
	ExtensionCount int16
}

func (ExtInfoClient) clientPacket() {}

type ExtEntryClient struct {
	ExtName string
	Version int32
}

func (ExtEntryClient) clientPacket() {}

type CustomBlockSupportLevelClient struct {
	Level uint8
}

func (CustomBlockSupportLevelClient) clientPacket() {}

// Decode parses the fixed-size body (not including the leading ID byte) for
// id into a ClientPacket. body must already be exactly the declared size for
// id; Decode does not re-validate length.
func Decode(id byte, body []byte) (ClientPacket, error) {
	switch id {
	case IDPlayerIdentification:
		return PlayerIdentification{
			ProtocolVersion: getU8(body[0:1]),
			Username:        getString(body[1:65]),
			VerificationKey: getString(body[65:129]),
			Magic:           getU8(body[129:130]),
		}, nil
	case IDSetBlockClient:
		return SetBlockClient{
			X:       getI16(body[0:2]),
			Y:       getI16(body[2:4]),
			Z:       getI16(body[4:6]),
			Mode:    getU8(body[6:7]),
			BlockID: getU8(body[7:8]),
		}, nil
	case IDPositionOrientation:
		return PositionOrientationClient{
			PlayerID: getI8(body[0:1]),
			X:        getFixed(body[1:3]),
			Y:        getFixed(body[3:5]),
			Z:        getFixed(body[5:7]),
			Yaw:      getU8(body[7:8]),
			Pitch:    getU8(body[8:9]),
		}, nil
	case IDMessage:
		return MessageClient{
			PlayerID: getU8(body[0:1]),
			Message:  getString(body[1:65]),
		}, nil
	case IDExtInfo:
		return ExtInfoClient{
			AppName:        getString(body[0:64]),
			ExtensionCount: getI16(body[64:66]),
		}, nil
	case IDExtEntry:
		return ExtEntryClient{
			ExtName: getString(body[0:64]),
			Version: getI32(body[64:68]),
		}, nil
	case IDCustomBlockSupport:
		return CustomBlockSupportLevelClient{Level: getU8(body[0:1])}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownPacket, id)
	}
}
