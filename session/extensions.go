package session

import (
	"github.com/segmentio/fasthash/fnv1a"

	"github.com/blockvale/classic/protocol"
)

// extensionBit is a single bit position in a connection's negotiated
// extensions bitmask.
type extensionBit = uint64

// Known CPE extensions this server negotiates, named bits set in
// Player.ExtensionsBitmask once NegotiateExtensions completes. Recognized by
// (name, version) per spec.md section 4.E. Bits are assigned in declaration
// order; fnv1a hashes each (name, version) pair to a uint64 key for the
// offered-set lookup (see extensionKey), the way the teacher reaches for a
// non-crypto hash (fasthash) for
// quick equality/set-membership duty rather than reflection or a big
// switch-on-string (server's own fasthash dependency, general-purpose fast
// hashing, has no single canonical call site in the teacher -- wired here as
// the concrete home SPEC_FULL.md's DOMAIN STACK table names).
const (
	ExtCustomBlocks extensionBit = 1 << iota
	ExtEnvWeatherType
	ExtLongerMessages
	ExtExtEntityPositions
	ExtInventoryOrder
)

// supportedExtension is one entry of the extensions this server offers
// during NegotiateExtensions.
type supportedExtension struct {
	Name    string
	Version int32
	Bit     extensionBit
}

var serverExtensions = []supportedExtension{
	{Name: "CustomBlocks", Version: 1, Bit: ExtCustomBlocks},
	{Name: "EnvWeatherType", Version: 1, Bit: ExtEnvWeatherType},
	{Name: "LongerMessages", Version: 1, Bit: ExtLongerMessages},
	{Name: "ExtEntityTeleport", Version: 1, Bit: ExtExtEntityPositions},
	{Name: "InventoryOrder", Version: 1, Bit: ExtInventoryOrder},
}

// extensionKey hashes (name, version) into a single uint64 for fast equality
// comparisons when intersecting the client's offered set against
// serverExtensions.
func extensionKey(name string, version int32) uint64 {
	h := fnv1a.HashString64(name)
	return fnv1a.AddUint64(h, uint64(version))
}

// negotiateExtensions runs spec.md section 4.E's NegotiateExtensions state:
// the server sends ExtInfo then one ExtEntry per supported extension, then
// reads the client's ExtInfo + N ExtEntry packets, intersecting by
// (name, version) equality into a bitmask.
func negotiateExtensions(c *conn) (bitmask uint64, customBlocksLevel uint8, err error) {
	if err := c.send(protocol.ExtInfoServer{
		AppName:        serverAppName,
		ExtensionCount: int16(len(serverExtensions)),
	}); err != nil {
		return 0, 0, err
	}
	for _, ext := range serverExtensions {
		if err := c.send(protocol.ExtEntryServer{ExtName: ext.Name, Version: ext.Version}); err != nil {
			return 0, 0, err
		}
	}

	clientInfoPk, err := c.readExpected(protocol.IDExtInfo)
	if err != nil {
		return 0, 0, err
	}
	clientInfo := clientInfoPk.(protocol.ExtInfoClient)

	offered := make(map[uint64]bool, clientInfo.ExtensionCount)
	for i := int16(0); i < clientInfo.ExtensionCount; i++ {
		pk, err := c.readExpected(protocol.IDExtEntry)
		if err != nil {
			return 0, 0, err
		}
		entry := pk.(protocol.ExtEntryClient)
		offered[extensionKey(entry.ExtName, entry.Version)] = true
	}

	for _, ext := range serverExtensions {
		if offered[extensionKey(ext.Name, ext.Version)] {
			bitmask |= ext.Bit
		}
	}

	if bitmask&ExtCustomBlocks != 0 {
		const serverCustomBlocksLevel uint8 = 1
		if err := c.send(protocol.CustomBlockSupportLevelServer{Level: serverCustomBlocksLevel}); err != nil {
			return 0, 0, err
		}
		pk, err := c.readExpected(protocol.IDCustomBlockSupport)
		if err != nil {
			return 0, 0, err
		}
		clientLevel := pk.(protocol.CustomBlockSupportLevelClient).Level
		customBlocksLevel = clientLevel
		if serverCustomBlocksLevel < customBlocksLevel {
			customBlocksLevel = serverCustomBlocksLevel
		}
	}
	return bitmask, customBlocksLevel, nil
}

const serverAppName = "blockvale-classic"
