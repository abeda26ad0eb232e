package session

import (
	"bufio"
	"fmt"
	"io"
	"net"

	"github.com/blockvale/classic/protocol"
)

// conn wraps the raw TCP connection with buffered I/O and the codec,
// matching spec.md section 5's suspension-point model: reads and writes are
// the only blocking points, never held across a lock acquisition.
type conn struct {
	nc net.Conn
	r  *bufio.Reader
	w  *bufio.Writer
}

func newConn(nc net.Conn) *conn {
	return &conn{nc: nc, r: bufio.NewReader(nc), w: bufio.NewWriter(nc)}
}

// readPacket blocks until exactly one full frame has arrived and decodes it.
func (c *conn) readPacket() (protocol.ClientPacket, error) {
	idByte, err := c.r.ReadByte()
	if err != nil {
		return nil, err
	}
	size, ok := protocol.SizeForID(idByte)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", protocol.ErrUnknownPacket, idByte)
	}
	body := make([]byte, size)
	if _, err := io.ReadFull(c.r, body); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: 0x%02x: %w", protocol.ErrMalformedFrame, idByte, err)
		}
		return nil, err
	}
	return protocol.Decode(idByte, body)
}

// readExpected reads one packet and requires it to carry the given ID,
// used during the handshake and extension negotiation where the protocol
// demands a specific packet next.
func (c *conn) readExpected(id byte) (protocol.ClientPacket, error) {
	pk, err := c.readPacket()
	if err != nil {
		return nil, err
	}
	got := idOf(pk)
	if got != id {
		return nil, fmt.Errorf("%w: expected 0x%02x, got 0x%02x", protocol.ErrUnknownPacket, id, got)
	}
	return pk, nil
}

// idOf recovers the wire ID of a decoded client packet for readExpected's
// sanity check.
func idOf(pk protocol.ClientPacket) byte {
	switch pk.(type) {
	case protocol.PlayerIdentification:
		return protocol.IDPlayerIdentification
	case protocol.SetBlockClient:
		return protocol.IDSetBlockClient
	case protocol.PositionOrientationClient:
		return protocol.IDPositionOrientation
	case protocol.MessageClient:
		return protocol.IDMessage
	case protocol.ExtInfoClient:
		return protocol.IDExtInfo
	case protocol.ExtEntryClient:
		return protocol.IDExtEntry
	case protocol.CustomBlockSupportLevelClient:
		return protocol.IDCustomBlockSupport
	default:
		return 0xff
	}
}

// send encodes and writes one server packet, flushing immediately. Classic
// 0.30 has no batching framing, so each packet is its own write.
func (c *conn) send(pk protocol.ServerPacket) error {
	if _, err := c.w.Write(pk.Encode()); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *conn) sendRaw(b []byte) error {
	if _, err := c.w.Write(b); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *conn) close() error { return c.nc.Close() }
