// Package protocol implements the Classic 0.30 (plus CPE extension
// negotiation) wire codec: fixed-size binary frames, one byte ID followed by
// an a-priori known body length. See spec.md section 4.A.
//
// Primitive encodings are implemented as small explicit functions rather than
// through reflection, the way dragonfly favors explicit encode/decode code
// over reflection on its hot paths (server/block, server/world).
package protocol

import (
	"encoding/binary"
	"errors"

	"golang.org/x/text/encoding/charmap"
)

// ErrMalformedFrame is returned when a buffer is shorter than a packet's
// declared fixed size.
var ErrMalformedFrame = errors.New("protocol: malformed frame")

// ErrUnknownPacket is returned when an ID has no known declared size.
var ErrUnknownPacket = errors.New("protocol: unknown packet id")

const (
	stringLen = 64
	arrayLen  = 1024
)

// asciiEncoder transcodes outgoing strings to single-byte Windows-1252
// before they are padded; x/text is the teacher's only text-encoding
// dependency. putString then replaces every byte outside ASCII with '?',
// which is what a chat relay wants: never drop the whole packet over one
// bad rune.
var asciiEncoder = charmap.Windows1252.NewEncoder()

func putU8(b []byte, v uint8)   { b[0] = v }
func putI8(b []byte, v int8)    { b[0] = byte(v) }
func getU8(b []byte) uint8      { return b[0] }
func getI8(b []byte) int8       { return int8(b[0]) }

func putU16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }
func getU16(b []byte) uint16    { return binary.BigEndian.Uint16(b) }
func putI16(b []byte, v int16)  { binary.BigEndian.PutUint16(b, uint16(v)) }
func getI16(b []byte) int16     { return int16(binary.BigEndian.Uint16(b)) }

func putI32(b []byte, v int32) { binary.BigEndian.PutUint32(b, uint32(v)) }
func getI32(b []byte) int32    { return int32(binary.BigEndian.Uint32(b)) }

// Fixed is a 5-fractional-bit fixed point coordinate, encoded on the wire as
// a big-endian signed 16-bit integer equal to value*32.
type Fixed float64

func putFixed(b []byte, v Fixed) { putI16(b, int16(v*32)) }
func getFixed(b []byte) Fixed    { return Fixed(getI16(b)) / 32 }

// putString writes s into exactly 64 bytes, right-padded with 0x20. Runes
// outside ASCII are sanitized via asciiEncoder first, and any byte still
// outside ASCII becomes '?', so the field never carries a partial rune.
func putString(b []byte, s string) {
	clean, err := asciiEncoder.String(s)
	if err != nil {
		clean = s
	}
	n := copy(b[:stringLen], clean)
	for i := 0; i < n; i++ {
		if b[i] >= 0x80 {
			b[i] = '?'
		}
	}
	for i := n; i < stringLen; i++ {
		b[i] = ' '
	}
}

// getString reads a 64-byte ASCII field, stripping the trailing whitespace
// pad.
func getString(b []byte) string {
	end := stringLen
	for end > 0 && (b[end-1] == ' ' || b[end-1] == 0) {
		end--
	}
	return string(b[:end])
}

// putByteArray writes data into exactly 1024 bytes, zero-padding the rest.
// Used only for level-chunk frames.
func putByteArray(b []byte, data []byte) {
	n := copy(b[:arrayLen], data)
	for i := n; i < arrayLen; i++ {
		b[i] = 0
	}
}

// getByteArray returns the run up to the first trailing 0x00 byte.
func getByteArray(b []byte) []byte {
	end := arrayLen
	for end > 0 && b[end-1] == 0 {
		end--
	}
	out := make([]byte, end)
	copy(out, b[:end])
	return out
}
