package protocol

import (
	"bytes"
	"testing"
)

func TestSizeForIDKnownAndUnknown(t *testing.T) {
	n, ok := SizeForID(IDPlayerIdentification)
	if !ok || n != 130 {
		t.Fatalf("expected size 130 for PlayerIdentification, got %d,%v", n, ok)
	}
	if _, ok := SizeForID(0xfe); ok {
		t.Fatal("expected 0xfe to be unknown")
	}
}

func TestDecodePlayerIdentification(t *testing.T) {
	body := make([]byte, 130)
	putU8(body[0:1], 0x07)
	putString(body[1:65], "alice")
	putString(body[65:129], "secret")
	putU8(body[129:130], ExtensionMagic)

	pk, err := Decode(IDPlayerIdentification, body)
	if err != nil {
		t.Fatal(err)
	}
	id, ok := pk.(PlayerIdentification)
	if !ok {
		t.Fatalf("wrong type: %T", pk)
	}
	if id.ProtocolVersion != 0x07 || id.Username != "alice" || id.VerificationKey != "secret" || id.Magic != ExtensionMagic {
		t.Fatalf("unexpected decode: %+v", id)
	}
}

func TestDecodeUnknownPacket(t *testing.T) {
	_, err := Decode(0xfe, nil)
	if err == nil {
		t.Fatal("expected error for unknown packet id")
	}
}

func TestStringRoundTripStripsPadding(t *testing.T) {
	b := make([]byte, 64)
	putString(b, "hello world")
	if !bytes.HasSuffix(b, []byte("   ")) {
		t.Fatalf("expected trailing space padding, got %q", b)
	}
	if got := getString(b); got != "hello world" {
		t.Fatalf("expected round trip, got %q", got)
	}
}

func TestByteArrayTrimsTrailingZero(t *testing.T) {
	b := make([]byte, 1024)
	putByteArray(b, []byte{1, 2, 3})
	got := getByteArray(b)
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("expected [1 2 3], got %v", got)
	}
}

func TestFixedPointRoundTrip(t *testing.T) {
	b := make([]byte, 2)
	putFixed(b, Fixed(16.5))
	if got := getFixed(b); got != 16.5 {
		t.Fatalf("expected 16.5, got %v", got)
	}
}

func TestSpawnPlayerEchoRewrite(t *testing.T) {
	p := SpawnPlayer{PlayerID: 0, Name: "alice"}
	var hp HasPlayerID = p
	if hp.GetPlayerID() != 0 {
		t.Fatalf("expected id 0, got %d", hp.GetPlayerID())
	}
	rewritten := hp.WithPlayerID(-1)
	spawn, ok := rewritten.(SpawnPlayer)
	if !ok {
		t.Fatalf("expected WithPlayerID to return SpawnPlayer, got %T", rewritten)
	}
	if spawn.PlayerID != -1 {
		t.Fatalf("expected rewritten id -1, got %d", spawn.PlayerID)
	}
	if p.PlayerID != 0 {
		t.Fatalf("expected original packet unchanged, got %d", p.PlayerID)
	}
}

func TestEncodePrependsID(t *testing.T) {
	b := SetBlockServer{X: 1, Y: 2, Z: 3, BlockID: 4}.Encode()
	if b[0] != IDSetBlockServer {
		t.Fatalf("expected leading id byte 0x%02x, got 0x%02x", IDSetBlockServer, b[0])
	}
	if len(b) != 8 {
		t.Fatalf("expected 8 bytes total, got %d", len(b))
	}
}
