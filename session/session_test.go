package session_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/blockvale/classic/config"
	"github.com/blockvale/classic/hub"
	"github.com/blockvale/classic/protocol"
	"github.com/blockvale/classic/session"
	"github.com/blockvale/classic/world"
)

// fixedWidthString pads or truncates s to exactly n bytes with trailing
// spaces, matching the wire's 64-byte ASCII string fields.
func fixedWidthString(s string, n int) []byte {
	b := bytes.Repeat([]byte{' '}, n)
	copy(b, s)
	return b
}

// playerIdentificationFrame builds the raw client->server frame for
// PlayerIdentification, since the protocol package only exposes Decode for
// client packets (the server never needs to encode what it receives).
func playerIdentificationFrame(version byte, username, key string, magic byte) []byte {
	buf := make([]byte, 0, 131)
	buf = append(buf, protocol.IDPlayerIdentification, version)
	buf = append(buf, fixedWidthString(username, 64)...)
	buf = append(buf, fixedWidthString(key, 64)...)
	buf = append(buf, magic)
	return buf
}

func readExactly(t *testing.T, r io.Reader, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		t.Fatalf("read %d bytes: %v", n, err)
	}
	return b
}

// TestHandshakeNoExtensions is scenario 1 (spec.md section 8): a client with
// no CPE support joins a 2x2x2 world and receives the exact play-init frame
// sequence, with its own SpawnPlayer echoed back with id -1.
func TestHandshakeNoExtensions(t *testing.T) {
	w, err := world.New(2, 2, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	h := hub.New(config.Default(), w, nil, "", nil, nil)

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		session.Run(ctx, serverConn, h, nil)
		close(done)
	}()

	if _, err := clientConn.Write(playerIdentificationFrame(0x07, "alice", "", 0)); err != nil {
		t.Fatalf("write identification: %v", err)
	}

	// ServerIdentification: id + version + name(64) + motd(64) + userType.
	ident := readExactly(t, clientConn, 1+130)
	if ident[0] != protocol.IDServerIdentification {
		t.Fatalf("expected ServerIdentification id 0x%02x, got 0x%02x", protocol.IDServerIdentification, ident[0])
	}
	if ident[1] != 0x07 {
		t.Fatalf("expected protocol version 0x07, got 0x%02x", ident[1])
	}
	if ident[130] != 0x00 {
		t.Fatalf("expected Normal userType, got 0x%02x", ident[130])
	}

	levelInit := readExactly(t, clientConn, 1)
	if levelInit[0] != protocol.IDLevelInitialize {
		t.Fatalf("expected LevelInitialize, got 0x%02x", levelInit[0])
	}

	chunk := readExactly(t, clientConn, 1+1027)
	if chunk[0] != protocol.IDLevelDataChunk {
		t.Fatalf("expected LevelDataChunk, got 0x%02x", chunk[0])
	}
	if percent := chunk[1027]; percent != 100 {
		t.Fatalf("expected single chunk to report 100%%, got %d", percent)
	}

	finalize := readExactly(t, clientConn, 1+6)
	if finalize[0] != protocol.IDLevelFinalize {
		t.Fatalf("expected LevelFinalize, got 0x%02x", finalize[0])
	}
	if finalize[1] != 0 || finalize[2] != 2 || finalize[3] != 0 || finalize[4] != 2 || finalize[5] != 0 || finalize[6] != 2 {
		t.Fatalf("expected dimensions (2,2,2), got % x", finalize[1:7])
	}

	userType := readExactly(t, clientConn, 1+1)
	if userType[0] != protocol.IDUpdateUserType {
		t.Fatalf("expected UpdateUserType, got 0x%02x", userType[0])
	}

	spawn := readExactly(t, clientConn, 1+73)
	if spawn[0] != protocol.IDSpawnPlayer {
		t.Fatalf("expected SpawnPlayer, got 0x%02x", spawn[0])
	}
	if int8(spawn[1]) != -1 {
		t.Fatalf("expected own SpawnPlayer echoed with id -1, got %d", int8(spawn[1]))
	}
	if name := bytes.TrimRight(spawn[2:66], " "); string(name) != "alice" {
		t.Fatalf("expected name alice, got %q", name)
	}

	joinMsg := readExactly(t, clientConn, 1+65)
	if joinMsg[0] != protocol.IDMessageServer {
		t.Fatalf("expected join MessageServer, got 0x%02x", joinMsg[0])
	}

	clientConn.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("session.Run did not return after the connection closed")
	}
}
