package pad

import (
	"net"
	"testing"
	"time"
)

// fakeDaemon accepts one feeder connection and answers the handshake.
func fakeDaemon(t *testing.T, ackVersion byte) (addr string, received chan []byte) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	received = make(chan []byte, 16)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		hello := make([]byte, 2)
		if _, err := conn.Read(hello); err != nil {
			return
		}
		if _, err := conn.Write([]byte{ackVersion}); err != nil {
			return
		}
		for {
			buf := make([]byte, 64)
			n, err := conn.Read(buf)
			if err != nil {
				return
			}
			received <- buf[:n]
		}
	}()

	return ln.Addr().String(), received
}

func TestFeederConnectAndSend(t *testing.T) {
	addr, received := fakeDaemon(t, protocolVersion)

	f := NewFeeder(addr)
	if err := f.Connect(); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer f.Close()

	if !f.Connected() {
		t.Fatal("feeder not marked connected after handshake")
	}

	r := FrameReport{Buttons: 0x0001, LX: 100}
	if err := f.SendFrame(r); err != nil {
		t.Fatalf("SendFrame failed: %v", err)
	}

	select {
	case msg := <-received:
		if len(msg) != 13 || msg[0] != MsgFrame {
			t.Errorf("daemon received % x, want a 13-byte frame message", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("daemon never received the frame")
	}
}

func TestFeederRejectsVersionMismatch(t *testing.T) {
	addr, _ := fakeDaemon(t, protocolVersion+1)

	f := NewFeeder(addr)
	if err := f.Connect(); err == nil {
		f.Close()
		t.Fatal("Connect succeeded against a mismatched daemon")
	}
	if f.Connected() {
		t.Error("feeder marked connected after failed handshake")
	}
}
