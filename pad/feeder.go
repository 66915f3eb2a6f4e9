package pad

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"
)

// Feeder is a Driver that talks to the external virtual-gamepad feeder daemon
// over TCP. The daemon owns the actual OS virtual device; this client only
// ships submitted frames to it.
type Feeder struct {
	addr string

	mu        sync.Mutex
	conn      net.Conn
	connected bool
}

// NewFeeder creates a feeder client for the given address. Connect must be
// called before frames can be sent.
func NewFeeder(addr string) *Feeder {
	return &Feeder{addr: addr}
}

// Connect dials the feeder daemon and performs the handshake.
func (f *Feeder) Connect() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.connected {
		return nil
	}

	conn, err := f.connectWithRetry(5, 300*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to connect to feeder at %s: %w", f.addr, err)
	}

	// Handshake: send hello, expect a single ack byte echoing the version
	if _, err := conn.Write(SerializeHello()); err != nil {
		conn.Close()
		return fmt.Errorf("feeder handshake write failed: %w", err)
	}
	ack := make([]byte, 1)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := conn.Read(ack); err != nil {
		conn.Close()
		return fmt.Errorf("feeder handshake read failed: %w", err)
	}
	conn.SetReadDeadline(time.Time{})
	if ack[0] != protocolVersion {
		conn.Close()
		return fmt.Errorf("feeder protocol mismatch: got version %d, want %d", ack[0], protocolVersion)
	}

	f.conn = conn
	f.connected = true
	log.Printf("✅ Feeder connected at %s", f.addr)
	return nil
}

// connectWithRetry attempts to dial the daemon multiple times with delay
func (f *Feeder) connectWithRetry(maxRetries int, retryDelay time.Duration) (net.Conn, error) {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		conn, err := net.DialTimeout("tcp", f.addr, 2*time.Second)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		time.Sleep(retryDelay)
	}
	return nil, lastErr
}

// SendFrame ships one submitted frame to the daemon.
func (f *Feeder) SendFrame(r FrameReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.connected {
		return fmt.Errorf("feeder not connected")
	}
	if _, err := f.conn.Write(SerializeFrame(r)); err != nil {
		// A dead connection means the virtual pad is gone; mark it so
		// status reporting reflects reality.
		f.connected = false
		f.conn.Close()
		return fmt.Errorf("feeder write failed: %w", err)
	}
	return nil
}

// Connected reports whether the daemon connection is alive.
func (f *Feeder) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

// Close tears down the connection.
func (f *Feeder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.connected {
		return nil
	}
	f.connected = false
	return f.conn.Close()
}
