package pad

import "encoding/binary"

// Feeder protocol message types
const (
	MsgFrame = 0
	MsgReset = 1
	MsgHello = 2
)

// Protocol version sent in the hello message
const protocolVersion = 1

// SerializeFrame creates a binary message for one submitted frame
// Format: [type:1] [buttons:2] [lx:2] [ly:2] [rx:2] [ry:2] [lt:1] [rt:1] = 13 bytes
func SerializeFrame(r FrameReport) []byte {
	buf := make([]byte, 13)
	buf[0] = MsgFrame
	binary.BigEndian.PutUint16(buf[1:3], r.Buttons)
	binary.BigEndian.PutUint16(buf[3:5], uint16(r.LX))
	binary.BigEndian.PutUint16(buf[5:7], uint16(r.LY))
	binary.BigEndian.PutUint16(buf[7:9], uint16(r.RX))
	binary.BigEndian.PutUint16(buf[9:11], uint16(r.RY))
	buf[11] = r.LT
	buf[12] = r.RT
	return buf
}

// SerializeReset creates a binary message that zeroes the pad
// Format: [type:1] = 1 byte
func SerializeReset() []byte {
	return []byte{MsgReset}
}

// SerializeHello creates the handshake message sent after connecting
// Format: [type:1] [version:1] = 2 bytes
func SerializeHello() []byte {
	return []byte{MsgHello, protocolVersion}
}
