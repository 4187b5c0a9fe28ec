package hardware

import (
	"encoding/binary"
	"math"
)

// Device wire protocol headers. These match the Touchpoint firmware and
// the hardware emulator.
const (
	HeaderPing           byte = 0xFF
	HeaderElevation      byte = 0x10
	HeaderElevationSpeed byte = 0x11
	HeaderVibration      byte = 0x20
	HeaderStatus         byte = 0x30
)

// packetStart frames the beginning of every packet.
const packetStart byte = 0x7E

// Packet builds a framed device command: start byte, header, payload
// length, payload, XOR checksum over header+length+payload. Floats are
// little-endian float32, durations little-endian int16 milliseconds.
type Packet struct {
	header  byte
	payload []byte
}

// NewPacket starts a packet with the given header.
func NewPacket(header byte) *Packet {
	return &Packet{header: header}
}

// WriteFloat appends a little-endian float32.
func (p *Packet) WriteFloat(v float64) *Packet {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
	p.payload = append(p.payload, buf[:]...)
	return p
}

// WriteInt16 appends a little-endian int16. Values outside the int16
// range are clamped.
func (p *Packet) WriteInt16(v int) *Packet {
	if v > math.MaxInt16 {
		v = math.MaxInt16
	}
	if v < math.MinInt16 {
		v = math.MinInt16
	}
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(int16(v)))
	p.payload = append(p.payload, buf[:]...)
	return p
}

// Bytes frames the packet for the wire.
func (p *Packet) Bytes() []byte {
	out := make([]byte, 0, len(p.payload)+4)
	out = append(out, packetStart, p.header, byte(len(p.payload)))
	out = append(out, p.payload...)

	var sum byte
	for _, b := range out[1:] {
		sum ^= b
	}
	return append(out, sum)
}

// elevationPacket frames an absolute elevation command.
func elevationPacket(value float64) []byte {
	return NewPacket(HeaderElevation).WriteFloat(value).Bytes()
}

// vibrationPacket frames a vibration command. A zero amplitude and zero
// duration packet is the quiet command.
func vibrationPacket(amplitude, frequencyHz, durationMS float64) []byte {
	return NewPacket(HeaderVibration).
		WriteFloat(amplitude).
		WriteFloat(frequencyHz).
		WriteInt16(int(durationMS)).
		Bytes()
}

// elevationSpeedPacket frames a max elevation speed command.
func elevationSpeedPacket(unitsPerSecond float64) []byte {
	return NewPacket(HeaderElevationSpeed).WriteFloat(unitsPerSecond).Bytes()
}
