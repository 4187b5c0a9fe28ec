package hardware

import (
	"fmt"
	"net"
)

// Default emulator endpoints. The engine sends to the emulator port and
// the emulator addresses the engine on the addon port.
const (
	DefaultEmulatorAddr = "127.0.0.1:7421"
	DefaultAddonPort    = 7420
)

// UDPLink sends framed packets to the hardware emulator over UDP. Each
// packet is one datagram; there is no retry and no acknowledgment.
type UDPLink struct {
	conn *net.UDPConn
}

// DialUDP connects the link to the emulator address.
func DialUDP(addr string) (*UDPLink, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve emulator addr: %w", err)
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("dial emulator: %w", err)
	}
	return &UDPLink{conn: conn}, nil
}

func (l *UDPLink) Send(pkt []byte) error {
	_, err := l.conn.Write(pkt)
	return err
}

func (l *UDPLink) Close() error {
	return l.conn.Close()
}
