package ssdp

import (
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/mwhitley/upnpscan/internal/logging"
	"github.com/mwhitley/upnpscan/internal/netaddr"
)

// Socket is one UDP socket bound to a single local address for the
// duration of one search. Inbound payloads are delivered on the Packets
// channel; the channel is closed when the socket is closed, so a drained
// reader observes either a payload or end-of-stream, never a race.
type Socket interface {
	// Send transmits a payload to the multicast group the socket was
	// created for.
	Send(payload []byte) error

	// Packets delivers inbound message payloads. Zero-length datagrams
	// are delivered as empty slices; filtering them is the caller's job.
	Packets() <-chan []byte

	// Close releases the socket. Safe to call more than once.
	Close() error
}

// SocketFactory creates a Socket bound to the given local address and
// aimed at the given multicast group. Tests inject fakes here; production
// code uses NewUDPSocket.
type SocketFactory func(local netaddr.Addr, group string) (Socket, error)

// packetBuffer bounds how many undrained responses a socket holds. A
// busy network segment answers an ssdp:all search with a few dozen
// datagrams; past the buffer the reader drops, matching the protocol's
// best-effort delivery.
const packetBuffer = 64

type udpSocket struct {
	conn      *net.UDPConn
	dest      *net.UDPAddr
	packets   chan []byte
	closeOnce sync.Once
	closeErr  error
}

// NewUDPSocket binds a UDP socket to the local address with an ephemeral
// port and starts a reader goroutine that feeds the Packets channel. The
// reader exits, closing the channel, when the socket is closed. The
// address's zone scopes link-local IPv6 binds to their owning interface.
func NewUDPSocket(local netaddr.Addr, group string) (Socket, error) {
	groupIP := net.ParseIP(group)
	if groupIP == nil {
		return nil, fmt.Errorf("invalid multicast group %q", group)
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: local.IP, Zone: local.Zone})
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", local, err)
	}

	s := &udpSocket{
		conn:    conn,
		dest:    &net.UDPAddr{IP: groupIP, Port: Port, Zone: local.Zone},
		packets: make(chan []byte, packetBuffer),
	}
	go s.readLoop()

	return s, nil
}

func (s *udpSocket) readLoop() {
	defer close(s.packets)

	buf := make([]byte, 8192)
	for {
		n, src, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			// Closed socket or transient read error; either way this
			// search is done receiving.
			return
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])
		logging.LogRawResponse(src.String(), payload)

		select {
		case s.packets <- payload:
		default:
			logging.Debug("SSDP packet buffer full, dropping response",
				zap.String("source", src.String()),
			)
		}
	}
}

func (s *udpSocket) Send(payload []byte) error {
	_, err := s.conn.WriteToUDP(payload, s.dest)
	return err
}

func (s *udpSocket) Packets() <-chan []byte {
	return s.packets
}

func (s *udpSocket) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}
