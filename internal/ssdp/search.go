package ssdp

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mwhitley/upnpscan/internal/logging"
	"github.com/mwhitley/upnpscan/internal/netaddr"
)

const (
	// DefaultSendCount is how many times the M-SEARCH request is
	// transmitted per interface. SSDP runs over UDP, so repeated sends
	// compensate for loss.
	DefaultSendCount = 3

	// DefaultWindow is how long each interface listens for responses
	// after the requests go out. Matches the advertised MX of 3 seconds.
	DefaultWindow = 3000 * time.Millisecond
)

// Searcher fans an SSDP search out across every local address and merges
// the raw responses. The zero value is not usable; call NewSearcher and
// override fields as needed before the first Search.
type Searcher struct {
	// SendCount is the number of M-SEARCH transmissions per interface.
	SendCount int

	// Window is the per-interface reception window. Responses arriving
	// after it elapses are dropped.
	Window time.Duration

	// MX is the maximum wait time advertised to responders.
	MX int

	// Factory creates the socket for one interface search.
	Factory SocketFactory

	// Addresses enumerates the local addresses to search from.
	Addresses netaddr.Provider
}

// NewSearcher returns a Searcher with production defaults: three sends,
// a three-second window, real UDP sockets, and all local interface
// addresses.
func NewSearcher() *Searcher {
	return &Searcher{
		SendCount: DefaultSendCount,
		Window:    DefaultWindow,
		MX:        DefaultMX,
		Factory:   NewUDPSocket,
		Addresses: netaddr.InterfaceProvider{},
	}
}

// Search sends the M-SEARCH for searchTarget from every local address
// concurrently and returns the merged raw responses. A failure on one
// address never affects another; total failure yields an empty slice,
// never an error.
func (s *Searcher) Search(searchTarget string) []string {
	addrs, err := s.Addresses.LocalAddresses()
	if err != nil {
		logging.Warn("failed to enumerate local addresses", zap.Error(err))
		return nil
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		merged []string
	)

	for _, addr := range addrs {
		wg.Add(1)
		go func(addr netaddr.Addr) {
			defer wg.Done()
			responses := s.searchAddress(addr, searchTarget)
			if len(responses) == 0 {
				return
			}
			mu.Lock()
			merged = append(merged, responses...)
			mu.Unlock()
		}(addr)
	}
	wg.Wait()

	logging.Debug("SSDP search complete",
		zap.String("search_target", searchTarget),
		zap.Int("addresses", len(addrs)),
		zap.Int("responses", len(merged)),
	)

	return merged
}

// searchAddress runs the whole search lifecycle for one local address:
// classify, bind, send SendCount times, collect until the window elapses,
// close. Every failure is swallowed and yields whatever was collected so
// far for this address only.
func (s *Searcher) searchAddress(addr netaddr.Addr, searchTarget string) []string {
	family := netaddr.Classify(addr.IP)
	group, ok := MulticastGroup(family)
	if !ok {
		return nil
	}

	sock, err := s.Factory(addr, group)
	if err != nil {
		logging.Debug("SSDP bind failed",
			zap.String("address", addr.String()),
			zap.Error(err),
		)
		return nil
	}
	defer func() { _ = sock.Close() }()

	request := []byte(BuildSearchRequest(group, searchTarget, s.MX))
	for i := 0; i < s.SendCount; i++ {
		if err := sock.Send(request); err != nil {
			// Keep listening: earlier sends may already have gone out.
			logging.Debug("SSDP send failed",
				zap.String("address", addr.String()),
				zap.Error(err),
			)
		}
	}

	timer := time.NewTimer(s.Window)
	defer timer.Stop()

	var responses []string
	for {
		select {
		case payload, open := <-sock.Packets():
			if !open {
				return responses
			}
			if len(payload) > 0 {
				responses = append(responses, string(payload))
			}
		case <-timer.C:
			return responses
		}
	}
}
