package mdns

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// DefaultServiceType is the DNS-SD service type browsed when the
	// caller does not name one. Most UPnP-adjacent devices that also
	// speak mDNS advertise an HTTP endpoint.
	DefaultServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for service discovery
	DefaultScanTimeout = 10 * time.Second
)

// Service is one mDNS/DNS-SD advertisement seen on the local network.
type Service struct {
	// Instance is the advertised service instance name
	Instance string

	// Hostname is the mDNS hostname (e.g., "office-printer.local.")
	Hostname string

	// IP is the preferred address (IPv4 when available)
	IP string

	// Port is the advertised service port
	Port int

	// Metadata contains the TXT record data as key/value pairs
	Metadata map[string]string

	// DiscoveredAt is when the advertisement was received
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the service
func (s *Service) String() string {
	return fmt.Sprintf("%s (%s) at %s:%d", s.Instance, s.Hostname, s.IP, s.Port)
}

// Scanner handles mDNS service discovery
type Scanner struct {
	// ServiceType is the DNS-SD service type to browse
	ServiceType string

	// Timeout is the maximum time to wait for advertisements
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		ServiceType: DefaultServiceType,
		Timeout:     DefaultScanTimeout,
	}
}

// Scan browses for services of the scanner's type until the timeout
// elapses and returns everything seen.
func (s *Scanner) Scan() ([]*Service, error) {
	return s.ScanWithContext(context.Background())
}

// ScanWithContext browses with a custom parent context
func (s *Scanner) ScanWithContext(ctx context.Context) ([]*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	services := make([]*Service, 0)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for entry := range entries {
			if service := parseServiceEntry(entry); service != nil {
				services = append(services, service)
			}
		}
	}()

	if err := resolver.Browse(ctx, s.ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Browse closes the entries channel when the context expires.
	<-ctx.Done()
	<-done

	return services, nil
}

// parseServiceEntry converts a zeroconf service entry to a Service.
// Returns nil for entries with no resolvable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Service {
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	// TXT records are in "key=value" format
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Service{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// Scan is a convenience function to browse one service type with a
// custom timeout.
func Scan(serviceType string, timeout time.Duration) ([]*Service, error) {
	scanner := NewScanner()
	if serviceType != "" {
		scanner.ServiceType = serviceType
	}
	scanner.Timeout = timeout
	return scanner.Scan()
}
