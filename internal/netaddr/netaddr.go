package netaddr

import "net"

// AddressType classifies a local IP address into the families the SSDP
// search engine knows how to reach. Unknown addresses are excluded from
// searches entirely.
type AddressType int

const (
	// Unknown is any address that does not fit one of the supported
	// families (loopback, IPv6 global unicast, unspecified, ...).
	Unknown AddressType = iota
	// IPv4 is a unicast IPv4 address.
	IPv4
	// IPv6LinkLocal is an fe80::/10 IPv6 address.
	IPv6LinkLocal
	// IPv6SiteLocal is a deprecated fec0::/10 IPv6 address. Some devices
	// still respond on the site-local SSDP group, so it stays supported.
	IPv6SiteLocal
)

// String returns a human-readable name for the address type
func (t AddressType) String() string {
	switch t {
	case IPv4:
		return "IPv4"
	case IPv6LinkLocal:
		return "IPv6 link-local"
	case IPv6SiteLocal:
		return "IPv6 site-local"
	default:
		return "unknown"
	}
}

// Classify maps an IP address to its AddressType. Loopback addresses are
// Unknown: SSDP responders never live on loopback and binding the search
// socket there would only add noise.
func Classify(ip net.IP) AddressType {
	if ip == nil || ip.IsLoopback() || ip.IsUnspecified() {
		return Unknown
	}

	if ip.To4() != nil {
		return IPv4
	}

	if ip.IsLinkLocalUnicast() {
		return IPv6LinkLocal
	}

	// fec0::/10 (site-local) has no net.IP predicate since its
	// deprecation; match the prefix directly.
	if len(ip) == net.IPv6len && ip[0] == 0xfe && ip[1]&0xc0 == 0xc0 {
		return IPv6SiteLocal
	}

	return Unknown
}

// Addr is one local address a search can bind to. Zone is the owning
// interface name for IPv6 link-local addresses, which are ambiguous
// without it on multi-interface hosts; it is empty otherwise.
type Addr struct {
	IP   net.IP
	Zone string
}

// String formats the address with its zone suffix when present.
func (a Addr) String() string {
	if a.Zone != "" {
		return a.IP.String() + "%" + a.Zone
	}
	return a.IP.String()
}

// Provider enumerates the local addresses a search should fan out to.
// The interface exists so the orchestrator can be tested without touching
// real network interfaces.
type Provider interface {
	LocalAddresses() ([]Addr, error)
}

// InterfaceProvider is the production Provider. It lists the unicast
// addresses of every interface that is up and multicast-capable.
type InterfaceProvider struct{}

// LocalAddresses returns the unicast address of every usable interface,
// carrying the interface name as the zone for link-local IPv6 addresses.
// Addresses that classify as Unknown are still returned; the searcher
// skips them itself so the filtering policy lives in one place.
func (InterfaceProvider) LocalAddresses() ([]Addr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var out []Addr
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagMulticast == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			// One broken interface must not hide the others.
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch a := addr.(type) {
			case *net.IPNet:
				ip = a.IP
			case *net.IPAddr:
				ip = a.IP
			}
			if ip == nil {
				continue
			}

			var zone string
			if Classify(ip) == IPv6LinkLocal {
				zone = iface.Name
			}
			out = append(out, Addr{IP: ip, Zone: zone})
		}
	}

	return out, nil
}

// StaticProvider is a Provider backed by a fixed address list, used in
// tests and by callers that want to search a single interface.
type StaticProvider []net.IP

// LocalAddresses returns the fixed addresses, with no zones.
func (p StaticProvider) LocalAddresses() ([]Addr, error) {
	addrs := make([]Addr, len(p))
	for i, ip := range p {
		addrs[i] = Addr{IP: ip}
	}
	return addrs, nil
}
