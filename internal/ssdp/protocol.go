package ssdp

import (
	"fmt"

	"github.com/mwhitley/upnpscan/internal/netaddr"
)

const (
	// Port is the SSDP multicast port, shared by every address family.
	Port = 1900

	// IPv4Group is the SSDP multicast group for IPv4.
	IPv4Group = "239.255.255.250"

	// IPv6LinkLocalGroup is the SSDP multicast group for IPv6 link-local
	// addresses.
	IPv6LinkLocalGroup = "FF02::C"

	// IPv6SiteLocalGroup is the SSDP multicast group for IPv6 site-local
	// addresses.
	IPv6SiteLocalGroup = "FF05::C"

	// DefaultMX is the maximum wait time (seconds) advertised to
	// responders in the M-SEARCH request.
	DefaultMX = 3
)

// MulticastGroup returns the SSDP multicast group address for an address
// family. The second return value is false for families that cannot be
// searched (netaddr.Unknown).
func MulticastGroup(t netaddr.AddressType) (string, bool) {
	switch t {
	case netaddr.IPv4:
		return IPv4Group, true
	case netaddr.IPv6LinkLocal:
		return IPv6LinkLocalGroup, true
	case netaddr.IPv6SiteLocal:
		return IPv6SiteLocalGroup, true
	default:
		return "", false
	}
}

// BuildSearchRequest renders the M-SEARCH request for one multicast group
// and search target. The layout is fixed by the UPnP 1.0 spec; responders
// are strict about it, so the text is built exactly, CRLF included.
func BuildSearchRequest(group, searchTarget string, mx int) string {
	return fmt.Sprintf(
		"M-SEARCH * HTTP/1.1\r\nHOST: %s:%d\r\nST: %s\r\nMAN: \"ssdp:discover\"\r\nMX: %d\r\n\r\n",
		group, Port, searchTarget, mx)
}

// DeviceSearchTarget renders the standard device URN for a bare device
// type, e.g. ("MediaServer", 1) -> "urn:schemas-upnp-org:device:MediaServer:1".
func DeviceSearchTarget(deviceType string, version int) string {
	return fmt.Sprintf("urn:schemas-upnp-org:device:%s:%d", deviceType, version)
}

// AllDevices is the wildcard search target matched by every SSDP responder.
const AllDevices = "ssdp:all"
