// Package mdns provides mDNS/DNS-SD service browsing as a complement to
// SSDP discovery, for devices that only announce themselves over
// multicast DNS.
//
// Browsing requires multicast support on the network interface and a
// firewall that allows mDNS (UDP port 5353).
package mdns
