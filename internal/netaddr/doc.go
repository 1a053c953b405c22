// Package netaddr classifies local IP addresses into the address families
// supported by SSDP multicast search and enumerates the local unicast
// addresses a search fans out to.
package netaddr
