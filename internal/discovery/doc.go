// Package discovery is the public face of the scanner: it runs SSDP
// searches and resolves the answers into device records.
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Enumerates local interface addresses and classifies each by family
//  2. Multicasts an M-SEARCH request from every usable address
//  3. Collects responses for a fixed window (3 seconds by default)
//  4. Parses and deduplicates responses by USN
//  5. Fetches each device's XML description document and binds it into
//     a Device record
//
// # Usage Example
//
//	client := discovery.NewClient()
//
//	// Resolved devices for a device type
//	devices := client.SearchDevicesOfType("MediaServer", 1)
//	for _, d := range devices {
//	    fmt.Println(d)
//	}
//
//	// Raw notifications for an arbitrary search target
//	notifications := client.SearchDevices("ssdp:all")
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Devices must be on the same local network segment
// - Firewall must allow SSDP (UDP port 1900)
//
// # Failure Model
//
// Nothing in a search returns an error to the caller. Unusable
// addresses, bind failures, malformed responses, and unresolvable
// descriptors are each skipped where they occur; the worst outcome of a
// search is an empty result.
package discovery
