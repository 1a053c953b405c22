// Package ssdp implements the SSDP discovery exchange: M-SEARCH request
// construction, the per-interface search lifecycle, concurrent fan-out
// across local addresses, and parsing of search responses into
// deduplicated notifications.
//
// # Search Lifecycle
//
// One search per local address: classify the address, bind a UDP socket,
// transmit the M-SEARCH request three times, collect responses for a
// fixed window (3 seconds by default), close the socket. Failures at any
// step are confined to that address; the caller only ever sees the
// merged, possibly empty, result set.
//
//	searcher := ssdp.NewSearcher()
//	raws := searcher.Search("urn:schemas-upnp-org:device:MediaServer:1")
//	notifications := ssdp.ParseResponses(raws)
//
// # Socket Injection
//
// The Socket interface and SocketFactory hook let tests drive the engine
// with fake sockets; NewUDPSocket is the production implementation. The
// socket's reader goroutine pushes payloads into a channel the searcher
// drains, so no shared mutable state crosses goroutines.
package ssdp
