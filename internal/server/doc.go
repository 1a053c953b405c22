// Package server exposes discovery over HTTP for dashboards and
// scripting.
//
// Endpoints:
//
//	GET /api/devices?st=<search-target>
//	    Runs one SSDP scan (ssdp:all when st is omitted), resolves the
//	    descriptors, and returns the devices as JSON.
//
//	GET /ws
//	    Upgrades to a websocket and streams scan events: scan_started,
//	    one device event per resolved device, scan_complete. The stream
//	    is one-way; inbound messages are ignored.
//
// The server shuts down gracefully on SIGINT/SIGTERM, closing websocket
// clients and draining in-flight HTTP requests.
package server
