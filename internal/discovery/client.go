package discovery

import (
	"time"

	"go.uber.org/zap"

	"github.com/mwhitley/upnpscan/internal/description"
	"github.com/mwhitley/upnpscan/internal/logging"
	"github.com/mwhitley/upnpscan/internal/ssdp"
)

// DefaultDeviceVersion is the device URN version used when the caller
// does not specify one.
const DefaultDeviceVersion = 1

// Client ties the SSDP search engine and the descriptor fetcher together
// behind the two operations callers actually want: notifications for a
// search target, or fully resolved devices for a device type.
type Client struct {
	// Searcher runs the multicast search. Replace or tune its fields
	// before the first search.
	Searcher *ssdp.Searcher

	// Fetcher resolves notification locations into device records.
	Fetcher *description.Fetcher
}

// NewClient creates a Client with production defaults
func NewClient() *Client {
	return &Client{
		Searcher: ssdp.NewSearcher(),
		Fetcher:  description.NewFetcher(),
	}
}

// SearchDevices runs one SSDP search for the given search target and
// returns the deduplicated notifications. The result is possibly empty,
// never an error: every per-address and per-response failure is handled
// inside the engine.
func (c *Client) SearchDevices(searchTarget string) []ssdp.Notification {
	start := time.Now()
	notifications := ssdp.ParseResponses(c.Searcher.Search(searchTarget))

	logging.Info("device search finished",
		zap.String("search_target", searchTarget),
		zap.Int("devices", len(notifications)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return notifications
}

// SearchDevicesOfType searches for the standard device URN built from a
// bare device type and version, then resolves every notification into a
// Device. version <= 0 means version 1.
func (c *Client) SearchDevicesOfType(deviceType string, version int) []*description.Device {
	if version <= 0 {
		version = DefaultDeviceVersion
	}

	notifications := c.SearchDevices(ssdp.DeviceSearchTarget(deviceType, version))
	return c.Fetcher.FetchAll(notifications)
}

// SearchAll discovers every SSDP responder on the network and resolves
// their descriptors. Shorthand for the ssdp:all wildcard target.
func (c *Client) SearchAll() []*description.Device {
	return c.Fetcher.FetchAll(c.SearchDevices(ssdp.AllDevices))
}
