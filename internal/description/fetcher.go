package description

import (
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mwhitley/upnpscan/internal/logging"
	"github.com/mwhitley/upnpscan/internal/ssdp"
)

// DefaultTimeout is the default HTTP timeout for one descriptor fetch
const DefaultTimeout = 10 * time.Second

// Fetcher retrieves and parses device description documents.
type Fetcher struct {
	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewFetcher creates a Fetcher with the default HTTP timeout
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Fetch retrieves the description document behind one notification and
// binds it into a Device. The returned error is always a classified
// *DescriptorError; any failure means this notification contributes no
// device, nothing more.
func (f *Fetcher) Fetch(n ssdp.Notification) (*Device, error) {
	resp, err := f.HTTPClient.Get(n.Location)
	if err != nil {
		return nil, newFetchError(n.Location, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(n.Location, resp.StatusCode)
	}

	device, urlBase, err := walkDocument(xml.NewDecoder(resp.Body))
	if err != nil {
		return nil, newDecodeError(n.Location, err)
	}
	if device == nil {
		return nil, newParseError(n.Location, "document has no device element")
	}

	device.Location = n.Location
	device.USN = n.USN
	device.BaseURL = urlBase
	if device.BaseURL == "" {
		device.BaseURL = n.Location
	}

	return device, nil
}

// walkDocument makes a single pass over the document's elements,
// capturing the text of a URLBase element and binding the first device
// element's subtree into a Device. Nested device elements (embedded
// devices in a deviceList) belong to the root device's subtree and are
// consumed with it.
func walkDocument(decoder *xml.Decoder) (*Device, string, error) {
	var (
		device  *Device
		urlBase string
	)

	for {
		token, err := decoder.Token()
		if err != nil {
			// io.EOF ends the walk; anything else is a malformed
			// document and poisons whatever was bound so far.
			if errors.Is(err, io.EOF) {
				return device, urlBase, nil
			}
			return nil, "", err
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "URLBase":
			if err := decoder.DecodeElement(&urlBase, &start); err != nil {
				return nil, "", err
			}
		case "device":
			if device != nil {
				continue
			}
			device = &Device{}
			if err := decoder.DecodeElement(device, &start); err != nil {
				return nil, "", err
			}
		}
	}
}

// FetchAll resolves every notification independently and in order. A
// notification whose fetch or parse fails is skipped; it never aborts or
// delays the rest beyond its own fetch.
func (f *Fetcher) FetchAll(notifications []ssdp.Notification) []*Device {
	devices := make([]*Device, 0, len(notifications))

	for _, n := range notifications {
		device, err := f.Fetch(n)
		if err != nil {
			logging.Warn("skipping device with unresolvable descriptor",
				zap.String("usn", n.USN),
				zap.String("location", n.Location),
				zap.Error(err),
			)
			continue
		}
		devices = append(devices, device)
	}

	return devices
}
