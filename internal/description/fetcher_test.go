package description

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mwhitley/upnpscan/internal/ssdp"
)

const descWithURLBase = `<?xml version="1.0"?>
<root xmlns="urn:schemas-upnp-org:device-1-0">
  <specVersion><major>1</major><minor>0</minor></specVersion>
  <URLBase>http://192.168.1.50:8200/</URLBase>
  <device>
    <deviceType>urn:schemas-upnp-org:device:MediaServer:1</deviceType>
    <friendlyName>Living Room NAS</friendlyName>
    <manufacturer>Example Corp</manufacturer>
    <modelName>NAS-2000</modelName>
    <serialNumber>SN123456</serialNumber>
    <UDN>uuid:4d696e69-444c-164e-9d41</UDN>
  </device>
</root>`

const descWithoutURLBase = `<?xml version="1.0"?>
<root xmlns="urn:schemas-upnp-org:device-1-0">
  <device>
    <deviceType>urn:schemas-upnp-org:device:MediaRenderer:1</deviceType>
    <friendlyName>Bedroom TV</friendlyName>
    <UDN>uuid:tv-1</UDN>
  </device>
</root>`

const descWithEmbeddedDevices = `<?xml version="1.0"?>
<root xmlns="urn:schemas-upnp-org:device-1-0">
  <device>
    <deviceType>urn:schemas-upnp-org:device:InternetGatewayDevice:1</deviceType>
    <friendlyName>Router</friendlyName>
    <UDN>uuid:igd-1</UDN>
    <deviceList>
      <device>
        <deviceType>urn:schemas-upnp-org:device:WANDevice:1</deviceType>
        <friendlyName>WAN Device</friendlyName>
        <UDN>uuid:wan-1</UDN>
      </device>
    </deviceList>
  </device>
</root>`

func serveDocument(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(body))
	}))
}

func notificationFor(server *httptest.Server) ssdp.Notification {
	return ssdp.Notification{
		USN:      "uuid:test-device",
		Location: server.URL + "/desc.xml",
	}
}

func TestFetch_URLBasePresent(t *testing.T) {
	server := serveDocument(t, descWithURLBase)
	defer server.Close()

	device, err := NewFetcher().Fetch(notificationFor(server))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if device.BaseURL != "http://192.168.1.50:8200/" {
		t.Errorf("BaseURL = %q, want the document URLBase", device.BaseURL)
	}
	if device.FriendlyName != "Living Room NAS" {
		t.Errorf("FriendlyName = %q", device.FriendlyName)
	}
	if device.DeviceType != "urn:schemas-upnp-org:device:MediaServer:1" {
		t.Errorf("DeviceType = %q", device.DeviceType)
	}
	if device.UDN != "uuid:4d696e69-444c-164e-9d41" {
		t.Errorf("UDN = %q", device.UDN)
	}
	if device.Manufacturer != "Example Corp" || device.ModelName != "NAS-2000" {
		t.Errorf("Manufacturer = %q, ModelName = %q", device.Manufacturer, device.ModelName)
	}
	if device.USN != "uuid:test-device" {
		t.Errorf("USN = %q, want notification USN", device.USN)
	}
}

func TestFetch_URLBaseAbsentFallsBackToLocation(t *testing.T) {
	server := serveDocument(t, descWithoutURLBase)
	defer server.Close()

	n := notificationFor(server)
	device, err := NewFetcher().Fetch(n)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if device.BaseURL != n.Location {
		t.Errorf("BaseURL = %q, want notification location %q", device.BaseURL, n.Location)
	}
}

func TestFetch_BindsOnlyRootDevice(t *testing.T) {
	server := serveDocument(t, descWithEmbeddedDevices)
	defer server.Close()

	device, err := NewFetcher().Fetch(notificationFor(server))
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if device.FriendlyName != "Router" {
		t.Errorf("FriendlyName = %q, want the root device, not an embedded one", device.FriendlyName)
	}
}

func TestFetch_HTTPErrorClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewFetcher().Fetch(notificationFor(server))
	if err == nil {
		t.Fatal("Fetch() should fail on HTTP 404")
	}
	if !IsHTTPError(err) {
		t.Errorf("error should be an HTTP error, got %v", err)
	}
}

func TestFetch_UnreachableHostClassified(t *testing.T) {
	n := ssdp.Notification{USN: "uuid:x", Location: "http://127.0.0.1:1/desc.xml"}

	_, err := NewFetcher().Fetch(n)
	if err == nil {
		t.Fatal("Fetch() should fail for an unreachable host")
	}
	if !IsFetchError(err) {
		t.Errorf("error should be a fetch error, got %v", err)
	}
}

func TestFetch_MalformedDocumentClassified(t *testing.T) {
	server := serveDocument(t, "<root><device><friendlyName>broken")
	defer server.Close()

	_, err := NewFetcher().Fetch(notificationFor(server))
	if err == nil {
		t.Fatal("Fetch() should fail on malformed XML")
	}
	if !IsDecodeError(err) {
		t.Errorf("error should be a decode error, got %v", err)
	}
}

func TestFetch_NoDeviceElementClassified(t *testing.T) {
	server := serveDocument(t, `<?xml version="1.0"?><root><URLBase>http://x/</URLBase></root>`)
	defer server.Close()

	_, err := NewFetcher().Fetch(notificationFor(server))
	if err == nil {
		t.Fatal("Fetch() should fail when the document has no device element")
	}
	if !IsParseError(err) {
		t.Errorf("error should be a parse error, got %v", err)
	}
}

func TestFetchAll_FailureIsolation(t *testing.T) {
	good := serveDocument(t, descWithoutURLBase)
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	notifications := []ssdp.Notification{
		{USN: "uuid:good-1", Location: good.URL + "/desc.xml"},
		{USN: "uuid:bad", Location: bad.URL + "/desc.xml"},
		{USN: "uuid:good-2", Location: good.URL + "/desc.xml"},
	}

	devices := NewFetcher().FetchAll(notifications)

	if len(devices) != 2 {
		t.Fatalf("FetchAll() returned %d devices, want 2", len(devices))
	}
	if devices[0].USN != "uuid:good-1" || devices[1].USN != "uuid:good-2" {
		t.Errorf("output order = %s, %s; want notification order", devices[0].USN, devices[1].USN)
	}
}

func TestDevice_String(t *testing.T) {
	device := &Device{
		FriendlyName: "Living Room NAS",
		DeviceType:   "urn:schemas-upnp-org:device:MediaServer:1",
		BaseURL:      "http://192.168.1.50:8200/",
	}

	want := "Living Room NAS (urn:schemas-upnp-org:device:MediaServer:1) at http://192.168.1.50:8200/"
	if got := device.String(); got != want {
		t.Errorf("Device.String() = %q, want %q", got, want)
	}
}
