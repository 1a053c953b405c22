package ssdp

import (
	"errors"
	"testing"
)

const sampleResponse = "HTTP/1.1 200 OK\r\n" +
	"CACHE-CONTROL: max-age=1800\r\n" +
	"EXT:\r\n" +
	"LOCATION: http://192.168.1.50:8200/rootDesc.xml\r\n" +
	"SERVER: Linux/5.10 UPnP/1.0 MiniDLNA/1.3\r\n" +
	"ST: urn:schemas-upnp-org:device:MediaServer:1\r\n" +
	"USN: uuid:4d696e69-444c-164e-9d41::urn:schemas-upnp-org:device:MediaServer:1\r\n" +
	"\r\n"

func TestBuildSearchRequest(t *testing.T) {
	want := "M-SEARCH * HTTP/1.1\r\n" +
		"HOST: 239.255.255.250:1900\r\n" +
		"ST: urn:schemas-upnp-org:device:MediaServer:1\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"MX: 3\r\n" +
		"\r\n"

	got := BuildSearchRequest(IPv4Group, "urn:schemas-upnp-org:device:MediaServer:1", DefaultMX)
	if got != want {
		t.Errorf("BuildSearchRequest() =\n%q\nwant\n%q", got, want)
	}
}

func TestDeviceSearchTarget(t *testing.T) {
	got := DeviceSearchTarget("MediaServer", 1)
	want := "urn:schemas-upnp-org:device:MediaServer:1"
	if got != want {
		t.Errorf("DeviceSearchTarget() = %q, want %q", got, want)
	}
}

func TestMulticastGroup(t *testing.T) {
	if _, ok := MulticastGroup(0); ok {
		t.Error("MulticastGroup(Unknown) should not resolve")
	}
}

func TestParseNotification(t *testing.T) {
	n, err := ParseNotification(sampleResponse)
	if err != nil {
		t.Fatalf("ParseNotification() error = %v", err)
	}

	if n.USN != "uuid:4d696e69-444c-164e-9d41::urn:schemas-upnp-org:device:MediaServer:1" {
		t.Errorf("USN = %q", n.USN)
	}
	if n.Location != "http://192.168.1.50:8200/rootDesc.xml" {
		t.Errorf("Location = %q", n.Location)
	}
	if n.SearchTarget != "urn:schemas-upnp-org:device:MediaServer:1" {
		t.Errorf("SearchTarget = %q", n.SearchTarget)
	}
	if n.Server != "Linux/5.10 UPnP/1.0 MiniDLNA/1.3" {
		t.Errorf("Server = %q", n.Server)
	}
	if n.Headers["cache-control"] != "max-age=1800" {
		t.Errorf("Headers[cache-control] = %q", n.Headers["cache-control"])
	}
}

func TestParseNotification_CaseInsensitiveHeaders(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n" +
		"location: http://192.168.1.9/desc.xml\r\n" +
		"Usn: uuid:abc\r\n" +
		"\r\n"

	n, err := ParseNotification(raw)
	if err != nil {
		t.Fatalf("ParseNotification() error = %v", err)
	}
	if n.USN != "uuid:abc" {
		t.Errorf("USN = %q, want uuid:abc", n.USN)
	}
	if n.Location != "http://192.168.1.9/desc.xml" {
		t.Errorf("Location = %q", n.Location)
	}
}

func TestParseNotification_BareLFLineEndings(t *testing.T) {
	raw := "HTTP/1.1 200 OK\nLOCATION: http://h/d.xml\nUSN: uuid:lf\n\n"

	n, err := ParseNotification(raw)
	if err != nil {
		t.Fatalf("ParseNotification() error = %v", err)
	}
	if n.USN != "uuid:lf" || n.Location != "http://h/d.xml" {
		t.Errorf("got USN=%q Location=%q", n.USN, n.Location)
	}
}

func TestParseNotification_ValueKeepsLaterColons(t *testing.T) {
	// The LOCATION value itself contains colons; only the first one on
	// the line separates name from value.
	n, err := ParseNotification("LOCATION: http://10.0.0.2:49152/desc.xml\nUSN: uuid:x\n")
	if err != nil {
		t.Fatalf("ParseNotification() error = %v", err)
	}
	if n.Location != "http://10.0.0.2:49152/desc.xml" {
		t.Errorf("Location = %q", n.Location)
	}
}

func TestParseNotification_RepeatedHeaderLastWins(t *testing.T) {
	raw := "USN: uuid:first\r\nUSN: uuid:second\r\nLOCATION: http://h/d.xml\r\n"

	n, err := ParseNotification(raw)
	if err != nil {
		t.Fatalf("ParseNotification() error = %v", err)
	}
	if n.USN != "uuid:second" {
		t.Errorf("USN = %q, want uuid:second", n.USN)
	}
}

func TestParseNotification_MissingUSN(t *testing.T) {
	_, err := ParseNotification("HTTP/1.1 200 OK\r\nLOCATION: http://h/d.xml\r\n\r\n")
	if !errors.Is(err, ErrMissingUSN) {
		t.Errorf("error = %v, want ErrMissingUSN", err)
	}
}

func TestParseNotification_MissingLocation(t *testing.T) {
	_, err := ParseNotification("HTTP/1.1 200 OK\r\nUSN: uuid:abc\r\n\r\n")
	if !errors.Is(err, ErrMissingLocation) {
		t.Errorf("error = %v, want ErrMissingLocation", err)
	}
}

func TestDedupNotifications(t *testing.T) {
	input := []Notification{
		{USN: "uuid:a", Location: "http://a/1"},
		{USN: "uuid:b", Location: "http://b"},
		{USN: "uuid:a", Location: "http://a/2"},
		{USN: "uuid:c", Location: "http://c"},
		{USN: "uuid:b", Location: "http://b/2"},
	}

	got := DedupNotifications(input)

	if len(got) != 3 {
		t.Fatalf("DedupNotifications() returned %d entries, want 3", len(got))
	}
	if got[0].USN != "uuid:a" || got[1].USN != "uuid:b" || got[2].USN != "uuid:c" {
		t.Errorf("order = %s, %s, %s", got[0].USN, got[1].USN, got[2].USN)
	}
	// First occurrence wins, including its other fields.
	if got[0].Location != "http://a/1" {
		t.Errorf("got[0].Location = %q, want http://a/1", got[0].Location)
	}
}

func TestParseResponses_SkipsMalformed(t *testing.T) {
	raws := []string{
		sampleResponse,
		"HTTP/1.1 200 OK\r\nLOCATION: http://no-usn/d.xml\r\n\r\n",
		"garbage that is not a response at all",
		sampleResponse, // duplicate USN
	}

	got := ParseResponses(raws)

	if len(got) != 1 {
		t.Fatalf("ParseResponses() returned %d notifications, want 1", len(got))
	}

	seen := make(map[string]bool)
	for _, n := range got {
		if seen[n.USN] {
			t.Errorf("duplicate USN %q in result set", n.USN)
		}
		seen[n.USN] = true
	}
}
