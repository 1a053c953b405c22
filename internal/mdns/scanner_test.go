package mdns

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name: "IPv4 service with TXT records",
			entry: &zeroconf.ServiceEntry{
				HostName: "printer.local.",
				Port:     631,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.40")},
				Text:     []string{"path=/ipp", "vendor=Example"},
			},
			wantIP:   "192.168.1.40",
			wantPort: 631,
		},
		{
			name: "IPv6 fallback when no IPv4 address",
			entry: &zeroconf.ServiceEntry{
				HostName: "hub.local.",
				Port:     80,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantIP:   "fe80::1",
			wantPort: 80,
		},
		{
			name: "no address at all",
			entry: &zeroconf.ServiceEntry{
				HostName: "ghost.local.",
				Port:     80,
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if got != nil {
					t.Fatalf("parseServiceEntry() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("parseServiceEntry() = nil, want a service")
			}
			if got.IP != tt.wantIP {
				t.Errorf("IP = %q, want %q", got.IP, tt.wantIP)
			}
			if got.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", got.Port, tt.wantPort)
			}
		})
	}
}

func TestParseServiceEntry_TXTMetadata(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		HostName: "nas.local.",
		Port:     5000,
		AddrIPv4: []net.IP{net.ParseIP("10.0.0.20")},
		Text:     []string{"model=DS220", "flagonly"},
	}

	got := parseServiceEntry(entry)
	if got == nil {
		t.Fatal("parseServiceEntry() = nil")
	}
	if got.Metadata["model"] != "DS220" {
		t.Errorf("Metadata[model] = %q, want DS220", got.Metadata["model"])
	}
	if v, ok := got.Metadata["flagonly"]; !ok || v != "" {
		t.Errorf("Metadata[flagonly] = %q, %v; want empty value present", v, ok)
	}
}

func TestNewScanner_Defaults(t *testing.T) {
	s := NewScanner()
	if s.ServiceType != DefaultServiceType {
		t.Errorf("ServiceType = %q, want %q", s.ServiceType, DefaultServiceType)
	}
	if s.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", s.Timeout, DefaultScanTimeout)
	}
}
