package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	prefs, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	defaults := DefaultPreferences()
	if *prefs != *defaults {
		t.Errorf("LoadFrom() = %+v, want defaults %+v", prefs, defaults)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("search_window_ms: 5000\n"), 0600); err != nil {
		t.Fatal(err)
	}

	prefs, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if prefs.SearchWindowMS != 5000 {
		t.Errorf("SearchWindowMS = %d, want 5000", prefs.SearchWindowMS)
	}
	if prefs.SendCount != 3 {
		t.Errorf("SendCount = %d, want default 3", prefs.SendCount)
	}
	if prefs.DefaultSearchTarget != "ssdp:all" {
		t.Errorf("DefaultSearchTarget = %q, want default", prefs.DefaultSearchTarget)
	}
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("search_window_ms: [not a number\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() should fail on malformed YAML")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	prefs := DefaultPreferences()
	prefs.SendCount = 5
	prefs.DefaultSearchTarget = "urn:schemas-upnp-org:device:MediaServer:1"

	if err := prefs.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if *loaded != *prefs {
		t.Errorf("round trip = %+v, want %+v", loaded, prefs)
	}
}
