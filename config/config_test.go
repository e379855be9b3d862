package config

import "testing"

func TestAddDeviceUpsert(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddDevice(DeviceConfig{PortName: "Microcosm MIDI 1", ProfileType: "Microcosm", Channel: 1})
	cfg.AddDevice(DeviceConfig{PortName: "Chroma Console", ProfileType: "ChromaConsole", Channel: 2})
	cfg.AddDevice(DeviceConfig{PortName: "Microcosm MIDI 1", ProfileType: "Microcosm", Channel: 5})

	if want, got := 2, len(cfg.Devices); want != got {
		t.Fatalf("devices = %d, want %d", got, want)
	}
	if want, got := uint8(5), cfg.FindDevice("Microcosm MIDI 1").Channel; want != got {
		t.Errorf("channel = %d, want %d", got, want)
	}
	if got := cfg.SavedProfile("Chroma Console"); got != "ChromaConsole" {
		t.Errorf("SavedProfile = %q", got)
	}
	if got := cfg.SavedProfile("unseen port"); got != "" {
		t.Errorf("SavedProfile for unseen port = %q", got)
	}
}

func TestAutoConnectDevices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddDevice(DeviceConfig{PortName: "Microcosm MIDI 1", ProfileType: "Microcosm", Channel: 1})
	cfg.AddDevice(DeviceConfig{PortName: "Chroma Console", ProfileType: "ChromaConsole", Channel: 1})

	if got := cfg.AutoConnectDevices(); len(got) != 0 {
		t.Fatalf("AutoConnectDevices = %v before any flag is set", got)
	}

	// FindDevice hands back a pointer into the slice, so flipping the
	// flag through it must stick
	cfg.FindDevice("Chroma Console").AutoConnect = true
	got := cfg.AutoConnectDevices()
	if len(got) != 1 || got[0].PortName != "Chroma Console" {
		t.Errorf("AutoConnectDevices = %v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.AddDevice(DeviceConfig{PortName: "Microcosm MIDI 1", ProfileType: "Microcosm", Channel: 3, AutoConnect: true})
	cfg.UI.LastDevice = "Microcosm MIDI 1"
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if want, got := "Microcosm MIDI 1", loaded.UI.LastDevice; want != got {
		t.Errorf("LastDevice = %q, want %q", got, want)
	}
	d := loaded.FindDevice("Microcosm MIDI 1")
	if d == nil {
		t.Fatal("saved device missing after reload")
	}
	if !d.AutoConnect || d.Channel != 3 {
		t.Errorf("device = %+v", d)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Devices) != 0 || cfg.UI.LastDevice != "" {
		t.Errorf("fresh config = %+v", cfg)
	}
}
