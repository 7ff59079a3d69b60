package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "8080" || cfg.IncidentSource != SourceHTTP || cfg.MapContainer != "incidentMap" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MapZoom != 10 || cfg.AutoRefreshInterval != 30*time.Second || cfg.FetchTimeout != 0 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DeviceLat != nil || cfg.DeviceLon != nil {
		t.Error("device position set without DEVICE_LAT/DEVICE_LON")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"PORT":                  "9090",
		"INCIDENT_SOURCE":       "Firestore",
		"FETCH_TIMEOUT":         "5s",
		"AUTO_REFRESH_INTERVAL": "1m",
		"MAP_CENTER_LAT":        "51.5",
		"MAP_CENTER_LON":        "-0.12",
		"MAP_ZOOM":              "12",
		"DEVICE_LAT":            "34.05",
		"DEVICE_LON":            "-118.24",
		"MAP_CONTAINER":         "  ",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "9090" || cfg.IncidentSource != SourceFirestore {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.FetchTimeout != 5*time.Second || cfg.AutoRefreshInterval != time.Minute {
		t.Errorf("durations = %v %v", cfg.FetchTimeout, cfg.AutoRefreshInterval)
	}
	if cfg.MapCenterLat != 51.5 || cfg.MapCenterLon != -0.12 || cfg.MapZoom != 12 {
		t.Errorf("map = %v %v %d", cfg.MapCenterLat, cfg.MapCenterLon, cfg.MapZoom)
	}
	if cfg.DeviceLat == nil || *cfg.DeviceLat != 34.05 || *cfg.DeviceLon != -118.24 {
		t.Errorf("device = %v %v", cfg.DeviceLat, cfg.DeviceLon)
	}
	if cfg.MapContainer != "incidentMap" {
		t.Errorf("blank MAP_CONTAINER should keep the default, got %q", cfg.MapContainer)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"source":   {"INCIDENT_SOURCE": "kafka"},
		"timeout":  {"FETCH_TIMEOUT": "soon"},
		"interval": {"AUTO_REFRESH_INTERVAL": "30"},
		"lat":      {"MAP_CENTER_LAT": "north"},
		"zoom":     {"MAP_ZOOM": "1.5"},
		"device":   {"DEVICE_LAT": "x", "DEVICE_LON": "1"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := FromEnv(env(vars)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("INCIDENT_API_URL=http://incidents.test\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INCIDENT_API_URL", "")
	os.Unsetenv("INCIDENT_API_URL")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IncidentAPIURL != "http://incidents.test" {
		t.Fatalf("IncidentAPIURL = %q", cfg.IncidentAPIURL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
