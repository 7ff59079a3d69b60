// Package config loads service settings from .env and the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceHTTP      = "http"
	SourceFirestore = "firestore"
)

type Config struct {
	Port                string
	IncidentAPIURL      string
	IncidentSource      string
	FetchTimeout        time.Duration
	MapContainer        string
	MapCenterLat        float64
	MapCenterLon        float64
	MapZoom             int
	AutoRefreshInterval time.Duration
	MapsCredentials     string
	FirebaseCredentials string
	OpenAIAPIKey        string
	DeviceLat           *float64
	DeviceLon           *float64
	GinMode             string
}

func defaults() Config {
	return Config{
		Port:                "8080",
		IncidentAPIURL:      "http://localhost:5000",
		IncidentSource:      SourceHTTP,
		MapContainer:        "incidentMap",
		MapCenterLat:        40.7128,
		MapCenterLon:        -74.0060,
		MapZoom:             10,
		AutoRefreshInterval: 30 * time.Second,
	}
}

// Load reads an optional .env file, then the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	} else if err != nil {
		log.Println("[config] no .env file, using the environment")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, starting from the defaults.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := defaults()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("PORT"); ok {
		cfg.Port = v
	}
	if v, ok := get("INCIDENT_API_URL"); ok {
		cfg.IncidentAPIURL = v
	}
	if v, ok := get("INCIDENT_SOURCE"); ok {
		v = strings.ToLower(v)
		if v != SourceHTTP && v != SourceFirestore {
			return Config{}, fmt.Errorf("INCIDENT_SOURCE must be %q or %q, got %q", SourceHTTP, SourceFirestore, v)
		}
		cfg.IncidentSource = v
	}
	if v, ok := get("MAP_CONTAINER"); ok {
		cfg.MapContainer = v
	}
	if v, ok := get("MAPS_CREDENTIALS"); ok {
		cfg.MapsCredentials = v
	}
	if v, ok := get("FIREBASE_CREDENTIALS"); ok {
		cfg.FirebaseCredentials = v
	}
	if v, ok := get("OPENAI_API_KEY"); ok {
		cfg.OpenAIAPIKey = v
	}
	if v, ok := get("GIN_MODE"); ok {
		cfg.GinMode = v
	}

	var err error
	if cfg.FetchTimeout, err = duration(get, "FETCH_TIMEOUT", cfg.FetchTimeout); err != nil {
		return Config{}, err
	}
	if cfg.AutoRefreshInterval, err = duration(get, "AUTO_REFRESH_INTERVAL", cfg.AutoRefreshInterval); err != nil {
		return Config{}, err
	}
	if cfg.MapCenterLat, err = float(get, "MAP_CENTER_LAT", cfg.MapCenterLat); err != nil {
		return Config{}, err
	}
	if cfg.MapCenterLon, err = float(get, "MAP_CENTER_LON", cfg.MapCenterLon); err != nil {
		return Config{}, err
	}
	if v, ok := get("MAP_ZOOM"); ok {
		if cfg.MapZoom, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("MAP_ZOOM: %w", err)
		}
	}

	_, hasLat := get("DEVICE_LAT")
	_, hasLon := get("DEVICE_LON")
	if hasLat && hasLon {
		lat, err := float(get, "DEVICE_LAT", 0)
		if err != nil {
			return Config{}, err
		}
		lon, err := float(get, "DEVICE_LON", 0)
		if err != nil {
			return Config{}, err
		}
		cfg.DeviceLat, cfg.DeviceLon = &lat, &lon
	}

	return cfg, nil
}

func duration(get func(string) (string, bool), key string, def time.Duration) (time.Duration, error) {
	v, ok := get(key)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func float(get func(string) (string, bool), key string, def float64) (float64, error) {
	v, ok := get(key)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
