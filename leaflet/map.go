// Package leaflet keeps the server-side state of Leaflet map instances and
// renders the page that boots them in the browser.
package leaflet

import (
	"errors"
	"fmt"
	"sync"

	"github.com/paulmach/orb"

	"go-crisismap/types"
)

var ErrContainerNotFound = errors.New("map container not found")

const (
	DefaultTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = "© OpenStreetMap contributors"
	DefaultMaxZoom     = 18
)

type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
}

// Control is a widget pinned to a corner of the map (legend, refresh button).
type Control struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	HTML     string `json:"html"`
}

// State is a snapshot of a map instance, as shipped to the page.
type State struct {
	Container string           `json:"container"`
	Center    types.LatLng     `json:"center"`
	Zoom      int              `json:"zoom"`
	Bounds    *[2]types.LatLng `json:"bounds,omitempty"` // south-west, north-east
	Tiles     []TileLayer      `json:"tiles"`
	Controls  []Control        `json:"controls"`
	Markers   []types.Marker   `json:"markers"`
}

// Library creates maps for the containers a page declares.
type Library struct {
	mu         sync.Mutex
	containers map[string]bool
	maps       map[string]*Map
}

func New(containers ...string) *Library {
	lib := &Library{
		containers: make(map[string]bool, len(containers)),
		maps:       make(map[string]*Map),
	}
	for _, c := range containers {
		lib.containers[c] = true
	}
	return lib
}

// NewMap binds a fresh map instance to containerID, replacing any previous one.
func (l *Library) NewMap(containerID string) (*Map, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if containerID == "" || !l.containers[containerID] {
		return nil, fmt.Errorf("%w: %q", ErrContainerNotFound, containerID)
	}
	m := &Map{container: containerID}
	l.maps[containerID] = m
	return m, nil
}

// Lookup returns the map currently bound to containerID, if any.
func (l *Library) Lookup(containerID string) (*Map, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.maps[containerID]
	return m, ok
}

// Map is one live Leaflet view.
type Map struct {
	mu        sync.Mutex
	container string
	center    types.LatLng
	zoom      int
	bounds    *[2]types.LatLng
	tiles     []TileLayer
	controls  []Control
	markers   []types.Marker
}

func (m *Map) SetView(center types.LatLng, zoom int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = center
	m.zoom = zoom
	m.bounds = nil
}

// FitBounds moves the view so b is fully visible; the center becomes the
// middle of b and the page lets Leaflet pick the zoom.
func (m *Map) FitBounds(b orb.Bound) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sw := types.FromPoint(b.Min)
	ne := types.FromPoint(b.Max)
	m.bounds = &[2]types.LatLng{sw, ne}
	m.center = types.FromPoint(b.Center())
}

func (m *Map) AddTileLayer(t TileLayer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiles = append(m.tiles, t)
}

func (m *Map) AddControl(c Control) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.controls = append(m.controls, c)
}

func (m *Map) AddMarker(mk types.Marker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers = append(m.markers, mk)
}

// RemoveMarker detaches the marker with the given ID; unknown IDs are ignored.
func (m *Map) RemoveMarker(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, mk := range m.markers {
		if mk.ID == id {
			m.markers = append(m.markers[:i], m.markers[i+1:]...)
			return
		}
	}
}

// Markers returns a copy of the attached markers in attach order.
func (m *Map) Markers() []types.Marker {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Marker, len(m.markers))
	copy(out, m.markers)
	return out
}

func (m *Map) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := State{
		Container: m.container,
		Center:    m.center,
		Zoom:      m.zoom,
		Tiles:     append([]TileLayer(nil), m.tiles...),
		Controls:  append([]Control(nil), m.controls...),
		Markers:   append([]types.Marker(nil), m.markers...),
	}
	if m.bounds != nil {
		b := *m.bounds
		s.Bounds = &b
	}
	return s
}
