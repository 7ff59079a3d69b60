// Package mapview renders incidents and resources as markers on a map view
// and keeps that view refreshable and filterable.
package mapview

import (
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"

	"go-crisismap/geolocation"
	"go-crisismap/leaflet"
	"go-crisismap/metrics"
	"go-crisismap/types"
)

var (
	ErrNoMap    = errors.New("map is not initialized")
	ErrNoSource = errors.New("no incident source configured")
)

const (
	DefaultZoom            = 10
	UserLocationZoom       = 13
	DefaultRefreshInterval = 30 * time.Second
)

// DefaultCenter is the fallback map center (New York City).
var DefaultCenter = types.LatLng{Lat: 40.7128, Lng: -74.0060}

// Surface is a live map view markers can be attached to.
type Surface interface {
	SetView(center types.LatLng, zoom int)
	FitBounds(b orb.Bound)
	AddTileLayer(t leaflet.TileLayer)
	AddControl(c leaflet.Control)
	AddMarker(m types.Marker)
	RemoveMarker(id string)
}

// Library creates map views bound to a page container.
type Library interface {
	NewMap(containerID string) (Surface, error)
}

// Source supplies the incident and resource collections.
type Source interface {
	FetchIncidents(ctx context.Context) ([]types.Incident, error)
	FetchResources(ctx context.Context) ([]types.Resource, error)
}

type leafletLibrary struct {
	lib *leaflet.Library
}

// Leaflet adapts a leaflet.Library to Library. A nil lib yields a nil
// Library, which the renderer treats as the mapping library being absent.
func Leaflet(lib *leaflet.Library) Library {
	if lib == nil {
		return nil
	}
	return leafletLibrary{lib: lib}
}

func (l leafletLibrary) NewMap(containerID string) (Surface, error) {
	m, err := l.lib.NewMap(containerID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

type Option func(*Renderer)

// WithLocator sets how InitializeWithUserLocation finds the viewer.
func WithLocator(l geolocation.Locator) Option {
	return func(r *Renderer) { r.locator = l }
}

// WithVisibility gates auto refresh on visible reporting true. A nil func
// keeps the default of always visible.
func WithVisibility(visible func() bool) Option {
	return func(r *Renderer) {
		if visible != nil {
			r.visible = visible
		}
	}
}

func WithMetrics(c *metrics.MapCollector) Option {
	return func(r *Renderer) { r.metrics = c }
}

// InitOptions configures Initialize. Zero Center and Zoom select the
// defaults; controls are shown unless HideControls is set.
type InitOptions struct {
	Center       *types.LatLng
	Zoom         int
	Incidents    []types.Incident
	Resources    []types.Resource
	HideControls bool
}

// View is the camera of the current map.
type View struct {
	Center types.LatLng `json:"center"`
	Zoom   int          `json:"zoom"`
	Bounds *orb.Bound   `json:"bounds,omitempty"`
}
