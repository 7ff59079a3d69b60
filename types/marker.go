package types

import "github.com/paulmach/orb"

// LatLng is a WGS84 coordinate pair in the order Leaflet expects.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point converts to an orb point (x = longitude, y = latitude).
func (l LatLng) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

func FromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// ValidLatLng reports whether lat/lng lie within [-90,90] and [-180,180].
func ValidLatLng(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func locate(lat, lng *float64) (LatLng, bool) {
	if lat == nil || lng == nil {
		return LatLng{}, false
	}
	if !ValidLatLng(*lat, *lng) {
		return LatLng{}, false
	}
	return LatLng{Lat: *lat, Lng: *lng}, true
}

type MarkerKind string

const (
	IncidentMarker MarkerKind = "incident"
	ResourceMarker MarkerKind = "resource"
	UserMarker     MarkerKind = "user"
)

// Icon is the div-icon configuration of a marker.
type Icon struct {
	ClassName   string `json:"className"`
	Color       string `json:"color"`
	Glyph       string `json:"glyph"`
	HTML        string `json:"html"`
	Size        [2]int `json:"iconSize"`
	Anchor      [2]int `json:"iconAnchor"`
	PopupAnchor [2]int `json:"popupAnchor"`
}

// Marker is one map-attached representation of an incident, resource, or the viewer.
type Marker struct {
	ID       string     `json:"id"`
	Kind     MarkerKind `json:"kind"`
	Position LatLng     `json:"position"`
	Icon     Icon       `json:"icon"`
	Popup    string     `json:"popup"`
}
