package geolocation

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"go-crisismap/types"
)

const earthRadiusKM = 6371.0

var (
	ErrUnsupported         = errors.New("geolocation is not supported")
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("location request timed out")
)

// Options mirrors the knobs of a single position request.
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// DefaultOptions are the settings used when locating the viewer for the map.
var DefaultOptions = Options{
	HighAccuracy: true,
	Timeout:      10 * time.Second,
	MaximumAge:   time.Minute,
}

type Position struct {
	types.LatLng
	AccuracyMeters float64
	Timestamp      time.Time
}

// Result is the single outcome of a Locate call: exactly one of Position or Err is set.
type Result struct {
	Position Position
	Err      error
}

// Locator resolves the device position. The returned channel is buffered and
// receives exactly one Result.
type Locator interface {
	Locate(ctx context.Context, opts Options) <-chan Result
}

// Await blocks for the result of l, bounded by opts.Timeout and ctx.
// A nil locator yields ErrUnsupported.
func Await(ctx context.Context, l Locator, opts Options) (Position, error) {
	if l == nil {
		return Position{}, ErrUnsupported
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	select {
	case res := <-l.Locate(ctx, opts):
		return res.Position, res.Err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Position{}, ErrTimeout
		}
		return Position{}, ctx.Err()
	}
}

// StaticLocator always reports the same position, e.g. a configured depot.
type StaticLocator struct {
	At types.LatLng
}

func (s StaticLocator) Locate(_ context.Context, _ Options) <-chan Result {
	ch := make(chan Result, 1)
	ch <- Result{Position: Position{LatLng: s.At, Timestamp: time.Now()}}
	return ch
}

// ErrorMessage returns user-facing guidance for a locate failure.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Location access denied. Please enable location permissions in your browser settings."
	case errors.Is(err, ErrPositionUnavailable):
		return "Location information is unavailable. Please try again or enter your location manually."
	case errors.Is(err, ErrTimeout):
		return "Location request timed out. Please try again or enter your location manually."
	default:
		return "An unknown error occurred while retrieving your location. Please enter your location manually."
	}
}

// Distance returns the great-circle distance in kilometers (haversine).
func Distance(a, b types.LatLng) float64 {
	radLat1 := a.Lat * math.Pi / 180
	radLat2 := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKM * c
}

// ValidCoordinates reports whether both values are finite and within WGS84 range.
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return types.ValidLatLng(lat, lng)
}

// Nearby pairs an incident with its distance from an origin.
type Nearby struct {
	Incident   types.Incident `json:"incident"`
	DistanceKM float64        `json:"distance_km"`
}

// NearbyIncidents returns the geolocated incidents within radiusKM of origin,
// closest first. A non-positive radius keeps every geolocated incident.
func NearbyIncidents(origin types.LatLng, incidents []types.Incident, radiusKM float64) []Nearby {
	out := make([]Nearby, 0, len(incidents))
	for _, inc := range incidents {
		pos, ok := inc.Position()
		if !ok {
			continue
		}
		d := Distance(origin, pos)
		if radiusKM > 0 && d > radiusKM {
			continue
		}
		out = append(out, Nearby{Incident: inc, DistanceKM: d})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKM < out[j].DistanceKM })
	return out
}
