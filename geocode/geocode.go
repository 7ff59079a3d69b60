package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"go-crisismap/display"
	"go-crisismap/geolocation"
	"go-crisismap/types"

	"googlemaps.github.io/maps"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
	clientErr  error
)

// InitMapsClient initializes and returns a singleton Google Maps client for
// the MAPS_CREDENTIALS API key.
func InitMapsClient(apiKey string) (*maps.Client, error) {
	clientOnce.Do(func() {
		if apiKey == "" {
			clientErr = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, clientErr = maps.NewClient(maps.WithAPIKey(apiKey))
		if clientErr != nil {
			log.Printf("Failed to create maps client: %v", clientErr)
		}
	})
	return mapsClient, clientErr
}

// reverseGeocoder is the slice of *maps.Client used for address lookups.
type reverseGeocoder interface {
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// geolocater is the slice of *maps.Client used to locate the device.
type geolocater interface {
	Geolocate(ctx context.Context, r *maps.GeolocationRequest) (*maps.GeolocationResult, error)
}

// Geocoder turns coordinates into short human addresses.
type Geocoder struct {
	client reverseGeocoder
}

func NewGeocoder(client *maps.Client) *Geocoder {
	if client == nil {
		return &Geocoder{}
	}
	return &Geocoder{client: client}
}

// ReverseGeocode returns "locality, admin area, country" for the point.
// On any failure, or when nothing useful comes back, it falls back to the
// formatted coordinates so auto-filled forms always get a value.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lng float64) string {
	fallback := display.Coordinates(lat, lng, 6)
	if g == nil || g.client == nil {
		return fallback
	}

	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		log.Printf("Reverse geocoding failed for %s: %v", fallback, err)
		return fallback
	}
	if len(results) == 0 {
		log.Printf("No reverse geocode results for %s", fallback)
		return fallback
	}

	if addr := shortAddress(results[0].AddressComponents); addr != "" {
		return addr
	}
	if results[0].FormattedAddress != "" {
		return results[0].FormattedAddress
	}
	return fallback
}

func shortAddress(components []maps.AddressComponent) string {
	var locality, region, country string
	for _, c := range components {
		for _, t := range c.Types {
			switch t {
			case "locality", "postal_town":
				if locality == "" {
					locality = c.LongName
				}
			case "administrative_area_level_1":
				region = c.LongName
			case "country":
				country = c.LongName
			}
		}
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{locality, region, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Locator resolves the device position through the Google Geolocation API,
// reusing the last fix while it is younger than Options.MaximumAge.
type Locator struct {
	client geolocater

	mu   sync.Mutex
	last *geolocation.Position
}

func NewLocator(client *maps.Client) *Locator {
	if client == nil {
		return &Locator{}
	}
	return &Locator{client: client}
}

func (l *Locator) Locate(ctx context.Context, opts geolocation.Options) <-chan geolocation.Result {
	ch := make(chan geolocation.Result, 1)

	if cached, ok := l.cached(opts.MaximumAge); ok {
		ch <- geolocation.Result{Position: cached}
		return ch
	}
	if l.client == nil {
		ch <- geolocation.Result{Err: geolocation.ErrUnsupported}
		return ch
	}

	go func() {
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}

		res, err := l.client.Geolocate(ctx, &maps.GeolocationRequest{ConsiderIP: true})
		if err != nil {
			ch <- geolocation.Result{Err: classify(ctx, err)}
			return
		}

		pos := geolocation.Position{
			LatLng:         types.LatLng{Lat: res.Location.Lat, Lng: res.Location.Lng},
			AccuracyMeters: res.Accuracy,
			Timestamp:      time.Now(),
		}
		l.mu.Lock()
		l.last = &pos
		l.mu.Unlock()
		ch <- geolocation.Result{Position: pos}
	}()

	return ch
}

func (l *Locator) cached(maxAge time.Duration) (geolocation.Position, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last == nil || maxAge <= 0 {
		return geolocation.Position{}, false
	}
	if time.Since(l.last.Timestamp) > maxAge {
		return geolocation.Position{}, false
	}
	return *l.last, true
}

func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", geolocation.ErrTimeout, err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "denied") || strings.Contains(msg, "forbidden") {
		return fmt.Errorf("%w: %v", geolocation.ErrPermissionDenied, err)
	}
	return fmt.Errorf("%w: %v", geolocation.ErrPositionUnavailable, err)
}
