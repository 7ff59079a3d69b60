package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-crisismap/geolocation"

	"googlemaps.github.io/maps"
)

type fakeReverse struct {
	results []maps.GeocodingResult
	err     error
	got     *maps.GeocodingRequest
}

func (f *fakeReverse) ReverseGeocode(_ context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	f.got = r
	return f.results, f.err
}

type fakeGeolocate struct {
	calls int
	res   *maps.GeolocationResult
	err   error
}

func (f *fakeGeolocate) Geolocate(context.Context, *maps.GeolocationRequest) (*maps.GeolocationResult, error) {
	f.calls++
	return f.res, f.err
}

func TestReverseGeocodeShortAddress(t *testing.T) {
	fake := &fakeReverse{results: []maps.GeocodingResult{{
		FormattedAddress: "1 Main St, Springfield, IL 62701, USA",
		AddressComponents: []maps.AddressComponent{
			{LongName: "1", Types: []string{"street_number"}},
			{LongName: "Springfield", Types: []string{"locality", "political"}},
			{LongName: "Illinois", Types: []string{"administrative_area_level_1", "political"}},
			{LongName: "United States", Types: []string{"country", "political"}},
		},
	}}}
	g := &Geocoder{client: fake}

	got := g.ReverseGeocode(context.Background(), 39.78, -89.65)
	if got != "Springfield, Illinois, United States" {
		t.Fatalf("address = %q", got)
	}
	if fake.got == nil || fake.got.LatLng == nil || fake.got.LatLng.Lat != 39.78 {
		t.Fatalf("request not forwarded: %+v", fake.got)
	}
}

func TestReverseGeocodeFallsBackToCoordinates(t *testing.T) {
	cases := map[string]*Geocoder{
		"error":     {client: &fakeReverse{err: errors.New("boom")}},
		"empty":     {client: &fakeReverse{}},
		"nil":       nil,
		"no client": {},
	}
	for name, g := range cases {
		if got := g.ReverseGeocode(context.Background(), 1.5, 2.25); got != "1.500000, 2.250000" {
			t.Errorf("%s: got %q", name, got)
		}
	}
}

func TestLocatorCachesWithinMaximumAge(t *testing.T) {
	fake := &fakeGeolocate{res: &maps.GeolocationResult{
		Location: maps.LatLng{Lat: 40.7, Lng: -74.0},
		Accuracy: 25,
	}}
	l := &Locator{client: fake}
	opts := geolocation.Options{Timeout: time.Second, MaximumAge: time.Minute}

	for i := 0; i < 2; i++ {
		pos, err := geolocation.Await(context.Background(), l, opts)
		if err != nil {
			t.Fatalf("Await: %v", err)
		}
		if pos.Lat != 40.7 || pos.AccuracyMeters != 25 {
			t.Fatalf("position = %+v", pos)
		}
	}
	if fake.calls != 1 {
		t.Fatalf("Geolocate calls = %d, want 1", fake.calls)
	}
}

func TestLocatorClassifiesErrors(t *testing.T) {
	l := &Locator{client: &fakeGeolocate{err: errors.New("maps: NOT_FOUND")}}
	_, err := geolocation.Await(context.Background(), l, geolocation.Options{Timeout: time.Second})
	if !errors.Is(err, geolocation.ErrPositionUnavailable) {
		t.Fatalf("err = %v, want ErrPositionUnavailable", err)
	}

	l = &Locator{client: &fakeGeolocate{err: errors.New("REQUEST_DENIED")}}
	_, err = geolocation.Await(context.Background(), l, geolocation.Options{Timeout: time.Second})
	if !errors.Is(err, geolocation.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestNilClients(t *testing.T) {
	if got := NewGeocoder(nil).ReverseGeocode(context.Background(), 1, 2); got != "1.000000, 2.000000" {
		t.Fatalf("ReverseGeocode = %q", got)
	}
	if _, err := geolocation.Await(context.Background(), NewLocator(nil), geolocation.DefaultOptions); !errors.Is(err, geolocation.ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
	if _, err := InitMapsClient(""); err == nil {
		t.Fatal("expected an error without an API key")
	}
}
