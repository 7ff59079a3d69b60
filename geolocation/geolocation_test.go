package geolocation

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"go-crisismap/types"
)

type slowLocator struct{}

func (slowLocator) Locate(ctx context.Context, _ Options) <-chan Result {
	return make(chan Result, 1) // never resolves
}

type failingLocator struct{ err error }

func (f failingLocator) Locate(context.Context, Options) <-chan Result {
	ch := make(chan Result, 1)
	ch <- Result{Err: f.err}
	return ch
}

func TestAwaitStatic(t *testing.T) {
	want := types.LatLng{Lat: 51.5, Lng: -0.12}
	pos, err := Await(context.Background(), StaticLocator{At: want}, DefaultOptions)
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if pos.LatLng != want {
		t.Fatalf("position = %+v, want %+v", pos.LatLng, want)
	}
}

func TestAwaitNilLocator(t *testing.T) {
	if _, err := Await(context.Background(), nil, DefaultOptions); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestAwaitTimeout(t *testing.T) {
	opts := Options{Timeout: 20 * time.Millisecond}
	if _, err := Await(context.Background(), slowLocator{}, opts); !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestAwaitFailure(t *testing.T) {
	_, err := Await(context.Background(), failingLocator{err: ErrPermissionDenied}, DefaultOptions)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if msg := ErrorMessage(err); msg == "" || msg[:8] != "Location" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestDistance(t *testing.T) {
	nyc := types.LatLng{Lat: 40.7128, Lng: -74.0060}
	la := types.LatLng{Lat: 34.0522, Lng: -118.2437}
	d := Distance(nyc, la)
	if math.Abs(d-3936) > 5 {
		t.Fatalf("NYC-LA distance = %.1f km, want ~3936", d)
	}
	if Distance(nyc, nyc) != 0 {
		t.Fatal("distance to self should be 0")
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lng float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.1, 0, false},
		{0, -180.5, false},
		{math.NaN(), 0, false},
	}
	for _, c := range cases {
		if got := ValidCoordinates(c.lat, c.lng); got != c.want {
			t.Errorf("ValidCoordinates(%v, %v) = %v", c.lat, c.lng, got)
		}
	}
}

func TestNearbyIncidents(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	incidents := []types.Incident{
		{ID: 1, Latitude: f(40.80), Longitude: f(-74.00)},
		{ID: 2, Latitude: f(40.72), Longitude: f(-74.00)},
		{ID: 3},
		{ID: 4, Latitude: f(34.05), Longitude: f(-118.24)},
	}
	origin := types.LatLng{Lat: 40.7128, Lng: -74.0060}

	got := NearbyIncidents(origin, incidents, 50)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Incident.ID != 2 || got[1].Incident.ID != 1 {
		t.Fatalf("order = %d,%d, want 2,1", got[0].Incident.ID, got[1].Incident.ID)
	}

	if all := NearbyIncidents(origin, incidents, 0); len(all) != 3 {
		t.Fatalf("unbounded len = %d, want 3", len(all))
	}
}
