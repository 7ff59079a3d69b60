package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRefresh(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewMapCollector(reg)
	if err != nil {
		t.Fatalf("NewMapCollector: %v", err)
	}

	c.ObserveRefresh(OutcomeOK, 20*time.Millisecond)
	c.ObserveRefresh(OutcomeOK, 30*time.Millisecond)
	c.ObserveRefresh(OutcomeStale, time.Second)
	c.SetMarkers(4)

	if got := testutil.ToFloat64(c.Refreshes.WithLabelValues(OutcomeOK)); got != 2 {
		t.Fatalf("ok refreshes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Refreshes.WithLabelValues(OutcomeStale)); got != 1 {
		t.Fatalf("stale refreshes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Markers); got != 4 {
		t.Fatalf("markers = %v, want 4", got)
	}
}

func TestNewMapCollectorIsIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMapCollector(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewMapCollector(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	first.ObserveRefresh(OutcomeError, time.Millisecond)
	if got := testutil.ToFloat64(second.Refreshes.WithLabelValues(OutcomeError)); got != 1 {
		t.Fatalf("shared counter = %v, want 1", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *MapCollector
	c.ObserveRefresh(OutcomeOK, time.Millisecond)
	c.SetMarkers(3)
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewMapCollector(reg)
	if err != nil {
		t.Fatalf("NewMapCollector: %v", err)
	}
	c.SetMarkers(2)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "map_markers 2") {
		t.Fatalf("metrics output missing map_markers:\n%s", body)
	}
}
