package mapview

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-crisismap/cronjobs"
	"go-crisismap/geolocation"
	"go-crisismap/leaflet"
	"go-crisismap/metrics"
	"go-crisismap/types"
)

const userMarkerID = "user-location"

// Renderer owns one map view, the markers attached to it and the incident
// list they were built from. It is safe for concurrent use.
//
// Refresh, Filter and AddIncidentsToMap each take a new generation. A
// refresh fetches without holding the lock and only applies its result if
// no newer operation started meanwhile, so the markers always reflect the
// most recently initiated operation.
type Renderer struct {
	lib     Library
	source  Source
	locator geolocation.Locator
	visible func() bool
	metrics *metrics.MapCollector

	mu         sync.Mutex
	surface    Surface
	container  string
	view       View
	markers    []types.Marker
	userMarker *types.Marker
	incidents  []types.Incident
	generation uint64
}

func New(lib Library, source Source, opts ...Option) *Renderer {
	r := &Renderer{
		lib:     lib,
		source:  source,
		visible: func() bool { return true },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize creates the map in containerID and renders the supplied data.
// It returns nil, after logging, when no mapping library is available or the
// container does not exist; the renderer then stays without a map.
func (r *Renderer) Initialize(containerID string, opts InitOptions) Surface {
	if r.lib == nil {
		log.Println("[map] Mapping library not loaded")
		return nil
	}

	surface, err := r.lib.NewMap(containerID)
	if err != nil {
		log.Printf("[map] Error creating map: %v", err)
		return nil
	}

	center := DefaultCenter
	if opts.Center != nil {
		center = *opts.Center
	}
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	surface.SetView(center, zoom)
	surface.AddTileLayer(leaflet.TileLayer{
		URL:         leaflet.DefaultTileURL,
		Attribution: leaflet.DefaultAttribution,
		MaxZoom:     leaflet.DefaultMaxZoom,
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	r.surface = surface
	r.container = containerID
	r.view = View{Center: center, Zoom: zoom}
	r.markers = nil
	r.userMarker = nil

	if len(opts.Incidents) > 0 {
		r.incidents = cloneIncidents(opts.Incidents)
		r.renderIncidentsLocked(opts.Incidents)
	}
	if len(opts.Resources) > 0 {
		r.renderResourcesLocked(opts.Resources)
	}
	if !opts.HideControls {
		surface.AddControl(leaflet.Control{Name: "legend", Position: "bottomright", HTML: legendHTML()})
		surface.AddControl(leaflet.Control{Name: "refresh", Position: "topleft", HTML: refreshControlHTML})
	}

	log.Printf("[map] Map initialized in #%s with %d markers", containerID, len(r.markers))
	return surface
}

// InitializeWithUserLocation centers the map on the viewer and marks their
// position. If the position cannot be obtained it falls back to Initialize
// with opts unchanged.
func (r *Renderer) InitializeWithUserLocation(ctx context.Context, containerID string, opts InitOptions) Surface {
	pos, err := geolocation.Await(ctx, r.locator, geolocation.DefaultOptions)
	if err != nil {
		log.Printf("[map] Error getting user location: %v. %s", err, geolocation.ErrorMessage(err))
		return r.Initialize(containerID, opts)
	}

	here := pos.LatLng
	opts.Center = &here
	opts.Zoom = UserLocationZoom
	surface := r.Initialize(containerID, opts)
	if surface == nil {
		return nil
	}

	marker := types.Marker{
		ID:       userMarkerID,
		Kind:     types.UserMarker,
		Position: here,
		Icon:     UserLocationIcon(),
		Popup:    "Your Location",
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.surface != surface {
		return surface
	}
	surface.AddMarker(marker)
	r.userMarker = &marker
	return surface
}

// AddIncidentsToMap attaches a marker for every incident with coordinates,
// fits the view around all markers and caches incidents for filtering.
func (r *Renderer) AddIncidentsToMap(incidents []types.Incident) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.incidents = cloneIncidents(incidents)
	r.renderIncidentsLocked(incidents)
}

// AddResourcesToMap attaches a marker for every resource with coordinates.
func (r *Renderer) AddResourcesToMap(resources []types.Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderResourcesLocked(resources)
}

// Refresh drops every marker and re-renders from a fresh fetch. On failure
// the map is left empty and the error is returned. A result overtaken by a
// newer operation is discarded.
func (r *Renderer) Refresh(ctx context.Context) error {
	id := uuid.NewString()

	r.mu.Lock()
	if r.surface == nil {
		r.mu.Unlock()
		return ErrNoMap
	}
	if r.source == nil {
		r.mu.Unlock()
		return ErrNoSource
	}
	r.generation++
	gen := r.generation
	r.clearLocked()
	r.mu.Unlock()

	start := time.Now()
	incidents, err := r.source.FetchIncidents(ctx)
	took := time.Since(start)

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		log.Printf("[map] refresh %s superseded after %s, discarding result", id, took)
		r.metrics.ObserveRefresh(metrics.OutcomeStale, took)
		return nil
	}
	if err != nil {
		log.Printf("[map] refresh %s: Error refreshing map data: %v", id, err)
		r.metrics.ObserveRefresh(metrics.OutcomeError, took)
		r.metrics.SetMarkers(len(r.markers))
		return fmt.Errorf("refresh incidents: %w", err)
	}

	// A payload without an incidents key leaves the cache alone.
	if incidents != nil {
		r.incidents = cloneIncidents(incidents)
		r.renderIncidentsLocked(incidents)
	}
	log.Printf("[map] refresh %s: %d markers in %s", id, len(r.markers), took)
	r.metrics.ObserveRefresh(metrics.OutcomeOK, took)
	return nil
}

// Filter re-renders the cached incidents matching a single field. Unknown
// filter types keep every incident. The cache itself is not narrowed.
func (r *Renderer) Filter(filterType FilterType, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	r.clearLocked()
	r.renderIncidentsLocked(FilterIncidents(r.incidents, filterType, value))
}

// StartAutoRefresh refreshes the map every interval while a map exists and
// someone is viewing it. The returned func stops the schedule.
func (r *Renderer) StartAutoRefresh(interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	c := cronjobs.InitCronJobs(cronjobs.Job{
		Name: "Map Auto Refresh",
		Spec: cronjobs.Every(interval),
		Run:  r.autoRefresh,
	})
	return func() { c.Stop() }
}

func (r *Renderer) autoRefresh() {
	if !r.Active() || !r.visible() {
		return
	}
	// Errors are logged by Refresh.
	_ = r.Refresh(context.Background())
}

// Active reports whether a map has been created.
func (r *Renderer) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.surface != nil
}

func (r *Renderer) Container() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.container
}

// Markers returns the incident and resource markers currently attached, in
// attach order. The viewer marker is reported by UserMarker.
func (r *Renderer) Markers() []types.Marker {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Marker(nil), r.markers...)
}

func (r *Renderer) UserMarker() (types.Marker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.userMarker == nil {
		return types.Marker{}, false
	}
	return *r.userMarker, true
}

// Incidents returns the cached incident list.
func (r *Renderer) Incidents() []types.Incident {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneIncidents(r.incidents)
}

func (r *Renderer) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.view
	if v.Bounds != nil {
		b := *v.Bounds
		v.Bounds = &b
	}
	return v
}

func (r *Renderer) renderIncidentsLocked(incidents []types.Incident) {
	if r.surface == nil {
		log.Println("[map] No map to add incidents to")
		return
	}
	for _, inc := range incidents {
		pos, ok := inc.Position()
		if !ok {
			continue
		}
		r.attachLocked(types.Marker{
			ID:       "incident-" + strconv.FormatInt(inc.ID, 10),
			Kind:     types.IncidentMarker,
			Position: pos,
			Icon:     IncidentIcon(inc.IncidentType, inc.Priority),
			Popup:    IncidentPopup(inc),
		})
	}
	r.fitLocked()
	r.metrics.SetMarkers(len(r.markers))
}

func (r *Renderer) renderResourcesLocked(resources []types.Resource) {
	if r.surface == nil {
		log.Println("[map] No map to add resources to")
		return
	}
	for _, res := range resources {
		pos, ok := res.Position()
		if !ok {
			continue
		}
		r.attachLocked(types.Marker{
			ID:       "resource-" + strconv.FormatInt(res.ID, 10),
			Kind:     types.ResourceMarker,
			Position: pos,
			Icon:     ResourceIcon(res.ResourceType, res.AvailabilityStatus),
			Popup:    ResourcePopup(res),
		})
	}
	r.metrics.SetMarkers(len(r.markers))
}

func (r *Renderer) attachLocked(m types.Marker) {
	r.surface.AddMarker(m)
	r.markers = append(r.markers, m)
}

// clearLocked detaches every incident and resource marker.
func (r *Renderer) clearLocked() {
	if r.surface != nil {
		for _, m := range r.markers {
			r.surface.RemoveMarker(m.ID)
		}
	}
	r.markers = nil
	r.metrics.SetMarkers(0)
}

// fitLocked frames all attached markers. With no markers the view is left as is.
func (r *Renderer) fitLocked() {
	positions := make([]types.LatLng, 0, len(r.markers))
	for _, m := range r.markers {
		positions = append(positions, m.Position)
	}
	b, ok := PaddedBounds(positions, boundsPadding)
	if !ok {
		return
	}
	r.surface.FitBounds(b)
	r.view.Bounds = &b
	r.view.Center = types.FromPoint(b.Center())
}

func cloneIncidents(in []types.Incident) []types.Incident {
	if in == nil {
		return nil
	}
	return append([]types.Incident(nil), in...)
}
