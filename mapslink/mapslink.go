// Package mapslink builds Google Maps links and the HTML fragments that
// carry them.
package mapslink

import (
	"bytes"
	"html/template"
	"log"
	"net/url"
	"strconv"
	"strings"

	"go-crisismap/display"
	"go-crisismap/types"
)

const (
	baseURL    = "https://www.google.com/maps"
	directions = baseURL + "/dir"
	linkZoom   = "15"
)

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pair(p types.LatLng) string {
	return coord(p.Lat) + "," + coord(p.Lng)
}

// Link opens Google Maps centered on and pinning the point.
func Link(lat, lng float64) string {
	p := pair(types.LatLng{Lat: lat, Lng: lng})
	q := url.Values{}
	q.Set("q", p)
	q.Set("ll", p)
	q.Set("z", linkZoom)
	return baseURL + "?" + q.Encode()
}

// Directions routes from one point to another.
func Directions(from, to types.LatLng) string {
	return MultiStop([]types.LatLng{from, to})
}

// MultiStop routes through every point in order.
func MultiStop(points []types.LatLng) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = pair(p)
	}
	return directions + "/" + strings.Join(parts, "/")
}

var funcs = template.FuncMap{
	"coords": display.Coordinates,
	"link":   func(p types.LatLng) string { return Link(p.Lat, p.Lng) },
}

var cardTemplate = template.Must(template.New("card").Funcs(funcs).Parse(`<div class="location-card p-3 border rounded mb-3">
    <h6 class="mb-2"><i class="fas fa-map-marker-alt text-danger me-2"></i>Incident Location</h6>
    <p class="mb-2"><strong>Coordinates:</strong> {{ coords .Pos.Lat .Pos.Lng 6 }}</p>
    <p class="mb-3"><strong>Address:</strong> {{ if .Address }}{{ .Address }}{{ else }}Address not provided{{ end }}</p>
    <div class="d-flex gap-2 flex-wrap">
        <a href="{{ link .Pos }}" target="_blank" class="btn btn-primary btn-sm"><i class="fab fa-google me-1"></i>View on Google Maps</a>
        <button onclick="getDirections({{ .Pos.Lat }}, {{ .Pos.Lng }})" class="btn btn-success btn-sm"><i class="fas fa-route me-1"></i>Get Directions</button>
        <button onclick="copyCoordinates({{ .Pos.Lat }}, {{ .Pos.Lng }})" class="btn btn-outline-secondary btn-sm"><i class="fas fa-copy me-1"></i>Copy Coordinates</button>
    </div>
</div>`))

const noLocation = `<p class="text-muted">No location data available</p>`

// LocationCard renders the location panel of an incident detail page.
func LocationCard(inc types.Incident) string {
	pos, ok := inc.Position()
	if !ok {
		return noLocation
	}
	return render(cardTemplate, struct {
		Pos     types.LatLng
		Address string
	}{pos, inc.Address})
}

var overviewTemplate = template.Must(template.New("overview").Funcs(funcs).Parse(`{{ if not .Total -}}
<div class="text-center py-4">
    <i class="fas fa-map-marked-alt fa-3x text-muted mb-3"></i>
    <h5 class="text-muted">No Active Incidents</h5>
    <p class="text-muted">No incidents with location data to display</p>
</div>
{{- else if not .Items -}}
<div class="text-center py-4">
    <i class="fas fa-map-marked-alt fa-3x text-muted mb-3"></i>
    <h5 class="text-muted">No Location Data</h5>
    <p class="text-muted">No incidents have location coordinates</p>
</div>
{{- else -}}
<div class="mb-3">
    <div class="d-flex justify-content-between align-items-center mb-3">
        <h6 class="mb-0">Live Incident Locations ({{ len .Items }})</h6>
        <a href="{{ .AllURL }}" target="_blank" class="btn btn-primary btn-sm"><i class="fab fa-google me-1"></i>View All on Map</a>
    </div>
</div>
<div class="incident-list" style="max-height: 400px; overflow-y: auto;">
    {{- range .Items }}
    <div class="card mb-2">
        <div class="card-body py-2">
            <div class="row align-items-center">
                <div class="col-md-6">
                    <h6 class="mb-1">{{ .Incident.Title }}</h6>
                    <div class="mb-1">
                        <span class="badge {{ .Incident.Priority.BadgeClass }} me-1">{{ .Incident.Priority }}</span>
                        <span class="badge {{ .Incident.Status.BadgeClass }}">{{ .Incident.Status }}</span>
                    </div>
                    <small class="text-muted">{{ .Incident.IncidentType.Label }}</small>
                </div>
                <div class="col-md-6 text-end">
                    <div class="btn-group btn-group-sm">
                        <a href="{{ link .Pos }}" target="_blank" class="btn btn-outline-primary btn-sm"><i class="fas fa-map-marker-alt me-1"></i>View</a>
                        <button onclick="getDirections({{ .Pos.Lat }}, {{ .Pos.Lng }})" class="btn btn-outline-success btn-sm"><i class="fas fa-route me-1"></i>Directions</button>
                    </div>
                </div>
            </div>
        </div>
    </div>
    {{- end }}
</div>
{{- end }}`))

type overviewItem struct {
	Incident types.Incident
	Pos      types.LatLng
}

// Overview lists the geolocated incidents with per-incident and
// all-stops links.
func Overview(incidents []types.Incident) string {
	var items []overviewItem
	var stops []types.LatLng
	for _, inc := range incidents {
		pos, ok := inc.Position()
		if !ok {
			continue
		}
		items = append(items, overviewItem{Incident: inc, Pos: pos})
		stops = append(stops, pos)
	}

	data := struct {
		Total  int
		Items  []overviewItem
		AllURL string
	}{Total: len(incidents), Items: items}
	if len(stops) > 0 {
		data.AllURL = MultiStop(stops)
	}
	return render(overviewTemplate, data)
}

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		log.Printf("[maps] Error rendering %s: %v", t.Name(), err)
		return ""
	}
	return buf.String()
}
