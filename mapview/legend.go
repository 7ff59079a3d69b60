package mapview

import (
	"html/template"

	"go-crisismap/types"
)

// LegendEntry is one row of the map legend.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Glyph string `json:"glyph"`
}

// Legend lists the marker kinds explained on the map, in display order.
func Legend() []LegendEntry {
	fire := IncidentIcon(types.Fire, types.Critical)
	medical := IncidentIcon(types.Medical, types.High)
	accident := IncidentIcon(types.Accident, types.Medium)
	resource := ResourceIcon(types.Vehicle, types.Available)

	return []LegendEntry{
		{Label: "Fire Emergency", Color: fire.Color, Glyph: fire.Glyph},
		{Label: "Medical Emergency", Color: medical.Color, Glyph: medical.Glyph},
		{Label: "Traffic Accident", Color: accident.Color, Glyph: accident.Glyph},
		{Label: "Available Resource", Color: resource.Color, Glyph: resource.Glyph},
	}
}

var legendTemplate = template.Must(template.New("legend").Parse(`<div class="map-legend bg-white p-2 rounded shadow-sm">
    <h6 class="mb-2">Legend</h6>
    {{- range . }}
    <div class="d-flex align-items-center mb-1">
        <span class="me-2" style="display:inline-block;width:16px;height:16px;border-radius:50%;background-color:{{ .Color }};"></span>
        <span>{{ .Glyph }} {{ .Label }}</span>
    </div>
    {{- end }}
</div>`))

const refreshControlHTML = `<button class="btn btn-sm btn-primary" data-map-refresh title="Refresh Map"><i class="fas fa-sync-alt"></i></button>`

func legendHTML() string {
	return render(legendTemplate, Legend())
}
