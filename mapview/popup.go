package mapview

import (
	"bytes"
	"html/template"
	"log"

	"go-crisismap/display"
	"go-crisismap/types"
)

var popupFuncs = template.FuncMap{
	"datetime": display.DateTime,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

var incidentPopup = template.Must(template.New("incident").Funcs(popupFuncs).Parse(`<div class="incident-popup">
    <h6 class="fw-bold">{{ .Title }}</h6>
    {{- if .Description }}
    <p class="mb-1 small">{{ .Description }}</p>
    {{- end }}
    <p class="mb-1"><span class="badge {{ .Status.BadgeClass }}">{{ .Status }}</span> <span class="badge {{ .Priority.BadgeClass }}">{{ .Priority }}</span></p>
    <p class="mb-1"><strong>Type:</strong> {{ .IncidentType.Label }}</p>
    <p class="mb-1"><strong>Reported:</strong> {{ datetime .CreatedAt }}</p>
    {{- with deref .AssignedTeam }}
    <p class="mb-1"><strong>Team:</strong> {{ . }}</p>
    {{- end }}
    <a href="/user/incident/{{ .ID }}" class="btn btn-sm btn-primary mt-2">View Details</a>
</div>`))

var resourcePopup = template.Must(template.New("resource").Parse(`<div class="resource-popup">
    <h6 class="fw-bold">{{ .Name }}</h6>
    <p class="mb-1"><span class="badge {{ .AvailabilityStatus.BadgeClass }}">{{ .AvailabilityStatus }}</span></p>
    <p class="mb-1"><strong>Type:</strong> {{ .ResourceType }}</p>
    {{- if .Description }}
    <p class="mb-1">{{ .Description }}</p>
    {{- end }}
    {{- if .Location }}
    <p class="mb-1"><strong>Location:</strong> {{ .Location }}</p>
    {{- end }}
</div>`))

// IncidentPopup renders the popup body for an incident. Text fields are
// HTML-escaped.
func IncidentPopup(inc types.Incident) string {
	return render(incidentPopup, inc)
}

func ResourcePopup(res types.Resource) string {
	return render(resourcePopup, res)
}

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		log.Printf("[map] Error rendering %s popup: %v", t.Name(), err)
		return ""
	}
	return buf.String()
}
