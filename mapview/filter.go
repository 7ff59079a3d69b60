package mapview

import "go-crisismap/types"

// FilterType names the incident field a filter compares against.
type FilterType string

const (
	FilterAll        FilterType = "all"
	FilterByType     FilterType = "type"
	FilterByStatus   FilterType = "status"
	FilterByPriority FilterType = "priority"
)

// FilterIncidents keeps the incidents whose field equals value. Unknown
// filter types behave like FilterAll.
func FilterIncidents(incidents []types.Incident, filterType FilterType, value string) []types.Incident {
	var match func(types.Incident) bool
	switch filterType {
	case FilterByType:
		match = func(i types.Incident) bool { return string(i.IncidentType) == value }
	case FilterByStatus:
		match = func(i types.Incident) bool { return string(i.Status) == value }
	case FilterByPriority:
		match = func(i types.Incident) bool { return string(i.Priority) == value }
	default:
		return append([]types.Incident(nil), incidents...)
	}

	out := make([]types.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if match(inc) {
			out = append(out, inc)
		}
	}
	return out
}
