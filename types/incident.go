package types

type IncidentType string

const (
	Fire            IncidentType = "fire"
	Medical         IncidentType = "medical"
	Accident        IncidentType = "accident"
	NaturalDisaster IncidentType = "natural_disaster"
	Crime           IncidentType = "crime"
	Utility         IncidentType = "utility"
	OtherIncident   IncidentType = "other"
)

type Priority string

const (
	Low      Priority = "low"
	Medium   Priority = "medium"
	High     Priority = "high"
	Critical Priority = "critical"
)

type Status string

const (
	Pending    Status = "pending"
	InProgress Status = "in_progress"
	Resolved   Status = "resolved"
	Closed     Status = "closed"
)

// Incident is a reported emergency as served by the incidents API.
// Latitude and Longitude are nil when the reporter gave no location.
type Incident struct {
	ID           int64        `json:"id" firestore:"id"`
	Title        string       `json:"title" firestore:"title"`
	Description  string       `json:"description" firestore:"description"`
	IncidentType IncidentType `json:"incident_type" firestore:"incidentType"`
	Priority     Priority     `json:"priority" firestore:"priority"`
	Status       Status       `json:"status" firestore:"status"`
	Latitude     *float64     `json:"latitude" firestore:"latitude"`
	Longitude    *float64     `json:"longitude" firestore:"longitude"`
	Address      string       `json:"address,omitempty" firestore:"address,omitempty"`
	CreatedAt    string       `json:"created_at" firestore:"createdAt"` // ISO 8601
	AssignedTeam *string      `json:"assigned_team" firestore:"assignedTeam"`
}

// Position returns the incident coordinates and whether they are usable on a map.
func (i Incident) Position() (LatLng, bool) {
	return locate(i.Latitude, i.Longitude)
}

// BadgeClass maps a status to its Bootstrap badge class.
func (s Status) BadgeClass() string {
	switch s {
	case Pending:
		return "bg-warning"
	case InProgress:
		return "bg-info"
	case Resolved:
		return "bg-success"
	case Closed:
		return "bg-secondary"
	default:
		return "bg-secondary"
	}
}

// BadgeClass maps a priority to its Bootstrap badge class.
func (p Priority) BadgeClass() string {
	switch p {
	case Low:
		return "bg-success"
	case Medium:
		return "bg-warning"
	case High:
		return "bg-danger"
	case Critical:
		return "bg-dark"
	default:
		return "bg-secondary"
	}
}

// Label is the human form of an incident type, e.g. "natural disaster".
func (t IncidentType) Label() string {
	b := []byte(t)
	for i := range b {
		if b[i] == '_' {
			b[i] = ' '
		}
	}
	return string(b)
}
