package types

type ResourceType string

const (
	Vehicle   ResourceType = "vehicle"
	Equipment ResourceType = "equipment"
	Personnel ResourceType = "personnel"
)

type Availability string

const (
	Available   Availability = "available"
	InUse       Availability = "in_use"
	Maintenance Availability = "maintenance"
)

// Resource is a deployable asset (vehicle, equipment, personnel).
type Resource struct {
	ID                 int64        `json:"id" firestore:"id"`
	Name               string       `json:"name" firestore:"name"`
	ResourceType       ResourceType `json:"resource_type" firestore:"resourceType"`
	AvailabilityStatus Availability `json:"availability_status" firestore:"availabilityStatus"`
	Latitude           *float64     `json:"latitude" firestore:"latitude"`
	Longitude          *float64     `json:"longitude" firestore:"longitude"`
	Description        string       `json:"description,omitempty" firestore:"description,omitempty"`
	Location           string       `json:"location,omitempty" firestore:"location,omitempty"`
}

func (r Resource) Position() (LatLng, bool) {
	return locate(r.Latitude, r.Longitude)
}

// BadgeClass maps an availability status to its Bootstrap badge class.
func (a Availability) BadgeClass() string {
	switch a {
	case Available:
		return "bg-success"
	case InUse:
		return "bg-warning"
	case Maintenance:
		return "bg-danger"
	default:
		return "bg-secondary"
	}
}
