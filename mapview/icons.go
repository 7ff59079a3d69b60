package mapview

import (
	"fmt"

	"go-crisismap/types"
)

var priorityColors = map[types.Priority]string{
	types.Critical: "red",
	types.High:     "orange",
	types.Medium:   "yellow",
	types.Low:      "green",
}

var incidentGlyphs = map[types.IncidentType]string{
	types.Fire:            "🔥",
	types.Medical:         "🚑",
	types.Accident:        "🚗",
	types.NaturalDisaster: "🌪️",
	types.Crime:           "🚔",
	types.Utility:         "⚡",
	types.OtherIncident:   "❗",
}

var availabilityColors = map[types.Availability]string{
	types.Available:   "green",
	types.InUse:       "orange",
	types.Maintenance: "red",
}

var resourceGlyphs = map[types.ResourceType]string{
	types.Vehicle:   "🚐",
	types.Equipment: "🔧",
	types.Personnel: "👨‍🚒",
}

const (
	defaultIncidentColor = "blue"
	defaultIncidentGlyph = "📍"
	defaultResourceColor = "gray"
	defaultResourceGlyph = "📦"
)

// IncidentIcon picks the marker icon for an incident. Unknown types or
// priorities fall back to a neutral pin instead of failing.
func IncidentIcon(t types.IncidentType, p types.Priority) types.Icon {
	color, ok := priorityColors[p]
	if !ok {
		color = defaultIncidentColor
	}
	glyph, ok := incidentGlyphs[t]
	if !ok {
		glyph = defaultIncidentGlyph
	}

	return types.Icon{
		ClassName:   "custom-incident-icon",
		Color:       color,
		Glyph:       glyph,
		HTML:        badgeHTML(color, glyph, 32, "50%", 3, 16, "0 2px 6px"),
		Size:        [2]int{32, 32},
		Anchor:      [2]int{16, 32},
		PopupAnchor: [2]int{0, -32},
	}
}

// ResourceIcon picks the marker icon for a resource.
func ResourceIcon(t types.ResourceType, a types.Availability) types.Icon {
	color, ok := availabilityColors[a]
	if !ok {
		color = defaultResourceColor
	}
	glyph, ok := resourceGlyphs[t]
	if !ok {
		glyph = defaultResourceGlyph
	}

	return types.Icon{
		ClassName:   "custom-resource-icon",
		Color:       color,
		Glyph:       glyph,
		HTML:        badgeHTML(color, glyph, 28, "4px", 2, 14, "0 2px 4px"),
		Size:        [2]int{28, 28},
		Anchor:      [2]int{14, 28},
		PopupAnchor: [2]int{0, -28},
	}
}

// UserLocationIcon is the blue dot marking the viewer's own position.
func UserLocationIcon() types.Icon {
	return types.Icon{
		ClassName: "user-location-icon",
		Color:     "blue",
		HTML:      `<div style="background-color: blue; width: 20px; height: 20px; border-radius: 50%; border: 3px solid white;"></div>`,
		Size:      [2]int{20, 20},
		Anchor:    [2]int{10, 10},
	}
}

func badgeHTML(color, glyph string, size int, radius string, border, font int, shadow string) string {
	return fmt.Sprintf(`<div style="background-color: %s; width: %dpx; height: %dpx; border-radius: %s; border: %dpx solid white; display: flex; align-items: center; justify-content: center; font-size: %dpx; box-shadow: %s rgba(0,0,0,0.3);">%s</div>`,
		color, size, size, radius, border, font, shadow, glyph)
}
