package leaflet

import (
	"github.com/paulmach/orb/geojson"

	"go-crisismap/types"
)

// FeatureCollection exports the attached markers as GeoJSON points.
func (m *Map) FeatureCollection() *geojson.FeatureCollection {
	return MarkersToGeoJSON(m.Markers())
}

func MarkersToGeoJSON(markers []types.Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, mk := range markers {
		f := geojson.NewFeature(mk.Position.Point())
		f.ID = mk.ID
		f.Properties["kind"] = string(mk.Kind)
		f.Properties["popup"] = mk.Popup
		f.Properties["icon"] = mk.Icon
		fc.Append(f)
	}
	return fc
}
