package mapview

import (
	"github.com/paulmach/orb"

	"go-crisismap/types"
)

// boundsPadding grows the fitted box by 10% of its span on every side.
const boundsPadding = 0.1

// PaddedBounds returns the smallest box holding every position, grown by
// pad times its span on each side. ok is false when positions is empty.
func PaddedBounds(positions []types.LatLng, pad float64) (b orb.Bound, ok bool) {
	if len(positions) == 0 {
		return orb.Bound{}, false
	}

	mp := make(orb.MultiPoint, 0, len(positions))
	for _, p := range positions {
		mp = append(mp, p.Point())
	}
	b = mp.Bound()

	dx := (b.Max.X() - b.Min.X()) * pad
	dy := (b.Max.Y() - b.Min.Y()) * pad
	return orb.Bound{
		Min: orb.Point{b.Min.X() - dx, b.Min.Y() - dy},
		Max: orb.Point{b.Max.X() + dx, b.Max.Y() + dy},
	}, true
}
