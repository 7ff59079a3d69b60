package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-crisismap/display"
	"go-crisismap/geolocation"
	"go-crisismap/types"
)

// AddressResolver turns coordinates into a short address.
type AddressResolver interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) string
}

// ReverseGeocodeHandler fills in an address for ?lat=&lon=.
func ReverseGeocodeHandler(c *gin.Context, resolver AddressResolver) {
	pos, ok := queryLatLng(c)
	if !ok {
		return
	}

	address := display.Coordinates(pos.Lat, pos.Lng, 6)
	if resolver != nil {
		address = resolver.ReverseGeocode(c.Request.Context(), pos.Lat, pos.Lng)
	}

	c.JSON(http.StatusOK, gin.H{
		"latitude":  pos.Lat,
		"longitude": pos.Lng,
		"address":   address,
	})
}

// NearbyHandler lists incidents around ?lat=&lon=, closest first, within
// the optional ?radius_km=.
func NearbyHandler(c *gin.Context, incidents []types.Incident) {
	pos, ok := queryLatLng(c)
	if !ok {
		return
	}

	radius := 0.0
	if v := c.Query("radius_km"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radius_km must be a non-negative number"})
			return
		}
		radius = r
	}

	nearby := geolocation.NearbyIncidents(pos, incidents, radius)
	c.JSON(http.StatusOK, gin.H{
		"origin":    pos,
		"radius_km": radius,
		"count":     len(nearby),
		"incidents": nearby,
	})
}

// queryLatLng reads ?lat=&lon= and answers 400 itself when they are unusable.
func queryLatLng(c *gin.Context) (types.LatLng, bool) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil || !geolocation.ValidCoordinates(lat, lon) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "lat and lon must be valid coordinates",
		})
		return types.LatLng{}, false
	}
	return types.LatLng{Lat: lat, Lng: lon}, true
}
