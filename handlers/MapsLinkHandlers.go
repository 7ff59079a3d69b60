package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-crisismap/display"
	"go-crisismap/geolocation"
	"go-crisismap/mapslink"
	"go-crisismap/types"
)

// MapsLinkHandler returns the Google Maps link for ?lat=&lon=, plus
// directions when ?from_lat=&from_lon= are given.
func MapsLinkHandler(c *gin.Context) {
	pos, ok := queryLatLng(c)
	if !ok {
		return
	}

	resp := gin.H{
		"url":         mapslink.Link(pos.Lat, pos.Lng),
		"coordinates": display.Coordinates(pos.Lat, pos.Lng, 6),
	}
	if c.Query("from_lat") != "" || c.Query("from_lon") != "" {
		fromLat, errLat := strconv.ParseFloat(c.Query("from_lat"), 64)
		fromLon, errLon := strconv.ParseFloat(c.Query("from_lon"), 64)
		if errLat != nil || errLon != nil || !geolocation.ValidCoordinates(fromLat, fromLon) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from_lat and from_lon must be valid coordinates"})
			return
		}
		from := types.LatLng{Lat: fromLat, Lng: fromLon}
		resp["directions"] = mapslink.Directions(from, pos)
		resp["distance_km"] = geolocation.Distance(from, pos)
	}
	c.JSON(http.StatusOK, resp)
}

// MapsOverviewHandler renders the live-incidents overview fragment.
func MapsOverviewHandler(c *gin.Context, incidents []types.Incident) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(mapslink.Overview(incidents)))
}

// LocationCardHandler renders the location card of one cached incident.
func LocationCardHandler(c *gin.Context, incidents []types.Incident) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident id"})
		return
	}
	for _, inc := range incidents {
		if inc.ID == id {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(mapslink.LocationCard(inc)))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
}
