package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-crisismap/leaflet"
	"go-crisismap/mapview"
)

const (
	MarkersPath = "/api/map/markers"
	RefreshPath = "/api/map/refresh"
)

// MapPageHandler serves the Leaflet page for the renderer's map. The page
// polls the markers endpoint every pollEvery, which keeps presence alive.
func MapPageHandler(c *gin.Context, lib *leaflet.Library, renderer *mapview.Renderer, pollEvery time.Duration) {
	m, ok := lookupMap(lib, renderer)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Map is not initialized"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err := leaflet.RenderPage(c.Writer, leaflet.PageData{
		State:      m.State(),
		MarkersURL: MarkersPath,
		RefreshURL: RefreshPath,
		PollEvery:  pollEvery,
	})
	if err != nil {
		log.Printf("Error rendering map page: %v", err)
	}
}

// MarkersHandler returns the current view and its markers as GeoJSON. Each
// call counts as a visible viewer for auto refresh.
func MarkersHandler(c *gin.Context, lib *leaflet.Library, renderer *mapview.Renderer, presence *mapview.Presence) {
	if presence != nil {
		presence.Touch()
	}
	m, ok := lookupMap(lib, renderer)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Map is not initialized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"view":    m.State(),
		"geojson": m.FeatureCollection(),
		"count":   len(renderer.Markers()),
	})
}

func RefreshHandler(c *gin.Context, renderer *mapview.Renderer) {
	err := renderer.Refresh(c.Request.Context())
	if errors.Is(err, mapview.ErrNoMap) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Map is not initialized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to refresh map data",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Map refreshed",
		"count":   len(renderer.Markers()),
	})
}

// FilterHandler re-renders the cached incidents matching ?type=&value=.
func FilterHandler(c *gin.Context, renderer *mapview.Renderer) {
	if !renderer.Active() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Map is not initialized"})
		return
	}

	filterType := mapview.FilterType(c.DefaultQuery("type", string(mapview.FilterAll)))
	value := c.Query("value")
	renderer.Filter(filterType, value)

	markers := renderer.Markers()
	c.JSON(http.StatusOK, gin.H{
		"filter":  gin.H{"type": filterType, "value": value},
		"count":   len(markers),
		"markers": markers,
	})
}

func LegendHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"legend": mapview.Legend()})
}

func lookupMap(lib *leaflet.Library, renderer *mapview.Renderer) (*leaflet.Map, bool) {
	if lib == nil || !renderer.Active() {
		return nil, false
	}
	return lib.Lookup(renderer.Container())
}
