package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"go-crisismap/handlers"
	"go-crisismap/leaflet"
	"go-crisismap/mapview"
	"go-crisismap/metrics"
)

// Deps are the services the routes are wired to.
type Deps struct {
	Renderer *mapview.Renderer
	Library  *leaflet.Library
	Presence *mapview.Presence
	Geocoder handlers.AddressResolver
	Chatbot  handlers.Replier
	Metrics  *metrics.MapCollector
	// PollEvery is how often the map page polls for markers.
	PollEvery time.Duration
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Go Crisis Map!",
		})
	})

	r.GET("/map", func(c *gin.Context) {
		handlers.MapPageHandler(c, d.Library, d.Renderer, d.PollEvery)
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/map/markers", func(c *gin.Context) {
			handlers.MarkersHandler(c, d.Library, d.Renderer, d.Presence)
		})
		api.POST("/map/refresh", func(c *gin.Context) {
			handlers.RefreshHandler(c, d.Renderer)
		})
		api.GET("/map/filter", func(c *gin.Context) {
			handlers.FilterHandler(c, d.Renderer)
		})
		api.GET("/map/legend", handlers.LegendHandler)

		api.GET("/maps/link", handlers.MapsLinkHandler)
		api.GET("/maps/overview", func(c *gin.Context) {
			handlers.MapsOverviewHandler(c, d.Renderer.Incidents())
		})
		api.GET("/maps/card/:id", func(c *gin.Context) {
			handlers.LocationCardHandler(c, d.Renderer.Incidents())
		})

		api.GET("/location/reverse", func(c *gin.Context) {
			handlers.ReverseGeocodeHandler(c, d.Geocoder)
		})
		api.GET("/location/nearby", func(c *gin.Context) {
			handlers.NearbyHandler(c, d.Renderer.Incidents())
		})

		api.GET("/incidents/export", func(c *gin.Context) {
			handlers.ExportIncidentsHandler(c, d.Renderer.Incidents())
		})
		api.POST("/chatbot", func(c *gin.Context) {
			handlers.ChatbotHandler(c, d.Chatbot)
		})
	}

	return r
}
