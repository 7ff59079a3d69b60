package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"go-crisismap/chatbot"
	"go-crisismap/config"
	"go-crisismap/db"
	"go-crisismap/display"
	"go-crisismap/fetcher"
	"go-crisismap/geocode"
	"go-crisismap/geolocation"
	"go-crisismap/handlers"
	"go-crisismap/leaflet"
	"go-crisismap/mapslink"
	"go-crisismap/mapview"
	"go-crisismap/metrics"
	"go-crisismap/routes"
	"go-crisismap/types"
)

var (
	envFile    string
	outputFile string
)

func loadConfig() (config.Config, error) {
	if envFile != "" {
		return config.Load(envFile)
	}
	return config.Load()
}

// newSource picks the incident source named by INCIDENT_SOURCE.
func newSource(cfg config.Config) (mapview.Source, error) {
	if cfg.IncidentSource == config.SourceFirestore {
		client, err := db.InitFirestore(cfg.FirebaseCredentials)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Firestore: %w", err)
		}
		return db.NewIncidentStore(client), nil
	}
	return fetcher.NewClient(cfg.IncidentAPIURL, cfg.FetchTimeout), nil
}

func addServeCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the map server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd)
		},
	})
}

func serve(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	source, err := newSource(cfg)
	if err != nil {
		return err
	}
	defer db.CloseFirestore()

	collector, err := metrics.NewMapCollector(nil)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	mapsClient, err := geocode.InitMapsClient(cfg.MapsCredentials)
	if err != nil {
		log.Printf("Google Maps disabled: %v", err)
	}

	var locator geolocation.Locator
	switch {
	case cfg.DeviceLat != nil && cfg.DeviceLon != nil:
		locator = geolocation.StaticLocator{At: types.LatLng{Lat: *cfg.DeviceLat, Lng: *cfg.DeviceLon}}
	case mapsClient != nil:
		locator = geocode.NewLocator(mapsClient)
	}

	lib := leaflet.New(cfg.MapContainer)
	presence := mapview.NewPresence(2 * cfg.AutoRefreshInterval)
	renderer := mapview.New(mapview.Leaflet(lib), source,
		mapview.WithLocator(locator),
		mapview.WithVisibility(presence.Visible),
		mapview.WithMetrics(collector),
	)

	bootstrap(cmd.Context(), cfg, renderer, source)

	stop := renderer.StartAutoRefresh(cfg.AutoRefreshInterval)
	defer stop()

	r := routes.SetupRouter(routes.Deps{
		Renderer:  renderer,
		Library:   lib,
		Presence:  presence,
		Geocoder:  geocode.NewGeocoder(mapsClient),
		Chatbot:   chatbot.NewOpenAIResponder(cfg.OpenAIAPIKey),
		Metrics:   collector,
		PollEvery: cfg.AutoRefreshInterval,
	})
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// bootstrap loads the first incident and resource sets and creates the map.
// Fetch failures leave the map empty until the next refresh.
func bootstrap(ctx context.Context, cfg config.Config, renderer *mapview.Renderer, source mapview.Source) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	incidents, err := source.FetchIncidents(ctx)
	if err != nil {
		log.Printf("Error loading incidents: %v", err)
	}
	resources, err := source.FetchResources(ctx)
	if err != nil {
		log.Printf("Error loading resources: %v", err)
	}

	center := types.LatLng{Lat: cfg.MapCenterLat, Lng: cfg.MapCenterLon}
	renderer.InitializeWithUserLocation(ctx, cfg.MapContainer, mapview.InitOptions{
		Center:    &center,
		Zoom:      cfg.MapZoom,
		Incidents: incidents,
		Resources: resources,
	})
}

func fetchIncidents(cmd *cobra.Command) ([]types.Incident, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	source, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	defer db.CloseFirestore()

	incidents, err := source.FetchIncidents(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incidents: %w", err)
	}
	return incidents, nil
}

func addListCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List incidents from the configured source",
		RunE: func(cmd *cobra.Command, args []string) error {
			incidents, err := fetchIncidents(cmd)
			if err != nil {
				return err
			}
			if len(incidents) == 0 {
				cmd.Println("No incidents.")
				return nil
			}

			now := time.Now()
			cmd.Println("Incidents:")
			for _, inc := range incidents {
				where := "no location"
				if pos, ok := inc.Position(); ok {
					where = display.Coordinates(pos.Lat, pos.Lng, 4)
				}
				cmd.Println(fmt.Sprintf("#%d [%s/%s] %s - %s (%s, %s)",
					inc.ID, inc.Priority, inc.Status, inc.Title, inc.IncidentType.Label(),
					where, display.RelativeTime(inc.CreatedAt, now)))
			}
			return nil
		},
	})
}

// incidentGetter is implemented by sources that can load one incident directly.
type incidentGetter interface {
	GetIncident(ctx context.Context, id int64) (types.Incident, error)
}

func addShowCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one incident with its map links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid incident id %q: %w", args[0], err)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			source, err := newSource(cfg)
			if err != nil {
				return err
			}
			defer db.CloseFirestore()

			inc, err := lookupIncident(cmd.Context(), source, id)
			if err != nil {
				return err
			}

			cmd.Println(fmt.Sprintf("#%d %s", inc.ID, inc.Title))
			cmd.Println(fmt.Sprintf("  %s, priority %s, status %s", inc.IncidentType.Label(), inc.Priority, inc.Status))
			cmd.Println(fmt.Sprintf("  reported %s", display.DateTime(inc.CreatedAt)))
			if pos, ok := inc.Position(); ok {
				cmd.Println(fmt.Sprintf("  location %s", display.Coordinates(pos.Lat, pos.Lng, 6)))
				cmd.Println(fmt.Sprintf("  %s", mapslink.Link(pos.Lat, pos.Lng)))
			} else {
				cmd.Println("  no location data")
			}
			return nil
		},
	})
}

func lookupIncident(ctx context.Context, source mapview.Source, id int64) (types.Incident, error) {
	if g, ok := source.(incidentGetter); ok {
		return g.GetIncident(ctx, id)
	}
	incidents, err := source.FetchIncidents(ctx)
	if err != nil {
		return types.Incident{}, fmt.Errorf("failed to fetch incidents: %w", err)
	}
	for _, inc := range incidents {
		if inc.ID == id {
			return inc, nil
		}
	}
	return types.Incident{}, fmt.Errorf("%w: %d", db.ErrIncidentNotFound, id)
}

func addExportCmd(rootCmd *cobra.Command) {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export incidents to a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			incidents, err := fetchIncidents(cmd)
			if err != nil {
				return err
			}

			file, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer file.Close()

			if err := handlers.WriteIncidentsCSV(file, incidents); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}
			cmd.Println(fmt.Sprintf("Exported %d incidents to %s", len(incidents), outputFile))
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "incidents_export.csv", "Output CSV file path")
	rootCmd.AddCommand(exportCmd)
}

func addSeedCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed <file.json>",
		Short: "Bulk-load incidents and resources into Firestore",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var seed struct {
				Incidents []types.Incident `json:"incidents"`
				Resources []types.Resource `json:"resources"`
			}
			if err := json.Unmarshal(data, &seed); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			client, err := db.InitFirestore(cfg.FirebaseCredentials)
			if err != nil {
				return fmt.Errorf("failed to initialize Firestore: %w", err)
			}
			defer db.CloseFirestore()

			store := db.NewIncidentStore(client)
			nInc, err := store.SaveIncidents(cmd.Context(), seed.Incidents)
			if err != nil {
				return err
			}
			nRes, err := store.SaveResources(cmd.Context(), seed.Resources)
			if err != nil {
				return err
			}
			cmd.Println(fmt.Sprintf("Seeded %d incidents and %d resources", nInc, nRes))
			return nil
		},
	})
}
