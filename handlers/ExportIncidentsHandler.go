package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-crisismap/types"
)

var csvHeader = []string{
	"id", "title", "incident_type", "priority", "status",
	"latitude", "longitude", "address", "created_at", "assigned_team",
}

// WriteIncidentsCSV writes incidents as CSV with a header row. Missing
// coordinates and teams are left blank.
func WriteIncidentsCSV(w io.Writer, incidents []types.Incident) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, inc := range incidents {
		row := []string{
			strconv.FormatInt(inc.ID, 10),
			inc.Title,
			string(inc.IncidentType),
			string(inc.Priority),
			string(inc.Status),
			optionalFloat(inc.Latitude),
			optionalFloat(inc.Longitude),
			inc.Address,
			inc.CreatedAt,
			optionalString(inc.AssignedTeam),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportIncidentsHandler downloads the cached incidents as CSV.
func ExportIncidentsHandler(c *gin.Context, incidents []types.Incident) {
	log.Println("Received request to export incidents...")

	if len(incidents) == 0 {
		log.Println("No incidents found to export.")
		c.JSON(http.StatusOK, gin.H{
			"message": "No incidents found to export.",
			"count":   0,
		})
		return
	}

	filename := fmt.Sprintf("incidents_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := WriteIncidentsCSV(c.Writer, incidents); err != nil {
		log.Printf("Error writing incidents CSV: %v", err)
		return
	}
	log.Printf("Successfully exported %d incidents to %s", len(incidents), filename)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func optionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
