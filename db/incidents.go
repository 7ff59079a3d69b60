package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-crisismap/types"
)

const (
	incidentsCollection = "incidents"
	resourcesCollection = "resources"
)

var ErrIncidentNotFound = errors.New("incident not found")

// IncidentStore reads and writes the incident and resource collections.
type IncidentStore struct {
	client *firestore.Client
}

func NewIncidentStore(client *firestore.Client) *IncidentStore {
	return &IncidentStore{client: client}
}

// FetchIncidents retrieves all documents from the incidents collection.
// Documents that fail to decode are logged and skipped.
func (s *IncidentStore) FetchIncidents(ctx context.Context) ([]types.Incident, error) {
	iter := s.client.Collection(incidentsCollection).Documents(ctx)
	defer iter.Stop()

	incidents := []types.Incident{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating incidents collection: %w", err)
		}

		var inc types.Incident
		if err := doc.DataTo(&inc); err != nil {
			log.Printf("[db] Warning: Error converting document %s to Incident: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		incidents = append(incidents, inc)
	}
	log.Printf("[db] Retrieved %d incidents from the database.", len(incidents))
	return incidents, nil
}

// FetchResources retrieves all documents from the resources collection.
func (s *IncidentStore) FetchResources(ctx context.Context) ([]types.Resource, error) {
	iter := s.client.Collection(resourcesCollection).Documents(ctx)
	defer iter.Stop()

	resources := []types.Resource{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating resources collection: %w", err)
		}

		var res types.Resource
		if err := doc.DataTo(&res); err != nil {
			log.Printf("[db] Warning: Error converting document %s to Resource: %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		resources = append(resources, res)
	}
	return resources, nil
}

// GetIncident retrieves a single incident by its ID.
func (s *IncidentStore) GetIncident(ctx context.Context, id int64) (types.Incident, error) {
	var inc types.Incident

	snap, err := s.client.Collection(incidentsCollection).Doc(docID(id)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return inc, fmt.Errorf("%w: %d", ErrIncidentNotFound, id)
	}
	if err != nil {
		return inc, fmt.Errorf("error getting incident %d: %w", id, err)
	}

	if err := snap.DataTo(&inc); err != nil {
		return inc, fmt.Errorf("error converting document %s to Incident: %w", snap.Ref.ID, err)
	}
	return inc, nil
}

// SaveIncidents writes incidents with BulkWriter, keyed by incident ID.
// It returns the number of incidents written.
func (s *IncidentStore) SaveIncidents(ctx context.Context, incidents []types.Incident) (int, error) {
	docs := make(map[string]any, len(incidents))
	for _, inc := range incidents {
		docs[docID(inc.ID)] = inc
	}
	return s.bulkSet(ctx, incidentsCollection, docs)
}

// SaveResources writes resources with BulkWriter, keyed by resource ID.
func (s *IncidentStore) SaveResources(ctx context.Context, resources []types.Resource) (int, error) {
	docs := make(map[string]any, len(resources))
	for _, res := range resources {
		docs[docID(res.ID)] = res
	}
	return s.bulkSet(ctx, resourcesCollection, docs)
}

func (s *IncidentStore) bulkSet(ctx context.Context, collection string, docs map[string]any) (int, error) {
	if len(docs) == 0 {
		log.Printf("[db] No %s to save.", collection)
		return 0, nil
	}

	bw := s.client.BulkWriter(ctx)
	ref := s.client.Collection(collection)

	log.Printf("[db] Preparing to save %d documents using BulkWriter to collection '%s'...", len(docs), collection)

	jobs := make(map[string]*firestore.BulkWriterJob, len(docs))
	for id, data := range docs {
		job, err := bw.Set(ref.Doc(id), data)
		if err != nil {
			log.Printf("[db] Error enqueueing %s/%s for save: %v", collection, id, err)
			continue
		}
		jobs[id] = job
	}
	bw.End()

	saved := 0
	var errs []error
	for id, job := range jobs {
		if _, err := job.Results(); err != nil {
			errs = append(errs, fmt.Errorf("%s/%s: %w", collection, id, err))
			continue
		}
		saved++
	}
	log.Printf("[db] BulkWriter finished. Saved %d/%d documents to '%s'.", saved, len(docs), collection)
	return saved, errors.Join(errs...)
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}
