package dataset

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"collision-dashboard-api/models"
)

var recordsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "collisions_dataset_records_loaded",
	Help: "Number of collision records held by the in-memory dataset store.",
})

// Store is the process-wide, read-only dataset handle. It is constructed
// once at startup and shared by every request handler; no writer exists
// after construction, so no locking is needed.
type Store struct {
	records []models.Collision
}

// NewStore sorts records newest-first (stable, so equal timestamps keep
// their load order) and freezes them. The canonical order backs cursor
// pagination and the filter identity property.
func NewStore(records []models.Collision) *Store {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].OccurredAt.After(records[j].OccurredAt)
	})
	recordsLoaded.Set(float64(len(records)))
	return &Store{records: records}
}

// Records returns the full record slice. Callers must treat it as read-only.
func (s *Store) Records() []models.Collision {
	return s.records
}

func (s *Store) Len() int {
	return len(s.records)
}
