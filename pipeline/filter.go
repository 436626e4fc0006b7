// Package pipeline holds the filter/aggregate logic of the dashboard:
// pure functions that turn the raw record set and a filter specification
// into the row subsets and count tables the charts and maps consume.
package pipeline

import (
	"strings"
	"time"

	"collision-dashboard-api/models"
)

// Filter is the user-selected predicate set. The zero value matches every
// record. Predicates AND together.
type Filter struct {
	MinInjured  int        `json:"min_injured"`
	Date        *time.Time `json:"date,omitempty"`
	Hour        *int       `json:"hour,omitempty"`
	FatalOnly   bool       `json:"fatal_only"`
	InjuredOnly bool       `json:"injured_only"`
	Street      string     `json:"street,omitempty"`
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.MinInjured == 0 && f.Date == nil && f.Hour == nil &&
		!f.FatalOnly && !f.InjuredOnly && f.Street == ""
}

// Matches reports whether rec satisfies every active predicate.
func (f Filter) Matches(rec models.Collision) bool {
	if rec.InjuredPersons < f.MinInjured {
		return false
	}
	if f.Date != nil {
		y1, m1, d1 := f.Date.Date()
		y2, m2, d2 := rec.OccurredAt.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	if f.Hour != nil && rec.OccurredAt.Hour() != *f.Hour {
		return false
	}
	if f.FatalOnly && !rec.HasFatality() {
		return false
	}
	if f.InjuredOnly && !rec.HasInjury() {
		return false
	}
	if f.Street != "" {
		street := strings.ToUpper(strings.TrimSpace(rec.OnStreetName))
		if !strings.Contains(street, strings.ToUpper(strings.TrimSpace(f.Street))) {
			return false
		}
	}
	return true
}

// Apply returns the order-preserving subset of records matching f. The zero
// filter returns records unchanged (same backing array, no copy).
func Apply(records []models.Collision, f Filter) []models.Collision {
	if f.IsZero() {
		return records
	}
	matched := make([]models.Collision, 0, len(records))
	for _, rec := range records {
		if f.Matches(rec) {
			matched = append(matched, rec)
		}
	}
	return matched
}
