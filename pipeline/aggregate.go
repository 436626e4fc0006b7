package pipeline

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"collision-dashboard-api/models"
)

// Aggregate tables are always computed over the records they are handed;
// the handlers pass the full dataset regardless of the active filter, so
// the hourly, weekday and crosstab charts stay dataset-wide.

// CountByHour buckets records into 24 hour-of-day counts.
func CountByHour(records []models.Collision) [24]int {
	var buckets [24]int
	for _, rec := range records {
		buckets[rec.OccurredAt.Hour()]++
	}
	return buckets
}

// CountByWeekday buckets records into 7 weekday counts, Sunday first.
func CountByWeekday(records []models.Collision) [7]int {
	var buckets [7]int
	for _, rec := range records {
		buckets[int(rec.OccurredAt.Weekday())]++
	}
	return buckets
}

// CrossCell is one borough × contributing-factor cell.
type CrossCell struct {
	Borough string `json:"borough"`
	Factor  string `json:"factor"`
	Count   int    `json:"count"`
}

// CrossTab counts records per borough × contributing-factor pair. Cells are
// sorted by borough then factor so repeated runs produce identical output.
func CrossTab(records []models.Collision) []CrossCell {
	type key struct{ borough, factor string }
	counts := make(map[key]int)
	for _, rec := range records {
		counts[key{rec.Borough, rec.ContributingFactor}]++
	}

	cells := make([]CrossCell, 0, len(counts))
	for k, n := range counts {
		cells = append(cells, CrossCell{Borough: k.borough, Factor: k.factor, Count: n})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Borough != cells[j].Borough {
			return cells[i].Borough < cells[j].Borough
		}
		return cells[i].Factor < cells[j].Factor
	})
	return cells
}

// CategoryCount is a generic label → count pair for bar charts.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountByBorough counts collisions per borough, most affected first.
func CountByBorough(records []models.Collision) []CategoryCount {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Borough]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for borough, n := range counts {
		out = append(out, CategoryCount{Label: borough, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// DayCount is the collision count of one calendar day.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// CountByDay counts collisions per calendar day, ascending by date.
func CountByDay(records []models.Collision) []DayCount {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.OccurredAt.Format("2006-01-02")]++
	}
	out := make([]DayCount, 0, len(counts))
	for date, n := range counts {
		out = append(out, DayCount{Date: date, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MinuteHistogram buckets the collisions of one hour of day into 60
// one-minute counts.
func MinuteHistogram(records []models.Collision, hour int) [60]int {
	var buckets [60]int
	for _, rec := range records {
		if rec.OccurredAt.Hour() == hour {
			buckets[rec.OccurredAt.Minute()]++
		}
	}
	return buckets
}

// HeatCell is one date × hour-of-day cell of the collision heatmap.
type HeatCell struct {
	Date  string `json:"date"`
	Hour  int    `json:"hour"`
	Count int    `json:"count"`
}

// HeatmapCells counts collisions per date × hour, sorted by date then hour.
func HeatmapCells(records []models.Collision) []HeatCell {
	type key struct {
		date string
		hour int
	}
	counts := make(map[key]int)
	for _, rec := range records {
		counts[key{rec.OccurredAt.Format("2006-01-02"), rec.OccurredAt.Hour()}]++
	}
	cells := make([]HeatCell, 0, len(counts))
	for k, n := range counts {
		cells = append(cells, HeatCell{Date: k.date, Hour: k.hour, Count: n})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Date != cells[j].Date {
			return cells[i].Date < cells[j].Date
		}
		return cells[i].Hour < cells[j].Hour
	})
	return cells
}

// AffectedMode selects which casualty breakdown TopStreets ranks by.
type AffectedMode string

const (
	ModePedestrians AffectedMode = "pedestrians"
	ModeCyclists    AffectedMode = "cyclists"
	ModeMotorists   AffectedMode = "motorists"
)

// StreetCasualties is one street's summed injury/fatality counts for a
// single affected mode.
type StreetCasualties struct {
	Street   string `json:"street"`
	Injured  int    `json:"injured"`
	Killed   int    `json:"killed"`
	Affected int    `json:"affected"`
}

// TopStreets ranks streets by people affected (injured + killed) for the
// given mode. Only records with at least one casualty of that mode count;
// blank street names are dropped. Ties break on street name.
func TopStreets(records []models.Collision, mode AffectedMode, limit int) []StreetCasualties {
	injuredOf := func(rec models.Collision) int { return rec.InjuredPedestrians }
	killedOf := func(rec models.Collision) int { return rec.KilledPedestrians }
	switch mode {
	case ModeCyclists:
		injuredOf = func(rec models.Collision) int { return rec.InjuredCyclists }
		killedOf = func(rec models.Collision) int { return rec.KilledCyclists }
	case ModeMotorists:
		injuredOf = func(rec models.Collision) int { return rec.InjuredMotorists }
		killedOf = func(rec models.Collision) int { return rec.KilledMotorists }
	}

	type tally struct{ injured, killed int }
	streets := make(map[string]*tally)
	for _, rec := range records {
		injured, killed := injuredOf(rec), killedOf(rec)
		if injured == 0 && killed == 0 {
			continue
		}
		street := strings.TrimSpace(rec.OnStreetName)
		if street == "" {
			continue
		}
		t, ok := streets[street]
		if !ok {
			t = &tally{}
			streets[street] = t
		}
		t.injured += injured
		t.killed += killed
	}

	out := make([]StreetCasualties, 0, len(streets))
	for street, t := range streets {
		out = append(out, StreetCasualties{
			Street:   street,
			Injured:  t.injured,
			Killed:   t.killed,
			Affected: t.injured + t.killed,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Affected != out[j].Affected {
			return out[i].Affected > out[j].Affected
		}
		return out[i].Street < out[j].Street
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SeverityFlow is one strand of the parallel-categories diagram: a vehicle
// type, a contributing factor, and an injured/killed outcome with the summed
// casualty count along that path.
type SeverityFlow struct {
	Vehicle string `json:"vehicle"`
	Factor  string `json:"factor"`
	Outcome string `json:"outcome"` // "Injured" or "Killed"
	Count   int    `json:"count"`
}

const unspecifiedFactor = "Unspecified"

// SeverityFlows restricts casualty records to the three most frequent
// contributing factors and vehicle types, then sums injured and killed
// persons along each vehicle × factor path.
func SeverityFlows(records []models.Collision) []SeverityFlow {
	var casualties []models.Collision
	for _, rec := range records {
		if (rec.HasInjury() || rec.HasFatality()) && rec.ContributingFactor != unspecifiedFactor {
			casualties = append(casualties, rec)
		}
	}

	topFactors := topCategories(casualties, func(rec models.Collision) string { return rec.ContributingFactor }, 3)
	topVehicles := topCategories(casualties, func(rec models.Collision) string { return rec.VehicleType }, 3)

	type key struct{ vehicle, factor, outcome string }
	counts := make(map[key]int)
	for _, rec := range casualties {
		if !topFactors[rec.ContributingFactor] || !topVehicles[rec.VehicleType] {
			continue
		}
		vehicle := cleanVehicleType(rec.VehicleType)
		if rec.InjuredPersons > 0 {
			counts[key{vehicle, rec.ContributingFactor, "Injured"}] += rec.InjuredPersons
		}
		if rec.KilledPersons > 0 {
			counts[key{vehicle, rec.ContributingFactor, "Killed"}] += rec.KilledPersons
		}
	}

	flows := make([]SeverityFlow, 0, len(counts))
	for k, n := range counts {
		flows = append(flows, SeverityFlow{Vehicle: k.vehicle, Factor: k.factor, Outcome: k.outcome, Count: n})
	}
	sort.Slice(flows, func(i, j int) bool {
		if flows[i].Vehicle != flows[j].Vehicle {
			return flows[i].Vehicle < flows[j].Vehicle
		}
		if flows[i].Factor != flows[j].Factor {
			return flows[i].Factor < flows[j].Factor
		}
		return flows[i].Outcome < flows[j].Outcome
	})
	return flows
}

func topCategories(records []models.Collision, value func(models.Collision) string, n int) map[string]bool {
	counts := make(map[string]int)
	for _, rec := range records {
		if v := value(rec); v != "" {
			counts[v]++
		}
	}
	type pair struct {
		label string
		count int
	}
	pairs := make([]pair, 0, len(counts))
	for label, count := range counts {
		pairs = append(pairs, pair{label, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].label < pairs[j].label
	})
	if len(pairs) > n {
		pairs = pairs[:n]
	}
	top := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		top[p.label] = true
	}
	return top
}

func cleanVehicleType(vehicle string) string {
	v := strings.TrimSpace(strings.ReplaceAll(vehicle, "VEHICLE", ""))
	v = strings.TrimSpace(strings.ReplaceAll(v, "vehicle", ""))
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + strings.ToLower(v[1:])
}

// Midpoint is the mean latitude/longitude of records, used as the map
// viewport center. ok is false for an empty subset.
func Midpoint(records []models.Collision) (lat, lng float64, ok bool) {
	if len(records) == 0 {
		return 0, 0, false
	}
	lats := make([]float64, len(records))
	lngs := make([]float64, len(records))
	for i, rec := range records {
		lats[i] = rec.Latitude
		lngs[i] = rec.Longitude
	}
	return stat.Mean(lats, nil), stat.Mean(lngs, nil), true
}
