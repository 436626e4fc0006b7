package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"collision-dashboard-api/models"
)

// Column headers of the NYC "Motor Vehicle Collisions - Crashes" export.
// Header matching is case-insensitive and whitespace-tolerant.
const (
	colCrashDate          = "crash date"
	colCrashTime          = "crash time"
	colBorough            = "borough"
	colLatitude           = "latitude"
	colLongitude          = "longitude"
	colOnStreetName       = "on street name"
	colInjuredPersons     = "number of persons injured"
	colKilledPersons      = "number of persons killed"
	colInjuredPedestrians = "number of pedestrians injured"
	colKilledPedestrians  = "number of pedestrians killed"
	colInjuredCyclists    = "number of cyclist injured"
	colKilledCyclists     = "number of cyclist killed"
	colInjuredMotorists   = "number of motorist injured"
	colKilledMotorists    = "number of motorist killed"
	colContributingFactor = "contributing factor vehicle 1"
	colVehicleType        = "vehicle type code 1"
)

const (
	dateLayout = "01/02/2006"
	timeLayout = "15:04"
)

// LoadCSV reads the collision dataset from a local CSV file. A missing or
// unreadable file is an error; the caller treats it as fatal.
func LoadCSV(path string, maxRows int) ([]models.Collision, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	records, err := ParseCSV(file, maxRows)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return records, nil
}

// ParseCSV decodes collision records from r. Rows with missing or unparsable
// coordinates are dropped; malformed numeric cells default to zero. Reads at
// most maxRows data rows (0 means no cap).
func ParseCSV(r io.Reader, maxRows int) ([]models.Collision, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colCrashDate, colCrashTime, colLatitude, colLongitude} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var records []models.Collision
	read := 0
	for maxRows <= 0 || read < maxRows {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		read++

		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[idx])
		}

		lat, latErr := strconv.ParseFloat(cell(colLatitude), 64)
		lng, lngErr := strconv.ParseFloat(cell(colLongitude), 64)
		if latErr != nil || lngErr != nil || (lat == 0 && lng == 0) {
			continue
		}

		occurredAt, err := parseTimestamp(cell(colCrashDate), cell(colCrashTime))
		if err != nil {
			continue
		}

		records = append(records, models.Collision{
			OccurredAt:         occurredAt,
			Latitude:           lat,
			Longitude:          lng,
			Borough:            cell(colBorough),
			OnStreetName:       strings.TrimSpace(cell(colOnStreetName)),
			InjuredPersons:     parseCount(cell(colInjuredPersons)),
			KilledPersons:      parseCount(cell(colKilledPersons)),
			InjuredPedestrians: parseCount(cell(colInjuredPedestrians)),
			KilledPedestrians:  parseCount(cell(colKilledPedestrians)),
			InjuredCyclists:    parseCount(cell(colInjuredCyclists)),
			KilledCyclists:     parseCount(cell(colKilledCyclists)),
			InjuredMotorists:   parseCount(cell(colInjuredMotorists)),
			KilledMotorists:    parseCount(cell(colKilledMotorists)),
			ContributingFactor: cell(colContributingFactor),
			VehicleType:        cell(colVehicleType),
		})
	}

	return records, nil
}

func parseTimestamp(date, clock string) (time.Time, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(timeLayout, clock)
	if err != nil {
		// Time-less rows keep midnight rather than being dropped.
		return day, nil
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}

func parseCount(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
