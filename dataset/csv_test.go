package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testHeader = "CRASH DATE,CRASH TIME,BOROUGH,LATITUDE,LONGITUDE,ON STREET NAME," +
	"NUMBER OF PERSONS INJURED,NUMBER OF PERSONS KILLED," +
	"NUMBER OF PEDESTRIANS INJURED,NUMBER OF PEDESTRIANS KILLED," +
	"NUMBER OF CYCLIST INJURED,NUMBER OF CYCLIST KILLED," +
	"NUMBER OF MOTORIST INJURED,NUMBER OF MOTORIST KILLED," +
	"CONTRIBUTING FACTOR VEHICLE 1,VEHICLE TYPE CODE 1"

func TestParseCSV(t *testing.T) {
	input := testHeader + "\n" +
		"07/14/2024,5:30,BROOKLYN,40.6501,-73.9496,ATLANTIC AVENUE,2,0,1,0,0,0,1,0,Driver Inattention/Distraction,Sedan\n" +
		"07/14/2024,20:15,QUEENS,40.7282,-73.7949,NORTHERN BLVD,0,1,0,1,0,0,0,0,Failure to Yield Right-of-Way,Taxi\n"

	records, err := ParseCSV(strings.NewReader(input), 0)
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	want := time.Date(2024, 7, 14, 5, 30, 0, 0, time.UTC)
	if !first.OccurredAt.Equal(want) {
		t.Errorf("OccurredAt = %v, want %v", first.OccurredAt, want)
	}
	if first.Borough != "BROOKLYN" {
		t.Errorf("Borough = %q, want BROOKLYN", first.Borough)
	}
	if first.Latitude != 40.6501 || first.Longitude != -73.9496 {
		t.Errorf("coords = (%v, %v), want (40.6501, -73.9496)", first.Latitude, first.Longitude)
	}
	if first.InjuredPersons != 2 || first.KilledPersons != 0 {
		t.Errorf("casualties = (%d, %d), want (2, 0)", first.InjuredPersons, first.KilledPersons)
	}
	if first.ContributingFactor != "Driver Inattention/Distraction" {
		t.Errorf("ContributingFactor = %q", first.ContributingFactor)
	}

	second := records[1]
	if second.OccurredAt.Hour() != 20 {
		t.Errorf("second record hour = %d, want 20", second.OccurredAt.Hour())
	}
	if !second.HasFatality() {
		t.Error("second record should have a fatality")
	}
}

func TestParseCSVDropsMissingCoordinates(t *testing.T) {
	input := testHeader + "\n" +
		"07/14/2024,5:30,BROOKLYN,40.6501,-73.9496,ATLANTIC AVENUE,0,0,0,0,0,0,0,0,Unspecified,Sedan\n" +
		"07/14/2024,6:00,BRONX,,,GRAND CONCOURSE,1,0,0,0,0,0,1,0,Unspecified,Sedan\n" +
		"07/14/2024,7:00,QUEENS,0,0,MAIN STREET,0,0,0,0,0,0,0,0,Unspecified,Sedan\n"

	records, err := ParseCSV(strings.NewReader(input), 0)
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (rows without coordinates dropped)", len(records))
	}
	if records[0].Borough != "BROOKLYN" {
		t.Errorf("kept record Borough = %q, want BROOKLYN", records[0].Borough)
	}
}

func TestParseCSVMalformedCountsDefaultZero(t *testing.T) {
	input := testHeader + "\n" +
		"07/14/2024,5:30,BROOKLYN,40.65,-73.94,ATLANTIC AVENUE,abc,-3,,0,0,0,0,0,Unspecified,Sedan\n"

	records, err := ParseCSV(strings.NewReader(input), 0)
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.InjuredPersons != 0 || r.KilledPersons != 0 || r.InjuredPedestrians != 0 {
		t.Errorf("malformed counts should default to 0, got %+v", r)
	}
}

func TestParseCSVMaxRows(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(testHeader + "\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("07/14/2024,5:30,BROOKLYN,40.65,-73.94,ATLANTIC AVENUE,0,0,0,0,0,0,0,0,Unspecified,Sedan\n")
	}

	records, err := ParseCSV(strings.NewReader(sb.String()), 3)
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3 (maxRows cap)", len(records))
	}
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	input := "CRASH DATE,BOROUGH\n07/14/2024,BROOKLYN\n"
	_, err := ParseCSV(strings.NewReader(input), 0)
	if err == nil {
		t.Error("expected error for missing required columns")
	}
}

func TestParseCSVEmptyDataset(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(testHeader+"\n"), 0)
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crashes.csv")
	content := testHeader + "\n" +
		"07/14/2024,5:30,BROOKLYN,40.65,-73.94,ATLANTIC AVENUE,1,0,0,0,0,0,1,0,Unspecified,Sedan\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadCSV(path, 0)
	if err != nil {
		t.Fatalf("LoadCSV() error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), 0)
	if err == nil {
		t.Error("expected error for missing dataset file")
	}
}

func TestNewStoreSortsNewestFirst(t *testing.T) {
	input := testHeader + "\n" +
		"07/14/2024,5:30,BROOKLYN,40.65,-73.94,ATLANTIC AVENUE,0,0,0,0,0,0,0,0,Unspecified,Sedan\n" +
		"07/15/2024,9:00,QUEENS,40.72,-73.79,NORTHERN BLVD,0,0,0,0,0,0,0,0,Unspecified,Taxi\n"

	records, err := ParseCSV(strings.NewReader(input), 0)
	if err != nil {
		t.Fatal(err)
	}

	store := NewStore(records)
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}
	got := store.Records()
	if !got[0].OccurredAt.After(got[1].OccurredAt) {
		t.Errorf("records not sorted newest-first: %v before %v", got[0].OccurredAt, got[1].OccurredAt)
	}
}
