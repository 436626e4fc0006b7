package handlers

import (
	"testing"
	"time"

	"collision-dashboard-api/models"
)

func pagedRecords(n int) []models.Collision {
	base := time.Date(2024, 7, 14, 12, 0, 0, 0, time.UTC)
	records := make([]models.Collision, n)
	for i := range records {
		// Newest first, one minute apart, matching the store's order.
		records[i] = models.Collision{OccurredAt: base.Add(-time.Duration(i) * time.Minute)}
	}
	return records
}

func TestPaginateFirstPage(t *testing.T) {
	records := pagedRecords(10)

	resp := paginate(records, PaginationParams{Limit: 4})
	page := resp.Data.([]models.Collision)

	if len(page) != 4 {
		t.Fatalf("got %d records, want 4", len(page))
	}
	if resp.Total != 10 {
		t.Errorf("Total = %d, want 10", resp.Total)
	}
	if !resp.HasMore {
		t.Error("HasMore should be true")
	}
	if resp.NextCursor == "" {
		t.Error("NextCursor should be set")
	}
}

func TestPaginateCursorAdvances(t *testing.T) {
	records := pagedRecords(6)

	first := paginate(records, PaginationParams{Limit: 3})
	cursor, err := time.Parse(time.RFC3339Nano, first.NextCursor)
	if err != nil {
		t.Fatalf("invalid cursor %q: %v", first.NextCursor, err)
	}

	second := paginate(records, PaginationParams{Limit: 3, Before: &cursor})
	page := second.Data.([]models.Collision)

	if len(page) != 3 {
		t.Fatalf("second page has %d records, want 3", len(page))
	}
	if second.HasMore {
		t.Error("second page should be the last")
	}
	firstPage := first.Data.([]models.Collision)
	if !page[0].OccurredAt.Before(firstPage[2].OccurredAt) {
		t.Error("second page should start after the first page's last record")
	}
}

func TestPaginateLastPage(t *testing.T) {
	records := pagedRecords(3)

	resp := paginate(records, PaginationParams{Limit: 10})
	page := resp.Data.([]models.Collision)

	if len(page) != 3 {
		t.Fatalf("got %d records, want 3", len(page))
	}
	if resp.HasMore {
		t.Error("HasMore should be false")
	}
	if resp.NextCursor != "" {
		t.Errorf("NextCursor = %q, want empty", resp.NextCursor)
	}
}

func TestPaginateEmpty(t *testing.T) {
	resp := paginate(nil, PaginationParams{Limit: 10})
	if resp.Total != 0 || resp.HasMore {
		t.Errorf("empty input: Total = %d, HasMore = %t", resp.Total, resp.HasMore)
	}
}
