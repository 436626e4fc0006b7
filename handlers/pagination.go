package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"collision-dashboard-api/models"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type PaginationParams struct {
	Limit  int
	Before *time.Time
}

type CursorResponse struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	NextCursor string      `json:"next_cursor,omitempty"`
	HasMore    bool        `json:"has_more"`
}

func ParsePagination(c *gin.Context) PaginationParams {
	p := PaginationParams{Limit: DefaultLimit}

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			p.Limit = l
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if beforeStr := c.Query("before"); beforeStr != "" {
		if t, err := time.Parse(time.RFC3339Nano, beforeStr); err == nil {
			p.Before = &t
		}
	}

	return p
}

// paginate cuts a page out of records, which must be ordered newest-first
// (the store's canonical order). total is the pre-pagination match count.
func paginate(records []models.Collision, p PaginationParams) CursorResponse {
	total := len(records)

	if p.Before != nil {
		// Records are sorted descending, so everything at or after the
		// cursor is skipped.
		i := 0
		for i < len(records) && !records[i].OccurredAt.Before(*p.Before) {
			i++
		}
		records = records[i:]
	}

	hasMore := len(records) > p.Limit
	if hasMore {
		records = records[:p.Limit]
	}

	var nextCursor string
	if hasMore && len(records) > 0 {
		nextCursor = records[len(records)-1].OccurredAt.Format(time.RFC3339Nano)
	}

	return CursorResponse{Data: records, Total: total, NextCursor: nextCursor, HasMore: hasMore}
}
