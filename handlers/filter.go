package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"collision-dashboard-api/pipeline"
)

const filterDateLayout = "2006-01-02"

// ParseFilter builds the filter specification from query parameters.
// Absent or malformed values leave that dimension unfiltered; parsing never
// fails the request.
func ParseFilter(c *gin.Context) pipeline.Filter {
	var f pipeline.Filter

	if s := c.Query("min_injured"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			f.MinInjured = n
		}
	}
	if s := c.Query("date"); s != "" {
		if t, err := time.Parse(filterDateLayout, s); err == nil {
			f.Date = &t
		}
	}
	if s := c.Query("hour"); s != "" {
		if h, err := strconv.Atoi(s); err == nil && h >= 0 && h <= 23 {
			f.Hour = &h
		}
	}
	if s := c.Query("fatal"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			f.FatalOnly = b
		}
	}
	if s := c.Query("injured"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			f.InjuredOnly = b
		}
	}
	f.Street = c.Query("street")

	return f
}

// filterCacheKey encodes every filter dimension so distinct filters never
// share a cache entry.
func filterCacheKey(f pipeline.Filter) string {
	date, hour := "", ""
	if f.Date != nil {
		date = f.Date.Format(filterDateLayout)
	}
	if f.Hour != nil {
		hour = strconv.Itoa(*f.Hour)
	}
	return fmt.Sprintf("%d:%s:%s:%t:%t:%s", f.MinInjured, date, hour, f.FatalOnly, f.InjuredOnly, f.Street)
}
