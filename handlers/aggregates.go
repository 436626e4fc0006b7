package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"collision-dashboard-api/dataset"
	"collision-dashboard-api/pipeline"
	"collision-dashboard-api/services"
)

// The dataset never changes after load, so aggregate responses are cached
// with a long TTL and computed at most once per key per TTL window.
const aggregatesCacheTTL = 5 * time.Minute

// AggregatesHandler serves the chart tables. Every endpoint computes over
// the entire dataset regardless of any filter parameters on the request;
// only the record and map endpoints are filter-scoped.
type AggregatesHandler struct {
	store *dataset.Store
	cache *services.CacheService
}

func NewAggregatesHandler(store *dataset.Store, cache *services.CacheService) *AggregatesHandler {
	return &AggregatesHandler{store: store, cache: cache}
}

func (h *AggregatesHandler) serveCached(c *gin.Context, key string, compute func() interface{}) {
	var cached map[string]interface{}
	if err := h.cache.Get(c.Request.Context(), key, &cached); err == nil && cached["data"] != nil {
		cacheHits.Inc()
		c.JSON(http.StatusOK, cached)
		return
	}

	filterRecomputations.Inc()
	resp := gin.H{"data": compute(), "total": h.store.Len()}
	go h.cache.Set(context.Background(), key, resp, aggregatesCacheTTL)

	c.JSON(http.StatusOK, resp)
}

// Hourly returns 24 hour-of-day buckets.
func (h *AggregatesHandler) Hourly(c *gin.Context) {
	h.serveCached(c, "agg:hourly", func() interface{} {
		buckets := pipeline.CountByHour(h.store.Records())
		return buckets[:]
	})
}

// Weekday returns 7 weekday buckets, Sunday first.
func (h *AggregatesHandler) Weekday(c *gin.Context) {
	h.serveCached(c, "agg:weekday", func() interface{} {
		buckets := pipeline.CountByWeekday(h.store.Records())
		return buckets[:]
	})
}

// BoroughFactor returns the borough × contributing-factor crosstab.
func (h *AggregatesHandler) BoroughFactor(c *gin.Context) {
	h.serveCached(c, "agg:borough-factor", func() interface{} {
		return pipeline.CrossTab(h.store.Records())
	})
}

// Boroughs returns collision counts per borough.
func (h *AggregatesHandler) Boroughs(c *gin.Context) {
	h.serveCached(c, "agg:boroughs", func() interface{} {
		return pipeline.CountByBorough(h.store.Records())
	})
}

// Daily returns collision counts per calendar day.
func (h *AggregatesHandler) Daily(c *gin.Context) {
	h.serveCached(c, "agg:daily", func() interface{} {
		return pipeline.CountByDay(h.store.Records())
	})
}

// Heatmap returns date × hour collision counts.
func (h *AggregatesHandler) Heatmap(c *gin.Context) {
	h.serveCached(c, "agg:heatmap", func() interface{} {
		return pipeline.HeatmapCells(h.store.Records())
	})
}

// Minutes returns the 60 one-minute buckets of a single hour of day. The
// hour is an explicit endpoint parameter, not a filter dimension, so an
// invalid value is a client error.
func (h *AggregatesHandler) Minutes(c *gin.Context) {
	hourStr := c.DefaultQuery("hour", "0")
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hour parameter, must be 0-23"})
		return
	}

	h.serveCached(c, "agg:minutes:"+hourStr, func() interface{} {
		buckets := pipeline.MinuteHistogram(h.store.Records(), hour)
		return buckets[:]
	})
}

// Streets returns the most dangerous streets for an affected mode.
func (h *AggregatesHandler) Streets(c *gin.Context) {
	mode := pipeline.AffectedMode(c.DefaultQuery("mode", string(pipeline.ModePedestrians)))
	switch mode {
	case pipeline.ModePedestrians, pipeline.ModeCyclists, pipeline.ModeMotorists:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mode parameter, must be pedestrians, cyclists or motorists"})
		return
	}

	h.serveCached(c, "agg:streets:"+string(mode), func() interface{} {
		return pipeline.TopStreets(h.store.Records(), mode, 10)
	})
}

// SeverityFlows returns the parallel-categories table (vehicle type ×
// contributing factor × outcome).
func (h *AggregatesHandler) SeverityFlows(c *gin.Context) {
	h.serveCached(c, "agg:severity-flows", func() interface{} {
		return pipeline.SeverityFlows(h.store.Records())
	})
}
