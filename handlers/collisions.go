package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"collision-dashboard-api/dataset"
	"collision-dashboard-api/pipeline"
	"collision-dashboard-api/services"
)

const collisionsCacheTTL = 60 * time.Second

type CollisionsHandler struct {
	store *dataset.Store
	cache *services.CacheService
}

func NewCollisionsHandler(store *dataset.Store, cache *services.CacheService) *CollisionsHandler {
	return &CollisionsHandler{store: store, cache: cache}
}

// List returns the filtered record subset, cursor-paginated.
func (h *CollisionsHandler) List(c *gin.Context) {
	f := ParseFilter(c)
	p := ParsePagination(c)

	beforeStr := ""
	if p.Before != nil {
		beforeStr = p.Before.Format(time.RFC3339Nano)
	}
	cacheKey := fmt.Sprintf("collisions:list:%s:%d:%s", filterCacheKey(f), p.Limit, beforeStr)

	var cached CursorResponse
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Data != nil {
		cacheHits.Inc()
		c.JSON(http.StatusOK, cached)
		return
	}

	filterRecomputations.Inc()
	matched := pipeline.Apply(h.store.Records(), f)
	resp := paginate(matched, p)

	go h.cache.Set(context.Background(), cacheKey, resp, collisionsCacheTTL)

	c.JSON(http.StatusOK, resp)
}
