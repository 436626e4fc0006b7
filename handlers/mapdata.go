package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"collision-dashboard-api/dataset"
	"collision-dashboard-api/pipeline"
)

type MapHandler struct {
	store *dataset.Store
}

func NewMapHandler(store *dataset.Store) *MapHandler {
	return &MapHandler{store: store}
}

type MapPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Viewport struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type MapResponse struct {
	Points   []MapPoint `json:"points"`
	Viewport *Viewport  `json:"viewport,omitempty"`
}

// Points returns the filtered collision locations plus a viewport centered
// on their mean coordinate. An empty subset yields empty points and no
// viewport rather than an error.
func (h *MapHandler) Points(c *gin.Context) {
	f := ParseFilter(c)

	filterRecomputations.Inc()
	matched := pipeline.Apply(h.store.Records(), f)

	resp := MapResponse{Points: make([]MapPoint, 0, len(matched))}
	for _, rec := range matched {
		resp.Points = append(resp.Points, MapPoint{Lat: rec.Latitude, Lng: rec.Longitude})
	}
	if lat, lng, ok := pipeline.Midpoint(matched); ok {
		resp.Viewport = &Viewport{Lat: lat, Lng: lng}
	}

	c.JSON(http.StatusOK, resp)
}
