package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"collision-dashboard-api/dataset"
	"collision-dashboard-api/pipeline"
	"collision-dashboard-api/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsSummary is the recomputed view sent back for every filter message.
type wsSummary struct {
	Type    string          `json:"type"`
	Matched int             `json:"matched"`
	Total   int             `json:"total"`
	Points  []MapPoint      `json:"points"`
	Hourly  []int           `json:"hourly"`
	Filter  pipeline.Filter `json:"filter"`
}

// LiveFilter is the interactive filter channel: each client message is a
// filter spec JSON, each reply the recomputed summary over the shared
// immutable dataset. No session state survives beyond the current message.
// When authService is non-nil a valid token query parameter is required.
func LiveFilter(store *dataset.Store, authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService != nil {
			tokenStr := c.Query("token")
			if tokenStr == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token query parameter"})
				return
			}
			if _, err := authService.ValidateToken(tokenStr); err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		// Hourly buckets are dataset-wide and do not change per message.
		hourly := pipeline.CountByHour(store.Records())

		for {
			var f pipeline.Filter
			if err := conn.ReadJSON(&f); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("ws read error: %v", err)
				}
				return
			}
			wsMessages.Inc()

			filterRecomputations.Inc()
			matched := pipeline.Apply(store.Records(), f)

			points := make([]MapPoint, 0, len(matched))
			for _, rec := range matched {
				points = append(points, MapPoint{Lat: rec.Latitude, Lng: rec.Longitude})
			}

			summary := wsSummary{
				Type:    "filter_result",
				Matched: len(matched),
				Total:   store.Len(),
				Points:  points,
				Hourly:  hourly[:],
				Filter:  f,
			}
			if err := conn.WriteJSON(summary); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}
}
