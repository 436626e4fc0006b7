// Package web serves the embedded single-page dashboard. The page is plain
// HTML plus Plotly from a CDN; all data comes from the JSON API.
package web

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var content embed.FS

func Dashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := content.ReadFile("index.html")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "dashboard page unavailable"})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}
