package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FlightSearchCORS sets the fixed header set the flight-search function has
// always answered with, and ends preflight requests with 204.
func FlightSearchCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
