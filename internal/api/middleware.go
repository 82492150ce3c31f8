package api

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger logs the client user agent, method, path and source address
// of every request, tagged with a per-request id.
func RequestLogger() gin.HandlerFunc {
	dashes := strings.Repeat("-", 63)

	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("requestID", requestID)

		log.Printf("Client: %s\n%s", c.Request.UserAgent(), dashes)
		log.Printf("[%s] %s %s - %s\n", requestID, c.Request.Method, c.Request.URL.Path, c.ClientIP())

		c.Next()
	}
}
