package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

// SizeLimit rejects bodies larger than maxBytes. Declared lengths are
// checked up front; chunked bodies are cut off by http.MaxBytesReader.
func SizeLimit(maxBytes int64) gin.HandlerFunc {
	msg := fmt.Sprintf("Request body exceeds %d bytes", maxBytes)

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, httputil.NewErrorResponse(msg))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
