package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/quickmed-api/pkg/httputil"
)

// Recovery turns a handler panic into an opaque 500. If the handler had
// already started the response, the connection is only aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			log.Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("route", c.FullPath()).
				Str("method", c.Request.Method).
				Str("request_id", c.GetString(ContextRequestID)).
				Bool("response_started", c.Writer.Written()).
				Msg("Request panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.Header("Cache-Control", "no-store")
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				httputil.NewErrorResponse("Internal server error"))
		}()
		c.Next()
	}
}
