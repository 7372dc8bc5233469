package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/drive_thru_order_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware tracks successful API calls. Every request in a process
// belongs to the same ordering session, so the session id is the distinct id.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper, sessionID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// "/process-order" -> "process_order"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.NewReplacer("/", "_", "-", "_").Replace(eventName)
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if requestID, ok := c.Get(requestIDKey); ok {
			props["request_id"] = requestID
		}

		posthogClient.Enqueue(sessionID, eventName, props)
	}
}
