package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireUser guards protected routes. Pages without a signed-in operator are
// redirected to /login once; API calls get 401.
func (h *Handler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.service.User() != nil {
			c.Next()
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}
