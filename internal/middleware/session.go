// internal/middleware/session.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/newerastudio/storefront/internal/utils"
)

// AdminSessionRequired gates the back office. A missing or invalid
// session cookie redirects page requests to the login page and returns
// 401 for API requests. The login page and auth endpoint stay open.
func AdminSessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/admin/login" || path == "/api/admin/auth" {
			c.Next()
			return
		}

		token, err := c.Cookie(utils.AdminSessionCookie)
		if err != nil || token == "" {
			reject(c, "Unauthorized")
			return
		}

		if err := utils.ValidateSessionToken(token); err != nil {
			reject(c, "Session expired")
			return
		}

		c.Next()
	}
}

func reject(c *gin.Context, message string) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	} else {
		c.Redirect(http.StatusFound, "/admin/login")
	}
	c.Abort()
}
