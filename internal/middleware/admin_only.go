// admin_only.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pitak-order-api/internal/dto"
)

// AdminOnly guards the admin routes with the shared-secret header.
// Plain string compare, matching the storefront as deployed.
func AdminOnly(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Admin-Key")
		if key != adminKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.Fail("UNAUTHORIZED", "Unauthorized"))
			return
		}
		c.Next()
	}
}
