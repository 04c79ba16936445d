package middleware

import (
	"github.com/gin-gonic/gin"
)

// AppInfo exposes the application name and version to handlers
func AppInfo(name, version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)

		c.Next()
	}
}
