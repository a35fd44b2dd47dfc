package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jdmarsh-dev/fieldhouse/internal/common"
)

// RoleMiddleware allows the request through when the authenticated admin holds
// any of the required roles.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := common.GetAdminFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		for _, required := range requiredRoles {
			if strings.EqualFold(ident.Role, required) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "Forbidden",
			"message":  "You don't have permission to access this resource",
			"required": requiredRoles,
		})
	}
}

// SuperAdminMiddleware is a convenience middleware for platform-operator access.
func SuperAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(common.RoleSuperAdmin)
}

// SchoolScopeMiddleware enforces tenant isolation: a school admin may only
// touch rows under its own school id. Super admins pass through for any school.
// The school id is read from the named path parameter.
func SchoolScopeMiddleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := common.GetAdminFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		if strings.EqualFold(ident.Role, common.RoleSuperAdmin) {
			c.Next()
			return
		}

		schoolID, err := common.ParseEntityID(c, param)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if ident.SchoolID == nil || *ident.SchoolID != schoolID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You don't have access to this school"})
			return
		}
		c.Next()
	}
}
