package middleware

import (
	"net/http"
	"strings"

	clerkjwt "github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jdmarsh-dev/fieldhouse/internal/common"
)

// adminRow is the subset of the admins table the middleware needs. Queried by
// table name to keep this package free of a dependency on the admin package.
type adminRow struct {
	ID       string
	SchoolID *uint
	Role     string
	Email    string
	Active   bool
}

// AuthMiddleware verifies the Clerk session token from the Authorization
// header and resolves the matching admin account. Requests without a matching
// active admin row are rejected even when the token itself is valid.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := clerkjwt.Verify(c.Request.Context(), &clerkjwt.VerifyParams{
			Token: bearerToken[1],
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session token"})
			return
		}

		var row adminRow
		err = db.WithContext(c.Request.Context()).
			Table("admins").
			Select("id, school_id, role, email, active").
			Where("id = ?", claims.Subject).
			Take(&row).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				log.Warn().Str("subject", claims.Subject).Msg("authenticated subject has no admin account")
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No admin account for this user"})
				return
			}
			log.Error().Err(err).Msg("admin lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve admin account"})
			return
		}
		if !row.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin account is deactivated"})
			return
		}

		c.Set(common.ContextAdminKey, &common.AdminIdentity{
			ID:       row.ID,
			SchoolID: row.SchoolID,
			Role:     row.Role,
			Email:    row.Email,
		})
		c.Next()
	}
}
